package models

// Category representa a categoria de um fornecedor de festas
type Category string

const (
	CategoryBrinquedos Category = "Brinquedos"
	CategoryBuffet     Category = "Buffet"
	CategoryDecoracao  Category = "Decoração"
	CategoryRecreacao  Category = "Recreação"
	CategoryBolo       Category = "Bolo"
)

// Categories lista as categorias na ordem exibida pelo marketplace
var Categories = []Category{
	CategoryBrinquedos,
	CategoryBuffet,
	CategoryDecoracao,
	CategoryRecreacao,
	CategoryBolo,
}

// IsValid verifica se a categoria pertence à enumeração conhecida
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Provider representa um fornecedor que pode ser contratado para uma festa
// @Description Fornecedor retornado pela busca. Campos promo_* são preenchidos apenas por overrides administrativos.
type Provider struct {
	ID              string   `json:"id" example:"5"`
	Name            string   `json:"name" example:"Bolos da Maria"`
	Category        Category `json:"category" example:"Bolo"`
	PriceFrom       float64  `json:"price_from" example:"180"`
	Rating          float64  `json:"rating" example:"4.5"`
	RatingCount     int      `json:"rating_count" example:"12"`
	MainImage       string   `json:"main_image"`
	RadiusKm        int      `json:"radius_km" example:"20"`
	HasCNPJ         bool     `json:"has_cnpj"`
	IncludesMonitor bool     `json:"includes_monitor"`
	CEPAreas        []string `json:"cep_areas"`

	// Apenas exibição, nunca persistidos no registro base
	PromoPercent *float64 `json:"promo_percent,omitempty"`
	PromoLabel   string   `json:"promo_label,omitempty"`
}

// Clone retorna uma cópia profunda do fornecedor
func (p Provider) Clone() Provider {
	out := p
	if p.CEPAreas != nil {
		out.CEPAreas = append([]string(nil), p.CEPAreas...)
	}
	if p.PromoPercent != nil {
		v := *p.PromoPercent
		out.PromoPercent = &v
	}
	return out
}

// CloneProviders copia uma lista de fornecedores
func CloneProviders(list []Provider) []Provider {
	if list == nil {
		return nil
	}
	out := make([]Provider, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}
