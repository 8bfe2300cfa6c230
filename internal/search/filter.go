package search

import (
	"strings"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/search/ranking"
	"github.com/festafacil/app-busca-fornecedores/internal/validate"
)

// filter reúne os predicados da busca já normalizados.
// Aplica-se sempre aos valores base, nunca aos overrides.
type filter struct {
	priceMin        float64
	priceMax        float64
	minRating       float64
	hasCNPJ         bool
	includesMonitor bool
	term            ranking.Term
	cepPrefix       string // vazio = filtro de CEP inativo
}

func newFilter(q models.ProvidersQuery, cepPrefixMin int) filter {
	f := filter{
		priceMin:        q.PriceMin,
		priceMax:        q.PriceMax,
		minRating:       q.MinRating,
		hasCNPJ:         q.HasCNPJ,
		includesMonitor: q.IncludesMonitor,
		term:            ranking.NewTerm(q.Q),
	}
	if q.OnlyCEPMatch {
		// CEP com menos dígitos que o mínimo desativa o filtro
		f.cepPrefix = validate.CEPPrefix(q.CEP, cepPrefixMin)
	}
	return f
}

// match aplica os filtros sem o CEP (os mesmos enviados à fonte remota)
func (f filter) match(p models.Provider) bool {
	if p.PriceFrom < f.priceMin || p.PriceFrom > f.priceMax {
		return false
	}
	if p.Rating < f.minRating {
		return false
	}
	if f.hasCNPJ && !p.HasCNPJ {
		return false
	}
	if f.includesMonitor && !p.IncludesMonitor {
		return false
	}
	if f.term.IsEmpty() {
		return true
	}
	return strings.Contains(ranking.Lower(p.Name), f.term.Text) ||
		strings.Contains(ranking.Lower(string(p.Category)), f.term.Text)
}

// matchCEP indica se alguma área atendida tem o mesmo prefixo do CEP buscado
func (f filter) matchCEP(p models.Provider) bool {
	if f.cepPrefix == "" {
		return true
	}
	n := len(f.cepPrefix)
	for _, area := range p.CEPAreas {
		if validate.CEPPrefix(area, n) == f.cepPrefix {
			return true
		}
	}
	return false
}

// apply filtra a lista e devolve cópias na ordem original
func (f filter) apply(list []models.Provider, withCEP bool) []models.Provider {
	out := make([]models.Provider, 0, len(list))
	for _, p := range list {
		if !f.match(p) {
			continue
		}
		if withCEP && !f.matchCEP(p) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// paginate recorta [(page-1)*size, page*size) com limites seguros
func paginate(list []models.Provider, page, size int) []models.Provider {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return []models.Provider{}
	}
	start := models.PageOffset(page, size)
	if start >= len(list) {
		return []models.Provider{}
	}
	end := start + size
	if end > len(list) || end < start {
		end = len(list)
	}
	return list[start:end]
}
