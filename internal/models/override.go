package models

import "time"

// Override é um ajuste administrativo de preço/promoção aplicado na leitura
type Override struct {
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name,omitempty"`
	PriceFrom    *float64  `json:"price_from,omitempty"`
	PromoPercent *float64  `json:"promo_percent,omitempty"`
	PromoLabel   string    `json:"promo_label,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate verifica os limites dos campos opcionais
func (o *Override) Validate() error {
	if o.ProviderID == "" {
		return ErrOverrideProviderRequired
	}
	if o.PriceFrom != nil && *o.PriceFrom < 0 {
		return ErrInvalidOverride
	}
	if o.PromoPercent != nil && (*o.PromoPercent < 0 || *o.PromoPercent > 100) {
		return ErrInvalidOverride
	}
	return nil
}
