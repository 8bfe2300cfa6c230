package models

import "errors"

var (
	ErrProviderNotFound         = errors.New("fornecedor não encontrado")
	ErrInvalidCEP               = errors.New("CEP inválido")
	ErrInvalidOverride          = errors.New("override inválido (price_from >= 0, promo_percent entre 0 e 100)")
	ErrOverrideProviderRequired = errors.New("provider_id é obrigatório")
	ErrOverrideNotFound         = errors.New("override não encontrado")
	ErrCategoryNotFound         = errors.New("categoria não encontrada")
)
