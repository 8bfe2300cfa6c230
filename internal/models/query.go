package models

import "math"

// SortMode define a ordenação dos resultados
type SortMode string

const (
	SortRelevance SortMode = "relevancia"
	SortBestRated SortMode = "melhor"
	SortPriceAsc  SortMode = "preco-asc"
	SortPriceDesc SortMode = "preco-desc"
)

// IsValid verifica se o modo de ordenação é suportado
func (s SortMode) IsValid() bool {
	switch s {
	case SortRelevance, SortBestRated, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// QueryDefaults contém os valores padrão de uma busca de fornecedores
type QueryDefaults struct {
	PriceMin float64
	PriceMax float64
	PageSize int
}

// DefaultQueryDefaults retorna faixa de preço 0..3000 e 12 itens por página
func DefaultQueryDefaults() QueryDefaults {
	return QueryDefaults{PriceMin: 0, PriceMax: 3000, PageSize: 12}
}

// ProvidersQuery representa os parâmetros de uma busca de fornecedores
// @Description Filtros, ordenação e paginação (1-based) da busca de fornecedores.
type ProvidersQuery struct {
	// Termo livre comparado (substring, sem diferenciar maiúsculas) com nome e categoria
	Q string `form:"q" json:"q" example:"bolo"`
	// Faixa de preço inclusiva aplicada sobre price_from base
	PriceMin float64 `form:"price_min" json:"price_min" binding:"gte=0" example:"0"`
	PriceMax float64 `form:"price_max" json:"price_max" binding:"gte=0" example:"3000"`
	// Nota mínima (0 a 5)
	MinRating float64 `form:"min_rating" json:"min_rating" binding:"gte=0,lte=5" example:"0"`

	HasCNPJ         bool `form:"has_cnpj" json:"has_cnpj"`
	IncludesMonitor bool `form:"includes_monitor" json:"includes_monitor"`

	Sort SortMode `form:"sort" json:"sort" binding:"omitempty,oneof=relevancia melhor preco-asc preco-desc" enums:"relevancia,melhor,preco-asc,preco-desc"`

	// Filtra por prefixo de 5 dígitos do CEP quando habilitado
	OnlyCEPMatch bool   `form:"only_cep_match" json:"only_cep_match"`
	CEP          string `form:"cep" json:"cep" example:"04099-123"`

	Page     int `form:"page" json:"page" binding:"gte=0,lte=100000" example:"1"`
	PageSize int `form:"page_size" json:"page_size" binding:"gte=0,lte=100" example:"12"`
}

// NewProvidersQuery cria uma busca preenchida com os valores padrão
func NewProvidersQuery(d QueryDefaults) ProvidersQuery {
	return ProvidersQuery{
		PriceMin: d.PriceMin,
		PriceMax: d.PriceMax,
		Sort:     SortRelevance,
		Page:     1,
		PageSize: d.PageSize,
	}
}

// ApplyDefaults corrige paginação e ordenação ausentes
func (q *ProvidersQuery) ApplyDefaults(pageSize int) {
	if pageSize < 1 {
		pageSize = DefaultQueryDefaults().PageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = pageSize
	}
	if !q.Sort.IsValid() {
		q.Sort = SortRelevance
	}
}

// Offset retorna o índice do primeiro item da página. Páginas cujo início
// não cabe em int retornam math.MaxInt (página vazia).
func (q ProvidersQuery) Offset() int {
	return PageOffset(q.Page, q.PageSize)
}

// PageOffset calcula (page-1)*size sem overflow
func PageOffset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

// DataSource identifica de onde vieram os dados de uma busca
type DataSource string

const (
	SourceRemote         DataSource = "remote"
	SourceRemoteDegraded DataSource = "remote-degraded"
	SourceLocal          DataSource = "local"
)

// QueryResult é a página de fornecedores devolvida pela busca
type QueryResult struct {
	Items []Provider `json:"items"`
	// Nulo quando o total não pôde ser calculado em uma única passada
	Total       *int       `json:"total"`
	CanPaginate bool       `json:"can_paginate"`
	Source      DataSource `json:"source" enums:"remote,remote-degraded,local"`
	Pagination  Pagination `json:"pagination"`
}

// Pagination contém informações de paginação
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages *int `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewPagination cria a paginação a partir do total (quando conhecido)
func NewPagination(page, pageSize int, total *int, canPaginate bool) Pagination {
	p := Pagination{Page: page, PageSize: pageSize}
	if total == nil || pageSize < 1 {
		return p
	}
	totalPages := *total / pageSize
	if *total%pageSize > 0 {
		totalPages++
	}
	p.TotalPages = &totalPages
	p.HasNext = canPaginate && page < totalPages
	return p
}
