package handlers

import (
	"net/http"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProvidersHandler gerencia a busca e a consulta de fornecedores
type ProvidersHandler struct {
	engine  *search.Engine
	catalog *search.Catalog
	logger  *zap.Logger
}

// NewProvidersHandler cria um novo handler de fornecedores
func NewProvidersHandler(engine *search.Engine, catalog *search.Catalog, logger *zap.Logger) *ProvidersHandler {
	return &ProvidersHandler{
		engine:  engine,
		catalog: catalog,
		logger:  logger,
	}
}

// ProvidersListResponse representa a lista completa de fornecedores
type ProvidersListResponse struct {
	Items  []models.Provider `json:"items"`
	Total  int               `json:"total"`
	Source models.DataSource `json:"source" enums:"remote,local"`
}

// RefreshResponse representa o resultado de um recarregamento do catálogo
type RefreshResponse struct {
	Source models.DataSource `json:"source" enums:"remote,local"`
}

// Query godoc
// @Summary Busca fornecedores
// @Description Busca com filtros, ordenação e paginação (começa em 1).
// @Description
// @Description A fonte remota é consultada primeiro; se falhar, o snapshot local é usado.
// @Description Com `only_cep_match=true` o filtro por prefixo de 5 dígitos do CEP é aplicado no servidor quando possível.
// @Description Quando a fonte não suporta o filtro, uma janela de `page_size × 3` linhas é filtrada no processo:
// @Description nesse caso `total` é nulo e `can_paginate` é falso.
// @Description
// @Description Overrides administrativos alteram apenas os valores exibidos, nunca filtros ou ordenação.
// @Tags providers
// @Produce json
// @Param q query string false "Termo livre (nome ou categoria)" example("bolo")
// @Param price_min query number false "Preço mínimo (inclusivo)" default(0)
// @Param price_max query number false "Preço máximo (inclusivo)" default(3000)
// @Param min_rating query number false "Nota mínima" minimum(0) maximum(5) default(0)
// @Param has_cnpj query bool false "Apenas fornecedores com CNPJ"
// @Param includes_monitor query bool false "Apenas fornecedores que incluem monitor"
// @Param sort query string false "Ordenação" Enums(relevancia, melhor, preco-asc, preco-desc) default(relevancia)
// @Param only_cep_match query bool false "Filtrar pela região do CEP"
// @Param cep query string false "CEP do evento" example("04099-123")
// @Param page query int false "Página" minimum(1) maximum(100000) default(1)
// @Param page_size query int false "Itens por página" minimum(1) maximum(100) default(12)
// @Success 200 {object} models.QueryResult
// @Failure 400 {object} map[string]string "Parâmetros inválidos"
// @Failure 504 {object} map[string]string "Busca cancelada por timeout"
// @Router /api/v1/providers [get]
func (h *ProvidersHandler) Query(c *gin.Context) {
	query := models.NewProvidersQuery(h.engine.Defaults())
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetros inválidos", "details": err.Error()})
		return
	}

	result, err := h.engine.Query(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// All godoc
// @Summary Lista todos os fornecedores
// @Description Lista completa com cache de 5 minutos; usa o snapshot local se a fonte remota falhar.
// @Tags providers
// @Produce json
// @Success 200 {object} ProvidersListResponse
// @Router /api/v1/providers/all [get]
func (h *ProvidersHandler) All(c *gin.Context) {
	list, err := h.catalog.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProvidersListResponse{
		Items:  list,
		Total:  len(list),
		Source: h.catalog.Source(),
	})
}

// ByID godoc
// @Summary Busca fornecedor por ID
// @Tags providers
// @Produce json
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} models.Provider
// @Failure 404 {object} map[string]string
// @Router /api/v1/providers/{id} [get]
func (h *ProvidersHandler) ByID(c *gin.Context) {
	provider, err := h.catalog.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// Refresh godoc
// @Summary Recarrega o catálogo de fornecedores
// @Description Descarta o cache do catálogo e das buscas e recarrega a lista completa.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/providers/refresh [post]
func (h *ProvidersHandler) Refresh(c *gin.Context) {
	h.engine.Cache().Clear()
	source, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("catálogo recarregado", zap.String("source", string(source)))
	c.JSON(http.StatusOK, RefreshResponse{Source: source})
}
