package handlers

import (
	"net/http"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/overrides"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OverridesHandler gerencia os ajustes administrativos de preço e promoção
type OverridesHandler struct {
	store     *overrides.Store
	catalog   *search.Catalog
	validator *validator.Validate
}

// NewOverridesHandler cria um novo handler de overrides
func NewOverridesHandler(store *overrides.Store, catalog *search.Catalog) *OverridesHandler {
	return &OverridesHandler{
		store:     store,
		catalog:   catalog,
		validator: validator.New(),
	}
}

// OverrideRequest é o corpo aceito no PUT
type OverrideRequest struct {
	ProviderName string   `json:"provider_name" validate:"max=120"`
	PriceFrom    *float64 `json:"price_from" validate:"omitempty,gte=0" example:"199.9"`
	PromoPercent *float64 `json:"promo_percent" validate:"omitempty,gte=0,lte=100" example:"15"`
	PromoLabel   string   `json:"promo_label" validate:"max=60" example:"Semana das crianças"`
}

// OverridesListResponse lista os overrides ativos
type OverridesListResponse struct {
	Items []models.Override `json:"items"`
	Total int               `json:"total"`
}

// List godoc
// @Summary Lista overrides de preço e promoção
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OverridesListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/admin/overrides [get]
func (h *OverridesHandler) List(c *gin.Context) {
	list := h.store.List()
	c.JSON(http.StatusOK, OverridesListResponse{Items: list, Total: len(list)})
}

// Put godoc
// @Summary Cria ou substitui o override de um fornecedor
// @Description Altera apenas valores exibidos; filtros e ordenação continuam usando o preço base.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Param override body OverrideRequest true "Valores de exibição"
// @Success 200 {object} models.Override
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/overrides/{id} [put]
func (h *OverridesHandler) Put(c *gin.Context) {
	providerID := c.Param("id")

	var request OverrideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	if err := h.validator.Struct(request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validação falhou: " + err.Error()})
		return
	}

	provider, err := h.catalog.ByID(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}

	name := request.ProviderName
	if name == "" {
		name = provider.Name
	}

	saved, err := h.store.Set(c.Request.Context(), models.Override{
		ProviderID:   providerID,
		ProviderName: name,
		PriceFrom:    request.PriceFrom,
		PromoPercent: request.PromoPercent,
		PromoLabel:   request.PromoLabel,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete godoc
// @Summary Remove o override de um fornecedor
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/overrides/{id} [delete]
func (h *OverridesHandler) Delete(c *gin.Context) {
	if err := h.store.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
