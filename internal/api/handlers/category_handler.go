package handlers

import (
	"net/http"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/gin-gonic/gin"
)

// CategoryHandler gerencia endpoints de categorias
type CategoryHandler struct {
	catalog *search.Catalog
}

// NewCategoryHandler cria um novo handler de categorias
func NewCategoryHandler(catalog *search.Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// CategoryResponse lista as categorias
type CategoryResponse struct {
	Categories []search.CategorySummary `json:"categories"`
}

// CategoryProvidersResponse lista os fornecedores de uma categoria
type CategoryProvidersResponse struct {
	Category models.Category   `json:"category"`
	Items    []models.Provider `json:"items"`
	Total    int               `json:"total"`
}

// GetCategories godoc
// @Summary Lista categorias com quantidade de fornecedores e menor preço
// @Tags categories
// @Produce json
// @Success 200 {object} CategoryResponse
// @Router /api/v1/categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoryResponse{Categories: categories})
}

// GetCategoryProviders godoc
// @Summary Lista os fornecedores de uma categoria
// @Tags categories
// @Produce json
// @Param slug path string true "Slug da categoria" example("decoracao")
// @Success 200 {object} CategoryProvidersResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{slug} [get]
func (h *CategoryHandler) GetCategoryProviders(c *gin.Context) {
	category, list, err := h.catalog.ByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoryProvidersResponse{
		Category: category,
		Items:    list,
		Total:    len(list),
	})
}
