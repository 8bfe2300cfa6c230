package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/gin-gonic/gin"
)

// respondError converte erros conhecidos em status HTTP
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, models.ErrProviderNotFound),
		errors.Is(err, models.ErrOverrideNotFound),
		errors.Is(err, models.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidOverride),
		errors.Is(err, models.ErrOverrideProviderRequired),
		errors.Is(err, models.ErrInvalidCEP):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, search.ErrSearchCanceled):
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno", "details": err.Error()})
	}
}
