package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/overrides"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/gin-gonic/gin"
)

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	source  adapter.ProviderSource // nil quando só há snapshot local
	store   *overrides.Store
	catalog *search.Catalog
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(source adapter.ProviderSource, store *overrides.Store, catalog *search.Catalog) *HealthHandler {
	return &HealthHandler{
		source:  source,
		store:   store,
		catalog: catalog,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Source    string            `json:"source,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description A busca continua respondendo pelo snapshot local quando a fonte remota cai,
// @Description então a fonte remota degrada o status mas não tira a instância do ar.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    h.runChecks(ctx),
		Timestamp: time.Now().Unix(),
	}
	if failed(response.Checks) {
		response.Status = "degraded"
	}
	c.JSON(http.StatusOK, response)
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Verifica a fonte remota de fornecedores e o Redis (para monitoramento externo de uptime)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    h.runChecks(ctx),
		Source:    string(h.catalog.Source()),
		Timestamp: time.Now().Unix(),
	}

	statusCode := http.StatusOK
	if failed(response.Checks) {
		response.Status = "unhealthy"
		response.Error = "Uma ou mais dependências indisponíveis"
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

func (h *HealthHandler) runChecks(ctx context.Context) map[string]string {
	checks := make(map[string]string)

	if h.source == nil {
		checks["providers_source"] = "local"
	} else if err := h.source.Ping(ctx); err != nil {
		checks["providers_source"] = "failed"
	} else {
		checks["providers_source"] = "ok"
	}

	if !h.store.Persistent() {
		checks["redis"] = "disabled"
	} else if err := h.store.Ping(ctx); err != nil {
		checks["redis"] = "failed"
	} else {
		checks["redis"] = "ok"
	}
	return checks
}

func failed(checks map[string]string) bool {
	for _, v := range checks {
		if v == "failed" {
			return true
		}
	}
	return false
}
