package routes

import (
	"github.com/festafacil/app-busca-fornecedores/internal/api/handlers"
	"github.com/festafacil/app-busca-fornecedores/internal/geo"
	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	middlewares "github.com/festafacil/app-busca-fornecedores/internal/middleware"
	"github.com/festafacil/app-busca-fornecedores/internal/overrides"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies reúne os componentes montados em cmd/api
type Dependencies struct {
	Source     adapter.ProviderSource // nil = apenas snapshot local
	Engine     *search.Engine
	Catalog    *search.Catalog
	Overrides  *overrides.Store
	ViaCEP     *geo.ViaCEPClient
	Nominatim  *geo.NominatimClient
	AdminToken string
	Logger     *zap.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	log := logger.OrNop(deps.Logger)
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.RequestLogger(log),
		corsMiddleware(),
		middlewares.RequestTiming(),
		middlewares.ExtractUserContext(),
	)

	healthHandler := handlers.NewHealthHandler(deps.Source, deps.Overrides, deps.Catalog)
	providersHandler := handlers.NewProvidersHandler(deps.Engine, deps.Catalog, log)
	categoryHandler := handlers.NewCategoryHandler(deps.Catalog)
	geoHandler := handlers.NewGeoHandler(deps.ViaCEP, deps.Nominatim)
	overridesHandler := handlers.NewOverridesHandler(deps.Overrides, deps.Catalog)

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAdmin := middlewares.RequireAdmin(deps.AdminToken)

	api := r.Group("/api/v1")
	{
		api.GET("/providers", providersHandler.Query)
		api.GET("/providers/all", providersHandler.All)
		api.GET("/providers/:id", providersHandler.ByID)
		api.POST("/providers/refresh", requireAdmin, providersHandler.Refresh)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategoryProviders)

		api.GET("/cep/:cep", geoHandler.LookupCEP)
		api.GET("/geo/reverse", geoHandler.Reverse)

		admin := api.Group("/admin", requireAdmin)
		{
			admin.GET("/overrides", overridesHandler.List)
			admin.PUT("/overrides/:id", overridesHandler.Put)
			admin.DELETE("/overrides/:id", overridesHandler.Delete)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
