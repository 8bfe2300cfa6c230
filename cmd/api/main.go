package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/festafacil/app-busca-fornecedores/docs"
	"github.com/festafacil/app-busca-fornecedores/internal/api/routes"
	"github.com/festafacil/app-busca-fornecedores/internal/config"
	"github.com/festafacil/app-busca-fornecedores/internal/geo"
	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
	"github.com/festafacil/app-busca-fornecedores/internal/overrides"
	"github.com/festafacil/app-busca-fornecedores/internal/search"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/festafacil/app-busca-fornecedores/internal/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           FestaFácil Busca de Fornecedores API
// @version         1.0
// @description     API de busca de fornecedores de festas com filtros, ranking por relevância, consulta de CEP e overrides administrativos

// @contact.name   FestaFácil
// @contact.email  tech@festafacil.com.br

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.LoadConfig()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("configuração inválida", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)
	if err := validate.RegisterGin(); err != nil {
		log.Fatal("erro ao registrar validadores", zap.Error(err))
	}

	observability.InitTracer(cfg, log)
	defer observability.ShutdownTracer(log)

	source, closeSource, err := newProviderSource(cfg)
	if err != nil {
		log.Fatal("erro ao configurar fonte de fornecedores", zap.Error(err))
	}
	defer closeSource()
	if source == nil {
		log.Info("fonte remota desativada, usando snapshot local")
	} else {
		log.Info("fonte remota configurada", zap.String("backend", source.Name()))
	}

	store, closeStore := newOverrideStore(cfg, log)
	defer closeStore()

	engine := search.NewEngine(source, store, cfg.Search, cfg.RemoteQueryTimeout, log)
	catalog := search.NewCatalog(source, store, cfg.Search.ProvidersCacheTTL, cfg.RemoteQueryTimeout, log)
	store.Subscribe(engine.Cache().Clear)

	router := routes.SetupRouter(routes.Dependencies{
		Source:     source,
		Engine:     engine,
		Catalog:    catalog,
		Overrides:  store,
		ViaCEP:     geo.NewViaCEPClient(cfg.ViaCEPBaseURL, cfg.GeoHTTPTimeout, log),
		Nominatim:  geo.NewNominatimClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.GeoHTTPTimeout, log),
		AdminToken: cfg.AdminAPIToken,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("servidor iniciado", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("erro ao iniciar servidor", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("encerrando servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("erro ao encerrar servidor", zap.Error(err))
	}
}

// newProviderSource monta a fonte remota escolhida em PROVIDERS_BACKEND
func newProviderSource(cfg *config.Config) (adapter.ProviderSource, func(), error) {
	switch cfg.ProvidersBackend {
	case config.BackendPostgres:
		db, err := adapter.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("erro ao abrir Postgres: %w", err)
		}
		return adapter.NewPostgresSource(db), closeDB(db), nil
	case config.BackendTypesense:
		client := adapter.NewTypesenseClient(cfg.TypesenseURL(), cfg.TypesenseAPIKey, cfg.RemoteQueryTimeout)
		return adapter.NewTypesenseSource(client, cfg.TypesenseProvidersCollection), func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

// newOverrideStore usa Redis quando REDIS_ADDR está definido
func newOverrideStore(cfg *config.Config, log *zap.Logger) (*overrides.Store, func()) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR vazio, overrides mantidos apenas em memória")
		return overrides.NewStore(nil, log), func() {}
	}

	persister := overrides.NewRedisPersister(overrides.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
	store := overrides.NewStore(persister, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Load(ctx); err != nil {
		log.Warn("não foi possível carregar overrides do Redis", zap.Error(err))
	}
	return store, func() { _ = persister.Close() }
}
