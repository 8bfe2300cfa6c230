package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/config"
	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/festafacil/app-busca-fornecedores/internal/search/local"
	"go.uber.org/zap"
)

var (
	backend = flag.String("backend", "", "Backend a preparar: postgres ou typesense (default: PROVIDERS_BACKEND)")
	dryRun  = flag.Bool("dry-run", false, "Mostra o que seria feito sem alterar nada")
	drop    = flag.Bool("drop", false, "Remove a tabela/collection antes de recriar")
	timeout = flag.Duration("timeout", 2*time.Minute, "Tempo máximo da operação")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Uso: %s [opções]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Cria a tabela providers (Postgres) ou a collection providers (Typesense)\n")
		fmt.Fprintf(os.Stderr, "e insere os fornecedores do snapshot local.\n\nOpções:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel, "console")
	defer func() { _ = log.Sync() }()

	target := *backend
	if target == "" {
		target = cfg.ProvidersBackend
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	providers := local.Providers()

	var err error
	switch target {
	case config.BackendPostgres:
		err = setupPostgres(ctx, cfg, providers, log)
	case config.BackendTypesense:
		err = setupTypesense(ctx, cfg, providers, log)
	default:
		fmt.Fprintf(os.Stderr, "Backend inválido: %q (use postgres ou typesense)\n", target)
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("setup falhou", zap.String("backend", target), zap.Error(err))
	}
	log.Info("setup concluído", zap.String("backend", target), zap.Int("providers", len(providers)), zap.Bool("dry_run", *dryRun))
}

func setupPostgres(ctx context.Context, cfg *config.Config, providers []models.Provider, log *zap.Logger) error {
	if *dryRun {
		for _, stmt := range adapter.SchemaStatements(*drop) {
			fmt.Println(stmt + ";")
		}
		printProviders(providers, func(p models.Provider) interface{} { return p })
		return nil
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL não definida")
	}
	db, err := adapter.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	source := adapter.NewPostgresSource(db)
	if err := source.EnsureSchema(ctx, *drop); err != nil {
		return err
	}
	log.Info("schema aplicado", zap.Bool("drop", *drop))

	return source.Upsert(ctx, providers)
}

func setupTypesense(ctx context.Context, cfg *config.Config, providers []models.Provider, log *zap.Logger) error {
	collection := cfg.TypesenseProvidersCollection
	if *dryRun {
		printJSON(adapter.ProvidersSchema(collection))
		printProviders(providers, func(p models.Provider) interface{} { return adapter.ProviderToDocument(p) })
		return nil
	}

	client := adapter.NewTypesenseClient(cfg.TypesenseURL(), cfg.TypesenseAPIKey, *timeout)
	source := adapter.NewTypesenseSource(client, collection)
	if err := source.EnsureCollection(ctx, *drop); err != nil {
		return err
	}
	log.Info("collection pronta", zap.String("collection", collection), zap.Bool("drop", *drop))

	return source.Upsert(ctx, providers)
}

func printProviders(providers []models.Provider, render func(models.Provider) interface{}) {
	for _, p := range providers {
		printJSON(render(p))
	}
}

func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao serializar: %v\n", err)
		return
	}
	fmt.Println(string(b))
}
