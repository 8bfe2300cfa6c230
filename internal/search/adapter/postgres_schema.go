package adapter

import (
	"context"
	"fmt"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/lib/pq"
)

// CEPPrefixLength é o tamanho dos prefixos gravados em cepPrefixes5
const CEPPrefixLength = 5

var createProvidersSQL = []string{
	`CREATE TABLE IF NOT EXISTS providers (
	"id" text PRIMARY KEY,
	"name" text NOT NULL,
	"category" text NOT NULL,
	"priceFrom" numeric NOT NULL CHECK ("priceFrom" >= 0),
	"rating" numeric NOT NULL DEFAULT 0 CHECK ("rating" BETWEEN 0 AND 5),
	"ratingCount" integer NOT NULL DEFAULT 0 CHECK ("ratingCount" >= 0),
	"mainImage" text NOT NULL DEFAULT '',
	"radiusKm" integer NOT NULL DEFAULT 0 CHECK ("radiusKm" >= 0),
	"hasCNPJ" boolean NOT NULL DEFAULT false,
	"includesMonitor" boolean NOT NULL DEFAULT false,
	"cepAreas" text[] NOT NULL DEFAULT '{}'::text[]
)`,
	`ALTER TABLE providers ADD COLUMN IF NOT EXISTS "cepPrefixes5" text[] NOT NULL DEFAULT '{}'::text[]`,
	`UPDATE providers SET "cepPrefixes5" = ARRAY(
	SELECT DISTINCT left(regexp_replace(a, '\D', '', 'g'), 5)
	FROM unnest("cepAreas") AS a
	WHERE length(regexp_replace(a, '\D', '', 'g')) >= 5
) WHERE "cepPrefixes5" = '{}'::text[]`,
	`CREATE INDEX IF NOT EXISTS providers_cep_prefixes5_idx ON providers USING GIN ("cepPrefixes5")`,
}

const upsertProviderSQL = `INSERT INTO providers
	("id", "name", "category", "priceFrom", "rating", "ratingCount", "mainImage", "radiusKm", "hasCNPJ", "includesMonitor", "cepAreas", "cepPrefixes5")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT ("id") DO UPDATE SET
	"name" = EXCLUDED."name",
	"category" = EXCLUDED."category",
	"priceFrom" = EXCLUDED."priceFrom",
	"rating" = EXCLUDED."rating",
	"ratingCount" = EXCLUDED."ratingCount",
	"mainImage" = EXCLUDED."mainImage",
	"radiusKm" = EXCLUDED."radiusKm",
	"hasCNPJ" = EXCLUDED."hasCNPJ",
	"includesMonitor" = EXCLUDED."includesMonitor",
	"cepAreas" = EXCLUDED."cepAreas",
	"cepPrefixes5" = EXCLUDED."cepPrefixes5"`

// SchemaStatements retorna o DDL aplicado por EnsureSchema (usado no dry-run)
func SchemaStatements(drop bool) []string {
	stmts := make([]string, 0, len(createProvidersSQL)+1)
	if drop {
		stmts = append(stmts, `DROP TABLE IF EXISTS providers`)
	}
	return append(stmts, createProvidersSQL...)
}

// EnsureSchema cria a tabela, a coluna cepPrefixes5 (com backfill) e o índice GIN
func (s *PostgresSource) EnsureSchema(ctx context.Context, drop bool) error {
	for _, stmt := range SchemaStatements(drop) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar schema: %w", err)
		}
	}
	return nil
}

// Upsert insere ou atualiza fornecedores numa única transação
func (s *PostgresSource) Upsert(ctx context.Context, providers []models.Provider) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertProviderSQL)
	if err != nil {
		return fmt.Errorf("erro ao preparar upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range providers {
		_, err = stmt.ExecContext(ctx,
			p.ID, p.Name, string(p.Category), p.PriceFrom, p.Rating, p.RatingCount,
			p.MainImage, p.RadiusKm, p.HasCNPJ, p.IncludesMonitor,
			pq.Array(p.CEPAreas), pq.Array(CEPPrefixes(p.CEPAreas, CEPPrefixLength)),
		)
		if err != nil {
			return fmt.Errorf("erro ao gravar fornecedor %s: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}
	return nil
}
