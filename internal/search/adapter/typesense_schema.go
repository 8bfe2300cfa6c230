package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

// ProvidersSchema descreve a collection de fornecedores
func ProvidersSchema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "name", Type: "string", Infix: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True(), Infix: pointer.True()},
			{Name: "priceFrom", Type: "float", Sort: pointer.True()},
			{Name: "rating", Type: "float", Sort: pointer.True()},
			{Name: "ratingCount", Type: "int32", Sort: pointer.True()},
			{Name: "mainImage", Type: "string", Index: pointer.False(), Optional: pointer.True()},
			{Name: "radiusKm", Type: "int32"},
			{Name: "hasCNPJ", Type: "bool", Facet: pointer.True()},
			{Name: "includesMonitor", Type: "bool", Facet: pointer.True()},
			{Name: "cepAreas", Type: "string[]", Index: pointer.False(), Optional: pointer.True()},
			{Name: "cepPrefixes5", Type: "string[]", Facet: pointer.True()},
		},
		DefaultSortingField: pointer.String("rating"),
	}
}

// EnsureCollection cria a collection se ela não existir (ou a recria com drop)
func (t *TypesenseSource) EnsureCollection(ctx context.Context, drop bool) error {
	if drop {
		if _, err := t.client.Collection(t.collection).Delete(ctx); err != nil && !isNotFound(err) {
			return fmt.Errorf("erro ao remover collection %s: %w", t.collection, err)
		}
	}

	_, err := t.client.Collection(t.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	if _, err := t.client.Collections().Create(ctx, ProvidersSchema(t.collection)); err != nil {
		return fmt.Errorf("erro ao criar collection %s: %w", t.collection, err)
	}
	return nil
}

// Upsert indexa os fornecedores um a um
func (t *TypesenseSource) Upsert(ctx context.Context, providers []models.Provider) error {
	for _, p := range providers {
		_, err := t.client.Collection(t.collection).Documents().Upsert(ctx, ProviderToDocument(p), &api.DocumentIndexParameters{})
		if err != nil {
			return fmt.Errorf("erro ao indexar fornecedor %s: %w", p.ID, err)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "Not found") || strings.Contains(msg, "Not Found")
}
