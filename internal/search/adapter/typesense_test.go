package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func bolosDocument() map[string]interface{} {
	return map[string]interface{}{
		"id":              "5",
		"name":            "Bolos da Maria",
		"category":        "Bolo",
		"priceFrom":       180,
		"rating":          4.5,
		"ratingCount":     12,
		"mainImage":       "img",
		"radiusKm":        20,
		"hasCNPJ":         false,
		"includesMonitor": false,
		"cepAreas":        []string{"02000-000", "03000-000"},
		"cepPrefixes5":    []string{"02000", "03000"},
	}
}

func newTestTypesense(t *testing.T, handler http.HandlerFunc) *TypesenseSource {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTypesenseSource(NewTypesenseClient(srv.URL, "test-key", time.Second), "providers")
}

func TestTypesenseQuery(t *testing.T) {
	src := newTestTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/providers/documents/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-TYPESENSE-API-KEY"))

		q := r.URL.Query()
		assert.Equal(t, "bolo", q.Get("q"))
		assert.Equal(t, "name,category", q.Get("query_by"))
		assert.Equal(t, "always,always", q.Get("infix"))
		assert.Equal(t, "priceFrom:[0..3000] && rating:>=4.5 && includesMonitor:=true && cepPrefixes5:=[`02000`]", q.Get("filter_by"))
		assert.Equal(t, "rating:desc,ratingCount:desc", q.Get("sort_by"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "12", q.Get("per_page"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"found": 13,
			"page":  2,
			"hits":  []interface{}{map[string]interface{}{"document": bolosDocument()}},
		})
	})

	page, err := src.Query(context.Background(), RemoteQuery{
		PriceMax:        3000,
		MinRating:       4.5,
		IncludesMonitor: true,
		Term:            "bolo",
		CEPPrefix:       "02000",
		Sort:            models.SortBestRated,
		Offset:          12,
		Limit:           12,
	})
	require.NoError(t, err)
	require.Len(t, page.Providers, 1)
	require.NotNil(t, page.Total)
	assert.Equal(t, 13, *page.Total)

	p := page.Providers[0]
	assert.Equal(t, "Bolos da Maria", p.Name)
	assert.Equal(t, 180.0, p.PriceFrom)
	assert.Equal(t, 12, p.RatingCount)
	assert.Equal(t, []string{"02000-000", "03000-000"}, p.CEPAreas)
}

func TestTypesenseQueryMissingCEPField(t *testing.T) {
	src := newTestTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Could not find a filter field named `cepPrefixes5` in the schema.",
		})
	})

	_, err := src.Query(context.Background(), RemoteQuery{PriceMax: 3000, CEPPrefix: "02000", Limit: 12})
	assert.ErrorIs(t, err, ErrCEPFilterUnsupported)
}

func TestTypesenseQueryEmptyTermUsesWildcard(t *testing.T) {
	src := newTestTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "*", r.URL.Query().Get("q"))
		assert.Equal(t, "rating:desc,ratingCount:desc,priceFrom:asc", r.URL.Query().Get("sort_by"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"found": 0, "hits": []interface{}{}})
	})

	page, err := src.Query(context.Background(), RemoteQuery{PriceMax: 3000, Limit: 12})
	require.NoError(t, err)
	assert.Empty(t, page.Providers)
	require.NotNil(t, page.Total)
	assert.Equal(t, 0, *page.Total)
}

func TestTypesenseByID(t *testing.T) {
	src := newTestTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections/providers/documents/5":
			writeJSON(w, http.StatusOK, bolosDocument())
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		}
	})

	p, err := src.ByID(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryBolo, p.Category)

	_, err = src.ByID(context.Background(), "99")
	assert.ErrorIs(t, err, models.ErrProviderNotFound)
}

func TestTypesenseAllPaginates(t *testing.T) {
	src := newTestTypesense(t, func(w http.ResponseWriter, r *http.Request) {
		doc := bolosDocument()
		if r.URL.Query().Get("page") == "2" {
			doc["id"] = "6"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"found": 2,
			"hits":  []interface{}{map[string]interface{}{"document": doc}},
		})
	})

	list, err := src.All(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "5", list[0].ID)
	assert.Equal(t, "6", list[1].ID)
}

func TestBuildFilterBy(t *testing.T) {
	got := buildFilterBy(RemoteQuery{PriceMin: 100.5, PriceMax: 800, MinRating: 0, HasCNPJ: true})
	assert.Equal(t, "priceFrom:[100.5..800] && rating:>=0 && hasCNPJ:=true", got)
}

func TestProviderToDocument(t *testing.T) {
	doc := ProviderToDocument(models.Provider{ID: "1", Category: models.CategoryBuffet, CEPAreas: []string{"04000-000", "04000-100"}})
	assert.Equal(t, []string{"04000"}, doc["cepPrefixes5"])
	assert.Equal(t, "Buffet", doc["category"])
}
