package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

const (
	typesenseMaxPerPage = 250

	missingFilterField = "Could not find a filter field named"
)

// TypesenseSource lê fornecedores de uma collection do Typesense
type TypesenseSource struct {
	client     *typesense.Client
	collection string
}

// NewTypesenseClient cria o cliente oficial para serverURL
func NewTypesenseClient(serverURL, apiKey string, timeout time.Duration) *typesense.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(timeout),
	)
}

// NewTypesenseSource cria a fonte para a collection informada
func NewTypesenseSource(client *typesense.Client, collection string) *TypesenseSource {
	if collection == "" {
		collection = ProvidersTable
	}
	return &TypesenseSource{client: client, collection: collection}
}

func (t *TypesenseSource) Name() string { return "typesense" }

// Ping verifica a saúde do servidor Typesense
func (t *TypesenseSource) Ping(ctx context.Context) error {
	ok, err := t.client.Health(ctx, 2*time.Second)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("typesense não está saudável")
	}
	return nil
}

// Query executa a busca filtrada. O termo usa infix em name/category para
// aproximar o ILIKE '%termo%' da fonte SQL.
func (t *TypesenseSource) Query(ctx context.Context, q RemoteQuery) (*RemotePage, error) {
	limit := q.Limit
	if limit < 1 {
		limit = 1
	}
	if limit > typesenseMaxPerPage {
		limit = typesenseMaxPerPage
	}
	page := q.Offset/limit + 1

	params := t.searchParams(q.Term)
	params.FilterBy = pointer.String(buildFilterBy(q))
	params.SortBy = pointer.String(sortBy(q.Sort))
	params.Page = pointer.Int(page)
	params.PerPage = pointer.Int(limit)

	result, err := t.client.Collection(t.collection).Documents().Search(ctx, params)
	if err != nil {
		if q.CEPPrefix != "" && strings.Contains(err.Error(), missingFilterField) {
			return nil, ErrCEPFilterUnsupported
		}
		return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
	}

	providers, err := hitsToProviders(result)
	if err != nil {
		return nil, err
	}
	out := &RemotePage{Providers: providers}
	if result.Found != nil {
		found := *result.Found
		out.Total = &found
	}
	return out, nil
}

// All percorre todas as páginas da collection
func (t *TypesenseSource) All(ctx context.Context) ([]models.Provider, error) {
	out := make([]models.Provider, 0)
	for page := 1; ; page++ {
		params := t.searchParams("")
		params.SortBy = pointer.String(sortBy(models.SortRelevance))
		params.Page = pointer.Int(page)
		params.PerPage = pointer.Int(typesenseMaxPerPage)

		result, err := t.client.Collection(t.collection).Documents().Search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
		}
		providers, err := hitsToProviders(result)
		if err != nil {
			return nil, err
		}
		out = append(out, providers...)

		found := 0
		if result.Found != nil {
			found = *result.Found
		}
		if len(providers) == 0 || len(out) >= found {
			return out, nil
		}
	}
}

// ByID recupera um documento pelo id
func (t *TypesenseSource) ByID(ctx context.Context, id string) (*models.Provider, error) {
	doc, err := t.client.Collection(t.collection).Document(id).Retrieve(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, models.ErrProviderNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRemoteQuery, err)
	}
	p, err := documentToProvider(doc)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *TypesenseSource) searchParams(term string) *api.SearchCollectionParams {
	q := "*"
	if term != "" {
		q = term
	}
	return &api.SearchCollectionParams{
		Q:                   pointer.String(q),
		QueryBy:             pointer.String("name,category"),
		Infix:               pointer.String("always,always"),
		Prefix:              pointer.String("false,false"),
		NumTypos:            pointer.String("0"),
		DropTokensThreshold: pointer.Int(0),
	}
}

func buildFilterBy(q RemoteQuery) string {
	parts := []string{
		fmt.Sprintf("priceFrom:[%s..%s]", formatFloat(q.PriceMin), formatFloat(q.PriceMax)),
		fmt.Sprintf("rating:>=%s", formatFloat(q.MinRating)),
	}
	if q.HasCNPJ {
		parts = append(parts, "hasCNPJ:=true")
	}
	if q.IncludesMonitor {
		parts = append(parts, "includesMonitor:=true")
	}
	if q.CEPPrefix != "" {
		parts = append(parts, fmt.Sprintf("cepPrefixes5:=[`%s`]", q.CEPPrefix))
	}
	return strings.Join(parts, " && ")
}

// O Typesense aceita no máximo três campos em sort_by
func sortBy(mode models.SortMode) string {
	switch mode {
	case models.SortBestRated:
		return "rating:desc,ratingCount:desc"
	case models.SortPriceAsc:
		return "priceFrom:asc"
	case models.SortPriceDesc:
		return "priceFrom:desc"
	default:
		return "rating:desc,ratingCount:desc,priceFrom:asc"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func hitsToProviders(result *api.SearchResult) ([]models.Provider, error) {
	out := make([]models.Provider, 0)
	if result == nil || result.Hits == nil {
		return out, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		p, err := documentToProvider(*hit.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func documentToProvider(doc map[string]interface{}) (models.Provider, error) {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return models.Provider{}, fmt.Errorf("%w: id ausente", ErrInvalidDocument)
	}
	p := models.Provider{
		ID:              id,
		Name:            stringField(doc, "name"),
		Category:        models.Category(stringField(doc, "category")),
		PriceFrom:       numberField(doc, "priceFrom"),
		Rating:          numberField(doc, "rating"),
		RatingCount:     int(numberField(doc, "ratingCount")),
		MainImage:       stringField(doc, "mainImage"),
		RadiusKm:        int(numberField(doc, "radiusKm")),
		HasCNPJ:         boolField(doc, "hasCNPJ"),
		IncludesMonitor: boolField(doc, "includesMonitor"),
		CEPAreas:        []string{},
	}
	if areas, ok := doc["cepAreas"].([]interface{}); ok {
		for _, a := range areas {
			if s, ok := a.(string); ok {
				p.CEPAreas = append(p.CEPAreas, s)
			}
		}
	}
	return p, nil
}

// ProviderToDocument converte para o formato indexado (inclui cepPrefixes5)
func ProviderToDocument(p models.Provider) map[string]interface{} {
	areas := p.CEPAreas
	if areas == nil {
		areas = []string{}
	}
	return map[string]interface{}{
		"id":              p.ID,
		"name":            p.Name,
		"category":        string(p.Category),
		"priceFrom":       p.PriceFrom,
		"rating":          p.Rating,
		"ratingCount":     p.RatingCount,
		"mainImage":       p.MainImage,
		"radiusKm":        p.RadiusKm,
		"hasCNPJ":         p.HasCNPJ,
		"includesMonitor": p.IncludesMonitor,
		"cepAreas":        areas,
		"cepPrefixes5":    CEPPrefixes(areas, CEPPrefixLength),
	}
}

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func numberField(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func boolField(doc map[string]interface{}, key string) bool {
	v, _ := doc[key].(bool)
	return v
}
