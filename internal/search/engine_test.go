package search

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/config"
	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/overrides"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/festafacil/app-busca-fornecedores/internal/search/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		CEPPrefixMin:       5,
		CEPOverfetchFactor: 3,
		PageSize:           12,
		PriceMinDefault:    0,
		PriceMaxDefault:    3000,
	}
}

func newLocalEngine(t *testing.T, store *overrides.Store) *Engine {
	t.Helper()
	var ov OverrideSource
	if store != nil {
		ov = store
	}
	return NewEngine(nil, ov, testSearchConfig(), 0, zaptest.NewLogger(t))
}

func defaultQuery() models.ProvidersQuery {
	return models.NewProvidersQuery(models.DefaultQueryDefaults())
}

func ids(list []models.Provider) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }

func TestQueryBoloExample(t *testing.T) {
	engine := newLocalEngine(t, nil)

	q := defaultQuery()
	q.Q = "bolo"

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "Bolos da Maria", res.Items[0].Name)
	require.NotNil(t, res.Total)
	assert.Equal(t, 1, *res.Total)
	assert.True(t, res.CanPaginate)
	assert.Equal(t, models.SourceLocal, res.Source)
}

func TestQueryTermIsCaseInsensitive(t *testing.T) {
	engine := newLocalEngine(t, nil)

	q := defaultQuery()
	q.Q = "  RECREAÇÃO "

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(res.Items))
}

func TestQueryCEPPrefix(t *testing.T) {
	tests := []struct {
		name      string
		prefixMin int
		cep       string
		expected  []string
	}{
		{"mesmo prefixo de 5 dígitos", 5, "04000-123", []string{"2"}},
		{"prefixo de 5 dígitos diferente", 5, "04099-123", []string{}},
		{"prefixo de 3 dígitos", 3, "04099-123", []string{"2"}},
		{"prefixo de 3 dígitos de outra região", 3, "05099-123", []string{"1"}},
		{"sem formatação", 5, "01234000", []string{"1", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSearchConfig()
			cfg.CEPPrefixMin = tt.prefixMin
			engine := NewEngine(nil, nil, cfg, 0, zaptest.NewLogger(t))

			q := defaultQuery()
			q.OnlyCEPMatch = true
			q.CEP = tt.cep
			q.Sort = models.SortBestRated

			res, err := engine.Query(context.Background(), q)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(res.Items))
			assert.True(t, res.CanPaginate)
			require.NotNil(t, res.Total)
			assert.Equal(t, len(tt.expected), *res.Total)
		})
	}
}

func TestQueryMalformedCEPIsIgnored(t *testing.T) {
	engine := newLocalEngine(t, nil)

	for _, cep := range []string{"", "123", "abc-de"} {
		q := defaultQuery()
		q.OnlyCEPMatch = true
		q.CEP = cep

		res, err := engine.Query(context.Background(), q)
		require.NoError(t, err)
		require.NotNil(t, res.Total)
		assert.Equal(t, 5, *res.Total, "cep %q", cep)
	}
}

func TestQueryFilters(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(q *models.ProvidersQuery)
		expected []string
	}{
		{"faixa de preço", func(q *models.ProvidersQuery) { q.PriceMin, q.PriceMax = 200, 800 }, []string{"1", "3", "4"}},
		{"faixa inclusiva", func(q *models.ProvidersQuery) { q.PriceMin, q.PriceMax = 180, 180 }, []string{"5"}},
		{"nota mínima", func(q *models.ProvidersQuery) { q.MinRating = 4.8 }, []string{"1", "2"}},
		{"com CNPJ", func(q *models.ProvidersQuery) { q.HasCNPJ = true }, []string{"1", "2", "4"}},
		{"inclui monitor", func(q *models.ProvidersQuery) { q.IncludesMonitor = true }, []string{"1", "4"}},
		{"termo na categoria", func(q *models.ProvidersQuery) { q.Q = "decora" }, []string{"3"}},
		{"sem resultados", func(q *models.ProvidersQuery) { q.Q = "palhaço" }, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newLocalEngine(t, nil)
			q := defaultQuery()
			q.Sort = models.SortPriceDesc
			tt.mutate(&q)

			res, err := engine.Query(context.Background(), q)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, ids(res.Items))
			require.NotNil(t, res.Total)
			assert.Equal(t, len(tt.expected), *res.Total)
		})
	}
}

func TestQuerySortModes(t *testing.T) {
	engine := newLocalEngine(t, nil)

	tests := []struct {
		sort     models.SortMode
		expected []string
	}{
		{models.SortPriceAsc, []string{"5", "1", "4", "3", "2"}},
		{models.SortPriceDesc, []string{"2", "3", "4", "1", "5"}},
		{models.SortBestRated, []string{"2", "1", "4", "3", "5"}},
		// sem termo: nota, avaliações e preço
		{models.SortRelevance, []string{"2", "1", "4", "3", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			q := defaultQuery()
			q.Sort = tt.sort

			res, err := engine.Query(context.Background(), q)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(res.Items))
		})
	}
}

func TestQueryPaginationCoversTotal(t *testing.T) {
	engine := newLocalEngine(t, nil)

	seen := map[string]bool{}
	sum := 0
	for page := 1; page <= 4; page++ {
		q := defaultQuery()
		q.Page = page
		q.PageSize = 2

		res, err := engine.Query(context.Background(), q)
		require.NoError(t, err)
		require.NotNil(t, res.Total)
		assert.Equal(t, 5, *res.Total)

		for _, p := range res.Items {
			assert.False(t, seen[p.ID], "fornecedor %s repetido", p.ID)
			seen[p.ID] = true
		}
		sum += len(res.Items)

		require.NotNil(t, res.Pagination.TotalPages)
		assert.Equal(t, 3, *res.Pagination.TotalPages)
		assert.Equal(t, page < 3, res.Pagination.HasNext)
	}
	assert.Equal(t, 5, sum)
}

func TestQueryOverridesDoNotAffectFiltering(t *testing.T) {
	store := overrides.NewStore(nil, zaptest.NewLogger(t))
	ctx := context.Background()
	_, err := store.Set(ctx, models.Override{ProviderID: "5", PriceFrom: floatPtr(5000), PromoLabel: "Promoção"})
	require.NoError(t, err)
	_, err = store.Set(ctx, models.Override{ProviderID: "2", PriceFrom: floatPtr(100), PromoPercent: floatPtr(15)})
	require.NoError(t, err)

	engine := newLocalEngine(t, store)

	q := defaultQuery()
	q.PriceMax = 500
	q.Sort = models.SortPriceAsc

	res, err := engine.Query(ctx, q)
	require.NoError(t, err)

	// "2" custa 1200 no registro base e continua fora da faixa
	assert.Equal(t, []string{"5", "1", "4"}, ids(res.Items))
	assert.Equal(t, 5000.0, res.Items[0].PriceFrom)
	assert.Equal(t, "Promoção", res.Items[0].PromoLabel)
	assert.Nil(t, res.Items[1].PromoPercent)

	q = defaultQuery()
	q.Q = "buffet"
	res, err = engine.Query(ctx, q)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 100.0, res.Items[0].PriceFrom)
	require.NotNil(t, res.Items[0].PromoPercent)
	assert.Equal(t, 15.0, *res.Items[0].PromoPercent)
}

func TestQueryIsIdempotent(t *testing.T) {
	engine := newLocalEngine(t, nil)

	q := defaultQuery()
	q.Q = "festa"

	first, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	second, err := engine.Query(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.Total, second.Total)
}

func TestQueryRemote(t *testing.T) {
	src := newFakeSource()
	engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.Q = "festa"

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, models.SourceRemote, res.Source)
	assert.True(t, res.CanPaginate)
	require.NotNil(t, res.Total)
	assert.Equal(t, 2, *res.Total)
	// "Decora Tudo Festas" tem "festa" no início de uma palavra do nome,
	// "Buffet Sabor de Festa" também; empate resolvido pela nota
	assert.Equal(t, []string{"2", "3"}, ids(res.Items))

	calls := src.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "festa", calls[0].Term)
	assert.Equal(t, 0, calls[0].Offset)
	assert.Equal(t, 12, calls[0].Limit)
	assert.Empty(t, calls[0].CEPPrefix)
}

func TestQueryRemoteReranksPageByRelevance(t *testing.T) {
	src := newFakeSource()
	src.providers = []models.Provider{
		{ID: "10", Name: "Sabor Buffet Premium", Category: models.CategoryDecoracao, PriceFrom: 100, Rating: 5, RatingCount: 90},
		{ID: "11", Name: "Buffet Sabor", Category: models.CategoryBuffet, PriceFrom: 100, Rating: 3, RatingCount: 1},
	}
	engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.Q = "buffet"

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"11", "10"}, ids(res.Items))
}

func TestQueryRemoteWithoutCount(t *testing.T) {
	src := newFakeSource()
	src.hideTotal = true
	engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

	res, err := engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, models.SourceRemote, res.Source)
	assert.Nil(t, res.Total)
	assert.True(t, res.CanPaginate)
	assert.Nil(t, res.Pagination.TotalPages)
}

func TestQueryRemoteFailureFallsBackToLocal(t *testing.T) {
	src := newFakeSource()
	src.err = errRemoteDown
	engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.Q = "bolo"

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, res.Source)
	assert.True(t, res.CanPaginate)
	require.NotNil(t, res.Total)
	assert.Equal(t, 1, *res.Total)
	assert.Len(t, src.calls(), 1)
}

func TestQueryRemoteTimeoutFallsBackToLocal(t *testing.T) {
	src := newFakeSource()
	src.block = true
	engine := NewEngine(src, nil, testSearchConfig(), 20*time.Millisecond, zaptest.NewLogger(t))

	res, err := engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, res.Source)
}

func TestQueryCEPServerSide(t *testing.T) {
	src := newFakeSource()
	engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.OnlyCEPMatch = true
	q.CEP = "04000-123"

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, models.SourceRemote, res.Source)
	assert.True(t, res.CanPaginate)
	require.NotNil(t, res.Total)
	assert.Equal(t, 1, *res.Total)
	assert.Equal(t, []string{"2"}, ids(res.Items))

	calls := src.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "04000", calls[0].CEPPrefix)
}

func TestQueryCEPUnsupportedDegrades(t *testing.T) {
	src := newFakeSource()
	src.cepUnsupported = true
	engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.OnlyCEPMatch = true
	q.CEP = "01234-567"
	q.PageSize = 2
	q.Sort = models.SortBestRated

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, models.SourceRemoteDegraded, res.Source)
	assert.Nil(t, res.Total)
	assert.False(t, res.CanPaginate)
	assert.False(t, res.Pagination.HasNext)
	assert.Equal(t, []string{"1", "4"}, ids(res.Items))

	calls := src.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "01234", calls[0].CEPPrefix)
	assert.Empty(t, calls[1].CEPPrefix)
	assert.Equal(t, 0, calls[1].Offset)
	assert.Equal(t, 6, calls[1].Limit)

	// a falta de suporte fica memorizada
	q.Page = 2
	_, err = engine.Query(context.Background(), q)
	require.NoError(t, err)
	calls = src.calls()
	require.Len(t, calls, 3)
	assert.Empty(t, calls[2].CEPPrefix)

	// a janela tem pageSize*3 linhas, mas a resposta respeita pageSize
	q.Page = 1
	q.PageSize = 1
	res, err = engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Items), q.PageSize)
	assert.Equal(t, []string{"1"}, ids(res.Items))
	calls = src.calls()
	assert.Equal(t, 3, calls[len(calls)-1].Limit)
}

func TestQueryShortCEPPrefixIsFilteredInProcess(t *testing.T) {
	src := newFakeSource()
	cfg := testSearchConfig()
	cfg.CEPPrefixMin = 3
	engine := NewEngine(src, nil, cfg, time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.OnlyCEPMatch = true
	q.CEP = "04099-123"

	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, models.SourceRemoteDegraded, res.Source)
	assert.Equal(t, []string{"2"}, ids(res.Items))

	calls := src.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].CEPPrefix)
}

func TestQueryCanceled(t *testing.T) {
	engine := newLocalEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := engine.Query(ctx, defaultQuery())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrSearchCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestQueryCanceledDuringRemoteCall(t *testing.T) {
	src := newFakeSource()
	src.block = true
	engine := NewEngine(src, nil, testSearchConfig(), 0, zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := engine.Query(ctx, defaultQuery())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrSearchCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueryCache(t *testing.T) {
	src := newFakeSource()
	cfg := testSearchConfig()
	cfg.QueryCacheTTL = time.Minute
	cfg.QueryCacheMaxSize = 10
	store := overrides.NewStore(nil, zaptest.NewLogger(t))
	engine := NewEngine(src, store, cfg, time.Second, zaptest.NewLogger(t))

	q := defaultQuery()
	q.Q = "bolo"

	_, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	_, err = engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, src.calls(), 1)
	assert.Equal(t, 1, engine.Cache().Len())

	// overrides são aplicados na leitura, inclusive sobre páginas em cache
	_, err = store.Set(context.Background(), models.Override{ProviderID: "5", PriceFrom: floatPtr(99)})
	require.NoError(t, err)
	res, err := engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 99.0, res.Items[0].PriceFrom)
	assert.Len(t, src.calls(), 1)

	engine.Cache().Clear()
	_, err = engine.Query(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, src.calls(), 2)
}

func TestQueryLocalFallbackIsNotCached(t *testing.T) {
	src := newFakeSource()
	src.setErr(errRemoteDown)
	cfg := testSearchConfig()
	cfg.QueryCacheTTL = time.Minute
	engine := NewEngine(src, nil, cfg, time.Second, zaptest.NewLogger(t))

	res, err := engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, res.Source)
	assert.Equal(t, 0, engine.Cache().Len())

	// a fonte volta e a próxima busca já usa dados remotos
	src.setErr(nil)
	res, err = engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, models.SourceRemote, res.Source)
	assert.Equal(t, 1, engine.Cache().Len())
}

func TestQueryLocalOnlyIsCached(t *testing.T) {
	cfg := testSearchConfig()
	cfg.QueryCacheTTL = time.Minute
	engine := NewEngine(nil, nil, cfg, 0, zaptest.NewLogger(t))

	_, err := engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Cache().Len())
}

func TestQueryHugePage(t *testing.T) {
	tests := []struct {
		name   string
		source *fakeSource
	}{
		{"snapshot local", nil},
		{"fonte remota", newFakeSource()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var src adapter.ProviderSource
			if tt.source != nil {
				src = tt.source
			}
			engine := NewEngine(src, nil, testSearchConfig(), time.Second, zaptest.NewLogger(t))

			q := defaultQuery()
			q.Page = 1 << 62
			var res *models.QueryResult
			require.NotPanics(t, func() {
				var err error
				res, err = engine.Query(context.Background(), q)
				require.NoError(t, err)
			})
			assert.Empty(t, res.Items)
			require.NotNil(t, res.Total)
			assert.Equal(t, 5, *res.Total)
			assert.False(t, res.Pagination.HasNext)
		})
	}
}

func TestPaginate(t *testing.T) {
	list := local.Providers()

	assert.Equal(t, []string{"3", "4"}, ids(paginate(list, 2, 2)))
	assert.Equal(t, []string{"5"}, ids(paginate(list, 3, 2)))
	assert.Empty(t, paginate(list, 4, 2))
	assert.Equal(t, []string{"1"}, ids(paginate(list, 0, 1)))
	assert.Empty(t, paginate(list, 1, 0))
	assert.NotPanics(t, func() {
		assert.Empty(t, paginate(list, math.MaxInt, 12))
		assert.Empty(t, paginate(list, 1<<62, 2))
	})
}

func TestCacheKeyKeepsFullPrecision(t *testing.T) {
	q := defaultQuery()
	a, b := q, q
	a.PriceMin = 100.001
	b.PriceMin = 100.004

	assert.NotEqual(t, cacheKey(a, newFilter(a, 5)), cacheKey(b, newFilter(b, 5)))
	assert.Equal(t, cacheKey(a, newFilter(a, 5)), cacheKey(a, newFilter(a, 5)))
}

func TestQueryResultIsACopy(t *testing.T) {
	engine := newLocalEngine(t, nil)

	res, err := engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	res.Items[0].Name = "alterado"
	res.Items[0].CEPAreas[0] = "99999-999"

	again, err := engine.Query(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.NotEqual(t, "alterado", again.Items[0].Name)
	assert.NotEqual(t, "99999-999", again.Items[0].CEPAreas[0])
}

func TestSourceResultOutcome(t *testing.T) {
	total, canPaginate, source := sourceResult{kind: kindRemote, total: 7, known: true}.outcome()
	require.NotNil(t, total)
	assert.Equal(t, 7, *total)
	assert.True(t, canPaginate)
	assert.Equal(t, models.SourceRemote, source)

	total, canPaginate, source = sourceResult{kind: kindRemoteDegraded, total: 7}.outcome()
	assert.Nil(t, total)
	assert.False(t, canPaginate)
	assert.Equal(t, models.SourceRemoteDegraded, source)

	total, canPaginate, source = sourceResult{kind: kindLocal}.outcome()
	require.NotNil(t, total)
	assert.Equal(t, 0, *total)
	assert.True(t, canPaginate)
	assert.Equal(t, models.SourceLocal, source)
}

var _ adapter.ProviderSource = (*fakeSource)(nil)
