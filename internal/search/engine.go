// Package search implementa a busca de fornecedores: fonte remota primeiro,
// snapshot local como fallback, ranking por relevância e overrides de exibição.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/config"
	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
	"github.com/festafacil/app-busca-fornecedores/internal/overrides"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/festafacil/app-busca-fornecedores/internal/search/local"
	"github.com/festafacil/app-busca-fornecedores/internal/search/ranking"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// OverrideSource fornece a visão atual dos overrides administrativos
type OverrideSource interface {
	Snapshot() overrides.Snapshot
}

// Engine é o motor de busca de fornecedores
type Engine struct {
	source         adapter.ProviderSource // nil = apenas snapshot local
	overrides      OverrideSource
	cache          *QueryCache
	cfg            config.SearchConfig
	remoteTimeout  time.Duration
	cepUnsupported atomic.Bool
	logger         *zap.Logger
	snapshot       func() []models.Provider
}

// NewEngine cria o motor de busca. source nil usa somente o snapshot local;
// overrides nil não altera valores de exibição.
func NewEngine(
	source adapter.ProviderSource,
	overrideSource OverrideSource,
	cfg config.SearchConfig,
	remoteTimeout time.Duration,
	log *zap.Logger,
) *Engine {
	if cfg.CEPPrefixMin < 1 {
		cfg.CEPPrefixMin = adapter.CEPPrefixLength
	}
	if cfg.CEPOverfetchFactor < 1 {
		cfg.CEPOverfetchFactor = 3
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = models.DefaultQueryDefaults().PageSize
	}
	return &Engine{
		source:        source,
		overrides:     overrideSource,
		cache:         NewQueryCache(cfg.QueryCacheTTL, cfg.QueryCacheMaxSize),
		cfg:           cfg,
		remoteTimeout: remoteTimeout,
		logger:        logger.OrNop(log),
		snapshot:      local.Providers,
	}
}

// Cache expõe o cache de páginas (limpo a cada alteração de override)
func (e *Engine) Cache() *QueryCache {
	return e.cache
}

// Defaults retorna os valores padrão de uma busca
func (e *Engine) Defaults() models.QueryDefaults {
	return models.QueryDefaults{
		PriceMin: e.cfg.PriceMinDefault,
		PriceMax: e.cfg.PriceMaxDefault,
		PageSize: e.cfg.PageSize,
	}
}

// Query executa a busca. Falhas da fonte remota caem no snapshot local;
// o único erro possível é o cancelamento do contexto do chamador.
func (e *Engine) Query(ctx context.Context, q models.ProvidersQuery) (*models.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchCanceled, err)
	}

	start := time.Now()
	q.ApplyDefaults(e.cfg.PageSize)
	f := newFilter(q, e.cfg.CEPPrefixMin)

	ctx, span := observability.Tracer("search").Start(ctx, "search.Query")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.term", f.term.Text),
		attribute.String("search.sort", string(q.Sort)),
		attribute.Int("search.page", q.Page),
		attribute.Int("search.page_size", q.PageSize),
		attribute.Bool("search.cep_filter", f.cepPrefix != ""),
	)

	key := cacheKey(q, f)
	res, ok := e.cache.get(key)
	if !ok {
		var err error
		res, err = e.fetch(ctx, q, f)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		// snapshot local só vai para o cache quando não há fonte remota
		if res.kind != kindLocal || e.source == nil {
			e.cache.set(key, res)
		}
	}

	total, canPaginate, source := res.outcome()
	items := res.items
	if e.overrides != nil {
		items = e.overrides.Snapshot().Apply(items)
	}
	if items == nil {
		items = []models.Provider{}
	}

	span.SetAttributes(
		attribute.String("search.source", string(source)),
		attribute.Int("search.items", len(items)),
	)
	observability.ProviderQueries.WithLabelValues(string(source)).Inc()
	observability.QueryDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())

	return &models.QueryResult{
		Items:       items,
		Total:       total,
		CanPaginate: canPaginate,
		Source:      source,
		Pagination:  models.NewPagination(q.Page, q.PageSize, total, canPaginate),
	}, nil
}

// fetch tenta a fonte remota uma única vez e cai no snapshot local
func (e *Engine) fetch(ctx context.Context, q models.ProvidersQuery, f filter) (sourceResult, error) {
	if e.source != nil {
		res, err := e.fetchRemote(ctx, q, f)
		if err == nil {
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sourceResult{}, fmt.Errorf("%w: %w", ErrSearchCanceled, ctxErr)
		}
		e.logger.Warn("fonte remota indisponível, usando snapshot local",
			zap.String("source", e.source.Name()),
			zap.Error(err))
		observability.RemoteFallbacks.WithLabelValues("query").Inc()
	}
	return e.fetchLocal(q, f), nil
}

func (e *Engine) remoteQuery(f filter, q models.ProvidersQuery) adapter.RemoteQuery {
	return adapter.RemoteQuery{
		PriceMin:        f.priceMin,
		PriceMax:        f.priceMax,
		MinRating:       f.minRating,
		HasCNPJ:         f.hasCNPJ,
		IncludesMonitor: f.includesMonitor,
		Term:            f.term.Text,
		Sort:            q.Sort,
		Offset:          q.Offset(),
		Limit:           q.PageSize,
	}
}

func (e *Engine) fetchRemote(ctx context.Context, q models.ProvidersQuery, f filter) (sourceResult, error) {
	if e.remoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.remoteTimeout)
		defer cancel()
	}

	rq := e.remoteQuery(f, q)
	if f.cepPrefix == "" {
		return e.remotePage(ctx, rq, q, f)
	}

	// O filtro "array contém" só existe para prefixos de 5 dígitos
	if len(f.cepPrefix) == adapter.CEPPrefixLength && !e.cepUnsupported.Load() {
		rq.CEPPrefix = f.cepPrefix
		res, err := e.remotePage(ctx, rq, q, f)
		if !errors.Is(err, adapter.ErrCEPFilterUnsupported) {
			return res, err
		}
		e.cepUnsupported.Store(true)
		e.logger.Info("fonte remota sem filtro de CEP, usando janela filtrada no processo",
			zap.String("source", e.source.Name()))
	}

	return e.remoteDegraded(ctx, rq, q, f)
}

// remotePage pagina no servidor; relevância é recalculada dentro da página
func (e *Engine) remotePage(ctx context.Context, rq adapter.RemoteQuery, q models.ProvidersQuery, f filter) (sourceResult, error) {
	page, err := e.source.Query(ctx, rq)
	if err != nil {
		return sourceResult{}, err
	}
	items := models.CloneProviders(page.Providers)
	if q.Sort == models.SortRelevance {
		ranking.Sort(items, q.Sort, f.term)
	}

	res := sourceResult{kind: kindRemote, items: items}
	if page.Total != nil {
		res.total = *page.Total
		res.known = true
	}
	return res, nil
}

// remoteDegraded busca a primeira janela de pageSize*fator linhas, filtra o
// CEP no processo e devolve no máximo pageSize itens. Fornecedores
// compatíveis fora da janela não aparecem.
func (e *Engine) remoteDegraded(ctx context.Context, rq adapter.RemoteQuery, q models.ProvidersQuery, f filter) (sourceResult, error) {
	rq.CEPPrefix = ""
	rq.Offset = 0
	rq.Limit = q.PageSize * e.cfg.CEPOverfetchFactor

	page, err := e.source.Query(ctx, rq)
	if err != nil {
		return sourceResult{}, err
	}

	items := make([]models.Provider, 0, len(page.Providers))
	for _, p := range page.Providers {
		if f.matchCEP(p) {
			items = append(items, p.Clone())
		}
	}
	if q.Sort == models.SortRelevance {
		ranking.Sort(items, q.Sort, f.term)
	}
	if len(items) > q.PageSize {
		items = items[:q.PageSize]
	}
	return sourceResult{kind: kindRemoteDegraded, items: items}, nil
}

// fetchLocal aplica filtros, ordenação e paginação sobre o snapshot
func (e *Engine) fetchLocal(q models.ProvidersQuery, f filter) sourceResult {
	items := f.apply(e.snapshot(), true)
	ranking.Sort(items, q.Sort, f.term)
	return sourceResult{
		kind:  kindLocal,
		items: paginate(items, q.Page, q.PageSize),
		total: len(items),
		known: true,
	}
}
