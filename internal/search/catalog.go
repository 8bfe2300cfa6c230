package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/festafacil/app-busca-fornecedores/internal/search/local"
	"go.uber.org/zap"
)

// catalogEntry é a lista completa em cache e sua origem
type catalogEntry struct {
	timestamp time.Time
	source    models.DataSource
	data      []models.Provider
}

// Catalog entrega a lista completa de fornecedores com cache TTL.
// Dados locais em cache são trocados pelos remotos assim que a fonte responde.
type Catalog struct {
	source        adapter.ProviderSource
	overrides     OverrideSource
	ttl           time.Duration
	remoteTimeout time.Duration
	logger        *zap.Logger
	snapshot      func() []models.Provider
	now           func() time.Time

	mu    sync.Mutex
	entry *catalogEntry
}

// NewCatalog cria o catálogo. source nil usa somente o snapshot local.
func NewCatalog(source adapter.ProviderSource, overrideSource OverrideSource, ttl, remoteTimeout time.Duration, log *zap.Logger) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{
		source:        source,
		overrides:     overrideSource,
		ttl:           ttl,
		remoteTimeout: remoteTimeout,
		logger:        logger.OrNop(log),
		snapshot:      local.Providers,
		now:           time.Now,
	}
}

// All retorna todos os fornecedores com overrides aplicados
func (c *Catalog) All(ctx context.Context) ([]models.Provider, error) {
	base, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.apply(base), nil
}

// ByID busca o fornecedor na lista em cache e, se ausente, na fonte remota
func (c *Catalog) ByID(ctx context.Context, id string) (*models.Provider, error) {
	base, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range base {
		if p.ID == id {
			out := c.applyOne(p)
			return &out, nil
		}
	}

	// Pode ter sido cadastrado depois do último carregamento
	if c.source != nil && c.Source() == models.SourceRemote {
		rctx, cancel := c.remoteContext(ctx)
		defer cancel()
		p, err := c.source.ByID(rctx, id)
		if err == nil {
			out := c.applyOne(*p)
			return &out, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrSearchCanceled, ctx.Err())
		}
		if !errors.Is(err, models.ErrProviderNotFound) {
			c.logger.Warn("falha ao buscar fornecedor na fonte remota",
				zap.String("id", id), zap.Error(err))
		}
	}
	return nil, models.ErrProviderNotFound
}

// Refresh descarta o cache e recarrega
func (c *Catalog) Refresh(ctx context.Context) (models.DataSource, error) {
	c.Invalidate()
	if _, err := c.load(ctx); err != nil {
		return "", err
	}
	return c.Source(), nil
}

// Invalidate descarta o cache
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// Source retorna a origem dos dados em cache (vazio quando não há cache)
func (c *Catalog) Source() models.DataSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return ""
	}
	return c.entry.source
}

func (c *Catalog) current() *catalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil || c.now().Sub(c.entry.timestamp) >= c.ttl {
		return nil
	}
	return c.entry
}

func (c *Catalog) store(source models.DataSource, data []models.Provider) []models.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &catalogEntry{timestamp: c.now(), source: source, data: data}
	return data
}

func (c *Catalog) load(ctx context.Context) ([]models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchCanceled, err)
	}

	entry := c.current()
	if entry != nil && (entry.source == models.SourceRemote || c.source == nil) {
		observability.CacheLookups.WithLabelValues("catalog", "hit").Inc()
		return entry.data, nil
	}
	observability.CacheLookups.WithLabelValues("catalog", "miss").Inc()

	if c.source != nil {
		rctx, cancel := c.remoteContext(ctx)
		list, err := c.source.All(rctx)
		cancel()
		if err == nil {
			return c.store(models.SourceRemote, models.CloneProviders(list)), nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrSearchCanceled, ctx.Err())
		}
		c.logger.Warn("falha ao carregar fornecedores da fonte remota",
			zap.String("source", c.source.Name()), zap.Error(err))
		observability.RemoteFallbacks.WithLabelValues("catalog").Inc()
		if entry != nil {
			return entry.data, nil
		}
	}
	return c.store(models.SourceLocal, c.snapshot()), nil
}

func (c *Catalog) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.remoteTimeout > 0 {
		return context.WithTimeout(ctx, c.remoteTimeout)
	}
	return context.WithCancel(ctx)
}

func (c *Catalog) apply(list []models.Provider) []models.Provider {
	if c.overrides == nil {
		return models.CloneProviders(list)
	}
	return c.overrides.Snapshot().Apply(list)
}

func (c *Catalog) applyOne(p models.Provider) models.Provider {
	if c.overrides == nil {
		return p.Clone()
	}
	return c.overrides.Snapshot().ApplyOne(p)
}
