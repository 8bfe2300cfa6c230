package search

import (
	"context"
	"errors"
	"sync"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/search/adapter"
	"github.com/festafacil/app-busca-fornecedores/internal/search/local"
	"github.com/festafacil/app-busca-fornecedores/internal/search/ranking"
)

var errRemoteDown = errors.New("conexão recusada")

// fakeSource simula uma fonte remota sobre o snapshot local
type fakeSource struct {
	mu             sync.Mutex
	providers      []models.Provider
	err            error
	cepUnsupported bool
	hideTotal      bool
	block          bool
	queries        []adapter.RemoteQuery
	allCalls       int
}

func newFakeSource() *fakeSource {
	return &fakeSource{providers: local.Providers()}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Query(ctx context.Context, q adapter.RemoteQuery) (*adapter.RemotePage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if q.CEPPrefix != "" && f.cepUnsupported {
		return nil, adapter.ErrCEPFilterUnsupported
	}

	flt := filter{
		priceMin:        q.PriceMin,
		priceMax:        q.PriceMax,
		minRating:       q.MinRating,
		hasCNPJ:         q.HasCNPJ,
		includesMonitor: q.IncludesMonitor,
		term:            ranking.NewTerm(q.Term),
		cepPrefix:       q.CEPPrefix,
	}
	rows := flt.apply(f.providers, true)
	mode := q.Sort
	if mode == models.SortRelevance {
		// servidor não conhece a relevância: nota, avaliações e preço
		ranking.Sort(rows, mode, ranking.Term{})
	} else {
		ranking.Sort(rows, mode, flt.term)
	}

	page := &adapter.RemotePage{Providers: paginate(rows, q.Offset/max(q.Limit, 1)+1, q.Limit)}
	if !f.hideTotal {
		total := len(rows)
		page.Total = &total
	}
	return page, nil
}

func (f *fakeSource) All(ctx context.Context) ([]models.Provider, error) {
	f.mu.Lock()
	f.allCalls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return models.CloneProviders(f.providers), nil
}

func (f *fakeSource) ByID(ctx context.Context, id string) (*models.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.providers {
		if p.ID == id {
			out := p.Clone()
			return &out, nil
		}
	}
	return nil, models.ErrProviderNotFound
}

func (f *fakeSource) Ping(ctx context.Context) error { return f.err }

func (f *fakeSource) calls() []adapter.RemoteQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]adapter.RemoteQuery(nil), f.queries...)
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
