// Package overrides mantém os ajustes administrativos de preço e promoção.
// A busca lê um Snapshot imutável; escrever nunca altera um snapshot já entregue.
package overrides

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
	"go.uber.org/zap"
)

// Persister grava overrides fora do processo
type Persister interface {
	Load(ctx context.Context) ([]models.Override, error)
	Save(ctx context.Context, o models.Override) error
	Delete(ctx context.Context, providerID string) error
	Ping(ctx context.Context) error
}

// Store guarda um override por fornecedor (last-write-wins)
type Store struct {
	mu          sync.RWMutex
	items       map[string]models.Override // substituído a cada escrita, nunca alterado
	persister   Persister
	subscribers []func()
	logger      *zap.Logger
	now         func() time.Time
}

// NewStore cria o store; persister nil mantém os dados apenas em memória
func NewStore(persister Persister, log *zap.Logger) *Store {
	return &Store{
		items:     make(map[string]models.Override),
		persister: persister,
		logger:    logger.OrNop(log),
		now:       time.Now,
	}
}

// Load hidrata a memória a partir do persister
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	list, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("erro ao carregar overrides: %w", err)
	}

	next := make(map[string]models.Override, len(list))
	for _, o := range list {
		next[o.ProviderID] = o
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()

	s.logger.Info("overrides carregados", zap.Int("total", len(next)))
	s.notify()
	return nil
}

// Set cria ou substitui o override do fornecedor
func (s *Store) Set(ctx context.Context, o models.Override) (models.Override, error) {
	if err := o.Validate(); err != nil {
		return models.Override{}, err
	}
	o.UpdatedAt = s.now().UTC()

	if s.persister != nil {
		if err := s.persister.Save(ctx, o); err != nil {
			return models.Override{}, fmt.Errorf("erro ao persistir override: %w", err)
		}
	}

	s.mu.Lock()
	next := s.copyItems(1)
	next[o.ProviderID] = o
	s.items = next
	s.mu.Unlock()

	observability.OverrideMutations.WithLabelValues("set").Inc()
	s.logger.Info("override gravado", zap.String("provider_id", o.ProviderID))
	s.notify()
	return o, nil
}

// Remove apaga o override do fornecedor
func (s *Store) Remove(ctx context.Context, providerID string) error {
	if _, ok := s.Get(providerID); !ok {
		return models.ErrOverrideNotFound
	}

	if s.persister != nil {
		if err := s.persister.Delete(ctx, providerID); err != nil {
			return fmt.Errorf("erro ao remover override: %w", err)
		}
	}

	s.mu.Lock()
	next := s.copyItems(0)
	delete(next, providerID)
	s.items = next
	s.mu.Unlock()

	observability.OverrideMutations.WithLabelValues("remove").Inc()
	s.logger.Info("override removido", zap.String("provider_id", providerID))
	s.notify()
	return nil
}

// Get retorna o override do fornecedor, se houver
func (s *Store) Get(providerID string) (models.Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.items[providerID]
	return o, ok
}

// List retorna os overrides ordenados por provider_id
func (s *Store) List() []models.Override {
	return s.Snapshot().List()
}

// Snapshot retorna a visão atual, imutável
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{items: s.items}
}

// Subscribe registra fn para ser chamada após cada alteração
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Ping verifica o persister (true quando não há persister)
func (s *Store) Ping(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Ping(ctx)
}

// Persistent indica se há persistência externa
func (s *Store) Persistent() bool {
	return s.persister != nil
}

func (s *Store) copyItems(extra int) map[string]models.Override {
	next := make(map[string]models.Override, len(s.items)+extra)
	for k, v := range s.items {
		next[k] = v
	}
	return next
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := append([]func(){}, s.subscribers...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// Snapshot é uma visão imutável dos overrides
type Snapshot struct {
	items map[string]models.Override
}

// NewSnapshot monta um snapshot a partir de uma lista (último vence)
func NewSnapshot(list ...models.Override) Snapshot {
	items := make(map[string]models.Override, len(list))
	for _, o := range list {
		items[o.ProviderID] = o
	}
	return Snapshot{items: items}
}

// Len retorna a quantidade de overrides
func (s Snapshot) Len() int {
	return len(s.items)
}

// List retorna os overrides ordenados por provider_id
func (s Snapshot) List() []models.Override {
	out := make([]models.Override, 0, len(s.items))
	for _, o := range s.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderID < out[j].ProviderID })
	return out
}

// ApplyOne aplica o override (se houver) numa cópia do fornecedor
func (s Snapshot) ApplyOne(p models.Provider) models.Provider {
	out := p.Clone()
	o, ok := s.items[p.ID]
	if !ok {
		return out
	}
	if o.PriceFrom != nil {
		out.PriceFrom = *o.PriceFrom
	}
	if o.PromoPercent != nil {
		v := *o.PromoPercent
		out.PromoPercent = &v
	}
	if o.PromoLabel != "" {
		out.PromoLabel = o.PromoLabel
	}
	return out
}

// Apply devolve cópias dos fornecedores com os valores de exibição ajustados
func (s Snapshot) Apply(list []models.Provider) []models.Provider {
	out := make([]models.Provider, len(list))
	for i, p := range list {
		out[i] = s.ApplyOne(p)
	}
	return out
}
