package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
)

// QueryCache guarda páginas de busca antes dos overrides
type QueryCache struct {
	data    map[string]*cachedPage
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

type cachedPage struct {
	result    sourceResult
	timestamp time.Time
}

// NewQueryCache cria o cache; ttl <= 0 desativa o armazenamento
func NewQueryCache(ttl time.Duration, maxSize int) *QueryCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	return &QueryCache{
		data:    make(map[string]*cachedPage),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (c *QueryCache) get(key string) (sourceResult, bool) {
	if c == nil || c.ttl <= 0 {
		return sourceResult{}, false
	}
	c.mu.RLock()
	cached, ok := c.data[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.timestamp) < c.ttl {
		observability.CacheLookups.WithLabelValues("query", "hit").Inc()
		return cached.result.clone(), true
	}
	observability.CacheLookups.WithLabelValues("query", "miss").Inc()
	return sourceResult{}, false
}

func (c *QueryCache) set(key string, result sourceResult) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.data) >= c.maxSize {
		c.cleanup()
	}
	c.data[key] = &cachedPage{result: result.clone(), timestamp: c.now()}
}

// cleanup remove expirados e, se ainda cheio, o mais antigo
func (c *QueryCache) cleanup() {
	now := c.now()
	for key, cached := range c.data {
		if now.Sub(cached.timestamp) >= c.ttl {
			delete(c.data, key)
		}
	}
	if len(c.data) < c.maxSize {
		return
	}

	oldestKey := ""
	var oldest time.Time
	for key, cached := range c.data {
		if oldestKey == "" || cached.timestamp.Before(oldest) {
			oldest = cached.timestamp
			oldestKey = key
		}
	}
	delete(c.data, oldestKey)
}

// Clear limpa todo o cache
func (c *QueryCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*cachedPage)
}

// Len retorna a quantidade de entradas (inclui expiradas)
func (c *QueryCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// cacheKey gera a chave a partir da busca já normalizada
func cacheKey(q models.ProvidersQuery, f filter) string {
	keyData := fmt.Sprintf(
		"%s|%s|%s|%s|%t|%t|%s|%s|%d|%d",
		f.term.Text,
		formatKeyFloat(f.priceMin),
		formatKeyFloat(f.priceMax),
		formatKeyFloat(f.minRating),
		f.hasCNPJ,
		f.includesMonitor,
		q.Sort,
		f.cepPrefix,
		q.Page,
		q.PageSize,
	)
	hash := sha256.Sum256([]byte(keyData))
	return hex.EncodeToString(hash[:16])
}

func formatKeyFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
