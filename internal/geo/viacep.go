// Package geo consulta serviços externos de CEP (ViaCEP) e geocodificação
// reversa (Nominatim). Falhas de rede ou de decodificação nunca viram erro:
// o chamador recebe apenas "não encontrado".
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/festafacil/app-busca-fornecedores/internal/logger"
	"github.com/festafacil/app-busca-fornecedores/internal/observability"
	"github.com/festafacil/app-busca-fornecedores/internal/validate"
	"go.uber.org/zap"
)

// Address é o endereço retornado pelo ViaCEP
type Address struct {
	CEP        string `json:"cep"`
	Street     string `json:"logradouro"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	Locality   string `json:"localidade"`
	State      string `json:"uf"`
	IBGE       string `json:"ibge,omitempty"`
	GIA        string `json:"gia,omitempty"`
	DDD        string `json:"ddd,omitempty"`
	SIAFI      string `json:"siafi,omitempty"`
}

type viaCEPResponse struct {
	Address
	Erro interface{} `json:"erro"`
}

const (
	viaCEPCacheTTL     = 24 * time.Hour
	viaCEPCacheMaxSize = 1000
)

// ViaCEPClient consulta o ViaCEP com memoização por processo (TTL e tamanho máximo)
type ViaCEPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.RWMutex
	cache   map[string]*cachedAddress
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// addr nulo memoriza CEP inexistente
type cachedAddress struct {
	addr      *Address
	timestamp time.Time
}

// NewViaCEPClient cria um cliente para baseURL (ex.: https://viacep.com.br)
func NewViaCEPClient(baseURL string, timeout time.Duration, log *zap.Logger) *ViaCEPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ViaCEPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.OrNop(log),
		cache:      make(map[string]*cachedAddress),
		ttl:        viaCEPCacheTTL,
		maxSize:    viaCEPCacheMaxSize,
		now:        time.Now,
	}
}

// Lookup busca o endereço do CEP. Retorna false para CEP sem 8 dígitos,
// CEP inexistente ou qualquer falha de comunicação.
func (c *ViaCEPClient) Lookup(ctx context.Context, rawCEP string) (*Address, bool) {
	cep := validate.OnlyDigits(rawCEP)
	if len(cep) != 8 {
		return nil, false
	}

	c.mu.RLock()
	cached, ok := c.cache[cep]
	c.mu.RUnlock()
	if ok && c.now().Sub(cached.timestamp) < c.ttl {
		observability.CacheLookups.WithLabelValues("viacep", "hit").Inc()
		if cached.addr == nil {
			return nil, false
		}
		addr := *cached.addr
		return &addr, true
	}
	observability.CacheLookups.WithLabelValues("viacep", "miss").Inc()

	addr, found, err := c.fetch(ctx, cep)
	if err != nil {
		observability.GeoLookups.WithLabelValues("viacep", "error").Inc()
		c.logger.Warn("falha ao consultar ViaCEP", zap.String("cep", cep), zap.Error(err))
		return nil, false
	}

	c.store(cep, addr)

	if !found {
		observability.GeoLookups.WithLabelValues("viacep", "not_found").Inc()
		return nil, false
	}
	observability.GeoLookups.WithLabelValues("viacep", "found").Inc()
	out := *addr
	return &out, true
}

func (c *ViaCEPClient) store(cep string, addr *Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[cep]; !exists && len(c.cache) >= c.maxSize {
		c.cleanup()
	}
	c.cache[cep] = &cachedAddress{addr: addr, timestamp: c.now()}
}

// cleanup remove expirados e, se ainda cheio, o mais antigo
func (c *ViaCEPClient) cleanup() {
	now := c.now()
	for key, cached := range c.cache {
		if now.Sub(cached.timestamp) >= c.ttl {
			delete(c.cache, key)
		}
	}
	if len(c.cache) < c.maxSize {
		return
	}

	oldestKey := ""
	var oldest time.Time
	for key, cached := range c.cache {
		if oldestKey == "" || cached.timestamp.Before(oldest) {
			oldest = cached.timestamp
			oldestKey = key
		}
	}
	delete(c.cache, oldestKey)
}

func (c *ViaCEPClient) cacheLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *ViaCEPClient) fetch(ctx context.Context, cep string) (*Address, bool, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if isTruthy(body.Erro) {
		return nil, false, nil
	}
	addr := body.Address
	return &addr, true, nil
}

// O ViaCEP já respondeu tanto {"erro": true} quanto {"erro": "true"}
func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	}
	return false
}
