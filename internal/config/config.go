// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - GIN_MODE: debug ou release (default: release)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json ou console (default: json)
//
// ## Fonte de fornecedores
//   - PROVIDERS_BACKEND: postgres, typesense ou local (default: local)
//   - DATABASE_URL: DSN do Postgres (obrigatório com backend postgres)
//   - TYPESENSE_HOST: Host do servidor Typesense (default: localhost)
//   - TYPESENSE_PORT: Porta do servidor (default: 8108)
//   - TYPESENSE_API_KEY: Chave de API do Typesense
//   - TYPESENSE_PROTOCOL: Protocolo http/https (default: http)
//   - TYPESENSE_PROVIDERS_COLLECTION: Collection de fornecedores (default: providers)
//   - REMOTE_QUERY_TIMEOUT_MS: Timeout da consulta remota (default: 3000)
//
// ## Overrides
//   - REDIS_ADDR: Endereço do Redis; vazio mantém overrides apenas em memória
//   - REDIS_PASSWORD: Senha do Redis
//   - REDIS_DB: Banco do Redis (default: 0)
//   - ADMIN_API_TOKEN: Token bearer aceito nas rotas administrativas
//
// ## Geolocalização
//   - VIACEP_BASE_URL: default https://viacep.com.br
//   - NOMINATIM_BASE_URL: default https://nominatim.openstreetmap.org
//   - NOMINATIM_USER_AGENT: User-Agent enviado ao Nominatim
//   - GEO_HTTP_TIMEOUT_MS: Timeout das chamadas de geolocalização (default: 5000)
//
// ## Busca e cache
//   - PROVIDERS_CACHE_TTL_MS: TTL da lista completa de fornecedores (default: 300000)
//   - QUERY_CACHE_TTL_MS: TTL do cache de buscas (default: 60000)
//   - QUERY_CACHE_MAX_SIZE: Entradas máximas do cache de buscas (default: 500)
//   - CEP_PREFIX_MIN: Dígitos usados no match de CEP (default: 5)
//   - CEP_OVERFETCH_FACTOR: Multiplicador do page size quando o CEP é filtrado localmente (default: 3)
//   - SEARCH_PAGE_SIZE: Itens por página (default: 12)
//   - SEARCH_PRICE_MIN_DEFAULT: Preço mínimo padrão (default: 0)
//   - SEARCH_PRICE_MAX_DEFAULT: Preço máximo padrão (default: 3000)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita OpenTelemetry (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres  = "postgres"
	BackendTypesense = "typesense"
	BackendLocal     = "local"
)

type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	ProvidersBackend   string
	DatabaseURL        string
	RemoteQueryTimeout time.Duration

	TypesenseHost                string
	TypesensePort                string
	TypesenseAPIKey              string
	TypesenseProtocol            string
	TypesenseProvidersCollection string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AdminAPIToken string

	ViaCEPBaseURL      string
	NominatimBaseURL   string
	NominatimUserAgent string
	GeoHTTPTimeout     time.Duration

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string

	Search SearchConfig
}

// SearchConfig contém parâmetros da busca de fornecedores
type SearchConfig struct {
	ProvidersCacheTTL  time.Duration
	QueryCacheTTL      time.Duration
	QueryCacheMaxSize  int
	CEPPrefixMin       int
	CEPOverfetchFactor int
	PageSize           int
	PriceMinDefault    float64
	PriceMaxDefault    float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),

		ProvidersBackend:   strings.ToLower(getEnv("PROVIDERS_BACKEND", BackendLocal)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RemoteQueryTimeout: getEnvMillis("REMOTE_QUERY_TIMEOUT_MS", 3000),

		TypesenseHost:                getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:                getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:              getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol:            getEnv("TYPESENSE_PROTOCOL", "http"),
		TypesenseProvidersCollection: getEnv("TYPESENSE_PROVIDERS_COLLECTION", "providers"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AdminAPIToken: getEnv("ADMIN_API_TOKEN", ""),

		ViaCEPBaseURL:      getEnv("VIACEP_BASE_URL", "https://viacep.com.br"),
		NominatimBaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "festafacil-busca/1.0"),
		GeoHTTPTimeout:     getEnvMillis("GEO_HTTP_TIMEOUT_MS", 5000),

		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),

		Search: SearchConfig{
			ProvidersCacheTTL:  getEnvMillis("PROVIDERS_CACHE_TTL_MS", 300000),
			QueryCacheTTL:      getEnvMillis("QUERY_CACHE_TTL_MS", 60000),
			QueryCacheMaxSize:  getEnvInt("QUERY_CACHE_MAX_SIZE", 500),
			CEPPrefixMin:       getEnvInt("CEP_PREFIX_MIN", 5),
			CEPOverfetchFactor: getEnvInt("CEP_OVERFETCH_FACTOR", 3),
			PageSize:           getEnvInt("SEARCH_PAGE_SIZE", 12),
			PriceMinDefault:    getEnvFloat("SEARCH_PRICE_MIN_DEFAULT", 0),
			PriceMaxDefault:    getEnvFloat("SEARCH_PRICE_MAX_DEFAULT", 3000),
		},
	}
}

// Validate verifica combinações obrigatórias de variáveis
func (c *Config) Validate() error {
	switch c.ProvidersBackend {
	case BackendLocal, BackendTypesense:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatória com PROVIDERS_BACKEND=%s", BackendPostgres)
		}
	default:
		return fmt.Errorf("PROVIDERS_BACKEND inválido: %q (use postgres, typesense ou local)", c.ProvidersBackend)
	}
	if c.Search.CEPPrefixMin < 1 || c.Search.CEPPrefixMin > 8 {
		return fmt.Errorf("CEP_PREFIX_MIN deve estar entre 1 e 8, recebido %d", c.Search.CEPPrefixMin)
	}
	if c.Search.PageSize < 1 {
		return fmt.Errorf("SEARCH_PAGE_SIZE deve ser positivo, recebido %d", c.Search.PageSize)
	}
	if c.Search.CEPOverfetchFactor < 1 {
		return fmt.Errorf("CEP_OVERFETCH_FACTOR deve ser positivo, recebido %d", c.Search.CEPOverfetchFactor)
	}
	if c.Search.PriceMaxDefault < c.Search.PriceMinDefault {
		return fmt.Errorf("SEARCH_PRICE_MAX_DEFAULT menor que SEARCH_PRICE_MIN_DEFAULT")
	}
	return nil
}

// TypesenseURL monta a URL base do Typesense
func (c *Config) TypesenseURL() string {
	return fmt.Sprintf("%s://%s:%s", c.TypesenseProtocol, c.TypesenseHost, c.TypesensePort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvMillis(key string, defaultMs int) time.Duration {
	return time.Duration(getEnvInt(key, defaultMs)) * time.Millisecond
}
