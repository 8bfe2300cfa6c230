package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festafacil_provider_queries_total",
			Help: "Total de buscas de fornecedores por origem dos dados",
		},
		[]string{"source"},
	)

	RemoteFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festafacil_remote_fallbacks_total",
			Help: "Total de vezes em que a fonte remota falhou e o snapshot local foi usado",
		},
		[]string{"operation"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "festafacil_provider_query_duration_seconds",
			Help:    "Duração da busca de fornecedores em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festafacil_cache_lookups_total",
			Help: "Consultas aos caches em memória",
		},
		[]string{"cache", "result"},
	)

	GeoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festafacil_geo_lookups_total",
			Help: "Consultas a ViaCEP e Nominatim por resultado",
		},
		[]string{"service", "result"},
	)

	OverrideMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festafacil_override_mutations_total",
			Help: "Alterações administrativas de overrides",
		},
		[]string{"operation"},
	)
)
