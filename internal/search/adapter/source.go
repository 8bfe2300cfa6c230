package adapter

import (
	"context"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/validate"
)

// RemoteQuery descreve a consulta enviada à fonte remota. Os filtros seguem a
// mesma semântica do snapshot local para que as duas fontes concordem.
type RemoteQuery struct {
	PriceMin        float64
	PriceMax        float64
	MinRating       float64
	HasCNPJ         bool // filtra apenas quando true
	IncludesMonitor bool // filtra apenas quando true
	Term            string
	CEPPrefix       string // vazio desativa o filtro "array contém"
	Sort            models.SortMode
	Offset          int
	Limit           int
}

// RemotePage é o resultado de uma consulta remota
type RemotePage struct {
	Providers []models.Provider
	Total     *int // contagem exata quando a fonte a informa
}

// ProviderSource é o contrato das fontes remotas de fornecedores
type ProviderSource interface {
	Name() string
	Query(ctx context.Context, q RemoteQuery) (*RemotePage, error)
	All(ctx context.Context) ([]models.Provider, error)
	ByID(ctx context.Context, id string) (*models.Provider, error)
	Ping(ctx context.Context) error
}

// CEPPrefixes extrai os prefixos de n dígitos (sem repetição) das áreas atendidas
func CEPPrefixes(areas []string, n int) []string {
	seen := make(map[string]bool, len(areas))
	out := make([]string, 0, len(areas))
	for _, area := range areas {
		prefix := validate.CEPPrefix(area, n)
		if prefix == "" || seen[prefix] {
			continue
		}
		seen[prefix] = true
		out = append(out, prefix)
	}
	return out
}
