package search

import "github.com/festafacil/app-busca-fornecedores/internal/models"

// sourceKind identifica de onde veio uma página de fornecedores
type sourceKind int

const (
	// kindRemote: paginação no servidor com contagem exata
	kindRemote sourceKind = iota
	// kindRemoteDegraded: janela remota filtrada por CEP no processo, sem total
	kindRemoteDegraded
	// kindLocal: snapshot local filtrado, ordenado e paginado em memória
	kindLocal
)

// sourceResult é o resultado da fonte antes dos overrides
type sourceResult struct {
	kind  sourceKind
	items []models.Provider
	total int  // contagem exata para kindRemote/kindLocal
	known bool // false quando a fonte remota não informou a contagem
}

// outcome deriva total, paginação e origem a partir do tipo
func (r sourceResult) outcome() (*int, bool, models.DataSource) {
	switch r.kind {
	case kindRemote:
		if !r.known {
			return nil, true, models.SourceRemote
		}
		total := r.total
		return &total, true, models.SourceRemote
	case kindRemoteDegraded:
		return nil, false, models.SourceRemoteDegraded
	default:
		total := r.total
		return &total, true, models.SourceLocal
	}
}

func (r sourceResult) clone() sourceResult {
	out := r
	out.items = models.CloneProviders(r.items)
	return out
}
