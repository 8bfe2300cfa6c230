package search

import "errors"

var (
	// ErrSearchCanceled é o único erro da busca: o contexto do chamador foi cancelado
	ErrSearchCanceled = errors.New("busca cancelada")
)
