package adapter

import "errors"

var (
	// ErrCEPFilterUnsupported indica que o schema remoto não tem a coluna cepPrefixes5
	ErrCEPFilterUnsupported = errors.New("fonte remota não suporta filtro por prefixo de CEP")
	ErrRemoteQuery          = errors.New("falha na consulta à fonte remota")
	ErrInvalidDocument      = errors.New("documento remoto inválido")
)
