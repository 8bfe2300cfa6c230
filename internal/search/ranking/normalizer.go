package ranking

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Term representa o termo de busca normalizado
type Term struct {
	Original string   // termo como recebido
	Text     string   // minúsculo, sem espaços extras
	Tokens   []string // palavras do termo
}

// NewTerm normaliza o termo livre da busca
func NewTerm(q string) Term {
	text := Lower(strings.Join(strings.Fields(q), " "))
	return Term{
		Original: q,
		Text:     text,
		Tokens:   strings.Fields(text),
	}
}

// IsEmpty indica termo vazio (score zero para todos)
func (t Term) IsEmpty() bool {
	return t.Text == ""
}

// Lower converte para minúsculas com regras do português.
// cases.Caser guarda estado, então cada chamada cria o seu.
func Lower(s string) string {
	return cases.Lower(language.BrazilianPortuguese).String(s)
}
