package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nome simples", "Bolos da Maria", "bolos-da-maria"},
		{"acentos", "Castelo Inflável Divertix", "castelo-inflavel-divertix"},
		{"cedilha e til", "Decoração", "decoracao"},
		{"pontuação", "Buffet: Sabor & Festa!", "buffet-sabor-festa"},
		{"ordinal", "2ª Festa", "2-festa"},
		{"vazio", "", ""},
		{"apenas símbolos", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyTruncatesOnWordBoundary(t *testing.T) {
	slug := Slugify(strings.Repeat("palavra ", 20))

	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.True(t, strings.HasSuffix(slug, "palavra"))
}

func TestCategoryFromSlug(t *testing.T) {
	valid := []string{"Brinquedos", "Buffet", "Decoração", "Recreação", "Bolo"}

	tests := []struct {
		slug     string
		expected string
		found    bool
	}{
		{"decoracao", "Decoração", true},
		{"recreacao", "Recreação", true},
		{"BOLO", "Bolo", true},
		{" buffet ", "Buffet", true},
		{"inexistente", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got, ok := CategoryFromSlug(tt.slug, valid)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "Recreacao", RemoveAccents("Recreação"))
	assert.Equal(t, "Inflavel", RemoveAccents("Inflável"))
}
