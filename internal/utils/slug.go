package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength limita o tamanho de um slug
const MaxSlugLength = 50

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// RemoveAccents remove acentos e diacríticos
// Exemplo: "Decoração" -> "Decoracao"
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// Slugify converte texto para kebab-case ASCII
// Exemplo: "Castelo Inflável Divertix" -> "castelo-inflavel-divertix"
func Slugify(text string) string {
	slug := strings.ToLower(RemoveAccents(text))
	slug = strings.Trim(nonSlugChars.ReplaceAllString(slug, "-"), "-")

	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		if lastHyphen := strings.LastIndex(slug, "-"); lastHyphen > 0 {
			slug = slug[:lastHyphen]
		}
	}
	return slug
}

// CategorySlug retorna o slug usado nas URLs de categoria
// Exemplo: "Recreação" -> "recreacao"
func CategorySlug(category string) string {
	return Slugify(category)
}

// CategoryFromSlug encontra a categoria original a partir do slug
func CategoryFromSlug(slug string, valid []string) (string, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, category := range valid {
		if CategorySlug(category) == slug {
			return category, true
		}
	}
	return "", false
}
