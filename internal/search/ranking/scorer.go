package ranking

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
)

// Faixas de relevância, da mais forte para a mais fraca
const (
	TierNone = iota
	TierSubstringCategory
	TierSubstringName
	TierWordCategory
	TierWordName
	TierPrefixCategory
	TierPrefixName
	TierExactCategory
	TierExactName
)

const (
	tierWeight = 1000
	maxBonus   = tierWeight - 1

	tokenNameBonus     = 10
	tokenCategoryBonus = 8
)

// Pesos somados para cada condição atendida; refinam a ordem dentro da faixa
var conditionBonus = map[int]int{
	TierExactName:         120,
	TierExactCategory:     100,
	TierPrefixName:        80,
	TierPrefixCategory:    70,
	TierWordName:          50,
	TierWordCategory:      40,
	TierSubstringName:     35,
	TierSubstringCategory: 25,
}

// Score calcula a relevância do fornecedor para o termo.
// A faixa domina o score: o bônus nunca ultrapassa a faixa seguinte.
func Score(p models.Provider, term Term) int {
	if term.IsEmpty() {
		return 0
	}
	name := Lower(p.Name)
	category := Lower(string(p.Category))

	tier := TierNone
	bonus := 0
	for _, c := range conditions(name, category, term.Text) {
		if !c.ok {
			continue
		}
		bonus += conditionBonus[c.tier]
		if c.tier > tier {
			tier = c.tier
		}
	}
	for _, tok := range term.Tokens {
		if strings.HasPrefix(name, tok) {
			bonus += tokenNameBonus
		}
		if strings.HasPrefix(category, tok) {
			bonus += tokenCategoryBonus
		}
	}
	if bonus > maxBonus {
		bonus = maxBonus
	}
	return tier*tierWeight + bonus
}

// TierOf retorna apenas a faixa de relevância
func TierOf(score int) int {
	return score / tierWeight
}

type condition struct {
	tier int
	ok   bool
}

func conditions(name, category, q string) []condition {
	return []condition{
		{TierExactName, name == q},
		{TierExactCategory, category == q},
		{TierPrefixName, strings.HasPrefix(name, q)},
		{TierPrefixCategory, strings.HasPrefix(category, q)},
		{TierWordName, hasWordPrefix(name, q)},
		{TierWordCategory, hasWordPrefix(category, q)},
		{TierSubstringName, strings.Contains(name, q)},
		{TierSubstringCategory, strings.Contains(category, q)},
	}
}

// hasWordPrefix verifica se q aparece em s logo após uma fronteira de palavra
// (letras e dígitos Unicode contam como caracteres de palavra)
func hasWordPrefix(s, q string) bool {
	if q == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(q)
	qStartsWord := isWordRune(first)

	for i := 0; i <= len(s)-len(q); {
		idx := strings.Index(s[i:], q)
		if idx < 0 {
			return false
		}
		pos := i + idx
		prevWord := false
		if pos > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:pos])
			prevWord = isWordRune(prev)
		}
		if prevWord != qStartsWord {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		i = pos + size
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Sort ordena os fornecedores in-place conforme o modo.
// Empates além das chaves de cada modo mantêm a ordem recebida.
func Sort(providers []models.Provider, mode models.SortMode, term Term) {
	switch mode {
	case models.SortBestRated:
		sort.SliceStable(providers, func(i, j int) bool {
			a, b := providers[i], providers[j]
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return a.RatingCount > b.RatingCount
		})
	case models.SortPriceAsc:
		sort.SliceStable(providers, func(i, j int) bool {
			return providers[i].PriceFrom < providers[j].PriceFrom
		})
	case models.SortPriceDesc:
		sort.SliceStable(providers, func(i, j int) bool {
			return providers[i].PriceFrom > providers[j].PriceFrom
		})
	default:
		scores := make(map[string]int, len(providers))
		for _, p := range providers {
			scores[p.ID] = Score(p, term)
		}
		sort.SliceStable(providers, func(i, j int) bool {
			a, b := providers[i], providers[j]
			if sa, sb := scores[a.ID], scores[b.ID]; sa != sb {
				return sa > sb
			}
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			if a.RatingCount != b.RatingCount {
				return a.RatingCount > b.RatingCount
			}
			return a.PriceFrom < b.PriceFrom
		})
	}
}
