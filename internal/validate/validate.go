// Package validate reúne os validadores de formato usados pelo marketplace
// (CEP, telefone, CPF e CNPJ) e os registra no go-playground/validator.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	cepPattern   = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	phonePattern = regexp.MustCompile(`^(\+?55)?\s?(\(?\d{2}\)?\s?)?9?\d{4}[\-\s]?\d{4}$`)
)

// IsValidCEP aceita "01234-000" ou "01234000"
func IsValidCEP(v string) bool {
	return cepPattern.MatchString(v)
}

// IsValidPhone aceita telefones brasileiros com DDI/DDD opcionais
func IsValidPhone(v string) bool {
	return phonePattern.MatchString(v)
}

// OnlyDigits remove tudo que não for dígito ASCII
func OnlyDigits(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CEPPrefix retorna os n primeiros dígitos do CEP, ou "" se houver menos de n dígitos
func CEPPrefix(v string, n int) string {
	digits := OnlyDigits(v)
	if n <= 0 || len(digits) < n {
		return ""
	}
	return digits[:n]
}

// FormatCEP formata 8 dígitos como NNNNN-NNN
func FormatCEP(v string) (string, bool) {
	digits := OnlyDigits(v)
	if len(digits) < 8 {
		return "", false
	}
	return digits[:5] + "-" + digits[5:8], true
}

// IsValidCPF verifica tamanho, sequências repetidas e dígitos verificadores
func IsValidCPF(v string) bool {
	digits := OnlyDigits(v)
	if len(digits) != 11 || repeated(digits) {
		return false
	}
	d := toInts(digits)
	return cpfDigit(d[:9]) == d[9] && cpfDigit(d[:10]) == d[10]
}

// IsValidCNPJ verifica tamanho, sequências repetidas e dígitos verificadores
func IsValidCNPJ(v string) bool {
	digits := OnlyDigits(v)
	if len(digits) != 14 || repeated(digits) {
		return false
	}
	d := toInts(digits)
	first := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	second := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return cnpjDigit(d[:12], first) == d[12] && cnpjDigit(d[:13], second) == d[13]
}

func cpfDigit(d []int) int {
	sum := 0
	weight := len(d) + 1
	for _, n := range d {
		sum += n * weight
		weight--
	}
	r := (sum * 10) % 11
	if r == 10 {
		return 0
	}
	return r
}

func cnpjDigit(d []int, weights []int) int {
	sum := 0
	for i, n := range d {
		sum += n * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func repeated(digits string) bool {
	return strings.Count(digits, digits[:1]) == len(digits)
}

func toInts(digits string) []int {
	out := make([]int, 0, len(digits))
	for _, r := range digits {
		if unicode.IsDigit(r) {
			out = append(out, int(r-'0'))
		}
	}
	return out
}

// Register adiciona as tags cep, phone_br, cpf e cnpj ao validator
func Register(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"cep":      IsValidCEP,
		"phone_br": IsValidPhone,
		"cpf":      IsValidCPF,
		"cnpj":     IsValidCNPJ,
	}
	for tag, fn := range tags {
		check := fn
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterGin instala as tags no validator usado pelo binding do gin
func RegisterGin() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return Register(v)
	}
	return nil
}
