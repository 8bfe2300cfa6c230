package validate

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCEP(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"01234-000", true},
		{"01234000", true},
		{"0123-4000", false},
		{"01234-00", false},
		{"abcde-fgh", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidCEP(tt.input), tt.input)
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"+55 (11) 91234-5678", true},
		{"(11) 91234-5678", true},
		{"11912345678", true},
		{"1234-5678", true},
		{"912345678", true},
		{"12-34", false},
		{"telefone", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPhone(tt.input), tt.input)
	}
}

func TestIsValidCPF(t *testing.T) {
	assert.True(t, IsValidCPF("529.982.247-25"))
	assert.True(t, IsValidCPF("52998224725"))
	assert.False(t, IsValidCPF("529.982.247-26"))
	assert.False(t, IsValidCPF("111.111.111-11"))
	assert.False(t, IsValidCPF("1234"))
}

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	assert.True(t, IsValidCNPJ("11222333000181"))
	assert.False(t, IsValidCNPJ("11.222.333/0001-82"))
	assert.False(t, IsValidCNPJ("00.000.000/0000-00"))
	assert.False(t, IsValidCNPJ("112223330001"))
}

func TestCEPPrefix(t *testing.T) {
	assert.Equal(t, "04099", CEPPrefix("04099-123", 5))
	assert.Equal(t, "04099", CEPPrefix(" 040.99 ", 5))
	assert.Equal(t, "", CEPPrefix("0409", 5))
	assert.Equal(t, "", CEPPrefix("", 5))
}

func TestFormatCEP(t *testing.T) {
	got, ok := FormatCEP("01310100")
	require.True(t, ok)
	assert.Equal(t, "01310-100", got)

	_, ok = FormatCEP("0131")
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type form struct {
		CEP   string `validate:"cep"`
		Phone string `validate:"phone_br"`
		CPF   string `validate:"omitempty,cpf"`
		CNPJ  string `validate:"omitempty,cnpj"`
	}

	assert.NoError(t, v.Struct(form{CEP: "01234-000", Phone: "(11) 91234-5678", CNPJ: "11.222.333/0001-81"}))
	assert.Error(t, v.Struct(form{CEP: "123", Phone: "(11) 91234-5678"}))
	assert.Error(t, v.Struct(form{CEP: "01234-000", Phone: "(11) 91234-5678", CPF: "111.111.111-11"}))
}
