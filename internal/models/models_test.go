package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	q := ProvidersQuery{Sort: "popular"}
	q.ApplyDefaults(0)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.PageSize)
	assert.Equal(t, SortRelevance, q.Sort)
	assert.Equal(t, 0, q.Offset())

	q = ProvidersQuery{Page: 3, PageSize: 5, Sort: SortPriceDesc}
	q.ApplyDefaults(12)
	assert.Equal(t, 5, q.PageSize)
	assert.Equal(t, SortPriceDesc, q.Sort)
	assert.Equal(t, 10, q.Offset())
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(1, 12))
	assert.Equal(t, 24, PageOffset(3, 12))
	assert.Equal(t, 0, PageOffset(0, 12))
	assert.Equal(t, 0, PageOffset(2, 0))
	assert.Equal(t, math.MaxInt, PageOffset(1<<62, 12))
	assert.Equal(t, math.MaxInt, PageOffset(math.MaxInt, 2))

	q := ProvidersQuery{Page: 1 << 62, PageSize: 100}
	assert.Equal(t, math.MaxInt, q.Offset())
}

func TestNewProvidersQuery(t *testing.T) {
	q := NewProvidersQuery(DefaultQueryDefaults())
	assert.Equal(t, 3000.0, q.PriceMax)
	assert.Equal(t, 12, q.PageSize)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, SortRelevance, q.Sort)
}

func TestNewPagination(t *testing.T) {
	total := 25

	p := NewPagination(2, 12, &total, true)
	require.NotNil(t, p.TotalPages)
	assert.Equal(t, 3, *p.TotalPages)
	assert.True(t, p.HasNext)

	p = NewPagination(3, 12, &total, true)
	assert.False(t, p.HasNext)

	p = NewPagination(1, 12, &total, false)
	assert.False(t, p.HasNext, "sem paginação confiável não há próxima página")

	p = NewPagination(1, 12, nil, false)
	assert.Nil(t, p.TotalPages)
	assert.False(t, p.HasNext)

	zero := 0
	p = NewPagination(1, 12, &zero, true)
	assert.Equal(t, 0, *p.TotalPages)
}

func TestOverrideValidate(t *testing.T) {
	neg, ok, over := -1.0, 50.0, 101.0

	tests := []struct {
		name string
		o    Override
		want error
	}{
		{"sem fornecedor", Override{}, ErrOverrideProviderRequired},
		{"apenas rótulo", Override{ProviderID: "1", PromoLabel: "Oferta"}, nil},
		{"preço negativo", Override{ProviderID: "1", PriceFrom: &neg}, ErrInvalidOverride},
		{"promoção válida", Override{ProviderID: "1", PromoPercent: &ok}, nil},
		{"promoção acima de 100", Override{ProviderID: "1", PromoPercent: &over}, ErrInvalidOverride},
		{"promoção negativa", Override{ProviderID: "1", PromoPercent: &neg}, ErrInvalidOverride},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.o.Validate(), tt.want)
		})
	}
}

func TestProviderClone(t *testing.T) {
	promo := 10.0
	p := Provider{ID: "1", CEPAreas: []string{"01234-000"}, PromoPercent: &promo}

	c := p.Clone()
	c.CEPAreas[0] = "99999-999"
	*c.PromoPercent = 90

	assert.Equal(t, "01234-000", p.CEPAreas[0])
	assert.Equal(t, 10.0, *p.PromoPercent)
	assert.Nil(t, CloneProviders(nil))
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryBuffet.IsValid())
	assert.False(t, Category("Fotografia").IsValid())
	assert.True(t, SortBestRated.IsValid())
	assert.False(t, SortMode("").IsValid())
}
