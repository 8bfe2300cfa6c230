package local

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvidersSeed(t *testing.T) {
	list := Providers()
	require.Len(t, list, 5)

	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
		assert.True(t, p.Category.IsValid(), p.Name)
		assert.GreaterOrEqual(t, p.PriceFrom, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.NotEmpty(t, p.CEPAreas)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
	assert.Equal(t, "Bolos da Maria", list[4].Name)
}

func TestProvidersReturnsCopy(t *testing.T) {
	first := Providers()
	first[0].Name = "alterado"
	first[0].CEPAreas[0] = "99999-999"

	second := Providers()
	assert.Equal(t, "Castelo Inflável Divertix", second[0].Name)
	assert.Equal(t, "01234-000", second[0].CEPAreas[0])
}
