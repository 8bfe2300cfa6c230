// Package local contém o snapshot embutido de fornecedores usado quando a
// fonte remota não está configurada ou falha.
package local

import "github.com/festafacil/app-busca-fornecedores/internal/models"

const imageParams = "?q=80&w=1200&auto=format&fit=crop"

var seed = []models.Provider{
	{
		ID:              "1",
		Name:            "Castelo Inflável Divertix",
		Category:        models.CategoryBrinquedos,
		PriceFrom:       250,
		Rating:          4.8,
		RatingCount:     32,
		MainImage:       "https://images.unsplash.com/photo-1503708928676-1cb796a0891e" + imageParams,
		RadiusKm:        30,
		HasCNPJ:         true,
		IncludesMonitor: true,
		CEPAreas:        []string{"01234-000", "05000-000"},
	},
	{
		ID:              "2",
		Name:            "Buffet Sabor de Festa",
		Category:        models.CategoryBuffet,
		PriceFrom:       1200,
		Rating:          4.9,
		RatingCount:     54,
		MainImage:       "https://images.unsplash.com/photo-1533777168198-6bde9a1edfd0" + imageParams,
		RadiusKm:        50,
		HasCNPJ:         true,
		IncludesMonitor: false,
		CEPAreas:        []string{"04000-000", "06000-000"},
	},
	{
		ID:              "3",
		Name:            "Decora Tudo Festas",
		Category:        models.CategoryDecoracao,
		PriceFrom:       800,
		Rating:          4.6,
		RatingCount:     19,
		MainImage:       "https://images.unsplash.com/photo-1492684223066-81342ee5ff30" + imageParams,
		RadiusKm:        40,
		HasCNPJ:         false,
		IncludesMonitor: false,
		CEPAreas:        []string{"07000-000"},
	},
	{
		ID:              "4",
		Name:            "AnimaKids Recreação",
		Category:        models.CategoryRecreacao,
		PriceFrom:       450,
		Rating:          4.7,
		RatingCount:     25,
		MainImage:       "https://images.unsplash.com/photo-1530103862676-de8c9debad1d" + imageParams,
		RadiusKm:        35,
		HasCNPJ:         true,
		IncludesMonitor: true,
		CEPAreas:        []string{"01234-000"},
	},
	{
		ID:              "5",
		Name:            "Bolos da Maria",
		Category:        models.CategoryBolo,
		PriceFrom:       180,
		Rating:          4.5,
		RatingCount:     12,
		MainImage:       "https://images.unsplash.com/photo-1568051243858-01bc1294db1b" + imageParams,
		RadiusKm:        20,
		HasCNPJ:         false,
		IncludesMonitor: false,
		CEPAreas:        []string{"02000-000", "03000-000"},
	},
}

// Providers retorna uma cópia do snapshot; alterações do chamador não o afetam
func Providers() []models.Provider {
	return models.CloneProviders(seed)
}
