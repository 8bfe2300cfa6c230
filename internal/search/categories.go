package search

import (
	"context"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	"github.com/festafacil/app-busca-fornecedores/internal/utils"
)

// CategorySummary resume os fornecedores de uma categoria
// @Description Categoria com quantidade de fornecedores e menor preço exibido.
type CategorySummary struct {
	Category  models.Category `json:"category" example:"Decoração"`
	Slug      string          `json:"slug" example:"decoracao"`
	Providers int             `json:"providers" example:"1"`
	PriceFrom *float64        `json:"price_from"`
}

// Categories retorna as categorias conhecidas na ordem do marketplace,
// seguidas das categorias desconhecidas encontradas nos dados
func (c *Catalog) Categories(ctx context.Context) ([]CategorySummary, error) {
	list, err := c.All(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[models.Category]int, len(models.Categories))
	out := make([]CategorySummary, 0, len(models.Categories))
	for _, cat := range models.Categories {
		index[cat] = len(out)
		out = append(out, CategorySummary{Category: cat, Slug: utils.CategorySlug(string(cat))})
	}

	for _, p := range list {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategorySummary{Category: p.Category, Slug: utils.CategorySlug(string(p.Category))})
		}
		s := &out[i]
		s.Providers++
		if s.PriceFrom == nil || p.PriceFrom < *s.PriceFrom {
			price := p.PriceFrom
			s.PriceFrom = &price
		}
	}
	return out, nil
}

// ByCategory retorna os fornecedores da categoria identificada pelo slug
func (c *Catalog) ByCategory(ctx context.Context, slug string) (models.Category, []models.Provider, error) {
	summaries, err := c.Categories(ctx)
	if err != nil {
		return "", nil, err
	}
	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = string(s.Category)
	}
	name, ok := utils.CategoryFromSlug(slug, names)
	if !ok {
		return "", nil, models.ErrCategoryNotFound
	}

	list, err := c.All(ctx)
	if err != nil {
		return "", nil, err
	}
	out := make([]models.Provider, 0)
	for _, p := range list {
		if string(p.Category) == name {
			out = append(out, p)
		}
	}
	return models.Category(name), out, nil
}
