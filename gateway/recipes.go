package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"forkful/models"
)

// listQuery serializes a filter spec. Absent fields are omitted entirely so
// that an unset numeric filter is never sent as 0.
func listQuery(f models.RecipeFilters) url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Ingredients != "" {
		q.Set("ingredients", f.Ingredients)
	}
	if f.MaxTime > 0 {
		q.Set("maxTime", strconv.Itoa(f.MaxTime))
	}
	if f.MaxCalories > 0 {
		q.Set("maxCalories", strconv.Itoa(f.MaxCalories))
	}
	if f.Cuisine != "" {
		q.Set("cuisine", f.Cuisine)
	}
	if f.Diet != "" {
		q.Set("diet", f.Diet)
	}
	if f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.CreatedBy != "" {
		q.Set("createdBy", f.CreatedBy)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	return q
}

func (g *Gateway) ListRecipes(ctx context.Context, f models.RecipeFilters) (*models.RecipesResponse, error) {
	var out models.RecipesResponse
	if err := g.do(ctx, http.MethodGet, "/recipes", listQuery(f), nil, &out); err != nil {
		return nil, err
	}
	if out.Recipes == nil {
		out.Recipes = []models.Recipe{}
	}
	return &out, nil
}

func (g *Gateway) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var out models.Recipe
	if err := g.do(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.RecipeResponse, error) {
	var out models.RecipeResponse
	if err := g.do(ctx, http.MethodPost, "/recipes", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) UpdateRecipe(ctx context.Context, id string, in models.RecipeInput) (*models.RecipeResponse, error) {
	var out models.RecipeResponse
	if err := g.do(ctx, http.MethodPut, "/recipes/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) DeleteRecipe(ctx context.Context, id string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := g.do(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) RateRecipe(ctx context.Context, id string, score int) (*models.RateResponse, error) {
	body := map[string]int{"score": score}
	var out models.RateResponse
	if err := g.do(ctx, http.MethodPost, "/recipes/"+url.PathEscape(id)+"/rate", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) ToggleFavorite(ctx context.Context, id string) (*models.FavoriteResponse, error) {
	var out models.FavoriteResponse
	if err := g.do(ctx, http.MethodPost, "/recipes/"+url.PathEscape(id)+"/favorite", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
