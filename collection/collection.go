// Package collection turns filter/sort/page specifications into recipe list
// fetches and holds the latest successful snapshot. Stale in-flight responses
// are superseded, never applied.
package collection

import (
	"context"
	"errors"
	"sync"

	"forkful/models"
)

// ErrSuperseded marks a response discarded because a newer query was issued
// while it was in flight.
var ErrSuperseded = errors.New("query superseded by a newer request")

// Lister is the recipe-listing slice of the gateway.
type Lister interface {
	ListRecipes(ctx context.Context, f models.RecipeFilters) (*models.RecipesResponse, error)
}

type Result struct {
	Recipes    []models.Recipe
	Pagination models.Pagination
}

type Engine struct {
	api Lister

	mu       sync.Mutex
	seq      uint64
	lastSpec models.RecipeFilters
	recipes  []models.Recipe
	pg       models.Pagination
	loaded   bool
}

func New(api Lister) *Engine {
	return &Engine{api: api}
}

// DefaultFilters is the listing spec the UI starts from.
func DefaultFilters() models.RecipeFilters {
	return models.RecipeFilters{Page: 1, Limit: 12, SortBy: "createdAt", SortOrder: "desc"}
}

// Query fetches the page described by f. Last-issued-request-wins: if another
// Query starts before this one resolves, this one's response is discarded and
// ErrSuperseded returned. On failure the previous snapshot stays intact.
func (e *Engine) Query(ctx context.Context, f models.RecipeFilters) (*Result, error) {
	e.mu.Lock()
	e.seq++
	gen := e.seq
	e.lastSpec = f
	e.mu.Unlock()

	resp, err := e.api.ListRecipes(ctx, f)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.seq {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	e.recipes = resp.Recipes
	e.pg = resp.Pagination
	e.loaded = true
	return e.resultLocked(), nil
}

// Refresh reissues the most recent spec.
func (e *Engine) Refresh(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	spec := e.lastSpec
	issued := e.seq > 0
	e.mu.Unlock()
	if !issued {
		spec = DefaultFilters()
	}
	return e.Query(ctx, spec)
}

// Snapshot returns the last successful result, if any.
func (e *Engine) Snapshot() (*Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil, false
	}
	return e.resultLocked(), true
}

func (e *Engine) resultLocked() *Result {
	recipes := make([]models.Recipe, len(e.recipes))
	copy(recipes, e.recipes)
	return &Result{Recipes: recipes, Pagination: e.pg}
}
