// Package interactions applies rating and favorite mutations to a single
// loaded recipe. Aggregates are never computed client-side: after a rating
// the canonical record is refetched so the server's arithmetic is the only
// arithmetic.
package interactions

import (
	"context"
	"math"
	"sync"

	"forkful/events"
	"forkful/faults"
	"forkful/models"
)

// API is the per-recipe slice of the gateway.
type API interface {
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	RateRecipe(ctx context.Context, id string, score int) (*models.RateResponse, error)
	ToggleFavorite(ctx context.Context, id string) (*models.FavoriteResponse, error)
	DeleteRecipe(ctx context.Context, id string) (*models.MessageResponse, error)
}

// Coordinator binds the acting user to one recipe entity.
type Coordinator struct {
	api  API
	user models.User

	mu     sync.Mutex
	recipe *models.Recipe
}

func New(api API, user models.User) *Coordinator {
	return &Coordinator{api: api, user: user}
}

// Load fetches the recipe and makes it the coordinator's working copy.
func (c *Coordinator) Load(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := c.api.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.recipe = recipe
	c.mu.Unlock()
	out := *recipe
	return &out, nil
}

// Recipe returns a copy of the working recipe, if loaded.
func (c *Coordinator) Recipe() (models.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recipe == nil {
		return models.Recipe{}, false
	}
	return *c.recipe, true
}

// RatingResult carries the authoritative post-mutation state.
type RatingResult struct {
	AverageRating float64
	UserScore     int
	Recipe        models.Recipe
}

// Rate submits a score for the loaded recipe. Scores outside [1,5] or with a
// fractional part fail locally without any network call, as does an owner
// rating their own recipe. On success the recipe is refetched and the
// server's averageRating adopted verbatim.
func (c *Coordinator) Rate(ctx context.Context, score float64) (*RatingResult, error) {
	if score < 1 || score > 5 || score != math.Trunc(score) {
		return nil, faults.Validationf("rating score must be an integer between 1 and 5, got %v", score)
	}

	c.mu.Lock()
	if c.recipe == nil {
		c.mu.Unlock()
		return nil, faults.Validationf("no recipe loaded")
	}
	id := c.recipe.ID
	owner := c.recipe.CreatedBy.ID
	c.mu.Unlock()

	if owner == c.user.ID {
		return nil, faults.Validationf("cannot rate your own recipe")
	}

	if _, err := c.api.RateRecipe(ctx, id, int(score)); err != nil {
		return nil, err
	}

	recipe, err := c.api.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	userScore, err := ratingFor(recipe, c.user.ID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.recipe = recipe
	c.mu.Unlock()

	events.Emit("recipe-rated", events.Index{EntityType: "recipe", Method: "PATCH", EntityId: id})
	return &RatingResult{AverageRating: recipe.AverageRating, UserScore: userScore, Recipe: *recipe}, nil
}

// ratingFor scans the rating list for the given user. More than one entry for
// the same user is a data-integrity fault, not something to paper over.
func ratingFor(recipe *models.Recipe, userID string) (int, error) {
	score := 0
	matches := 0
	for _, r := range recipe.Ratings {
		if r.User.ID == userID {
			matches++
			score = r.Score
		}
	}
	if matches > 1 {
		return 0, faults.Integrityf("recipe %s has %d rating entries for user %s", recipe.ID, matches, userID)
	}
	return score, nil
}

// UserRating reports the acting user's current score on the loaded recipe,
// 0 if none.
func (c *Coordinator) UserRating() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recipe == nil {
		return 0, nil
	}
	return ratingFor(c.recipe, c.user.ID)
}

// ToggleFavorite flips the per-user membership fact. The resulting boolean is
// whatever the server reports; the client cannot derive it from the recipe.
func (c *Coordinator) ToggleFavorite(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.recipe == nil {
		c.mu.Unlock()
		return false, faults.Validationf("no recipe loaded")
	}
	id := c.recipe.ID
	c.mu.Unlock()

	resp, err := c.api.ToggleFavorite(ctx, id)
	if err != nil {
		return false, err
	}
	return resp.IsFavorited, nil
}

// Delete removes the loaded recipe. Only its owner may do so; the check runs
// before any request is issued.
func (c *Coordinator) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.recipe == nil {
		c.mu.Unlock()
		return faults.Validationf("no recipe loaded")
	}
	id := c.recipe.ID
	owner := c.recipe.CreatedBy.ID
	c.mu.Unlock()

	if owner != c.user.ID {
		return faults.Validationf("only the recipe owner can delete it")
	}
	if _, err := c.api.DeleteRecipe(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	c.recipe = nil
	c.mu.Unlock()

	events.Emit("recipe-deleted", events.Index{EntityType: "recipe", Method: "DELETE", EntityId: id})
	return nil
}
