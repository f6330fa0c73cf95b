// Package submit orchestrates recipe create/edit as three strictly ordered
// stages: structural validation, media resolution, entity submission. Each
// stage is a hard gate and every failure is tagged with the stage that
// produced it.
package submit

import (
	"context"
	"io"
	"strings"

	"forkful/events"
	"forkful/faults"
	"forkful/filemgr"
	"forkful/models"
)

// API is the create/update/upload slice of the gateway.
type API interface {
	CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.RecipeResponse, error)
	UpdateRecipe(ctx context.Context, id string, in models.RecipeInput) (*models.RecipeResponse, error)
	UploadImage(ctx context.Context, filename string, src io.Reader) (*models.UploadResponse, error)
}

// Draft is the form state handed to the pipeline. RecipeID empty means
// create. LocalImage, when set, is a newly selected file whose uploaded
// reference replaces Image. Actor is the signed-in user submitting the
// draft; Owner is the recipe's creator and is consulted on edits only.
type Draft struct {
	RecipeID    string
	Actor       models.User
	Owner       models.UserRef
	Title       string
	Image       string
	LocalImage  io.Reader
	ImageName   string
	Ingredients []models.Ingredient
	Steps       []models.Step
	CookingTime int
	Calories    int
	Cuisine     string
	Diet        string
	Difficulty  string
}

// Outcome reports a successful submission. RecipeID is the identity to
// navigate to; for edits it equals the draft's id.
type Outcome struct {
	RecipeID string
	Created  bool
	Recipe   models.Recipe
}

type Pipeline struct {
	api API
}

func New(api API) *Pipeline {
	return &Pipeline{api: api}
}

// Submit runs the three stages in order. No stage starts before the previous
// one succeeded; in particular a failed upload never lets a stale or partial
// image reference reach the create/update call.
func (p *Pipeline) Submit(ctx context.Context, d Draft) (*Outcome, error) {
	// Edits are owner-only; anyone else is stopped before a single request.
	if d.RecipeID != "" && d.Actor.ID != d.Owner.ID {
		return nil, faults.WithStage(faults.Validationf("only the recipe owner can edit it"), faults.StageValidate)
	}

	in, err := buildInput(d)
	if err != nil {
		return nil, faults.WithStage(err, faults.StageValidate)
	}

	if d.LocalImage != nil {
		prepared, err := filemgr.PrepareImage(d.LocalImage)
		if err != nil {
			return nil, faults.WithStage(err, faults.StageUpload)
		}
		name := d.ImageName
		if name == "" {
			name = "recipe.jpg"
		}
		resp, err := p.api.UploadImage(ctx, name, prepared)
		if err != nil {
			return nil, faults.WithStage(err, faults.StageUpload)
		}
		in.Image = resp.ImageURL
	}

	if d.RecipeID == "" {
		resp, err := p.api.CreateRecipe(ctx, in)
		if err != nil {
			return nil, faults.WithStage(err, faults.StageSubmit)
		}
		events.Emit("recipe-created", events.Index{EntityType: "recipe", Method: "POST", EntityId: resp.Recipe.ID})
		return &Outcome{RecipeID: resp.Recipe.ID, Created: true, Recipe: resp.Recipe}, nil
	}

	resp, err := p.api.UpdateRecipe(ctx, d.RecipeID, in)
	if err != nil {
		return nil, faults.WithStage(err, faults.StageSubmit)
	}
	events.Emit("recipe-updated", events.Index{EntityType: "recipe", Method: "PUT", EntityId: d.RecipeID})
	return &Outcome{RecipeID: d.RecipeID, Recipe: resp.Recipe}, nil
}

// buildInput applies the structural rules: non-empty title, positive cooking
// time, at least one ingredient with name and amount, at least one non-blank
// step. Empty rows are dropped and steps renumbered contiguously from 1.
func buildInput(d Draft) (models.RecipeInput, error) {
	var in models.RecipeInput

	title := strings.TrimSpace(d.Title)
	if title == "" {
		return in, faults.Validationf("title is required")
	}
	if d.CookingTime <= 0 {
		return in, faults.Validationf("cooking time must be greater than zero")
	}
	if d.Calories < 0 {
		return in, faults.Validationf("calories cannot be negative")
	}

	var ingredients []models.Ingredient
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) != "" && strings.TrimSpace(ing.Amount) != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		return in, faults.Validationf("at least one ingredient with name and amount is required")
	}

	var steps []models.Step
	for _, s := range d.Steps {
		instruction := strings.TrimSpace(s.Instruction)
		if instruction == "" {
			continue
		}
		steps = append(steps, models.Step{StepNumber: len(steps) + 1, Instruction: instruction})
	}
	if len(steps) == 0 {
		return in, faults.Validationf("at least one step is required")
	}

	cuisine, diet, difficulty, err := resolveEnums(d)
	if err != nil {
		return in, err
	}

	in = models.RecipeInput{
		Title:       title,
		Image:       d.Image,
		Ingredients: ingredients,
		Steps:       steps,
		CookingTime: d.CookingTime,
		Calories:    d.Calories,
		Cuisine:     cuisine,
		Diet:        diet,
		Difficulty:  difficulty,
	}
	return in, nil
}

// resolveEnums fills the form defaults for unset categories and rejects
// values outside the closed sets.
func resolveEnums(d Draft) (cuisine, diet, difficulty string, err error) {
	cuisine, diet, difficulty = d.Cuisine, d.Diet, d.Difficulty
	if cuisine == "" {
		cuisine = "Other"
	}
	if diet == "" {
		diet = "None"
	}
	if difficulty == "" {
		difficulty = "Medium"
	}
	if !models.ValidCuisine(cuisine) {
		return "", "", "", faults.Validationf("unknown cuisine %q", cuisine)
	}
	if !models.ValidDiet(diet) {
		return "", "", "", faults.Validationf("unknown diet %q", diet)
	}
	if !models.ValidDifficulty(difficulty) {
		return "", "", "", faults.Validationf("unknown difficulty %q", difficulty)
	}
	return cuisine, diet, difficulty, nil
}
