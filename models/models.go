package models

import "time"

// UserRef is the embedded author/owner reference the API attaches to
// recipes, ratings and comments.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// User is the full profile returned by login/signup.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type Step struct {
	StepNumber  int    `json:"stepNumber"`
	Instruction string `json:"instruction"`
}

type Rating struct {
	User  UserRef `json:"user"`
	Score int     `json:"score"`
}

type Recipe struct {
	ID            string       `json:"_id"`
	Title         string       `json:"title"`
	Image         string       `json:"image,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	CookingTime   int          `json:"cookingTime"`
	Calories      int          `json:"calories,omitempty"`
	Cuisine       string       `json:"cuisine"`
	Diet          string       `json:"diet"`
	Difficulty    string       `json:"difficulty"`
	CreatedBy     UserRef      `json:"createdBy"`
	Ratings       []Rating     `json:"ratings"`
	AverageRating float64      `json:"averageRating"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	RecipeID  string    `json:"recipeId"`
	CreatedBy UserRef   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecipeInput is the payload for create/update. The image field holds the
// already-resolved remote reference, never a local file.
type RecipeInput struct {
	Title       string       `json:"title"`
	Image       string       `json:"image,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	CookingTime int          `json:"cookingTime"`
	Calories    int          `json:"calories,omitempty"`
	Cuisine     string       `json:"cuisine"`
	Diet        string       `json:"diet"`
	Difficulty  string       `json:"difficulty"`
}

// Pagination is the uniform envelope every list endpoint returns. It is
// always taken from the latest successful response, never computed locally.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalRecipes int  `json:"totalRecipes"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// RecipeFilters is the read-only filter/sort/page specification consumed by
// the collection engine. Zero-valued fields are absent and must be omitted
// from the outgoing request.
type RecipeFilters struct {
	Page        int
	Limit       int
	Search      string
	Ingredients string
	MaxTime     int
	MaxCalories int
	Cuisine     string
	Diet        string
	Difficulty  string
	CreatedBy   string
	SortBy      string
	SortOrder   string
}

// Closed enumerations the backend accepts.
var (
	Cuisines = []string{
		"Italian", "Mexican", "Chinese", "Indian", "American",
		"French", "Thai", "Mediterranean", "Japanese", "Other",
	}
	Diets = []string{
		"None", "Vegetarian", "Vegan", "Gluten-Free", "Keto", "Paleo", "Low-Carb",
	}
	Difficulties = []string{"Easy", "Medium", "Hard"}
	SortKeys     = []string{"createdAt", "averageRating", "cookingTime", "title"}
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func ValidCuisine(s string) bool    { return contains(Cuisines, s) }
func ValidDiet(s string) bool       { return contains(Diets, s) }
func ValidDifficulty(s string) bool { return contains(Difficulties, s) }
func ValidSortKey(s string) bool    { return contains(SortKeys, s) }
