package stub

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"forkful/models"
)

// listRecipes filters, sorts and paginates the stored recipes the way the
// real backend does, returning the uniform pagination envelope.
func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	page := atoiMin(q.Get("page"), 1)
	limit := atoiMin(q.Get("limit"), 12)

	search := strings.ToLower(q.Get("search"))
	ingredient := strings.ToLower(q.Get("ingredients"))
	maxTime := atoiMin(q.Get("maxTime"), 0)
	maxCalories := atoiMin(q.Get("maxCalories"), 0)
	cuisine := q.Get("cuisine")
	diet := q.Get("diet")
	difficulty := q.Get("difficulty")
	createdBy := q.Get("createdBy")
	sortBy := q.Get("sortBy")
	sortOrder := q.Get("sortOrder")

	s.store.mu.Lock()
	var matched []models.Recipe
	for _, rec := range s.store.recipes {
		if search != "" && !strings.Contains(strings.ToLower(rec.Title), search) {
			continue
		}
		if ingredient != "" && !hasIngredient(rec, ingredient) {
			continue
		}
		if maxTime > 0 && rec.CookingTime > maxTime {
			continue
		}
		if maxCalories > 0 && rec.Calories > maxCalories {
			continue
		}
		if cuisine != "" && rec.Cuisine != cuisine {
			continue
		}
		if diet != "" && rec.Diet != diet {
			continue
		}
		if difficulty != "" && rec.Difficulty != difficulty {
			continue
		}
		if createdBy != "" && rec.CreatedBy.ID != createdBy {
			continue
		}
		matched = append(matched, *rec)
	}
	s.store.mu.Unlock()

	sortRecipes(matched, sortBy, sortOrder)

	total := len(matched)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	pageItems := matched[start:end]
	if pageItems == nil {
		pageItems = []models.Recipe{}
	}

	respondWithJSON(w, http.StatusOK, models.RecipesResponse{
		Recipes: pageItems,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecipes: total,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
	})
}

func hasIngredient(rec *models.Recipe, needle string) bool {
	for _, ing := range rec.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), needle) {
			return true
		}
	}
	return false
}

func sortRecipes(recipes []models.Recipe, sortBy, sortOrder string) {
	if !models.ValidSortKey(sortBy) {
		sortBy = "createdAt"
	}
	asc := sortOrder == "asc"
	sort.SliceStable(recipes, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "averageRating":
			less = recipes[i].AverageRating < recipes[j].AverageRating
		case "cookingTime":
			less = recipes[i].CookingTime < recipes[j].CookingTime
		case "title":
			less = recipes[i].Title < recipes[j].Title
		default:
			less = recipes[i].CreatedAt.Before(recipes[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

func atoiMin(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.store.mu.Lock()
	rec, ok := s.store.recipes[ps.ByName("id")]
	var out models.Recipe
	if ok {
		out = *rec
	}
	s.store.mu.Unlock()

	if !ok {
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	respondWithJSON(w, http.StatusOK, out)
}

func decodeRecipeInput(r *http.Request) (models.RecipeInput, string) {
	var in models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, "Invalid JSON"
	}
	if strings.TrimSpace(in.Title) == "" {
		return in, "Title is required"
	}
	if in.CookingTime <= 0 {
		return in, "Cooking time must be positive"
	}
	if len(in.Ingredients) == 0 {
		return in, "At least one ingredient is required"
	}
	if len(in.Steps) == 0 {
		return in, "At least one step is required"
	}
	return in, ""
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, msg := decodeRecipeInput(r)
	if msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now().UTC()
	rec := models.Recipe{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Image:       in.Image,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		CookingTime: in.CookingTime,
		Calories:    in.Calories,
		Cuisine:     in.Cuisine,
		Diet:        in.Diet,
		Difficulty:  in.Difficulty,
		CreatedBy:   requester(r),
		Ratings:     []models.Rating{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.mu.Lock()
	s.store.recipes[rec.ID] = &rec
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, models.RecipeResponse{Message: "Recipe created", Recipe: rec})
}

func (s *Server) updateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	in, msg := decodeRecipeInput(r)
	if msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}
	user := requester(r)

	s.store.mu.Lock()
	rec, ok := s.store.recipes[ps.ByName("id")]
	if !ok {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if rec.CreatedBy.ID != user.ID {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusForbidden, "Only the owner can edit this recipe")
		return
	}
	rec.Title = in.Title
	rec.Image = in.Image
	rec.Ingredients = in.Ingredients
	rec.Steps = in.Steps
	rec.CookingTime = in.CookingTime
	rec.Calories = in.Calories
	rec.Cuisine = in.Cuisine
	rec.Diet = in.Diet
	rec.Difficulty = in.Difficulty
	rec.UpdatedAt = time.Now().UTC()
	out := *rec
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusOK, models.RecipeResponse{Message: "Recipe updated", Recipe: out})
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requester(r)
	id := ps.ByName("id")

	s.store.mu.Lock()
	rec, ok := s.store.recipes[id]
	if !ok {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if rec.CreatedBy.ID != user.ID {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusForbidden, "Only the owner can delete this recipe")
		return
	}
	delete(s.store.recipes, id)
	delete(s.store.comments, id)
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Recipe deleted"})
}

// rateRecipe replaces any prior rating by the same user, never appends a
// second entry, then recomputes the mean.
func (s *Server) rateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.Score < 1 || body.Score > 5 || body.Score != math.Trunc(body.Score) {
		respondWithError(w, http.StatusBadRequest, "Score must be an integer between 1 and 5")
		return
	}
	user := requester(r)

	s.store.mu.Lock()
	rec, ok := s.store.recipes[ps.ByName("id")]
	if !ok {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if rec.CreatedBy.ID == user.ID {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusForbidden, "You cannot rate your own recipe")
		return
	}

	replaced := false
	for i := range rec.Ratings {
		if rec.Ratings[i].User.ID == user.ID {
			rec.Ratings[i].Score = int(body.Score)
			replaced = true
			break
		}
	}
	if !replaced {
		rec.Ratings = append(rec.Ratings, models.Rating{User: user, Score: int(body.Score)})
	}

	sum := 0
	for _, rating := range rec.Ratings {
		sum += rating.Score
	}
	rec.AverageRating = float64(sum) / float64(len(rec.Ratings))
	avg := rec.AverageRating
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusOK, models.RateResponse{Message: "Rating submitted", AverageRating: avg})
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requester(r)
	id := ps.ByName("id")

	s.store.mu.Lock()
	if _, ok := s.store.recipes[id]; !ok {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	favs := s.store.favorites[user.ID]
	if favs == nil {
		favs = make(map[string]bool)
		s.store.favorites[user.ID] = favs
	}
	favorited := !favs[id]
	if favorited {
		favs[id] = true
	} else {
		delete(favs, id)
	}
	s.store.mu.Unlock()

	msg := "Removed from favorites"
	if favorited {
		msg = "Added to favorites"
	}
	respondWithJSON(w, http.StatusOK, models.FavoriteResponse{Message: msg, IsFavorited: favorited})
}
