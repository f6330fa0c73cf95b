package models

// Response envelopes mirroring the backend contract. Every mutating endpoint
// carries a short message plus the affected resource or derived aggregate.

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type RecipesResponse struct {
	Recipes    []Recipe   `json:"recipes"`
	Pagination Pagination `json:"pagination"`
}

type RecipeResponse struct {
	Message string `json:"message"`
	Recipe  Recipe `json:"recipe"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RateResponse struct {
	Message       string  `json:"message"`
	AverageRating float64 `json:"averageRating"`
}

type FavoriteResponse struct {
	Message     string `json:"message"`
	IsFavorited bool   `json:"isFavorited"`
}

type CommentsResponse struct {
	Message  string    `json:"message"`
	Comments []Comment `json:"comments"`
}

type CommentResponse struct {
	Message string  `json:"message"`
	Comment Comment `json:"comment"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}
