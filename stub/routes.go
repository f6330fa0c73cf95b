package stub

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Server serves the full recipe service contract from memory.
type Server struct {
	store  *Store
	secret []byte
	router *httprouter.Router
}

func NewServer(secret string) *Server {
	s := &Server{
		store:  newStore(),
		secret: []byte(secret),
		router: httprouter.New(),
	}
	s.router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		fmt.Fprint(w, "200")
	})
	s.addAuthRoutes()
	s.addRecipeRoutes()
	s.addCommentRoutes()
	s.addMediaRoutes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) addAuthRoutes() {
	s.router.POST("/auth/signup", s.signup)
	s.router.POST("/auth/login", s.login)
}

func (s *Server) addRecipeRoutes() {
	s.router.GET("/recipes", s.listRecipes)
	s.router.GET("/recipes/:id", s.getRecipe)
	s.router.POST("/recipes", s.authenticate(s.createRecipe))
	s.router.PUT("/recipes/:id", s.authenticate(s.updateRecipe))
	s.router.DELETE("/recipes/:id", s.authenticate(s.deleteRecipe))
	s.router.POST("/recipes/:id/rate", s.authenticate(s.rateRecipe))
	s.router.POST("/recipes/:id/favorite", s.authenticate(s.toggleFavorite))
}

func (s *Server) addCommentRoutes() {
	s.router.GET("/recipes/:id/comments", s.listComments)
	s.router.POST("/recipes/:id/comments", s.authenticate(s.createComment))
	s.router.DELETE("/recipes/:id/comments/:commentId", s.authenticate(s.deleteComment))
}

func (s *Server) addMediaRoutes() {
	s.router.POST("/upload/image", s.authenticate(s.uploadImage))
	s.router.DELETE("/upload/image/:publicId", s.authenticate(s.deleteImage))
}
