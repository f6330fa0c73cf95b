package stub

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"forkful/models"
)

type ctxKey string

const (
	userIDKey   ctxKey = "userId"
	usernameKey ctxKey = "username"
)

type claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

const tokenTTL = 72 * time.Hour

func (s *Server) mintToken(user models.User) (string, error) {
	now := time.Now()
	c := claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// authenticate guards a route: a valid bearer token puts the caller's
// identity into the request context.
func (s *Server) authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing token")
			return
		}
		c := &claims{}
		_, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		})
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, c.UserID)
		ctx = context.WithValue(ctx, usernameKey, c.Username)
		next(w, r.WithContext(ctx), ps)
	}
}

func requester(r *http.Request) models.UserRef {
	id, _ := r.Context().Value(userIDKey).(string)
	name, _ := r.Context().Value(usernameKey).(string)
	return models.UserRef{ID: id, Username: name}
}
