package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"forkful/models"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Username == "" || body.Email == "" || len(body.Password) < 6 {
		respondWithError(w, http.StatusBadRequest, "Username, email and a password of at least 6 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	s.store.mu.Lock()
	if _, exists := s.store.emails[body.Email]; exists {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusConflict, "Email already registered")
		return
	}
	user := models.User{ID: uuid.NewString(), Username: body.Username, Email: body.Email}
	s.store.users[user.ID] = &userRecord{User: user, PasswordHash: hash}
	s.store.emails[user.Email] = user.ID
	s.store.mu.Unlock()

	token, err := s.mintToken(user)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	respondWithJSON(w, http.StatusCreated, models.AuthResponse{
		Message: "Signup successful", Token: token, User: user,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.store.mu.Lock()
	id, ok := s.store.emails[strings.ToLower(strings.TrimSpace(body.Email))]
	var rec *userRecord
	if ok {
		rec = s.store.users[id]
	}
	s.store.mu.Unlock()

	if rec == nil || bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(body.Password)) != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.mintToken(rec.User)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	respondWithJSON(w, http.StatusOK, models.AuthResponse{
		Message: "Login successful", Token: token, User: rec.User,
	})
}
