package stub

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"forkful/models"
)

const maxCommentLen = 500

func (s *Server) listComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	s.store.mu.Lock()
	_, ok := s.store.recipes[id]
	thread := make([]models.Comment, len(s.store.comments[id]))
	copy(thread, s.store.comments[id])
	s.store.mu.Unlock()

	if !ok {
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	respondWithJSON(w, http.StatusOK, models.CommentsResponse{Message: "Comments fetched", Comments: thread})
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		respondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		respondWithError(w, http.StatusBadRequest, "Comment cannot exceed 500 characters")
		return
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		RecipeID:  id,
		CreatedBy: requester(r),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.mu.Lock()
	if _, ok := s.store.recipes[id]; !ok {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	s.store.comments[id] = append([]models.Comment{comment}, s.store.comments[id]...)
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, models.CommentResponse{Message: "Comment added", Comment: comment})
}

// deleteComment allows the comment's author or the recipe's owner.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipeID := ps.ByName("id")
	commentID := ps.ByName("commentId")
	user := requester(r)

	s.store.mu.Lock()
	rec, ok := s.store.recipes[recipeID]
	if !ok {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	thread := s.store.comments[recipeID]
	idx := -1
	for i, c := range thread {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if thread[idx].CreatedBy.ID != user.ID && rec.CreatedBy.ID != user.ID {
		s.store.mu.Unlock()
		respondWithError(w, http.StatusForbidden, "Not allowed to delete this comment")
		return
	}
	s.store.comments[recipeID] = append(thread[:idx], thread[idx+1:]...)
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Comment deleted"})
}
