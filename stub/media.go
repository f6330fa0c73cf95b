package stub

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"forkful/models"
)

const maxUploadBytes = 10 << 20

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error reading file")
		return
	}
	if len(data) == 0 {
		respondWithError(w, http.StatusBadRequest, "Empty image file")
		return
	}

	publicID := uuid.NewString()
	s.store.mu.Lock()
	s.store.uploads[publicID] = data
	s.store.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, models.UploadResponse{
		Message:  "Image uploaded",
		ImageURL: "/uploads/" + publicID + ".jpg",
		PublicID: publicID,
	})
}

func (s *Server) deleteImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	publicID := ps.ByName("publicId")

	s.store.mu.Lock()
	_, ok := s.store.uploads[publicID]
	delete(s.store.uploads, publicID)
	s.store.mu.Unlock()

	if !ok {
		respondWithError(w, http.StatusNotFound, "Image not found")
		return
	}
	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Image deleted"})
}
