package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/masego-dev/clubctl/internal/api/response"
	"github.com/masego-dev/clubctl/internal/storage"
)

// MediaHandler serves uploaded files and generated QR passes
type MediaHandler struct {
	storage storage.Storage
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(storage storage.Storage) *MediaHandler {
	return &MediaHandler{
		storage: storage,
	}
}

// Get handles GET /media/{id}
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	blob, err := h.storage.GetBlob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Raw(w, blob.ContentType, blob.Data)
}
