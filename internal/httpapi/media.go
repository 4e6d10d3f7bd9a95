package httpapi

import (
	"net/http"

	"studylist/internal/media"
	"studylist/internal/models"
)

type resolveResponse struct {
	Type     models.ItemType `json:"type"`
	EmbedURL string          `json:"embedUrl,omitempty"`
}

// handleResolveMedia classifies a URL and, for videos, derives the
// embeddable player reference. Malformed input yields the neutral
// fallback rather than an error.
func (s *Server) handleResolveMedia(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	resp := resolveResponse{Type: media.InferItemType(rawURL)}
	if resp.Type == models.ItemVideo {
		resp.EmbedURL = media.YouTubeEmbedURL(rawURL)
	}
	writeJSON(w, http.StatusOK, resp)
}
