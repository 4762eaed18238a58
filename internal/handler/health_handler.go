package handler

import (
	"net/http"

	"github.com/kadivar3110/movie-recommender-system/internal/artifacts"
)

// @Summary Healthcheck
// @Tags health
// @Success 200
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

// @Summary Artefactos cargados
// @Tags health
// @Produce json
// @Success 200 {object} artifacts.Status
// @Router /status [get]
func Status(b *artifacts.Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Status())
	}
}
