package handler

import (
	"net/http"
	"strconv"

	"github.com/kadivar3110/movie-recommender-system/internal/service"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Buscar películas del catálogo
// @Tags movies
// @Produce json
// @Param q query string false "búsqueda por título"
// @Param limit query int false "límite (máx 100)"
// @Success 200 {array} models.Movie
// @Failure 503 {object} errorBody
// @Router /movies [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	movies, err := h.svc.Search(q, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}
