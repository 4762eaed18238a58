package service

import (
	"fmt"

	"github.com/kadivar3110/movie-recommender-system/internal/apperr"
	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
)

const MaxSearchLimit = 100

type MovieService struct {
	catalog *catalog.Catalog
}

func NewMovieService(c *catalog.Catalog) *MovieService {
	return &MovieService{catalog: c}
}

// Search filtra títulos del catálogo (las opciones del selector).
func (s *MovieService) Search(q string, limit int) ([]models.Movie, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("movies: catálogo no cargado: %w", apperr.ErrUnavailable)
	}
	if limit <= 0 || limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return s.catalog.Search(q, limit), nil
}
