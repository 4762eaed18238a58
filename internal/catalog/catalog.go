// Package catalog mantiene la lista ordenada de películas. El orden es el
// mismo que el de las filas/columnas de la matriz de similitud y no cambia
// después de cargarse.
package catalog

import (
	"fmt"
	"strings"

	"github.com/kadivar3110/movie-recommender-system/internal/apperr"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
)

type Catalog struct {
	movies []models.Movie
	// primera fila por título exacto
	firstByTitle map[string]int
}

// New copia las películas; el slice original puede reutilizarse.
func New(movies []models.Movie) *Catalog {
	c := &Catalog{
		movies:       make([]models.Movie, len(movies)),
		firstByTitle: make(map[string]int, len(movies)),
	}
	copy(c.movies, movies)
	for i, m := range c.movies {
		if _, dup := c.firstByTitle[m.Title]; !dup {
			c.firstByTitle[m.Title] = i
		}
	}
	return c
}

func (c *Catalog) Len() int { return len(c.movies) }

// At devuelve la película de la fila i.
func (c *Catalog) At(i int) (models.Movie, bool) {
	if i < 0 || i >= len(c.movies) {
		return models.Movie{}, false
	}
	return c.movies[i], true
}

// IndexOf resuelve el título a su fila (primer match exacto).
func (c *Catalog) IndexOf(title string) (int, error) {
	if i, ok := c.firstByTitle[title]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("catalog: película %q: %w", title, apperr.ErrNotFound)
}

// Search filtra por substring sin distinguir mayúsculas, en orden de catálogo.
// limit <= 0 devuelve todo.
func (c *Catalog) Search(q string, limit int) []models.Movie {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Movie, 0)
	for _, m := range c.movies {
		if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
