package catalog

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/kadivar3110/movie-recommender-system/internal/models"

	"github.com/goccy/go-json"
)

// LoadFile lee movies.json. Acepta dos formatos:
//
//	[{"id": 19995, "title": "Avatar"}, ...]
//	{"id": {"0": 19995, ...}, "title": {"0": "Avatar", ...}}
//
// El segundo es el volcado por columnas de un DataFrame; las filas se
// ordenan por su clave numérica.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leyendo catálogo: %w", err)
	}
	movies, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("catálogo %s: %w", path, err)
	}
	return New(movies), nil
}

// Decode detecta el formato por el primer carácter no vacío.
func Decode(b []byte) ([]models.Movie, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("catálogo vacío")
	}
	switch trimmed[0] {
	case '[':
		var movies []models.Movie
		if err := json.Unmarshal(trimmed, &movies); err != nil {
			return nil, err
		}
		return movies, nil
	case '{':
		return decodeColumns(trimmed)
	default:
		return nil, fmt.Errorf("formato de catálogo desconocido")
	}
}

func decodeColumns(b []byte) ([]models.Movie, error) {
	var cols map[string]map[string]json.RawMessage
	if err := json.Unmarshal(b, &cols); err != nil {
		return nil, err
	}

	ids, ok := cols["id"]
	if !ok {
		ids, ok = cols["movie_id"]
	}
	if !ok {
		return nil, fmt.Errorf("falta la columna id")
	}
	titles, ok := cols["title"]
	if !ok {
		return nil, fmt.Errorf("falta la columna title")
	}
	if len(ids) != len(titles) {
		return nil, fmt.Errorf("columnas con distinto largo (id=%d, title=%d)", len(ids), len(titles))
	}

	type row struct {
		key   int
		movie models.Movie
	}
	rows := make([]row, 0, len(ids))
	for k, rawID := range ids {
		key, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("clave de fila %q no numérica", k)
		}
		rawTitle, ok := titles[k]
		if !ok {
			return nil, fmt.Errorf("fila %s sin título", k)
		}

		var id float64
		if err := json.Unmarshal(rawID, &id); err != nil {
			return nil, fmt.Errorf("fila %s: id inválido: %w", k, err)
		}
		if id != math.Trunc(id) {
			return nil, fmt.Errorf("fila %s: id %v no entero", k, id)
		}
		var title string
		if err := json.Unmarshal(rawTitle, &title); err != nil {
			return nil, fmt.Errorf("fila %s: título inválido: %w", k, err)
		}
		rows = append(rows, row{key: key, movie: models.Movie{ID: int(id), Title: title}})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	movies := make([]models.Movie, len(rows))
	for i, r := range rows {
		movies[i] = r.movie
	}
	return movies, nil
}
