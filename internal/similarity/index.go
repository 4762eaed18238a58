// Package similarity expone la matriz de similitud precalculada entre películas
// y las consultas top-K sobre ella.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/kadivar3110/movie-recommender-system/internal/apperr"

	"gonum.org/v1/gonum/mat"
)

// Neighbor es un candidato de la fila consultada: índice de catálogo + score.
type Neighbor struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Index envuelve una matriz N×N inmutable. La fila/columna i corresponde
// a la película i del catálogo. Es seguro para lectores concurrentes.
type Index struct {
	m *mat.Dense
	n int
}

// NewIndex valida que la matriz sea cuadrada. La matriz no debe
// modificarse después de entregarla.
func NewIndex(m *mat.Dense) (*Index, error) {
	if m == nil {
		return nil, fmt.Errorf("similarity: matriz nil")
	}
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("similarity: matriz no cuadrada (%dx%d)", r, c)
	}
	return &Index{m: m, n: r}, nil
}

// FromRows construye el índice desde filas (formato del artefacto JSON).
func FromRows(rows [][]float64) (*Index, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("similarity: matriz vacía")
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("similarity: fila %d tiene %d columnas, se esperaban %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return NewIndex(mat.NewDense(n, n, data))
}

// Len devuelve N.
func (ix *Index) Len() int { return ix.n }

// TopSimilar devuelve hasta k vecinos de itemIndex, excluyéndolo a él mismo,
// ordenados por score descendente y, en empate, por índice ascendente.
func (ix *Index) TopSimilar(itemIndex, k int) ([]Neighbor, error) {
	if itemIndex < 0 || itemIndex >= ix.n {
		return nil, fmt.Errorf("similarity: índice %d fuera de rango [0,%d): %w", itemIndex, ix.n, apperr.ErrNotFound)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	row := ix.m.RawRowView(itemIndex)
	candidates := make([]Neighbor, 0, len(row))
	for j, score := range row {
		candidates = append(candidates, Neighbor{Index: j, Score: score})
	}

	sort.Slice(candidates, func(a, b int) bool {
		sa, sb := candidates[a].Score, candidates[b].Score
		// NaN siempre al final
		if math.IsNaN(sa) || math.IsNaN(sb) {
			if math.IsNaN(sa) && math.IsNaN(sb) {
				return candidates[a].Index < candidates[b].Index
			}
			return !math.IsNaN(sa)
		}
		if sa != sb {
			return sa > sb
		}
		return candidates[a].Index < candidates[b].Index
	})

	out := make([]Neighbor, 0, k)
	for _, c := range candidates {
		if c.Index == itemIndex {
			continue
		}
		out = append(out, c)
		if len(out) == k {
			break
		}
	}
	return out, nil
}
