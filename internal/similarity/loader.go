package similarity

import (
	"bufio"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// LoadFile lee el artefacto de similitud: un array JSON de filas.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo matriz de similitud: %w", err)
	}
	defer f.Close()

	var rows [][]float64
	if err := json.NewDecoder(bufio.NewReaderSize(f, 1<<20)).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decodificando matriz de similitud: %w", err)
	}
	return FromRows(rows)
}
