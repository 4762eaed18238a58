package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// mismo criterio que el token_pattern por defecto de sklearn: corridas de 2+ caracteres de palabra
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// CountVectorizer es un bag-of-words con vocabulario fijo. Con IDF se
// comporta como TF-IDF.
type CountVectorizer struct {
	Vocabulary  map[string]int
	IDF         []float64
	Binary      bool
	SublinearTF bool
	Norm        string // "", "l1" o "l2"
	NgramMin    int
	NgramMax    int
	StopWords   map[string]struct{}
}

// Dim es la longitud del vector de salida.
func (v *CountVectorizer) Dim() int {
	if len(v.IDF) > 0 {
		return len(v.IDF)
	}
	maxIdx := -1
	for _, idx := range v.Vocabulary {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx + 1
}

// Validate revisa que el vocabulario y el IDF sean consistentes.
func (v *CountVectorizer) Validate() error {
	if len(v.Vocabulary) == 0 {
		return fmt.Errorf("vectorizer: vocabulario vacío")
	}
	dim := v.Dim()
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= dim {
			return fmt.Errorf("vectorizer: término %q con índice %d fuera de [0,%d)", term, idx, dim)
		}
	}
	switch v.Norm {
	case "", "l1", "l2":
	default:
		return fmt.Errorf("vectorizer: norm %q no soportada", v.Norm)
	}
	if v.NgramMin > v.NgramMax {
		return fmt.Errorf("vectorizer: ngram_range inválido (%d,%d)", v.NgramMin, v.NgramMax)
	}
	return nil
}

func (v *CountVectorizer) ngrams(tokens []string) []string {
	lo, hi := v.NgramMin, v.NgramMax
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	if lo == 1 && hi == 1 {
		return tokens
	}
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// Transform cuenta términos del vocabulario; los desconocidos se ignoran.
func (v *CountVectorizer) Transform(text string) ([]float64, error) {
	dim := v.Dim()
	if dim <= 0 {
		return nil, fmt.Errorf("vectorizer: sin dimensiones")
	}
	vec := make([]float64, dim)

	tokens := tokenRe.FindAllString(text, -1)
	if len(v.StopWords) > 0 {
		kept := tokens[:0]
		for _, t := range tokens {
			if _, stop := v.StopWords[t]; !stop {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}

	for _, term := range v.ngrams(tokens) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}

	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		switch {
		case v.Binary:
			vec[i] = 1
		case v.SublinearTF:
			vec[i] = 1 + math.Log(tf)
		}
		if len(v.IDF) > 0 {
			vec[i] *= v.IDF[i]
		}
	}

	switch v.Norm {
	case "l2":
		if n := floats.Norm(vec, 2); n > 0 {
			floats.Scale(1/n, vec)
		}
	case "l1":
		if n := floats.Norm(vec, 1); n > 0 {
			floats.Scale(1/n, vec)
		}
	}
	return vec, nil
}
