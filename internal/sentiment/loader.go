package sentiment

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// vectorizerFile es el volcado JSON de un CountVectorizer/TfidfVectorizer ya ajustado.
type vectorizerFile struct {
	Type        string         `json:"type"` // count | tfidf
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf,omitempty"`
	Binary      bool           `json:"binary,omitempty"`
	SublinearTF bool           `json:"sublinear_tf,omitempty"`
	Norm        *string        `json:"norm,omitempty"`
	NgramRange  [2]int         `json:"ngram_range,omitempty"`
	StopWords   []string       `json:"stop_words,omitempty"`
}

// modelFile es el volcado JSON del clasificador.
type modelFile struct {
	Type string `json:"type"` // linear | multinomial_nb
	// linear
	Coef      []float64 `json:"coef,omitempty"`
	Intercept float64   `json:"intercept,omitempty"`
	// multinomial_nb
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`

	Classes []int `json:"classes,omitempty"`
}

// LoadVectorizer lee vectorizer.json.
func LoadVectorizer(path string) (*CountVectorizer, error) {
	var f vectorizerFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}

	v := &CountVectorizer{
		Vocabulary:  f.Vocabulary,
		Binary:      f.Binary,
		SublinearTF: f.SublinearTF,
		NgramMin:    f.NgramRange[0],
		NgramMax:    f.NgramRange[1],
	}
	if v.NgramMin == 0 && v.NgramMax == 0 {
		v.NgramMin, v.NgramMax = 1, 1
	}
	if len(f.StopWords) > 0 {
		v.StopWords = make(map[string]struct{}, len(f.StopWords))
		for _, w := range f.StopWords {
			v.StopWords[w] = struct{}{}
		}
	}

	switch f.Type {
	case "count", "":
		if f.Norm != nil {
			v.Norm = *f.Norm
		}
	case "tfidf":
		if len(f.IDF) == 0 {
			return nil, fmt.Errorf("vectorizer %s: tfidf sin idf", path)
		}
		v.IDF = f.IDF
		// TfidfVectorizer normaliza con l2 salvo que se diga otra cosa
		v.Norm = "l2"
		if f.Norm != nil {
			v.Norm = *f.Norm
		}
	default:
		return nil, fmt.Errorf("vectorizer %s: tipo %q no soportado", path, f.Type)
	}

	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("vectorizer %s: %w", path, err)
	}
	return v, nil
}

// LoadClassifier lee model.json.
func LoadClassifier(path string) (Classifier, error) {
	var f modelFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}

	switch f.Type {
	case "linear":
		if len(f.Coef) == 0 {
			return nil, fmt.Errorf("model %s: coef vacío", path)
		}
		m := &LinearModel{Coef: f.Coef, Intercept: f.Intercept, Classes: [2]int{0, 1}}
		if len(f.Classes) == 2 {
			m.Classes = [2]int{f.Classes[0], f.Classes[1]}
		} else if len(f.Classes) != 0 {
			return nil, fmt.Errorf("model %s: linear binario necesita 2 clases, hay %d", path, len(f.Classes))
		}
		return m, nil
	case "multinomial_nb":
		m := &MultinomialNB{
			ClassLogPrior:  f.ClassLogPrior,
			FeatureLogProb: f.FeatureLogProb,
			Classes:        f.Classes,
		}
		if len(m.Classes) == 0 {
			m.Classes = make([]int, len(m.ClassLogPrior))
			for i := range m.Classes {
				m.Classes[i] = i
			}
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("model %s: tipo %q no soportado", path, f.Type)
	}
}

func readJSON(path string, dest any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leyendo %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("decodificando %s: %w", path, err)
	}
	return nil
}
