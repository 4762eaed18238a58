// Package sentiment clasifica texto de reseñas como positivo/negativo con un
// par vectorizador + clasificador ya entrenado.
//
// El pipeline no asume ninguna familia de modelos: solo el contrato de dos
// etapas texto -> vector de features -> etiqueta.
package sentiment

import (
	"fmt"

	"github.com/kadivar3110/movie-recommender-system/internal/apperr"
	"github.com/kadivar3110/movie-recommender-system/internal/textnorm"
)

// Label es la etiqueta binaria de sentimiento.
type Label int

const (
	Negative Label = 0
	Positive Label = 1
)

func (l Label) String() string {
	switch l {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// Vectorizer transforma texto normalizado en un vector de longitud fija.
type Vectorizer interface {
	Transform(text string) ([]float64, error)
}

// Classifier predice la etiqueta de un vector de features.
type Classifier interface {
	Predict(features []float64) (int, error)
}

// Pipeline = normalizar -> vectorizar -> predecir. Es inmutable y se
// comparte entre requests sin locks.
type Pipeline struct {
	vectorizer Vectorizer
	classifier Classifier
}

// NewPipeline arma el pipeline. Si alguno de los dos artefactos es nil el
// pipeline queda "no disponible" en vez de fallar.
func NewPipeline(v Vectorizer, c Classifier) *Pipeline {
	return &Pipeline{vectorizer: v, classifier: c}
}

// Available indica si ambos artefactos están cargados.
func (p *Pipeline) Available() bool {
	return p != nil && p.vectorizer != nil && p.classifier != nil
}

// Classify devuelve ErrUnavailable si faltan artefactos y ErrClassification
// para cualquier fallo puntual con ese texto (vacío, vector inválido, panic
// del modelo). Un texto con solo espacios sí se clasifica, con el vector
// que salga.
func (p *Pipeline) Classify(text string) (label Label, err error) {
	if !p.Available() {
		return 0, fmt.Errorf("sentiment: pipeline no cargado: %w", apperr.ErrUnavailable)
	}
	if text == "" {
		return 0, fmt.Errorf("sentiment: texto vacío: %w", apperr.ErrClassification)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sentiment: panic clasificando: %v: %w", r, apperr.ErrClassification)
		}
	}()

	features, err := p.vectorizer.Transform(textnorm.Normalize(text))
	if err != nil {
		return 0, fmt.Errorf("sentiment: vectorizando: %v: %w", err, apperr.ErrClassification)
	}

	pred, err := p.classifier.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("sentiment: prediciendo: %v: %w", err, apperr.ErrClassification)
	}
	if pred != int(Negative) && pred != int(Positive) {
		return 0, fmt.Errorf("sentiment: etiqueta inesperada %d: %w", pred, apperr.ErrClassification)
	}
	return Label(pred), nil
}
