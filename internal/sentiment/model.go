package sentiment

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LinearModel cubre regresión logística y SVM lineal binarios:
// decision = coef·x + intercept; > 0 => Classes[1].
type LinearModel struct {
	Coef      []float64
	Intercept float64
	Classes   [2]int
}

func (m *LinearModel) Predict(features []float64) (int, error) {
	if len(features) != len(m.Coef) {
		return 0, fmt.Errorf("linear: %d features, el modelo espera %d", len(features), len(m.Coef))
	}
	if floats.Dot(m.Coef, features)+m.Intercept > 0 {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}

// MultinomialNB predice argmax_c(log P(c) + Σ x_i log P(i|c)).
type MultinomialNB struct {
	ClassLogPrior  []float64
	FeatureLogProb [][]float64
	Classes        []int
}

func (m *MultinomialNB) Validate() error {
	nc := len(m.ClassLogPrior)
	if nc == 0 || nc != len(m.FeatureLogProb) || nc != len(m.Classes) {
		return fmt.Errorf("multinomial_nb: clases inconsistentes (prior=%d, probs=%d, classes=%d)",
			nc, len(m.FeatureLogProb), len(m.Classes))
	}
	for c := 1; c < nc; c++ {
		if len(m.FeatureLogProb[c]) != len(m.FeatureLogProb[0]) {
			return fmt.Errorf("multinomial_nb: fila %d con longitud distinta", c)
		}
	}
	return nil
}

func (m *MultinomialNB) Predict(features []float64) (int, error) {
	if len(m.FeatureLogProb) == 0 {
		return 0, fmt.Errorf("multinomial_nb: modelo vacío")
	}
	if len(features) != len(m.FeatureLogProb[0]) {
		return 0, fmt.Errorf("multinomial_nb: %d features, el modelo espera %d", len(features), len(m.FeatureLogProb[0]))
	}

	best, bestScore := 0, 0.0
	for c := range m.ClassLogPrior {
		score := m.ClassLogPrior[c] + floats.Dot(m.FeatureLogProb[c], features)
		if c == 0 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return m.Classes[best], nil
}

func (m *LinearModel) NumFeatures() int { return len(m.Coef) }

func (m *MultinomialNB) NumFeatures() int {
	if len(m.FeatureLogProb) == 0 {
		return 0
	}
	return len(m.FeatureLogProb[0])
}

// CheckCompatible compara la dimensión del vectorizador con la que espera el
// modelo, cuando ambos la exponen. Pares opacos que no la exponen pasan.
func CheckCompatible(v Vectorizer, c Classifier) error {
	vd, ok1 := v.(interface{ Dim() int })
	cd, ok2 := c.(interface{ NumFeatures() int })
	if !ok1 || !ok2 {
		return nil
	}
	if vd.Dim() != cd.NumFeatures() {
		return fmt.Errorf("sentiment: el vectorizador produce %d features y el modelo espera %d", vd.Dim(), cd.NumFeatures())
	}
	return nil
}
