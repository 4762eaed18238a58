// Package textnorm limpia el texto de las reseñas antes de vectorizarlo.
//
// La transformación tiene que ser exactamente la misma que se usó al
// entrenar el vectorizador/modelo: cualquier diferencia baja la precisión
// sin dar ningún error.
package textnorm

import (
	"regexp"
	"strings"
)

// ASCIIPunctuation es el conjunto completo de puntuación ASCII.
const ASCIIPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	// sin (?s): una etiqueta partida en varias líneas no se elimina acá,
	// solo pierde la puntuación en el paso siguiente
	htmlTagRe     = regexp.MustCompile(`<.*?>`)
	punctuationRe = regexp.MustCompile(`[` + regexp.QuoteMeta(ASCIIPunctuation) + `]`)
	// mismo conjunto que str.isspace(): \s de RE2 no incluye \v, separadores Unicode ni \x1c-\x1f
	spacesRe = regexp.MustCompile(`[\s\v\x1c-\x1f\x{85}\p{Z}]+`)
)

// Normalize aplica, en orden: minúsculas, quitar etiquetas <...>,
// quitar puntuación ASCII y colapsar espacios (con trim).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// mapeo completo de Unicode: İ pasa a i + punto combinante, no a "i"
	text = strings.ToLower(strings.ReplaceAll(text, "\u0130", "i\u0307"))
	text = htmlTagRe.ReplaceAllString(text, "")
	text = punctuationRe.ReplaceAllString(text, "")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
