// Package apperr agrupa los errores centinela que cruzan capas
// (índice, clasificador, servicios y handlers).
package apperr

import "errors"

var (
	// ErrNotFound: título o índice que no existe en el catálogo. No se reintenta.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable: un artefacto (matriz, vectorizador, modelo) no se pudo cargar.
	ErrUnavailable = errors.New("unavailable")

	// ErrClassification: fallo puntual al normalizar/vectorizar/predecir un texto.
	ErrClassification = errors.New("classification failed")
)
