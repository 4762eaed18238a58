// Package metrics registra las métricas Prometheus del motor de
// recomendaciones y del análisis de sentimiento.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal cuenta las recomendaciones por resultado (ok, not_found, unavailable, error).
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_recommendations_total",
			Help: "Total de pedidos de recomendación por resultado",
		},
		[]string{"outcome"},
	)

	// RecommendationDuration mide la consulta top-K (sin transporte).
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movierec_recommendation_duration_seconds",
			Help:    "Duración de la consulta de similitud",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// ReviewsClassifiedTotal cuenta reseñas por etiqueta (positive, negative, unknown).
	ReviewsClassifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_reviews_classified_total",
			Help: "Reseñas procesadas por etiqueta de sentimiento",
		},
		[]string{"label"},
	)

	// ArtifactAvailable vale 1 si el artefacto se cargó y 0 si no.
	ArtifactAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movierec_artifact_available",
			Help: "Disponibilidad de cada artefacto cargado al arrancar",
		},
		[]string{"artifact"},
	)

	// CacheRequestsTotal cuenta aciertos/fallos del cache Redis de recomendaciones.
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_cache_requests_total",
			Help: "Consultas al cache de recomendaciones",
		},
		[]string{"result"},
	)
)

// ObserveRecommendation registra una consulta top-K.
func ObserveRecommendation(outcome string, elapsed time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		RecommendationDuration.Observe(elapsed.Seconds())
	}
}

// ObserveReview registra la etiqueta final de una reseña.
func ObserveReview(label string) {
	ReviewsClassifiedTotal.WithLabelValues(label).Inc()
}

// SetArtifact publica si un artefacto está disponible.
func SetArtifact(name string, ok bool) {
	v := 0.0
	if ok {
		v = 1
	}
	ArtifactAvailable.WithLabelValues(name).Set(v)
}
