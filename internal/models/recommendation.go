package models

import "time"

// RecItem es una película recomendada con su score de similitud.
type RecItem struct {
	Movie Movie   `json:"movie" bson:"movie"`
	Score float64 `json:"score" bson:"score"`
}

// RecommendationResult: como mucho k items, score descendente, nunca incluye Query.
type RecommendationResult struct {
	Query Movie     `json:"query"`
	Items []RecItem `json:"items"`
}

// Recommendation es el historial que se guarda en Mongo por cada respuesta servida.
type Recommendation struct {
	ID               string    `bson:"_id,omitempty"        json:"id"`
	Query            Movie     `bson:"query"                json:"query"`
	K                int       `bson:"k"                    json:"k"`
	Algo             string    `bson:"algo"                 json:"algo"`
	SimilarityMetric string    `bson:"similarityMetric"     json:"similarityMetric"`
	Items            []RecItem `bson:"items"                json:"items"`
	CreatedAt        time.Time `bson:"createdAt"            json:"createdAt"`
}
