package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/apperr"
	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/metrics"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
	"github.com/kadivar3110/movie-recommender-system/internal/similarity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultK = 5
	MaxK     = 50 // por seguridad, no deja pedir 1000 ítems
)

// HistoryStore guarda cada recomendación servida (Mongo). Es opcional.
type HistoryStore interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
}

type RecommendService struct {
	catalog *catalog.Catalog
	index   *similarity.Index
	history HistoryStore
	log     *zap.Logger
}

// NewRecommendService acepta catálogo o índice nil: en ese caso Recommend
// devuelve ErrUnavailable.
func NewRecommendService(c *catalog.Catalog, ix *similarity.Index, log *zap.Logger) *RecommendService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecommendService{catalog: c, index: ix, log: log.Named("recommend")}
}

// WithHistory activa el historial.
func (s *RecommendService) WithHistory(h HistoryStore) *RecommendService {
	s.history = h
	return s
}

// Available indica si se pueden servir recomendaciones.
func (s *RecommendService) Available() bool {
	return s.catalog != nil && s.index != nil
}

// Recommend devuelve las k películas más parecidas a `title` (primer match
// exacto del catálogo), sin incluirla. k <= 0 devuelve una lista vacía.
func (s *RecommendService) Recommend(ctx context.Context, title string, k int) (*models.RecommendationResult, error) {
	start := time.Now()
	res, err := s.recommend(title, k)
	metrics.ObserveRecommendation(outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	// historial en Mongo (no rompemos la respuesta si falla)
	if s.history != nil {
		hist := &models.Recommendation{
			ID:               uuid.NewString(),
			Query:            res.Query,
			K:                k,
			Algo:             "content-based",
			SimilarityMetric: "cosine",
			Items:            res.Items,
			CreatedAt:        time.Now(),
		}
		if err := s.history.Insert(ctx, hist); err != nil {
			s.log.Warn("error guardando recomendación", zap.String("title", title), zap.Error(err))
		}
	}

	return res, nil
}

func (s *RecommendService) recommend(title string, k int) (*models.RecommendationResult, error) {
	if !s.Available() {
		return nil, fmt.Errorf("recommend: índice de similitud no cargado: %w", apperr.ErrUnavailable)
	}

	row, err := s.catalog.IndexOf(title)
	if err != nil {
		return nil, err
	}
	query, _ := s.catalog.At(row)

	neighbors, err := s.index.TopSimilar(row, k)
	if err != nil {
		return nil, fmt.Errorf("recommend: %q: %w", title, err)
	}

	items := make([]models.RecItem, 0, len(neighbors))
	for _, n := range neighbors {
		m, ok := s.catalog.At(n.Index)
		if !ok {
			return nil, fmt.Errorf("recommend: fila %d fuera del catálogo: %w", n.Index, apperr.ErrUnavailable)
		}
		items = append(items, models.RecItem{Movie: m, Score: n.Score})
	}

	return &models.RecommendationResult{Query: query, Items: items}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
