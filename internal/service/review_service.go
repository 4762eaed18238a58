package service

import (
	"errors"

	"github.com/kadivar3110/movie-recommender-system/internal/apperr"
	"github.com/kadivar3110/movie-recommender-system/internal/metrics"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
	"github.com/kadivar3110/movie-recommender-system/internal/sentiment"

	"go.uber.org/zap"
)

// SentimentClassifier es lo que el servicio necesita del pipeline.
type SentimentClassifier interface {
	Available() bool
	Classify(text string) (sentiment.Label, error)
}

type ReviewService struct {
	classifier SentimentClassifier
	log        *zap.Logger
}

func NewReviewService(c SentimentClassifier, log *zap.Logger) *ReviewService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewService{classifier: c, log: log.Named("reviews")}
}

// Analyze clasifica cada reseña por separado. Una reseña que no se puede
// clasificar queda con Sentiment nil y no cuenta; el resto sigue.
func (s *ReviewService) Analyze(reviews []models.ReviewInput) models.ReviewAnalysis {
	return s.AnalyzeStream(reviews, nil)
}

// AnalyzeStream es Analyze pero llama a emit con cada registro, en el orden
// de entrada, apenas está listo.
func (s *ReviewService) AnalyzeStream(reviews []models.ReviewInput, emit func(i int, rec models.ReviewRecord)) models.ReviewAnalysis {
	out := models.ReviewAnalysis{
		Records: make([]models.ReviewRecord, 0, len(reviews)),
	}

	for i, r := range reviews {
		rec := models.ReviewRecord{Author: r.Author, Content: r.Content}

		if label, ok := s.classify(r.Content); ok {
			v := int(label)
			rec.Sentiment = &v
			if label == sentiment.Positive {
				out.Positive++
			} else {
				out.Negative++
			}
			metrics.ObserveReview(label.String())
		} else {
			metrics.ObserveReview("unknown")
		}

		out.Records = append(out.Records, rec)
		if emit != nil {
			emit(i, rec)
		}
	}

	out.Total = len(out.Records)
	return out
}

func (s *ReviewService) classify(content string) (sentiment.Label, bool) {
	if content == "" || s.classifier == nil || !s.classifier.Available() {
		return 0, false
	}
	label, err := s.classifier.Classify(content)
	if err != nil {
		if !errors.Is(err, apperr.ErrClassification) {
			s.log.Warn("error inesperado clasificando", zap.Error(err))
		} else {
			s.log.Debug("reseña sin clasificar", zap.Error(err))
		}
		return 0, false
	}
	return label, true
}
