package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kadivar3110/movie-recommender-system/internal/cache"
	"github.com/kadivar3110/movie-recommender-system/internal/metrics"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
	"github.com/kadivar3110/movie-recommender-system/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HistoryReader lista el historial guardado en Mongo.
type HistoryReader interface {
	Recent(ctx context.Context, title string, limit int64) ([]models.Recommendation, error)
}

type RecommendHandler struct {
	svc      *service.RecommendService
	cache    *cache.Cache
	ttl      int
	defaultK int
	history  HistoryReader
	log      *zap.Logger
}

// NewRecommendHandler: cache puede ser nil (sin Redis).
func NewRecommendHandler(s *service.RecommendService, c *cache.Cache, ttlSeconds, defaultK int, log *zap.Logger) *RecommendHandler {
	if defaultK <= 0 {
		defaultK = service.DefaultK
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RecommendHandler{svc: s, cache: c, ttl: ttlSeconds, defaultK: defaultK, log: log.Named("http")}
}

func (h *RecommendHandler) WithHistory(hr HistoryReader) *RecommendHandler {
	h.history = hr
	return h
}

// titleParam: chi rutea sobre RawPath cuando el título trae "/" escapada,
// en ese caso el parámetro llega sin decodificar.
func titleParam(r *http.Request) (string, error) {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return title, nil
	}
	t, err := url.PathUnescape(title)
	if err != nil {
		return "", fmt.Errorf("título inválido: %q", title)
	}
	return t, nil
}

func cacheKey(title string, k int) string {
	return fmt.Sprintf("rec:title:%s:k:%d", title, k)
}

// parseK: vacío = default, inválido = error, y se recorta a [1, MaxK].
func (h *RecommendHandler) parseK(raw string) (int, error) {
	if raw == "" {
		return h.defaultK, nil
	}
	k, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("k inválido: %q", raw)
	}
	if k < 1 {
		k = 1
	} else if k > service.MaxK {
		k = service.MaxK
	}
	return k, nil
}

// @Summary Películas parecidas a un título
// @Tags recommend
// @Produce json
// @Param title path string true "título exacto"
// @Param k query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.RecommendationResult
// @Failure 404 {object} errorBody
// @Failure 503 {object} errorBody
// @Security BearerAuth
// @Router /movies/{title}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	k, err := h.parseK(r.URL.Query().Get("k"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"
	key := cacheKey(title, k)

	// 1) Cache Redis (solo si refresh = false)
	if h.cache != nil && !refresh {
		var cached models.RecommendationResult
		ok, err := h.cache.GetJSON(r.Context(), key, &cached)
		if err != nil {
			h.log.Warn("error leyendo cache", zap.String("key", key), zap.Error(err))
		}
		if ok {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			writeJSON(w, http.StatusOK, cached)
			return
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	}

	res, err := h.svc.Recommend(r.Context(), title, k)
	if err != nil {
		writeError(w, err)
		return
	}

	// 2) Cachear en Redis
	if err := h.cache.SetJSON(r.Context(), key, res, h.ttl); err != nil {
		h.log.Warn("error cacheando recomendación", zap.String("key", key), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, res)
}

// @Summary Historial de recomendaciones servidas
// @Tags recommend
// @Produce json
// @Param title query string false "filtrar por título consultado"
// @Param limit query int false "límite (default 20)"
// @Success 200 {array} models.Recommendation
// @Failure 503 {object} errorBody
// @Security BearerAuth
// @Router /recommendations/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "historial deshabilitado (sin Mongo)"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	recs, err := h.history.Recent(r.Context(), r.URL.Query().Get("title"), int64(limit))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
