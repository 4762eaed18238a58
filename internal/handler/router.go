package handler

import (
	"net/http"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/artifacts"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// RouterConfig agrupa lo que necesita el router.
type RouterConfig struct {
	Bundle          *artifacts.Bundle
	Movies          *MovieHandler
	Recommend       *RecommendHandler
	Reviews         *ReviewHandler
	JWTSecret       string
	RateLimitPerMin int
	Log             *zap.Logger
}

// NewRouter monta middleware y rutas.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", Health)
	r.Get("/status", Status(cfg.Bundle))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// ===========================
	// API (rate limit + JWT opcional)
	// ===========================
	r.Group(func(r chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
		}
		r.Use(JWTAuth(cfg.JWTSecret))

		r.Get("/movies", cfg.Movies.Search)
		r.Get("/movies/{title}/recommendations", cfg.Recommend.GetRecommendations)
		r.Get("/recommendations/history", cfg.Recommend.GetHistory)

		r.Post("/reviews/analyze", cfg.Reviews.Analyze)
		r.Get("/ws/reviews/analyze", cfg.Reviews.AnalyzeWS)
	})

	return r
}

// RequestLogger loguea cada request con zap (método, ruta, status, duración).
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
