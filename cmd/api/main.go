package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/artifacts"
	"github.com/kadivar3110/movie-recommender-system/internal/cache"
	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/config"
	"github.com/kadivar3110/movie-recommender-system/internal/db"
	"github.com/kadivar3110/movie-recommender-system/internal/handler"
	"github.com/kadivar3110/movie-recommender-system/internal/logger"
	"github.com/kadivar3110/movie-recommender-system/internal/repository"
	"github.com/kadivar3110/movie-recommender-system/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// @title Movie Recommender API
// @version 1.0
// @description Recomendaciones por similitud de contenido y sentimiento de reseñas
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.MustNew(cfg.LogDevelopment)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo y Redis (opcionales)
	mdb, err := db.ConnectMongo(cfg, log)
	if err != nil {
		log.Warn("Mongo deshabilitado", zap.Error(err))
		mdb = nil
	}
	defer disconnect(mdb)

	rdb, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Warn("Redis deshabilitado", zap.Error(err))
		rdb = nil
	}
	defer func() { _ = rdb.Close() }()

	// artefactos
	opts := artifacts.Options{
		Dir:     cfg.ArtifactsDir,
		BaseURL: cfg.ArtifactBaseURL,
		Timeout: cfg.ArtifactTimeout,
	}
	if cfg.CatalogSource == "mongo" {
		if mdb == nil {
			log.Warn("CATALOG_SOURCE=mongo sin Mongo conectado, usando archivo")
		} else {
			movieRepo := repository.NewMovieRepository(mdb)
			opts.Catalog = func(ctx context.Context) (*catalog.Catalog, error) {
				return movieRepo.LoadCatalog(ctx)
			}
		}
	}
	bundle := artifacts.Load(ctx, opts, log)

	// services
	recSvc := service.NewRecommendService(bundle.Catalog, bundle.Index, log)
	reviewSvc := service.NewReviewService(bundle.Sentiment, log)
	movieSvc := service.NewMovieService(bundle.Catalog)

	// handlers
	recH := handler.NewRecommendHandler(recSvc, rdb, cfg.CacheTTLSeconds, cfg.DefaultK, log)
	if mdb != nil {
		recRepo := repository.NewRecommendationRepository(mdb)
		recSvc.WithHistory(recRepo)
		recH.WithHistory(recRepo)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Bundle:          bundle,
		Movies:          handler.NewMovieHandler(movieSvc),
		Recommend:       recH,
		Reviews:         handler.NewReviewHandler(reviewSvc, cfg.ReviewLimit, log),
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Log:             log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("HTTP escuchando", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("servidor HTTP", zap.Error(err))
	}
}

func disconnect(mdb *mongo.Database) {
	if mdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = mdb.Client().Disconnect(ctx)
}
