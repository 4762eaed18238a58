package db

import (
	"context"
	"fmt"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongo abre la conexión y hace ping. Con MONGO_URI vacío devuelve
// (nil, nil): Mongo es opcional.
func ConnectMongo(cfg *config.Config, log *zap.Logger) (*mongo.Database, error) {
	if cfg.MongoURI == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("[mongo] error conectando: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("[mongo] ping falló: %w", err)
	}

	log.Named("mongo").Info("conectado", zap.String("db", cfg.MongoDB))
	return client.Database(cfg.MongoDB), nil
}
