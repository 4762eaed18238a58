package repository

import (
	"context"
	"fmt"

	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection("movies")}
}

// ListIndexed devuelve las películas que tienen iIdx, ordenadas por iIdx.
// Ese orden es el de las filas de la matriz de similitud.
func (r *MovieRepository) ListIndexed(ctx context.Context) ([]models.MovieDoc, error) {
	filter := bson.M{"iIdx": bson.M{"$exists": true}}
	opts := options.Find().SetSort(bson.D{{Key: "iIdx", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MovieDoc
	for cur.Next(ctx) {
		var m models.MovieDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

// LoadCatalog arma el catálogo desde la colección. Los iIdx tienen que ser
// 0..n-1 sin huecos, si no las filas no coinciden con la matriz.
func (r *MovieRepository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	docs, err := r.ListIndexed(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: movies: %w", err)
	}
	return CatalogFromDocs(docs)
}

// CatalogFromDocs valida que los docs vengan ordenados y contiguos por iIdx.
func CatalogFromDocs(docs []models.MovieDoc) (*catalog.Catalog, error) {
	movies := make([]models.Movie, 0, len(docs))
	for i, d := range docs {
		if d.IIdx == nil || *d.IIdx != i {
			return nil, fmt.Errorf("repository: movieId %d: iIdx esperado %d", d.MovieID, i)
		}
		movies = append(movies, d.ToMovie())
	}
	return catalog.New(movies), nil
}
