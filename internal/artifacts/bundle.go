package artifacts

import (
	"context"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/metrics"
	"github.com/kadivar3110/movie-recommender-system/internal/sentiment"
	"github.com/kadivar3110/movie-recommender-system/internal/similarity"

	"go.uber.org/zap"
)

// Bundle es el contexto de solo lectura que reciben los servicios. Cualquier
// campo puede faltar: Catalog/Index nil, Sentiment no disponible.
type Bundle struct {
	Catalog   *catalog.Catalog
	Index     *similarity.Index
	Sentiment *sentiment.Pipeline
}

// Status resume qué artefactos están cargados.
type Status struct {
	Catalog    bool `json:"catalog"`
	Similarity bool `json:"similarity"`
	Sentiment  bool `json:"sentiment"`
	Movies     int  `json:"movies"`
}

func (b *Bundle) Status() Status {
	s := Status{
		Catalog:    b.Catalog != nil,
		Similarity: b.Index != nil,
		Sentiment:  b.Sentiment.Available(),
	}
	if b.Catalog != nil {
		s.Movies = b.Catalog.Len()
	}
	return s
}

// CatalogSource permite cargar el catálogo desde otro lado (Mongo).
type CatalogSource func(ctx context.Context) (*catalog.Catalog, error)

// Options de carga.
type Options struct {
	Dir     string
	BaseURL string
	Timeout time.Duration
	// si es nil se usa Dir/movies.json
	Catalog CatalogSource
	Wrap    BodyWrapper
}

// Load carga todo lo que pueda. Nunca falla: lo que no se pudo cargar queda
// ausente y se registra un warning.
func Load(ctx context.Context, opts Options, log *zap.Logger) *Bundle {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("artifacts")

	dl := NewDownloader(opts.BaseURL, opts.Dir, opts.Timeout, log)
	dl.Wrap = opts.Wrap

	b := &Bundle{}

	// catálogo
	if opts.Catalog != nil {
		c, err := opts.Catalog(ctx)
		if err != nil {
			log.Warn("catálogo no disponible", zap.Error(err))
		} else {
			b.Catalog = c
		}
	} else if path, err := dl.Ensure(ctx, CatalogFile); err != nil {
		log.Warn("catálogo no disponible", zap.Error(err))
	} else if c, err := catalog.LoadFile(path); err != nil {
		log.Warn("catálogo inválido", zap.Error(err))
	} else {
		b.Catalog = c
	}

	// matriz de similitud
	if path, err := dl.Ensure(ctx, SimilarityFile); err != nil {
		log.Warn("matriz de similitud no disponible", zap.Error(err))
	} else if ix, err := similarity.LoadFile(path); err != nil {
		log.Warn("matriz de similitud inválida", zap.Error(err))
	} else {
		b.Index = ix
	}
	// fila i del catálogo == fila i de la matriz; si no coinciden no se recomienda nada
	if b.Index != nil && (b.Catalog == nil || b.Catalog.Len() != b.Index.Len()) {
		movies := 0
		if b.Catalog != nil {
			movies = b.Catalog.Len()
		}
		log.Warn("catálogo y matriz no coinciden, recomendaciones deshabilitadas",
			zap.Int("movies", movies), zap.Int("matrix", b.Index.Len()))
		b.Index = nil
	}

	// sentimiento
	b.Sentiment = loadSentiment(ctx, dl, log)

	st := b.Status()
	metrics.SetArtifact("catalog", st.Catalog)
	metrics.SetArtifact("similarity", st.Similarity)
	metrics.SetArtifact("sentiment", st.Sentiment)
	log.Info("artefactos cargados",
		zap.Bool("catalog", st.Catalog),
		zap.Int("movies", st.Movies),
		zap.Bool("similarity", st.Similarity),
		zap.Bool("sentiment", st.Sentiment),
	)
	return b
}

func loadSentiment(ctx context.Context, dl *Downloader, log *zap.Logger) *sentiment.Pipeline {
	var (
		vec sentiment.Vectorizer
		clf sentiment.Classifier
	)

	if path, err := dl.Ensure(ctx, VectorizerFile); err != nil {
		log.Warn("vectorizador no disponible", zap.Error(err))
	} else if v, err := sentiment.LoadVectorizer(path); err != nil {
		log.Warn("vectorizador inválido", zap.Error(err))
	} else {
		vec = v
	}

	if path, err := dl.Ensure(ctx, ModelFile); err != nil {
		log.Warn("modelo de sentimiento no disponible", zap.Error(err))
	} else if c, err := sentiment.LoadClassifier(path); err != nil {
		log.Warn("modelo de sentimiento inválido", zap.Error(err))
	} else {
		clf = c
	}

	if vec != nil && clf != nil {
		if err := sentiment.CheckCompatible(vec, clf); err != nil {
			log.Warn("vectorizador y modelo incompatibles, sentimiento deshabilitado", zap.Error(err))
			return sentiment.NewPipeline(nil, nil)
		}
	}
	return sentiment.NewPipeline(vec, clf)
}
