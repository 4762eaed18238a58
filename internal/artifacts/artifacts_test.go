package artifacts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/catalog"
	"github.com/kadivar3110/movie-recommender-system/internal/models"
	"github.com/kadivar3110/movie-recommender-system/internal/sentiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixtures = map[string]string{
	CatalogFile:    `[{"id": 1, "title": "A"}, {"id": 2, "title": "B"}, {"id": 3, "title": "C"}]`,
	SimilarityFile: `[[1, 0.2, 0.8], [0.2, 1, 0.5], [0.8, 0.5, 1]]`,
	VectorizerFile: `{"type": "count", "vocabulary": {"good": 0, "bad": 1}}`,
	ModelFile:      `{"type": "linear", "coef": [1, -1], "intercept": 0}`,
}

func newServer(t *testing.T, files map[string]string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		body, ok := files[filepath.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestEnsureDownloadsMissingFile(t *testing.T) {
	var hits int32
	srv := newServer(t, fixtures, &hits)
	dir := filepath.Join(t.TempDir(), "nested")

	d := NewDownloader(srv.URL+"/", dir, 5*time.Second, zap.NewNop())
	var wrapped string
	d.Wrap = func(name string, size int64, body io.Reader) io.Reader {
		wrapped = name
		return body
	}

	path, err := d.Ensure(context.Background(), ModelFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ModelFile), path)
	assert.Equal(t, ModelFile, wrapped)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixtures[ModelFile], string(b))

	// segunda vez no vuelve a pedirlo
	_, err = d.Ensure(context.Background(), ModelFile)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

func TestEnsureKeepsExistingFile(t *testing.T) {
	var hits int32
	srv := newServer(t, fixtures, &hits)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{ModelFile: "local"})

	d := NewDownloader(srv.URL, dir, time.Second, nil)
	path, err := d.Ensure(context.Background(), ModelFile)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "local", string(b))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestEnsureFailures(t *testing.T) {
	srv := newServer(t, map[string]string{}, nil)
	dir := t.TempDir()

	_, err := NewDownloader(srv.URL, dir, time.Second, nil).Ensure(context.Background(), ModelFile)
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, ModelFile))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	_, err = NewDownloader("", dir, time.Second, nil).Ensure(context.Background(), ModelFile)
	assert.Error(t, err)
}

func TestLoadAllAvailable(t *testing.T) {
	srv := newServer(t, fixtures, nil)

	b := Load(context.Background(), Options{Dir: t.TempDir(), BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())

	st := b.Status()
	assert.Equal(t, Status{Catalog: true, Similarity: true, Sentiment: true, Movies: 3}, st)

	got, err := b.Index.TopSimilar(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Index)

	label, err := b.Sentiment.Classify("good good")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Positive, label)
}

func TestLoadDegraded(t *testing.T) {
	b := Load(context.Background(), Options{Dir: t.TempDir()}, nil)

	assert.Equal(t, Status{}, b.Status())
	assert.Nil(t, b.Catalog)
	assert.Nil(t, b.Index)
	require.NotNil(t, b.Sentiment)
	assert.False(t, b.Sentiment.Available())
}

func TestLoadCatalogMatrixMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		CatalogFile:    `[{"id": 1, "title": "A"}, {"id": 2, "title": "B"}]`,
		SimilarityFile: fixtures[SimilarityFile],
	})

	b := Load(context.Background(), Options{Dir: dir}, nil)
	assert.NotNil(t, b.Catalog)
	assert.Nil(t, b.Index)
}

func TestLoadIncompatibleSentiment(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		VectorizerFile: fixtures[VectorizerFile],
		ModelFile:      `{"type": "linear", "coef": [1, -1, 3]}`,
	})

	b := Load(context.Background(), Options{Dir: dir}, nil)
	assert.False(t, b.Sentiment.Available())
}

func TestLoadCatalogSource(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{SimilarityFile: `[[1, 0.3], [0.3, 1]]`})

	src := func(ctx context.Context) (*catalog.Catalog, error) {
		return catalog.New([]models.Movie{{ID: 5, Title: "X"}, {ID: 6, Title: "Y"}}), nil
	}
	b := Load(context.Background(), Options{Dir: dir, Catalog: src}, nil)
	assert.True(t, b.Status().Similarity)
	assert.Equal(t, 2, b.Status().Movies)

	failing := func(ctx context.Context) (*catalog.Catalog, error) { return nil, errors.New("mongo down") }
	b = Load(context.Background(), Options{Dir: dir, Catalog: failing}, nil)
	assert.False(t, b.Status().Catalog)
	assert.False(t, b.Status().Similarity)
}
