// Package artifacts descarga (si hace falta) y carga los artefactos
// entrenados offline: catálogo, matriz de similitud, vectorizador y modelo.
package artifacts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Nombres de archivo dentro de Dir (y en el release remoto).
const (
	CatalogFile    = "movies.json"
	SimilarityFile = "similarity.json"
	VectorizerFile = "vectorizer.json"
	ModelFile      = "model.json"
)

// AllFiles en el orden en que se descargan.
var AllFiles = []string{CatalogFile, SimilarityFile, VectorizerFile, ModelFile}

// BodyWrapper permite envolver el body de la descarga (barra de progreso).
// size es -1 si el servidor no manda Content-Length.
type BodyWrapper func(name string, size int64, body io.Reader) io.Reader

// Downloader trae un archivo de BaseURL/<name> a Dir/<name> solo si no existe.
type Downloader struct {
	BaseURL string
	Dir     string
	Client  *http.Client
	Wrap    BodyWrapper
	log     *zap.Logger
}

func NewDownloader(baseURL, dir string, timeout time.Duration, log *zap.Logger) *Downloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Downloader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Dir:     dir,
		Client:  &http.Client{Timeout: timeout},
		log:     log.Named("artifacts"),
	}
}

// Ensure devuelve la ruta local del archivo, descargándolo si no está.
// Sin BaseURL y sin archivo local devuelve error (artefacto ausente).
func (d *Downloader) Ensure(ctx context.Context, name string) (string, error) {
	path := filepath.Join(d.Dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if d.BaseURL == "" {
		return "", fmt.Errorf("artifacts: %s no existe y no hay URL de descarga", path)
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("artifacts: creando %s: %w", d.Dir, err)
	}

	url := d.BaseURL + "/" + name
	d.log.Info("descargando artefacto", zap.String("url", url))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("artifacts: descargando %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("artifacts: descargando %s: status %d", name, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if d.Wrap != nil {
		body = d.Wrap(name, resp.ContentLength, resp.Body)
	}

	// se escribe a un temporal y se renombra: nunca queda un archivo a medias con el nombre final
	tmp, err := os.CreateTemp(d.Dir, name+".part-*")
	if err != nil {
		return "", fmt.Errorf("artifacts: temporal para %s: %w", name, err)
	}
	n, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", fmt.Errorf("artifacts: escribiendo %s: %w", name, copyErr)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("artifacts: renombrando %s: %w", name, err)
	}

	d.log.Info("artefacto descargado",
		zap.String("file", name),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)),
	)
	return path, nil
}
