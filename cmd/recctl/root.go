package main

import (
	"github.com/kadivar3110/movie-recommender-system/internal/config"
	"github.com/kadivar3110/movie-recommender-system/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	dir     string
	baseURL string
	verbose bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "recctl",
		Short: "Recomendaciones de películas y sentimiento de reseñas desde la terminal",
		Long: `recctl usa los mismos artefactos que la API:
- fetch descarga los que falten
- recommend lista las películas más parecidas a un título
- classify etiqueta una reseña como positive/negative
- token firma un token para la API`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&f.dir, "dir", cfg.ArtifactsDir, "directorio de artefactos")
	cmd.PersistentFlags().StringVar(&f.baseURL, "base-url", cfg.ArtifactBaseURL, "URL base para descargar artefactos")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "V", false, "logs detallados")

	cmd.AddCommand(
		newFetchCmd(f, cfg),
		newRecommendCmd(f, cfg),
		newClassifyCmd(f, cfg),
		newTokenCmd(cfg),
	)
	return cmd
}

func (f *rootFlags) logger() *zap.Logger {
	if !f.verbose {
		return zap.NewNop()
	}
	return logger.MustNew(true)
}
