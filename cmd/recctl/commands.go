package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kadivar3110/movie-recommender-system/internal/artifacts"
	"github.com/kadivar3110/movie-recommender-system/internal/config"
	"github.com/kadivar3110/movie-recommender-system/internal/service"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

func newFetchCmd(f *rootFlags, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Descarga los artefactos que falten",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.baseURL == "" {
				return fmt.Errorf("falta --base-url (o ARTIFACT_BASE_URL)")
			}

			progress := mpb.NewWithContext(cmd.Context(), mpb.WithOutput(cmd.ErrOrStderr()))
			bars := newBarSet(progress)

			dl := artifacts.NewDownloader(f.baseURL, f.dir, cfg.ArtifactTimeout, f.logger())
			dl.Wrap = bars.wrap

			var failed int
			for _, name := range artifacts.AllFiles {
				path, err := dl.Ensure(cmd.Context(), name)
				bars.done(name, err == nil)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s ERROR %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, path)
			}
			progress.Wait()

			if failed > 0 {
				return fmt.Errorf("%d artefactos no se pudieron descargar", failed)
			}
			return nil
		},
	}
}

// barSet crea una barra por descarga y la cierra cuando termina.
type barSet struct {
	progress *mpb.Progress
	mu       sync.Mutex
	bars     map[string]*mpb.Bar
}

func newBarSet(p *mpb.Progress) *barSet {
	return &barSet{progress: p, bars: make(map[string]*mpb.Bar)}
}

func (s *barSet) wrap(name string, size int64, body io.Reader) io.Reader {
	if size <= 0 {
		return body
	}
	bar := s.progress.AddBar(size,
		mpb.PrependDecorators(
			decor.Name(name+" ", decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ "),
		),
	)

	s.mu.Lock()
	s.bars[name] = bar
	s.mu.Unlock()

	return bar.ProxyReader(io.NopCloser(body))
}

func (s *barSet) done(name string, ok bool) {
	s.mu.Lock()
	bar := s.bars[name]
	delete(s.bars, name)
	s.mu.Unlock()

	if bar == nil {
		return
	}
	if ok {
		bar.SetTotal(-1, true)
	} else {
		bar.Abort(false)
	}
}

func newRecommendCmd(f *rootFlags, cfg *config.Config) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Lista las películas más parecidas a un título",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := artifacts.Load(cmd.Context(), artifacts.Options{
				Dir:     f.dir,
				BaseURL: f.baseURL,
				Timeout: cfg.ArtifactTimeout,
			}, f.logger())

			res, err := service.NewRecommendService(b.Catalog, b.Index, f.logger()).
				Recommend(cmd.Context(), args[0], k)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Porque te gustó %s:\n", res.Query.Title)
			for i, it := range res.Items {
				fmt.Fprintf(out, "%2d. %s  Match: %.1f%%\n", i+1, it.Movie.Title, it.Score*100)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", cfg.DefaultK, "cantidad de recomendaciones")
	return cmd
}

func newClassifyCmd(f *rootFlags, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Clasifica el sentimiento de una reseña",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := artifacts.Load(cmd.Context(), artifacts.Options{
				Dir:     f.dir,
				BaseURL: f.baseURL,
				Timeout: cfg.ArtifactTimeout,
			}, f.logger())

			label := "unknown"
			if l, err := b.Sentiment.Classify(args[0]); err == nil {
				label = l.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func newTokenCmd(cfg *config.Config) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Firma un token para la API con JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := service.NewTokenService(cfg.JWTSecret, ttl).Issue(args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", service.DefaultTokenTTL, "vigencia del token")
	return cmd
}
