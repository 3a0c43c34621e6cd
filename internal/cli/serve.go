package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/wronai/repodash/pkg/catalog"
)

const (
	serverGracefulTimeout = 10 * time.Second
	serverRequestTimeout  = 10 * time.Second
	serverReadTimeout     = 10 * time.Second
	serverWriteTimeout    = 15 * time.Second // > serverRequestTimeout so the middleware answers first
	serverIdleTimeout     = 60 * time.Second
)

// serveOpts holds options for the serve command.
type serveOpts struct {
	addr string
	dir  string
}

// serveCommand creates the serve command, a static file server for a built
// dashboard directory.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", dir: "dist"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a built dashboard directory for local preview",
		Long: `Serve the files in --dir over HTTP. There is no server-side logic: the
directory is expected to hold the page and repos.json (or
data/repos_updated.json), as produced by the site build or by
"repodash render".`,
		Example: `  repodash render -o dist/index.html
  repodash serve --dir dist --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "address to listen on")
	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "directory to serve")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	info, err := os.Stat(opts.dir)
	if err != nil {
		return fmt.Errorf("serve %s: %w", opts.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("serve %s: not a directory", opts.dir)
	}
	warnMissingCatalog(opts.dir)

	server := &http.Server{
		Addr:         opts.addr,
		Handler:      newFileRouter(opts.dir, logger),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving dashboard", "dir", opts.dir, "addr", opts.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverGracefulTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newFileRouter serves dir with the standard middleware stack.
func newFileRouter(dir string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(serverRequestTimeout),
		requestLogger(logger),
	)

	fs := http.FileServer(http.Dir(dir))
	r.Handle("/*", fs)
	return r
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"took", time.Since(start).Round(time.Microsecond),
				"id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// warnMissingCatalog warns when neither catalog path exists under dir.
func warnMissingCatalog(dir string) {
	for _, p := range []string{catalog.PrimaryFile, catalog.LegacyFile} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p))); err == nil {
			return
		}
	}
	printWarning("No repos.json or data/repos_updated.json in %s; the dashboard will show a load error", dir)
}
