package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/nhanes-cli/internal/render"
	"github.com/KaramelBytes/nhanes-cli/internal/utils"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Render the report once and serve it over HTTP",
	Long: `Loads the survey data and renders the page once, then serves it until interrupted.

Routes:
  GET /              the report page
  GET /figures/{id}  one chart as plotly JSON
  GET /healthz       liveness`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		addr := c.ListenAddr
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			addr = serveAddr
		}

		page := render.NewPage(c.PlotlyJSURL)
		if _, err := buildReport(cmd.Context(), c, page); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			return fmt.Errorf("render page: %w", err)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           newRouter(page, buf.Bytes()),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		infof("Serving report %s on http://%s", page.ID, addr)

		select {
		case <-cmd.Context().Done():
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			infof("Stopped")
			return nil
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("listen %s: %w", addr, err)
		}
	},
}

// newRouter serves a pre-rendered page and its figures.
func newRouter(page *render.Page, html []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Report-Id", page.ID)
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	})
	r.Get("/figures/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		fig, ok := page.Figure(id)
		if !ok {
			http.Error(w, "unknown figure "+id, http.StatusNotFound)
			return
		}
		b, err := utils.PrettyJSON(fig)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config listen_addr)")
}
