package cli

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/nrfta/criteria-go/filters"
	"github.com/nrfta/criteria-go/httpapi"
	"github.com/nrfta/criteria-go/internal/models"
	"github.com/nrfta/criteria-go/links"
	"github.com/nrfta/criteria-go/paging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		addr    string
		dbURL   string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the paginated announcements API",
		Long: `Serve exposes GET /announcements backed by the announcements table of a
Postgres database, with filter, page, size and sorts query parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.ServerAddr()
			}
			if dbURL == "" {
				dbURL = a.cfg.DatabaseURL()
			}
			if dbURL == "" {
				return errors.New("no database configured: set database.url or CRITERIA_DATABASE_URL")
			}

			var base *url.URL
			if baseURL != "" {
				u, err := url.Parse(baseURL)
				if err != nil {
					return errors.Wrap(err, "parse base URL")
				}
				base = u
			}

			db, err := sql.Open("postgres", dbURL)
			if err != nil {
				return errors.Wrap(err, "open database")
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := db.PingContext(ctx); err != nil {
				return errors.Wrap(err, "connect to database")
			}

			router, err := a.newRouter(db, base)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening on %s", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "serve")
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	flags.StringVar(&dbURL, "database-url", "", "Postgres connection string (default from config)")
	flags.StringVar(&baseURL, "base-url", "", "Public base URL for navigation links; relative links when empty")

	return cmd
}

// newRouter mounts the announcements list endpoint on a new router.
func (a *app) newRouter(db *sql.DB, base *url.URL) (*mux.Router, error) {
	codec, err := a.codec()
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()

	announcements := httpapi.NewListHandler("announcements",
		func() *filters.AnnouncementFilter { return &filters.AnnouncementFilter{} },
		paging.Fetcher[*models.Announcement](models.NewAnnouncementFetcher(db)),
		httpapi.Options{
			Codec:      codec,
			PageConfig: a.cfg.PageConfig(),
			Logger:     a.logger,
			StrictSize: a.cfg.StrictSize(),
		},
	)
	router.Handle("/announcements", announcements).Methods(http.MethodGet).Name("announcements")
	announcements.SetLinks(links.MuxBuilder(router, base))

	return router, nil
}
