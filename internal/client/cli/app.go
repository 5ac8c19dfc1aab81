// Package cli is the interactive Dishcovery client: a small REPL over the
// session and recipe services.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/dishcovery/dishcovery/internal/client/api"
	"github.com/dishcovery/dishcovery/internal/client/config"
	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/client/recipes"
	"github.com/dishcovery/dishcovery/internal/client/session"
	"github.com/dishcovery/dishcovery/internal/client/storage"
	"github.com/dishcovery/dishcovery/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	session *session.Service
	recipes *recipes.Service
	log     logging.Logger
	reader  *bufio.Reader

	// lastReviews holds the reviews shown by the most recent "reviews"
	// command, so "like N" and "reply N" can address them by number.
	lastReviews []models.Review
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(c.LogLevel),
	})))

	db, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "error initializing local store", "error", err)
		return nil, err
	}

	// The API client asks the session for the current token on every
	// request, so wiring goes session-first via closures.
	var sess *session.Service
	apiClient := api.New(c.APIBaseURL, c.RequestTimeout,
		api.WithLogger(log),
		api.WithTokenSource(func() string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		}),
		api.WithClientID(func() string {
			if sess == nil {
				return ""
			}
			return sess.InstallID(context.Background())
		}),
	)
	sess = session.NewService(apiClient, db, log)

	recipeSvc := recipes.NewService(apiClient, storage.NewSearchRepository(db), log)

	return &App{
		config:  c,
		session: sess,
		recipes: recipeSvc,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
