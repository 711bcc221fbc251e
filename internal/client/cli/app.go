package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/config"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

type App struct {
	authService  services.AuthService
	storyService services.StoryService
	session      *services.Session
	reader       *bufio.Reader
	out          io.Writer
	logger       logging.Logger
}

// NewApp opens the local database, builds the API client and the services,
// and returns an App reading from stdin and writing to stdout.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewHTTPClient(client.HTTPConfig{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		StoriesLimit:      cfg.StoriesLimit,
	}, nil, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cache := services.NewStoryCache(api, logger)
	as := services.NewAuthService(api, cache, db, logger)

	return newApp(as, cache, bufio.NewReader(os.Stdin), os.Stdout, logger), nil
}

func newApp(as services.AuthService, ss services.StoryService, r *bufio.Reader, w io.Writer, logger logging.Logger) *App {
	return &App{
		authService:  as,
		storyService: ss,
		reader:       r,
		out:          w,
		logger:       logger.With("component", "cli"),
	}
}

// Run resumes a persisted session, loads the stories and then serves the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.authService.Close(ctx); err != nil {
			a.logger.Warn(ctx, "closing local store", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to Hack or Snooze (type 'help' for commands)")
	a.start(ctx)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// start performs the startup sequence: restore, then load.
func (a *App) start(ctx context.Context) {
	s, err := a.authService.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "restoring session", "error", err)
	}
	if s != nil {
		a.session = s
		fmt.Fprintf(a.out, "Welcome back, %s!\n", s.User().Name)
	}

	if err := a.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, describeError(err))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	return a.session.User().Username
}
