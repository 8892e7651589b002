package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/app"
	"github.com/dmitrijs2005/stocksense/internal/client/config"
	"github.com/dmitrijs2005/stocksense/internal/client/models"
	"github.com/dmitrijs2005/stocksense/internal/client/services"
	"github.com/dmitrijs2005/stocksense/internal/client/session"
	"github.com/dmitrijs2005/stocksense/internal/logging"
)

// sessionKey is the id of the one session the CLI keeps.
const sessionKey = "cli"

type App struct {
	auth     services.AuthService
	sessions services.SessionService
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
	closer   io.Closer
}

// NewApp wires the CLI on top of the shared core. in and out are usually
// os.Stdin and os.Stdout.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	core, err := app.NewCore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a := newApp(core.Auth, core.Sessions, log, in, out)
	a.closer = core
	return a, nil
}

func newApp(auth services.AuthService, sessions services.SessionService, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		auth:     auth,
		sessions: sessions,
		log:      log.With("module", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}
}

// Run starts the REPL and returns when the user leaves or input ends.
func (a *App) Run(ctx context.Context) error {
	if a.closer != nil {
		defer a.closer.Close()
	}
	a.println("Welcome to StockSense Pro CLI (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader, a.out)
	return nil
}

// current returns the local session, or false when there is none. Store
// failures are reported and treated as no session.
func (a *App) current(ctx context.Context) (*models.Session, bool) {
	s, err := a.sessions.Read(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			a.log.Error(ctx, "session read failed", "error", err)
			a.println(services.GenericErrorMessage)
		}
		return nil, false
	}
	return s, true
}

// withCurrent attaches the local session to ctx, if there is one.
func (a *App) withCurrent(ctx context.Context) context.Context {
	if s, ok := a.current(ctx); ok {
		return session.NewContext(ctx, s)
	}
	return ctx
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := a.current(ctx)
	return ok
}

func (a *App) prompt(ctx context.Context) string {
	s, ok := a.current(ctx)
	if !ok {
		return "stocksense> "
	}
	return fmt.Sprintf("stocksense (%s %s)> ", s.Profile.Email, s.Profile.Role)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
