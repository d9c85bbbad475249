package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/config"
	"github.com/salemerge/quotedesk/internal/client/services"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/client/toast"
	"github.com/salemerge/quotedesk/internal/logging"
)

// Store is what the console needs from the persisted session.
type Store interface {
	services.SessionStore
	Close() error
}

type App struct {
	log    logging.Logger
	store  Store
	guard  *session.Guard
	toasts *toast.Queue
	notify services.Notifier

	auth      services.AuthService
	users     *services.Directory
	quote     *services.QuoteBuilder
	gallery   *services.Gallery
	profile   *services.ProfileService
	newReset  func() *services.ResetFlow
	resetOpts []services.ResetOption

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	view session.View
}

// NewApp opens the session database and wires the console services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	store, err := session.Open(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "open session store failed", "dsn", c.SessionDB, "error", err)
		return nil, err
	}

	client := api.NewHTTPClient(api.Options{
		BaseURL: c.APIBaseURL,
		Timeout: c.RequestTimeout,
		Tokens:  store,
		Logger:  log.With("component", "api"),
	})

	queue := toast.NewQueue(toast.NewTerminalRenderer(os.Stdout), toast.WithDuration(c.ToastDuration))

	a := newApp(client, store, queue, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.toasts = queue
	return a, nil
}

func newApp(c api.Client, store Store, n services.Notifier, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		log:    log,
		store:  store,
		guard:  session.NewGuard(store),
		notify: n,
		reader: reader,
		out:    out,
		view:   session.ViewLogin,
	}
	a.auth = services.NewAuthService(c, store, n, a, log.With("service", "auth"))
	a.users = services.NewDirectory(c, n, log.With("service", "users"))
	a.quote = services.NewQuoteBuilder(c, n, log.With("service", "quote"))
	a.gallery = services.NewGallery(c, store, n, log.With("service", "videos"))
	a.profile = services.NewProfileService(c, store, n, a, log.With("service", "profile"))
	a.newReset = func() *services.ResetFlow {
		return services.NewResetFlow(c, n, a, log.With("service", "reset"), a.resetOpts...)
	}
	return a
}

// Run starts the toast consumer and the REPL, and closes the session store
// when the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.toasts != nil {
		go func() { _ = a.toasts.Run(ctx) }()
	}
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Error(ctx, "close session store failed", "error", err)
		}
	}()

	a.Root(ctx)
}

// Navigate records the current view. Services call it after login, logout
// and a completed password reset.
func (a *App) Navigate(ctx context.Context, v session.View) {
	a.mu.Lock()
	prev := a.view
	a.view = v
	a.mu.Unlock()
	if prev != v {
		a.log.Debug(ctx, "navigate", "from", string(prev), "to", string(v))
	}
}

func (a *App) currentView() session.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) activate(ctx context.Context, v session.View) bool {
	ok, target := a.guard.CanActivate(ctx, v)
	a.Navigate(ctx, target)
	return ok
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	token, err := a.store.Token(ctx)
	return err == nil && token != ""
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
