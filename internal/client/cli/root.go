package cli

import (
	"context"
	"fmt"

	"github.com/salemerge/quotedesk/internal/client/session"
)

func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if sess, err := a.store.Load(ctx); err == nil && sess.Email != "" {
		s = sess.Email + " "
	}
	s += string(a.currentView())
	return fmt.Sprintf("(%s)", s)
}

// Root restores the view from the persisted session and runs the REPL
// until EOF or exit.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the Salemerge quote console (type 'help' for commands)")

	if a.isLoggedIn(ctx) {
		a.Navigate(ctx, session.ViewDashboard)
	} else {
		a.Navigate(ctx, session.ViewLogin)
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
