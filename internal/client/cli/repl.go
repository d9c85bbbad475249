package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	// activate runs the route guard for v and reports whether the command may run.
	activate(ctx context.Context, v session.View) bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Signup(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Quote(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Videos(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
}

// commandViews maps each command to the view it opens.
var commandViews = map[string]session.View{
	"login":   session.ViewLogin,
	"forgot":  session.ViewForgotPassword,
	"signup":  session.ViewSignup,
	"logout":  session.ViewDashboard,
	"whoami":  session.ViewDashboard,
	"quote":   session.ViewDashboard,
	"users":   session.ViewUsers,
	"videos":  session.ViewVideos,
	"profile": session.ViewProfile,
}

// readLine reads one line from r. ok is false on EOF with no input.
func readLine(r *bufio.Reader) (string, bool) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// runREPL starts the read-eval-print loop of the console.
//
// It reads a line from the provided reader, parses the first token as the
// command and dispatches to methods on 'a'. Every command first passes
// through a.activate with its view; a refused command is skipped. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// through toasts and logs. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("qd %s> ", statusFn()))
		line, ok := readLine(in)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if v, ok := commandViews[cmd]; ok && !a.activate(ctx, v) {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, quote, users, videos, profile, logout, exit")
			} else {
				printlnFn("Available commands: login, forgot, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "quote":
			_ = a.Quote(ctx)

		case "users":
			_ = a.Users(ctx, args)

		case "videos":
			_ = a.Videos(ctx, args)

		case "profile":
			_ = a.Profile(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
