// Package cli provides the interactive quotedesk console.
//
// It wires configuration, the persisted session, the REST client, the toast
// queue and the console services, then runs a REPL. Each command maps to a
// view; protected views pass through the route guard before the command
// runs, so a missing token sends the operator back to login.
//
// Commands:
//   - login / logout / forgot / signup
//   - whoami
//   - quote
//   - users [page N | next | prev | search T | add | edit ID | delete ID |
//     toggle ID | limit ID N | resetdl ID]
//   - videos [page N | next | prev | play ID]
//   - profile [edit | password | deactivate]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
