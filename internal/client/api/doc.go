// Package api is the REST client for the quote backend.
//
// # Overview
//
// Client is the transport contract the services depend on. HTTPClient
// implements it over net/http: every request carries the session's bearer
// token and a fresh X-Request-ID, bodies are JSON, and responses are
// decoded permissively because the backend mixes envelope shapes
// ({success, message, data}, {status, message}, bare payloads).
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, 401/403 responses match
// ErrUnauthorized, payloads missing required fields wrap ErrProtocol, and
// business failures reported by the server are returned as *APIError.
// ErrorMessage picks the text to show the user.
//
// No request is retried.
package api
