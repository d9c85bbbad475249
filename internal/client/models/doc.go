// Package models defines the records exchanged with the quote backend:
// account users, generated videos, quote generation requests and the
// authentication payloads.
package models
