// Package session is the console's explicit session context: the persisted
// Store (token, user id, email, role) and the Guard that decides whether a
// view may be opened.
//
// The store is backed by a local sqlite database migrated with goose. It
// has no expiry logic: a session lives until Clear is called on logout or
// when the account turns out to be disabled.
package session
