package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/salemerge/quotedesk/internal/client/repositories/kv"
	"github.com/salemerge/quotedesk/internal/dbx"
)

// ErrNoSession is returned when an operation needs a logged-in user.
var ErrNoSession = errors.New("no active session")

const (
	keyToken  = "token"
	keyUserID = "userId"
	keyEmail  = "email"
	keyRole   = "role"
)

// Session is the persisted authentication state. Zero values mean absent.
type Session struct {
	Token  string
	UserID int64
	Email  string
	Role   string
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the session database at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

// Load reads the whole session. A missing or unparsable user id reads as 0.
func (s *Store) Load(ctx context.Context) (Session, error) {
	values, err := s.repo(s.db).List(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	sess := Session{
		Token: string(values[keyToken]),
		Email: string(values[keyEmail]),
		Role:  string(values[keyRole]),
	}
	if raw := values[keyUserID]; len(raw) > 0 {
		if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			sess.UserID = id
		}
	}
	return sess, nil
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

// SetToken stores only the token, leaving the other keys untouched.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return setOrDelete(ctx, s.repo(s.db), keyToken, token)
}

// Save writes every field of sess in one transaction. Empty fields are
// removed from the store.
func (s *Store) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		userID := ""
		if sess.UserID != 0 {
			userID = strconv.FormatInt(sess.UserID, 10)
		}

		for _, kvp := range [][2]string{
			{keyToken, sess.Token},
			{keyUserID, userID},
			{keyEmail, sess.Email},
			{keyRole, sess.Role},
		} {
			if err := setOrDelete(ctx, repo, kvp[0], kvp[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes every persisted key.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func setOrDelete(ctx context.Context, repo kv.Repository, key, value string) error {
	if value == "" {
		return repo.Delete(ctx, key)
	}
	return repo.Set(ctx, key, []byte(value))
}
