// Package session holds the explicit session context: who is logged in
// and their loaded ledger. State is created on login, restored from the
// session marker at startup, and discarded (not deleted from storage) on
// logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"noura/internal/identity"
	"noura/internal/ledger"
	"noura/internal/log"
	"noura/internal/storage"
)

// ErrNoSession is returned by Restore when no session marker is stored.
var ErrNoSession = errors.New("no active session")

// Session is the context object the rest of the app works against while
// a user is signed in.
type Session struct {
	Username string
	Ledger   *ledger.Ledger
}

// Manager wires the identity store, the ledger repository and the session
// marker together. One active session per process.
type Manager struct {
	identities *identity.Store
	repo       *ledger.Repository
	kv         storage.KV
}

func NewManager(identities *identity.Store, repo *ledger.Repository, kv storage.KV) *Manager {
	return &Manager{
		identities: identities,
		repo:       repo,
		kv:         kv,
	}
}

// Register creates a new account. It does not log the user in; callers
// follow up with Login so signup and login share one code path.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	return m.identities.Register(ctx, username, email, password)
}

// Login verifies credentials, loads the user's ledger wholesale and marks
// the session active. Switching users swaps the entire ledger state; no
// merging happens.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := m.identities.VerifyCredentials(ctx, username, password); err != nil {
		return nil, err
	}

	l := ledger.Load(ctx, m.repo, username)
	if err := m.kv.Set(ctx, storage.SessionKey(), username); err != nil {
		// The session still works for this process; only restore-on-restart is lost.
		slog.WarnContext(ctx, "Failed to persist session marker",
			log.FieldComponent, log.ComponentSession,
			log.FieldUser, username,
			log.FieldError, err)
	}

	slog.InfoContext(ctx, "User logged in",
		log.FieldComponent, log.ComponentSession,
		log.FieldOperation, log.OpLogin,
		log.FieldUser, username,
		log.FieldLedgerSize, l.Size())
	return &Session{Username: username, Ledger: l}, nil
}

// Logout clears the session marker and drops the in-memory state. The
// user's stored ledger is untouched.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	if err := m.kv.Delete(ctx, storage.SessionKey()); err != nil {
		return fmt.Errorf("clear session marker: %w", err)
	}
	slog.InfoContext(ctx, "User logged out",
		log.FieldComponent, log.ComponentSession,
		log.FieldOperation, log.OpLogout,
		log.FieldUser, s.Username)
	return nil
}

// Restore rebuilds the session from the stored marker. Called once at
// process start.
func (m *Manager) Restore(ctx context.Context) (*Session, error) {
	username, err := m.kv.Get(ctx, storage.SessionKey())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session marker: %w", err)
	}

	exists, err := m.identities.AccountExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		// Stale marker for a deleted account; clear it.
		_ = m.kv.Delete(ctx, storage.SessionKey())
		return nil, ErrNoSession
	}

	l := ledger.Load(ctx, m.repo, username)
	slog.InfoContext(ctx, "Session restored",
		log.FieldComponent, log.ComponentSession,
		log.FieldOperation, log.OpLoad,
		log.FieldUser, username,
		log.FieldLedgerSize, l.Size())
	return &Session{Username: username, Ledger: l}, nil
}
