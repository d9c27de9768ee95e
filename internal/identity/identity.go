// Package identity is the credential store collaborator. Accounts are
// plain key-value records; password hashing is deliberately out of scope
// for this tracker.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"noura/internal/storage"
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrUserExists       = errors.New("username already exists")
	// ErrInvalidCredentials is deliberately generic: it never discloses
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Account is the stored credential record for one user.
type Account struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store reads and writes accounts under user:<username> keys.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Register validates the signup input and creates the account.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	exists, err := s.AccountExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	account := Account{
		Username:  username,
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: time.Now(),
	}
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := s.kv.Set(ctx, storage.UserKey(username), string(data)); err != nil {
		return fmt.Errorf("store account: %w", err)
	}

	slog.InfoContext(ctx, "Account created", "username", username)
	return nil
}

// VerifyCredentials checks username and password against the stored
// account. Both an unknown user and a wrong password come back as the
// same ErrInvalidCredentials.
func (s *Store) VerifyCredentials(ctx context.Context, username, password string) error {
	raw, err := s.kv.Get(ctx, storage.UserKey(strings.TrimSpace(username)))
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	var account Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return fmt.Errorf("decode account: %w", err)
	}
	if account.Password != password {
		return ErrInvalidCredentials
	}
	return nil
}

// AccountExists reports whether a credential record is stored for username.
func (s *Store) AccountExists(ctx context.Context, username string) (bool, error) {
	_, err := s.kv.Get(ctx, storage.UserKey(strings.TrimSpace(username)))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load account: %w", err)
	}
	return true, nil
}
