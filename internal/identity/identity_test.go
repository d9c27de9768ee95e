package identity

import (
	"context"
	"errors"
	"testing"

	"noura/internal/storage"
)

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"short username", "ab", "secret1", ErrUsernameTooShort},
		{"short password", "amara", "12345", ErrPasswordTooShort},
		{"ok", "amara", "secret1", nil},
	}
	for _, tc := range cases {
		err := s.Register(ctx, tc.username, "a@example.com", tc.password)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// Second registration with the same username fails.
	if err := s.Register(ctx, "amara", "b@example.com", "secret2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())
	if err := s.Register(ctx, "amara", "a@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := s.VerifyCredentials(ctx, "amara", "secret1"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Wrong password and unknown user must be indistinguishable.
	wrongPass := s.VerifyCredentials(ctx, "amara", "nope")
	unknownUser := s.VerifyCredentials(ctx, "ghost", "secret1")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected generic credential error, got %v / %v", wrongPass, unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Fatalf("auth errors must not disclose which field was wrong")
	}
}

func TestAccountExists(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStore())

	exists, err := s.AccountExists(ctx, "amara")
	if err != nil || exists {
		t.Fatalf("expected no account, got exists=%v err=%v", exists, err)
	}
	if err := s.Register(ctx, "amara", "a@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	exists, err = s.AccountExists(ctx, "amara")
	if err != nil || !exists {
		t.Fatalf("expected account, got exists=%v err=%v", exists, err)
	}
}
