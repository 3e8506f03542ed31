package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("Should create user with normalized email", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("u-1", "  Ada.Lovelace@Example.COM  ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if user.Email != "ada.lovelace@example.com" {
			t.Errorf("Expected normalized email, got %s", user.Email)
		}
		if user.ID != "u-1" {
			t.Errorf("Expected id u-1, got %s", user.ID)
		}
		if user.CreatedAt.IsZero() || !user.CreatedAt.Equal(user.UpdatedAt) {
			t.Error("Expected CreatedAt and UpdatedAt to be set to the same instant")
		}
	})

	t.Run("Should reject malformed addresses", func(t *testing.T) {
		t.Parallel()

		for _, email := range []string{"", "not-an-email", "Ada <ada@example.com>"} {
			if _, err := NewUser("u-1", email); err != ErrInvalidEmail {
				t.Errorf("email %q: expected ErrInvalidEmail, got %v", email, err)
			}
		}
	})
}

func TestUserPassword(t *testing.T) {
	t.Parallel()

	t.Run("Should hash password and bump UpdatedAt", func(t *testing.T) {
		t.Parallel()
		user, _ := NewUser("u-1", "ada@example.com")
		before := user.UpdatedAt

		time.Sleep(1 * time.Millisecond)

		if err := user.SetPassword("streaks-all-day"); err != nil {
			t.Fatalf("Expected no error setting password, got %v", err)
		}
		if user.PasswordHash == "" || user.PasswordHash == "streaks-all-day" {
			t.Error("Password should be stored as a bcrypt hash")
		}
		if !user.UpdatedAt.After(before) {
			t.Error("UpdatedAt should move forward after setting password")
		}
	})

	t.Run("Should count runes, not bytes", func(t *testing.T) {
		t.Parallel()
		user, _ := NewUser("u-1", "ada@example.com")

		if err := user.SetPassword("ééééééé"); err != ErrPasswordTooShort {
			t.Errorf("Expected ErrPasswordTooShort for 7 runes, got %v", err)
		}
	})

	t.Run("CheckPassword maps mismatches to ErrInvalidCredentials", func(t *testing.T) {
		t.Parallel()
		user, _ := NewUser("u-1", "ada@example.com")
		_ = user.SetPassword("correct-horse")

		if err := user.CheckPassword("correct-horse"); err != nil {
			t.Errorf("Expected password to match, got %v", err)
		}
		if err := user.CheckPassword("wrong-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}
