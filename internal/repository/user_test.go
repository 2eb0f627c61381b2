package repository

import (
	"context"
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateEmail.Error())
	}
}

func TestFindByIDInvalidHex(t *testing.T) {
	// Parsing fails before any collection access, so a zero-value repository
	// is enough here.
	repo := &MongoUserRepository{}

	_, err := repo.FindByID(context.Background(), "not-a-hex-object-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestFindByEmailAndResetCodeEmptyCode(t *testing.T) {
	repo := &MongoUserRepository{}

	_, err := repo.FindByEmailAndResetCode(context.Background(), "ana@x.com", "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByEmailAndResetCode() error = %v, want ErrUserNotFound", err)
	}
}

func TestSetResetCodeInvalidHex(t *testing.T) {
	repo := &MongoUserRepository{}

	err := repo.SetResetCode(context.Background(), "bad-id", "A1B2C")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("SetResetCode() error = %v, want ErrUserNotFound", err)
	}
}
