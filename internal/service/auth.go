package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaloraat/auth-api/internal/crypto"
	"github.com/kaloraat/auth-api/internal/mailer"
	"github.com/kaloraat/auth-api/internal/model"
	"github.com/kaloraat/auth-api/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email is taken")
	ErrUserNotFound       = errors.New("no user found")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInvalidResetCode   = errors.New("email or reset code is invalid")
	// ErrMailDeliveryFailed reports that the reset code was stored but the
	// email carrying it could not be sent.
	ErrMailDeliveryFailed = errors.New("reset code email could not be delivered")
	// ErrStoreUnavailable wraps unexpected persistence failures so handlers
	// can report a storage outage without inspecting driver errors.
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minPasswordLength = 6

// AuthService orchestrates the account credential lifecycle: signup, signin
// and the password recovery flow.
type AuthService struct {
	repo      repository.UserRepository
	mail      mailer.Mailer
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo repository.UserRepository, mail mailer.Mailer, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		mail:      mail,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Signup registers a new account and signs it in. Fields are validated in
// order name, email, password; the first violation wins.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	if req.Name == "" {
		return model.AuthResponse{}, &ValidationError{Field: "name", Message: "name is required"}
	}
	if req.Email == "" {
		return model.AuthResponse{}, &ValidationError{Field: "email", Message: "email is required"}
	}
	if err := validatePassword(req.Password); err != nil {
		return model.AuthResponse{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, storeErr(err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.DefaultRole,
	}

	// Two signups racing on the same email both pass the lookup above; the
	// store's unique index decides the winner.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, storeErr(err)
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: model.NewUserResponse(user)}, nil
}

// Signin authenticates an account by email and password and issues a session
// token. No persistence side effects.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (model.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrUserNotFound
		}
		return model.AuthResponse{}, storeErr(err)
	}

	// A malformed stored hash also reads as a credential mismatch; a wrong
	// password must never surface as an internal error.
	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: model.NewUserResponse(user)}, nil
}

// ForgotPassword stores a fresh reset code on the account and mails it out.
// The code stays valid even when delivery fails: ResetPassword re-validates
// the (email, code) pair against the store regardless of delivery outcome, so
// a lost email only costs the user another forgot-password request. Delivery
// failure is therefore reported as ErrMailDeliveryFailed, not rolled back.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return storeErr(err)
	}

	code, err := crypto.NewResetCode()
	if err != nil {
		return err
	}

	if err := s.repo.SetResetCode(ctx, user.ID.Hex(), code); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return storeErr(err)
	}

	msg := mailer.Message{
		To:      user.Email,
		Subject: "Password reset code",
		Body: fmt.Sprintf("Hello %s,\nEnter the reset code below for password recovery:\n%s\n",
			user.Name, code),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDeliveryFailed, err)
	}

	return nil
}

// ResetPassword redeems a reset code: the account matching the exact
// (email, code) pair gets the new password, and the code is cleared in the
// same update so it cannot be redeemed twice.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	user, err := s.repo.FindByEmailAndResetCode(ctx, req.Email, req.ResetCode)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetCode
		}
		return storeErr(err)
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	if err := s.repo.ResetPassword(ctx, user.ID.Hex(), hash); err != nil {
		return storeErr(err)
	}

	return nil
}

// UpdatePassword replaces the password of an already-authenticated account.
// The caller is responsible for having verified the session token that
// produced accountID.
func (s *AuthService) UpdatePassword(ctx context.Context, accountID, password string) (model.UserResponse, error) {
	if err := validatePassword(password); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.repo.UpdatePassword(ctx, accountID, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, storeErr(err)
	}

	return model.NewUserResponse(user), nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{Field: "password", Message: "password is required and should be 6 characters long"}
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
