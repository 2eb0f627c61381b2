package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/kaloraat/auth-api/internal/model"
	"github.com/kaloraat/auth-api/internal/repository"
	"github.com/kaloraat/auth-api/internal/storage"
)

var (
	ErrImageRequired = errors.New("image is required")
	ErrInvalidImage  = errors.New("image must be base64 encoded")
)

// UserService handles profile operations for authenticated accounts.
type UserService struct {
	repo   repository.UserRepository
	images storage.ImageStore
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, images storage.ImageStore) *UserService {
	return &UserService{repo: repo, images: images}
}

// GetUser returns the sanitized account for id.
func (s *UserService) GetUser(ctx context.Context, id string) (model.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, storeErr(err)
	}

	return model.NewUserResponse(user), nil
}

// UploadImage decodes a base64 profile image, uploads it to the object store
// and persists the returned reference on the account.
func (s *UserService) UploadImage(ctx context.Context, accountID, encoded string) (model.UserResponse, error) {
	data, contentType, err := decodeImage(encoded)
	if err != nil {
		return model.UserResponse{}, err
	}

	image, err := s.images.UploadProfileImage(ctx, accountID, data, contentType)
	if err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.repo.SetImage(ctx, accountID, image)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, storeErr(err)
	}

	return model.NewUserResponse(user), nil
}

// decodeImage accepts either a data URI ("data:image/png;base64,...") or bare
// base64, which is assumed to be JPEG.
func decodeImage(encoded string) ([]byte, string, error) {
	if encoded == "" {
		return nil, "", ErrImageRequired
	}

	contentType := "image/jpeg"
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		ct, payload, found := strings.Cut(rest, ";base64,")
		if !found || ct == "" {
			return nil, "", ErrInvalidImage
		}
		contentType = ct
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", ErrInvalidImage
	}

	return data, contentType, nil
}
