package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kaloraat/auth-api/internal/model"
)

// fakeImageStore records the last upload and returns a canned reference.
type fakeImageStore struct {
	lastAccountID   string
	lastContentType string
	lastData        []byte
	err             error
}

func (f *fakeImageStore) UploadProfileImage(_ context.Context, accountID string, data []byte, contentType string) (model.Image, error) {
	if f.err != nil {
		return model.Image{}, f.err
	}
	f.lastAccountID = accountID
	f.lastContentType = contentType
	f.lastData = data
	return model.Image{
		PublicID: "profile_images/profile_" + accountID,
		URL:      "https://cdn.example.com/profile_images/profile_" + accountID,
	}, nil
}

func TestGetUser(t *testing.T) {
	repo := newFakeUserRepo()
	auth := newTestAuthService(repo, &fakeMailer{})
	account := signupAna(t, auth)

	svc := NewUserService(repo, &fakeImageStore{})

	resp, err := svc.GetUser(context.Background(), account.User.ID)
	if err != nil {
		t.Fatalf("GetUser() unexpected error: %v", err)
	}
	if resp.Email != "ana@x.com" || resp.Name != "Ana" {
		t.Errorf("GetUser() = %+v, want Ana's account", resp)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeImageStore{})

	_, err := svc.GetUser(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestUploadImageEmpty(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeImageStore{})

	_, err := svc.UploadImage(context.Background(), primitive.NewObjectID().Hex(), "")
	if !errors.Is(err, ErrImageRequired) {
		t.Errorf("UploadImage() error = %v, want ErrImageRequired", err)
	}
}

func TestUploadImageInvalidBase64(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeImageStore{})

	_, err := svc.UploadImage(context.Background(), primitive.NewObjectID().Hex(), "not base64 at all!!!")
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("UploadImage() error = %v, want ErrInvalidImage", err)
	}
}

func TestUploadImageDataURI(t *testing.T) {
	repo := newFakeUserRepo()
	auth := newTestAuthService(repo, &fakeMailer{})
	account := signupAna(t, auth)

	images := &fakeImageStore{}
	svc := NewUserService(repo, images)

	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	resp, err := svc.UploadImage(context.Background(), account.User.ID, encoded)
	if err != nil {
		t.Fatalf("UploadImage() unexpected error: %v", err)
	}

	if images.lastContentType != "image/png" {
		t.Errorf("uploaded content type = %q, want image/png", images.lastContentType)
	}
	if string(images.lastData) != string(payload) {
		t.Error("uploaded bytes do not match the decoded payload")
	}

	if resp.Image == nil {
		t.Fatal("UploadImage() response has no image reference")
	}
	if resp.Image.PublicID != "profile_images/profile_"+account.User.ID {
		t.Errorf("image public id = %q", resp.Image.PublicID)
	}

	stored := repo.users["ana@x.com"]
	if stored.Image == nil || stored.Image.URL != resp.Image.URL {
		t.Error("image reference was not persisted on the account")
	}
}

func TestUploadImageBareBase64AssumesJPEG(t *testing.T) {
	repo := newFakeUserRepo()
	auth := newTestAuthService(repo, &fakeMailer{})
	account := signupAna(t, auth)

	images := &fakeImageStore{}
	svc := NewUserService(repo, images)

	encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})
	if _, err := svc.UploadImage(context.Background(), account.User.ID, encoded); err != nil {
		t.Fatalf("UploadImage() unexpected error: %v", err)
	}

	if images.lastContentType != "image/jpeg" {
		t.Errorf("uploaded content type = %q, want image/jpeg", images.lastContentType)
	}
}
