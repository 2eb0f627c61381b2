package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultRole is assigned to every account at signup. Role changes are an
// admin concern and never happen through this API.
const DefaultRole = "subscriber"

// User represents an account document in the users collection. PasswordHash
// and ResetCode are persistence-only fields and are never serialized to API
// responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	ResetCode    string             `bson:"reset_code,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Image        *Image             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Image references a profile image kept in the external object store.
type Image struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

// SignupRequest represents an account registration request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents a signin request.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a reset code to be mailed out.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a previously mailed reset code.
type ResetPasswordRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ResetCode string `json:"resetCode"`
}

// UpdatePasswordRequest replaces the password of a signed-in account.
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// UploadImageRequest carries a base64 data-URI encoded profile image.
type UploadImageRequest struct {
	Image string `json:"image"`
}

// AuthResponse carries a session token plus the sanitized account.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// OKResponse reports the outcome of operations with no payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// UserResponse represents account data safe for API responses (no credential
// or reset-code fields).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Image     *Image    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse strips the password hash and reset code from an account.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}
