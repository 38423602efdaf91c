package dto

import (
	"time"

	"github.com/Revach69/bashert/internal/app/models"
)

// RegisterRequest is the signup payload. Roles is accepted for wire
// compatibility with older clients but is always ignored: new principals
// are stored with the creator role only, and elevation happens through the
// admin path.
type RegisterRequest struct {
	FullName string   `json:"fullName" binding:"required,min=2,max=100" example:"Rivka Cohen"`
	Email    string   `json:"email" binding:"required,email" example:"rivka@example.com"`
	Password string   `json:"password" binding:"required,min=6" example:"s3cretpass"`
	Phone    string   `json:"phone" binding:"omitempty,max=20" example:"+972501234567"`
	Roles    []string `json:"roles" binding:"-" swaggerignore:"true"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"rivka@example.com"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RefreshTokenRequest rotates a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AssignRoleRequest grants a privileged role to an existing user.
// Admin-gated; never reachable from registration.
type AssignRoleRequest struct {
	Email string `json:"email" binding:"required,email" example:"shadchan@example.com"`
	Role  string `json:"role" binding:"required" example:"matchmaker" enums:"creator,matchmaker,organizer"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	ExpiresIn        int           `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int           `json:"refreshExpiresIn" example:"2592000"`
	User             *UserResponse `json:"user,omitempty"`
}

// UserResponse is the public view of a principal
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"rivka@example.com"`
	FullName  string    `json:"fullName" example:"Rivka Cohen"`
	Phone     *string   `json:"phone,omitempty" example:"+972501234567"`
	Roles     []string  `json:"roles" example:"creator"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps a user model to its public view
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

// UserBasicResponse is the minimal user reference embedded in other
// resources
type UserBasicResponse struct {
	ID       int64  `json:"id" example:"1"`
	FullName string `json:"fullName" example:"Rivka Cohen"`
	Email    string `json:"email,omitempty" example:"rivka@example.com"`
}

// NewUserBasicResponse maps a user model to its embedded reference form
func NewUserBasicResponse(user *models.User) *UserBasicResponse {
	if user == nil {
		return nil
	}
	return &UserBasicResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}
}
