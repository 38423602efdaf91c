package models

import (
	"time"
)

// User defines the principal model based on the 'users' table. Users are
// never hard-deleted; is_active carries account disabling.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"rivka@example.com"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	FullName    string     `json:"fullName" db:"full_name" example:"Rivka Cohen"`
	Phone       *string    `json:"phone,omitempty" db:"phone" example:"+972501234567"`
	Roles       []Role     `json:"roles" db:"roles" example:"creator"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2026-01-01T10:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2026-01-02T15:30:00Z"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// HasRole reports whether the user's role set contains role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RefreshToken defines a persisted refresh token based on the
// 'refresh_tokens' table.
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
