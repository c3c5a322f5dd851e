package entity

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required,min=2,max=80"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-" validate:"required"`
	Role         Role      `json:"role" validate:"oneof=user admin"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser builds an active user. An empty name defaults to the local part of
// the email address.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultNameFromEmail(email)
	}
	if role == "" {
		role = RoleUser
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := Validate(u); err != nil {
		return nil, err
	}
	return u, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func DefaultNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
