// Package auth provides authentication domain logic: users, password
// verification, and signed access tokens.
package auth

import (
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
)

// Role is the coarse permission level of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// User is an account that can operate the system.
type User struct {
	ID           id.ID      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"firstName,omitempty"`
	LastName     string     `db:"last_name" json:"lastName,omitempty"`
	Role         Role       `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	FailedLogins int        `db:"failed_logins" json:"-"`
	LockedUntil  *time.Time `db:"locked_until" json:"-"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

// NewUser creates a user with a fresh id.
func NewUser(email, passwordHash string, role Role) *User {
	return &User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

// CanLogin checks account state prior to password verification.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	if u.LockedUntil != nil && u.LockedUntil.After(time.Now()) {
		return apperror.NewForbidden("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin counts a failed attempt, locking the account once
// the limit is hit.
func (u *User) RecordFailedLogin(maxAttempts int, lockFor time.Duration) {
	u.FailedLogins++
	if u.FailedLogins >= maxAttempts {
		until := time.Now().Add(lockFor)
		u.LockedUntil = &until
	}
}

// RecordSuccessfulLogin resets failure tracking.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLogins = 0
	u.LockedUntil = nil
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

// Credentials is a login submission.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token is the login response payload.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
