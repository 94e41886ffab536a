package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in. Accounts are never hard-deleted;
// IsActive=false deactivates them.
//
// A verification or reset token is always stored together with its expiry.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email           string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	FirstName       string    `gorm:"size:100" json:"first_name"`
	LastName        string    `gorm:"size:100" json:"last_name"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	IsEmailVerified bool      `gorm:"not null" json:"is_email_verified"`

	EmailVerificationToken       *string    `gorm:"size:128" json:"-"`
	EmailVerificationTokenExpiry *time.Time `json:"-"`
	PasswordResetToken           *string    `gorm:"size:128" json:"-"`
	PasswordResetTokenExpiry     *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DisplayName is the name used in outgoing mail.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

func (u *User) SetVerificationToken(token string, expiry time.Time) {
	u.EmailVerificationToken = &token
	u.EmailVerificationTokenExpiry = &expiry
}

func (u *User) ClearVerificationToken() {
	u.EmailVerificationToken = nil
	u.EmailVerificationTokenExpiry = nil
}

func (u *User) SetResetToken(token string, expiry time.Time) {
	u.PasswordResetToken = &token
	u.PasswordResetTokenExpiry = &expiry
}

func (u *User) ClearResetToken() {
	u.PasswordResetToken = nil
	u.PasswordResetTokenExpiry = nil
}
