// Package user defines the user record and the persistence collaborator the
// authentication core reads and writes through.
//
// The core only needs two operations, lookup by email and save. Repository
// implementations must guarantee that at most one registration succeeds per
// email, even under concurrent attempts.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no user matches the email.
	ErrNotFound = errors.New("user: not found")
	// ErrDuplicate is returned by Save when the email is already registered.
	ErrDuplicate = errors.New("user: email already registered")
)

// User is the persisted user record. Email is the unique, case-sensitive
// identifier and never changes after creation.
type User struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	Name         string    `gorm:"type:text;not null;default:''"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	Role         string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName pins the table name used by migrations.
func (User) TableName() string { return "users" }

// Repository is the persistence collaborator.
type Repository interface {
	// FindByEmail returns the user with the exact email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Save persists a new user. Returns ErrDuplicate if the email exists.
	Save(ctx context.Context, u *User) error
}

// prepare fills the generated fields of a new record.
func prepare(u *User, now time.Time) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now.UTC()
	}
}
