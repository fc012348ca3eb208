package user

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Migrations holds the versioned SQL migrations for the users table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

// GormRepository is a Repository backed by GORM. Uniqueness of email is
// enforced by the idx_users_email unique index.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a GormRepository on db.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// FindByEmail implements Repository.
func (r *GormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user: find by email: %w", err)
	}
	return &u, nil
}

// Save implements Repository.
func (r *GormRepository) Save(ctx context.Context, u *User) error {
	prepare(u, time.Now())
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("user: save: %w", err)
	}
	return nil
}

// Delete removes the user with the given email. Missing users are ignored.
func (r *GormRepository) Delete(ctx context.Context, email string) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).Delete(&User{}).Error; err != nil {
		return fmt.Errorf("user: delete: %w", err)
	}
	return nil
}

// isDuplicate recognises a unique-constraint violation. gorm translates it
// when the session has TranslateError enabled; the message check covers
// sessions opened without it.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
