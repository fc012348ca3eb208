package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/loginauth/user"
)

type failingRepo struct{ err error }

func (f failingRepo) FindByEmail(context.Context, string) (*user.User, error) { return nil, f.err }
func (f failingRepo) Save(context.Context, *user.User) error                 { return f.err }

func TestAuthority(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"admin", "ROLE_ADMIN"},
		{"user", "ROLE_USER"},
		{" Editor ", "ROLE_EDITOR"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := Authority(tt.role); got != tt.want {
				t.Errorf("Authority(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	repo := user.NewMemoryRepository()
	if err := repo.Save(ctx, &user.User{Email: "a@x.com", Name: "A", Role: "admin", PasswordHash: "h"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	l := NewLoader(repo)

	p, err := l.Load(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Subject() != "a@x.com" || p.Name() != "A" || p.Role() != "admin" {
		t.Errorf("unexpected principal: %+v", p)
	}
	if !p.HasAuthority("ROLE_ADMIN") {
		t.Errorf("expected ROLE_ADMIN, got %v", p.Authorities())
	}
}

func TestLoader_NotFound(t *testing.T) {
	l := NewLoader(user.NewMemoryRepository())
	if _, err := l.Load(context.Background(), "missing@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoader_CaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := user.NewMemoryRepository()
	_ = repo.Save(ctx, &user.User{Email: "a@x.com", PasswordHash: "h"})
	if _, err := NewLoader(repo).Load(ctx, "A@X.COM"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup must be case-sensitive, got %v", err)
	}
}

func TestLoader_RepositoryFault(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewLoader(failingRepo{err: boom}).Load(context.Background(), "a@x.com")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped fault, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("a repository fault must not be reported as not found")
	}
}
