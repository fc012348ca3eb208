package validation

import (
	"testing"

	"github.com/kbukum/loginauth/errors"
)

type signup struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"name" validate:"notblank"`
	Role        string `validate:"max=16"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(signup{Email: "a@x.com", Password: "secret", DisplayName: "A", Role: "user"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    signup
		field string
		msg   string
	}{
		{"missing email", signup{Password: "p", DisplayName: "A"}, "email", "is required"},
		{"bad email", signup{Email: "nope", Password: "p", DisplayName: "A"}, "email", "must be a valid email address"},
		{"missing password", signup{Email: "a@x.com", DisplayName: "A"}, "password", "is required"},
		{"blank name", signup{Email: "a@x.com", Password: "p", DisplayName: "   "}, "name", "is required"},
		{"untagged field uses snake case", signup{Email: "a@x.com", Password: "p", DisplayName: "A", Role: "a-very-long-role-name"}, "role", "must be at most 16 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != errors.ErrCodeInvalidInput || appErr.HTTPStatus != 400 {
				t.Errorf("unexpected error: %+v", appErr)
			}
			fields, _ := appErr.Details["fields"].([]FieldError)
			if len(fields) != 1 || fields[0].Field != tt.field || fields[0].Message != tt.msg {
				t.Errorf("fields = %+v, want %s %q", fields, tt.field, tt.msg)
			}
		})
	}
}

func TestValidate_MultipleFields(t *testing.T) {
	err := Validate(signup{})
	appErr, _ := errors.AsAppError(err)
	if appErr == nil {
		t.Fatal("expected error")
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	if len(fields) != 3 {
		t.Errorf("expected email, password and name failures, got %+v", fields)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("DisplayName"); got != "display_name" {
		t.Errorf("toSnakeCase = %q", got)
	}
}
