package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountValidator_ValidateLogin(t *testing.T) {
	validator := NewAccountValidator()

	tests := []struct {
		name        string
		login       string
		wantErr     bool
		expectedErr string
	}{
		{
			name:    "valid login",
			login:   "user123",
			wantErr: false,
		},
		{
			name:        "too short",
			login:       "ab",
			wantErr:     true,
			expectedErr: "login must be at least 3 characters",
		},
		{
			name:        "too long",
			login:       strings.Repeat("a", 33),
			wantErr:     true,
			expectedErr: "login must be at most 32 characters",
		},
		{
			name:    "valid with underscore",
			login:   "user_name",
			wantErr: false,
		},
		{
			name:    "valid with dot",
			login:   "user.name",
			wantErr: false,
		},
		{
			name:        "invalid space",
			login:       "user name",
			wantErr:     true,
			expectedErr: "login can only contain letters, digits, '_', '-', '.'",
		},
		{
			name:        "invalid special char",
			login:       "user@name",
			wantErr:     true,
			expectedErr: "login can only contain letters, digits, '_', '-', '.'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateLogin(tt.login)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAccountValidator_ValidatePassword(t *testing.T) {
	validator := NewAccountValidator()

	assert.NoError(t, validator.ValidatePassword("demo123"))
	assert.ErrorContains(t, validator.ValidatePassword("abc"), "at least 4")
	assert.ErrorContains(t, validator.ValidatePassword(strings.Repeat("x", 73)), "at most 72")
}

func TestAccountValidator_ValidateSeed(t *testing.T) {
	validator := NewAccountValidator()
	valid := Seed{
		Identity: Identity{ID: "1", Username: "admin", Email: "admin@example.com", Balance: 100},
		Password: "admin123",
	}

	tests := []struct {
		name     string
		mutate   func(s *Seed)
		wantCode string
	}{
		{name: "valid", mutate: func(s *Seed) {}},
		{name: "empty id", mutate: func(s *Seed) { s.ID = " " }, wantCode: "id"},
		{name: "bad username", mutate: func(s *Seed) { s.Username = "x" }, wantCode: "username"},
		{name: "short password", mutate: func(s *Seed) { s.Password = "1" }, wantCode: "password"},
		{name: "bad email", mutate: func(s *Seed) { s.Email = "nope" }, wantCode: "email"},
		{name: "negative balance", mutate: func(s *Seed) { s.Balance = -5 }, wantCode: "balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := valid
			tt.mutate(&seed)
			err := validator.ValidateSeed(seed)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			var derr *DomainError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.wantCode, derr.Code)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
