package system

import (
	"context"
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/config"
	"github.com/julianstephens/hae/internal/keyring"
	"github.com/julianstephens/hae/internal/models"
)

var errTest = errors.New("backend unavailable")

type fakeBackend struct {
	cli.Backend
	employee models.Employee
	err      error
}

func (f *fakeBackend) GetProfessorByEmail(_ context.Context, email string) (models.Employee, error) {
	if f.err != nil {
		return models.Employee{}, f.err
	}
	e := f.employee
	e.Email = email
	return e, nil
}

func TestAuthSetTokenCmd(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteToken() }()

	tests := []struct {
		name      string
		token     string
		wantError bool
	}{
		{"valid token", "abc.def.ghi", false},
		{"token with spaces is trimmed", "  abc123  ", false},
		{"empty token", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AuthSetTokenCmd{Token: tt.token}
			err := cmd.Run(&cli.Context{})
			if (err != nil) != tt.wantError {
				t.Errorf("AuthSetTokenCmd.Run() error = %v, wantError %v", err, tt.wantError)
			}
			if err == nil {
				if _, getErr := keyring.GetToken(); getErr != nil {
					t.Errorf("token not stored: %v", getErr)
				}
			}
		})
	}
}

func TestAuthClearCmd(t *testing.T) {
	gokeyring.MockInit()

	t.Run("not found", func(t *testing.T) {
		_ = keyring.DeleteToken()
		cmd := &AuthClearCmd{}
		if err := cmd.Run(&cli.Context{}); err == nil {
			t.Error("AuthClearCmd.Run() should fail when no token is stored")
		}
	})

	t.Run("delete success", func(t *testing.T) {
		if err := keyring.SetToken("abc123"); err != nil {
			t.Fatalf("failed to set token: %v", err)
		}
		cmd := &AuthClearCmd{}
		if err := cmd.Run(&cli.Context{}); err != nil {
			t.Errorf("AuthClearCmd.Run() error = %v", err)
		}
		if _, err := keyring.GetToken(); !errors.Is(err, keyring.ErrNotFound) {
			t.Error("token should be deleted from keyring")
		}
	})
}

func TestAuthWhoamiCmd(t *testing.T) {
	employee := models.Employee{
		ID:          "emp-1",
		Name:        "Ana",
		Role:        "PROFESSOR",
		Institution: models.Institution{Name: "Fatec", InstitutionCode: 101},
	}

	tests := []struct {
		name      string
		ctx       *cli.Context
		wantError bool
	}{
		{
			name: "resolved",
			ctx: &cli.Context{
				Config:  &config.Config{Session: config.SessionConfig{Email: "ana@fatec.sp.gov.br"}},
				Backend: &fakeBackend{employee: employee},
				Token:   "abc123",
			},
		},
		{
			name: "no token",
			ctx: &cli.Context{
				Config:  &config.Config{Session: config.SessionConfig{Email: "ana@fatec.sp.gov.br"}},
				Backend: &fakeBackend{employee: employee},
			},
		},
		{
			name:      "no email",
			ctx:       &cli.Context{Config: &config.Config{}, Backend: &fakeBackend{}},
			wantError: true,
		},
		{
			name: "backend rejects",
			ctx: &cli.Context{
				Config:  &config.Config{Session: config.SessionConfig{Email: "ana@fatec.sp.gov.br"}},
				Backend: &fakeBackend{err: errTest},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AuthWhoamiCmd{}
			err := cmd.Run(tt.ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("AuthWhoamiCmd.Run() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
