package app

import (
	"context"
	"testing"
	"time"

	"internboard/internal/common"
	"internboard/internal/domain/identity"
	"internboard/internal/security"
)

func newAuthService(accounts *fakeIdentityRepo) *AuthService {
	jwt := security.NewJWTProvider("test-secret")
	return NewAuthService(accounts, jwt, nil, time.Hour)
}

func TestRegister_Student(t *testing.T) {
	accounts := newFakeIdentityRepo()
	svc := newAuthService(accounts)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Sam@Uni.Test",
		Password: "correct horse",
		Role:     identity.RoleStudent,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Account.Email != "sam@uni.test" {
		t.Fatalf("expected lowercased email, got %q", result.Account.Email)
	}
	if result.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if result.Account.PasswordHash == "correct horse" {
		t.Fatal("expected password to be hashed")
	}
}

func TestRegister_CompanyStartsUnapproved(t *testing.T) {
	accounts := newFakeIdentityRepo()
	svc := newAuthService(accounts)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:       "hr@acme.test",
		Password:    "correct horse",
		Role:        identity.RoleCompany,
		CompanyName: "Acme",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Account.IsApproved {
		t.Fatal("expected new company to start unapproved")
	}
}

func TestRegister_Validation(t *testing.T) {
	accounts := newFakeIdentityRepo()
	svc := newAuthService(accounts)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Password: "correct horse", Role: identity.RoleStudent}},
		{"short password", RegisterInput{Email: "sam@uni.test", Password: "short", Role: identity.RoleStudent}},
		{"company without name", RegisterInput{Email: "hr@acme.test", Password: "correct horse", Role: identity.RoleCompany}},
		{"admin role", RegisterInput{Email: "root@board.test", Password: "correct horse", Role: identity.RoleAdmin}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.input); !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	accounts := newFakeIdentityRepo()
	svc := newAuthService(accounts)
	input := RegisterInput{Email: "sam@uni.test", Password: "correct horse", Role: identity.RoleStudent}

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("expected first register to succeed, got %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	accounts := newFakeIdentityRepo()
	svc := newAuthService(accounts)
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "sam@uni.test", Password: "correct horse", Role: identity.RoleStudent}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "sam@uni.test", "correct horse", identity.RoleStudent)
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	// Wrong password and unknown email fail identically.
	_, badPass := svc.Login(context.Background(), "sam@uni.test", "wrong", identity.RoleStudent)
	_, badEmail := svc.Login(context.Background(), "other@uni.test", "correct horse", identity.RoleStudent)
	for _, err := range []error{badPass, badEmail} {
		if !common.Is(err, common.CodeUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if err.Error() != "invalid credentials" {
			t.Fatalf("expected uniform message, got %q", err.Error())
		}
	}

	// Credentials are scoped per role: a student account cannot log in on
	// the company surface.
	if _, err := svc.Login(context.Background(), "sam@uni.test", "correct horse", identity.RoleCompany); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong role, got %v", err)
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	accounts := newFakeIdentityRepo()
	svc := newAuthService(accounts)

	if err := svc.EnsureAdmin(context.Background(), "root@board.test", "correct horse"); err != nil {
		t.Fatalf("expected seed to succeed, got %v", err)
	}
	if err := svc.EnsureAdmin(context.Background(), "root@board.test", "correct horse"); err != nil {
		t.Fatalf("expected repeat seed to be a no-op, got %v", err)
	}
	n, _ := accounts.CountByRole(context.Background(), identity.RoleAdmin)
	if n != 1 {
		t.Fatalf("expected exactly one admin, got %d", n)
	}

	if _, err := svc.Login(context.Background(), "root@board.test", "correct horse", identity.RoleAdmin); err != nil {
		t.Fatalf("expected admin login after seeding, got %v", err)
	}
}
