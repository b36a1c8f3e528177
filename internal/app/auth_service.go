package app

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"internboard/internal/common"
	"internboard/internal/domain/identity"
	"internboard/internal/security"
)

type AuthService struct {
	accounts identity.Repository
	jwt      *security.JWTProvider
	logger   *slog.Logger
	tokenTTL time.Duration
}

func NewAuthService(accounts identity.Repository, jwt *security.JWTProvider, logger *slog.Logger, tokenTTL time.Duration) *AuthService {
	return &AuthService{accounts: accounts, jwt: jwt, logger: logger, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Email       string
	Password    string
	Role        identity.Role
	CompanyName string
}

type AuthResult struct {
	Account     *identity.Identity `json:"account"`
	AccessToken string             `json:"access_token"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// Register creates a student or company account. Company accounts start
// unapproved and cannot post offers until an admin approves them. Admin
// accounts are never self-registered; the seed admin comes from config.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateRegisterInput(email, input); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.accounts.Create(ctx, identity.Identity{
		Email:        email,
		Role:         input.Role,
		PasswordHash: hash,
		CompanyName:  strings.TrimSpace(input.CompanyName),
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("account registered", slog.String("account_id", account.ID.String()), slog.String("role", string(account.Role)))
	}
	return s.issueToken(account)
}

// Login verifies credentials for one role and issues an access token. The
// error never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string, role identity.Role) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if !security.ComparePassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	return s.issueToken(account)
}

// EnsureAdmin creates the seed admin account if it does not exist yet.
// Admin identities are never self-registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.accounts.FindByEmailAndRole(ctx, email, identity.RoleAdmin); err == nil {
		return nil
	} else if !common.Is(err, common.CodeNotFound) {
		return err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.accounts.Create(ctx, identity.Identity{
		Email:        email,
		Role:         identity.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("admin account seeded", slog.String("account_id", account.ID.String()))
	}
	return nil
}

func (s *AuthService) issueToken(account *identity.Identity) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(account.ID, account.Email, string(account.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{Account: account, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func validateRegisterInput(email string, input RegisterInput) error {
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "invalid email"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	switch input.Role {
	case identity.RoleStudent:
	case identity.RoleCompany:
		if strings.TrimSpace(input.CompanyName) == "" {
			fields["company_name"] = "company_name is required"
		}
	default:
		fields["role"] = "role must be student or company"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid registration", fields)
	}
	return nil
}

func validateRole(role identity.Role) error {
	switch role {
	case identity.RoleAdmin, identity.RoleCompany, identity.RoleStudent:
		return nil
	default:
		return common.NewValidationError("invalid role", map[string]string{"role": "role must be admin, company, or student"})
	}
}
