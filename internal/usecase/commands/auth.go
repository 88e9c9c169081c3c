package commands

import (
	"context"
	"strings"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/user"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/jwt"
	"tablebook/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrInvalidGuest       = errs.New("invalid guest identity")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

// AuthCommands issues tokens. There is no user store: the admin identity
// comes from configuration, and customers self-identify with name and phone,
// where the phone claim scopes their notification stream.
type AuthCommands interface {
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
	GuestToken(ctx context.Context, name, phone string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	admin      config.AdminConfig
	jwtService *jwt.Service
}

func NewAuthCommands(admin config.AdminConfig, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		admin:      admin,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(_ context.Context, email, pass string) (*LoginResult, error) {
	// Single comparison path regardless of which part mismatched, to avoid
	// leaking whether the email is the configured one.
	if !strings.EqualFold(strings.TrimSpace(email), a.admin.Email) {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(a.admin.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issue(uuid.New(), user.RoleAdmin, "")
}

func (a *authCommandsImpl) GuestToken(_ context.Context, name, phone string) (*LoginResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidGuest
	}
	normalized, err := booking.NewPhone(phone)
	if err != nil {
		return nil, ErrInvalidGuest
	}

	return a.issue(uuid.New(), user.RoleCustomer, normalized.String())
}

func (a *authCommandsImpl) RefreshToken(_ context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	result, err := a.issue(claims.UserID, role, claims.Phone)
	if err != nil {
		return nil, err
	}
	return result.TokenPair, nil
}

func (a *authCommandsImpl) issue(id uuid.UUID, role user.Role, phone string) (*LoginResult, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(id, role, phone)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(id, role, phone)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID: id,
		Role:   role,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
