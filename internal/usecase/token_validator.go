package usecase

import (
	"tablebook/internal/domain/user"
	"tablebook/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the authenticated caller as seen by middleware. Phone is
// empty for admins.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
	Phone  string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (*Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (*Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, jwt.ErrInvalidToken
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID: claims.UserID,
		Role:   role,
		Phone:  claims.Phone,
	}, nil
}
