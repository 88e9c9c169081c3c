package response

import (
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type TokenResponse struct {
	UserID       uuid.UUID `json:"userId"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func FromLoginResult(result *commands.LoginResult) *TokenResponse {
	return &TokenResponse{
		UserID:       result.UserID,
		Role:         result.Role.String(),
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
	}
}

func FromTokenPair(pair *commands.TokenPair) *TokenPairResponse {
	return &TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}
