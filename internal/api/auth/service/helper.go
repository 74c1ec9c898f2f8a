package authService

import (
	"ExpenseTracker/internal/api/auth"
	"ExpenseTracker/internal/entity"
	jwtPkg "ExpenseTracker/pkg/jwt"
)

// MakeUserData returns the claims shared by access and refresh tokens.
func MakeUserData(user entity.User, tokenType string) map[string]interface{} {
	return map[string]interface{}{
		"id":         user.ID,
		"username":   user.Username,
		"token_type": tokenType,
	}
}

func makeUserResponse(user entity.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func accessClaims(user entity.User) map[string]interface{} {
	return MakeUserData(user, jwtPkg.TokenTypeAccess)
}

func refreshClaims(user entity.User, tokenID string) map[string]interface{} {
	claims := MakeUserData(user, jwtPkg.TokenTypeRefresh)
	claims["jti"] = tokenID
	return claims
}
