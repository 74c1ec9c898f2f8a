package jwtPkg

import (
	"ExpenseTracker/internal/entity"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
	"time"
)

const (
	AccessTokenSecret  = "JWT_ACCESS_TOKEN_SECRET"
	RefreshTokenSecret = "JWT_REFRESH_TOKEN_SECRET"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	UserLocalsKey = "user"
)

var (
	ErrEmptyAuthorization   = errors.New("empty Authorization header")
	ErrInvalidAuthorization = errors.New("invalid Authorization format")
	ErrSecretNotConfigured  = errors.New("JWT secret not configured")
	ErrWrongTokenType       = errors.New("unexpected token type")
)

// Sign builds an HS256 token from data using the secret stored in secretEnvKey.
func Sign(data map[string]interface{}, expiresIn time.Duration, secretEnvKey string) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", secretEnvKey)
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	claims["iat"] = time.Now().Unix()

	for i, v := range data {
		claims[i] = v
	}

	logrus.WithField("claim_keys", len(claims)).Debug("Creating token with claims")

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := to.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return token, expiredAt, nil
}

// Parse validates tokenString against the secret in secretEnvKey and checks its token_type claim.
func Parse(tokenString string, secretEnvKey string, tokenType string) (jwt.MapClaims, error) {
	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	if claims["token_type"] != tokenType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (jwt.MapClaims, error) {
	log := logrus.WithField("func", "VerifyTokenHeader")

	header := c.Get("Authorization")
	if header == "" {
		log.Debug("Empty Authorization header")
		return nil, ErrEmptyAuthorization
	}

	if !strings.HasPrefix(header, "Bearer ") {
		log.Debug("Invalid Authorization format")
		return nil, ErrInvalidAuthorization
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		log.Debug("Empty token after Bearer")
		return nil, ErrInvalidAuthorization
	}

	claims, err := Parse(accessToken, secretEnvKey, TokenTypeAccess)
	if err != nil {
		log.WithError(err).Debug("Failed to parse JWT token")
		return nil, err
	}

	return claims, nil
}

// UserFromClaims extracts the principal from verified claims.
func UserFromClaims(claims jwt.MapClaims) (entity.UserLoginData, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return entity.UserLoginData{}, errors.New("token claims are missing id")
	}
	username, _ := claims["username"].(string)

	return entity.UserLoginData{
		ID:       id,
		Username: username,
	}, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals(UserLocalsKey).(entity.UserLoginData)
	if !ok || user.ID == "" {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
