package authService

import (
	"ExpenseTracker/internal/api/auth"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	jwtPkg "ExpenseTracker/pkg/jwt"
	"ExpenseTracker/pkg/redis"
	"errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

func (s *authDomainImpl) Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByUsername(c, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to get user by username")
			return auth.LoginUserResponse{}, auth.ErrInvalidUsernameOrPassword
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get user by username")
		return auth.LoginUserResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Password comparison failed")
		return auth.LoginUserResponse{}, auth.ErrInvalidUsernameOrPassword
	}

	return s.issueTokens(c, user)
}

// Refresh exchanges a refresh token for a new pair. The presented token is consumed, so replaying
// it fails.
func (s *authDomainImpl) Refresh(c context.Context, req auth.RefreshTokenRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	claims, err := jwtPkg.Parse(req.Refresh, jwtPkg.RefreshTokenSecret, jwtPkg.TokenTypeRefresh)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Refresh token rejected")
		return auth.LoginUserResponse{}, auth.ErrorInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	principal, err := jwtPkg.UserFromClaims(claims)
	if err != nil || tokenID == "" {
		return auth.LoginUserResponse{}, auth.ErrorInvalidToken
	}

	ownerID, err := s.redisServer.ConsumeRefreshToken(c, tokenID)
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"token_id":   tokenID,
			}).Warn("Refresh token already used or revoked")
			return auth.LoginUserResponse{}, auth.ErrorInvalidToken
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to consume refresh token")
		return auth.LoginUserResponse{}, err
	}

	if ownerID != principal.ID {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"token_id":   tokenID,
		}).Warn("Refresh token owner mismatch")
		return auth.LoginUserResponse{}, auth.ErrorInvalidToken
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByID(c, principal.ID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginUserResponse{}, auth.ErrorInvalidToken
		}
		return auth.LoginUserResponse{}, err
	}

	return s.issueTokens(c, user)
}

func (s *authDomainImpl) Logout(c context.Context, req auth.RefreshTokenRequest) error {
	claims, err := jwtPkg.Parse(req.Refresh, jwtPkg.RefreshTokenSecret, jwtPkg.TokenTypeRefresh)
	if err != nil {
		return auth.ErrorInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return auth.ErrorInvalidToken
	}

	return s.redisServer.RevokeRefreshToken(c, tokenID)
}

func (s *authDomainImpl) issueTokens(c context.Context, user entity.User) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	access, expired, err := jwtPkg.Sign(accessClaims(user), auth.AccessTokenTTL, jwtPkg.AccessTokenSecret)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.LoginUserResponse{}, auth.ErrIssueToken
	}

	tokenID := uuid.NewString()
	refresh, _, err := jwtPkg.Sign(refreshClaims(user, tokenID), auth.RefreshTokenTTL, jwtPkg.RefreshTokenSecret)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign refresh token")
		return auth.LoginUserResponse{}, auth.ErrIssueToken
	}

	if err := s.redisServer.SetRefreshToken(c, tokenID, user.ID, auth.RefreshTokenTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store refresh token")
		return auth.LoginUserResponse{}, auth.ErrIssueToken
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("Token created")

	return auth.LoginUserResponse{
		Access:           access,
		Refresh:          refresh,
		ExpiresInMinutes: time.Until(time.Unix(expired, 0)).Minutes(),
	}, nil
}
