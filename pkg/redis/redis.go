package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

const refreshTokenPrefix = "refresh_token:"

// IRedis stores issued refresh tokens so they can be rotated and revoked.
type IRedis interface {
	SetRefreshToken(ctx context.Context, tokenID string, userID string, expiration time.Duration) error
	ConsumeRefreshToken(ctx context.Context, tokenID string) (string, error)
	RevokeRefreshToken(ctx context.Context, tokenID string) error
}

var ErrTokenNotFound = errors.New("refresh token not found or revoked")

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func NewFromClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

func (r *redisClient) SetRefreshToken(ctx context.Context, tokenID string, userID string, expiration time.Duration) error {
	if err := r.client.Set(ctx, refreshTokenPrefix+tokenID, userID, expiration).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"token_id": tokenID,
			"error":    err.Error(),
		}).Error("Error storing refresh token")
		return err
	}
	return nil
}

// ConsumeRefreshToken atomically reads and deletes the token so a refresh token can be used once.
func (r *redisClient) ConsumeRefreshToken(ctx context.Context, tokenID string) (string, error) {
	val, err := r.client.GetDel(ctx, refreshTokenPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	} else if err != nil {
		logrus.WithFields(logrus.Fields{
			"token_id": tokenID,
			"error":    err.Error(),
		}).Error("Error consuming refresh token")
		return "", err
	}
	return val, nil
}

func (r *redisClient) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	result, err := r.client.Del(ctx, refreshTokenPrefix+tokenID).Result()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"token_id": tokenID,
			"error":    err.Error(),
		}).Error("Error revoking refresh token")
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Refresh token %s already gone", tokenID))
	}
	return nil
}
