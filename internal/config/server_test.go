package config

import (
	"io"
	"net/http/httptest"
	"testing"

	"ExpenseTracker/pkg/redis"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := NewServer(
		WithFiber(fiber.New()),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithDB(sqlx.NewDb(db, "postgres")),
		WithRedisServer(redis.NewFromClient(client)),
		WithMiddleware(),
		WithBcryptUtils(),
		WithUtils(),
	)
	require.NoError(t, err)

	server.RegisterHandler()
	server.Mount()
	return server, mock
}

func TestNewServerRequiresEngineAndLogger(t *testing.T) {
	_, err := NewServer(WithLogger(logrus.New()))
	assert.Error(t, err)

	_, err = NewServer(WithFiber(fiber.New()))
	assert.Error(t, err)

	_, err = NewServer(WithFiber(fiber.New()), WithMiddleware())
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	server, mock := newTestServer(t)
	mock.ExpectPing()

	resp, err := server.engine.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "up", body["database"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server, _ := newTestServer(t)

	for _, target := range []string{
		"/api/v1/expenses",
		"/api/v1/expenses/01HZ",
		"/api/v1/categories",
		"/api/v1/reports/summary",
		"/api/v1/auth/me",
	} {
		resp, err := server.engine.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, target)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), target)
	}
}
