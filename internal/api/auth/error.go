package auth

import (
	"ExpenseTracker/pkg/response"
	"net/http"
)

var (
	ErrUsernameAlreadyExists     = response.NewError(http.StatusConflict, "username already exists")
	ErrInvalidUsernameOrPassword = response.NewError(http.StatusUnauthorized, "username or password is wrong")
	ErrUserNotFound              = response.NewError(http.StatusNotFound, "user not found")
	ErrorInvalidToken            = response.NewError(http.StatusUnauthorized, "token is invalid or expired")
	ErrCreateUser                = response.NewError(http.StatusInternalServerError, "failed to create user")
	ErrIssueToken                = response.NewError(http.StatusInternalServerError, "failed to issue token")
)
