package session

import "errors"

var (
	MissingRefreshTokenErr = errors.New("refresh token not found")
	MissingFieldsErr       = errors.New("all registration fields are required")
)
