package auth

import "errors"

var (
	MissingTokenErr = errors.New("missing authorization token")
	InvalidTokenErr = errors.New("invalid or expired token")
)
