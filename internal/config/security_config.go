package config

import (
	"strconv"
	"time"
)

type SecurityConfig interface {
	GetJWTSecret() string
	GetExecTimeout() time.Duration
	GetMinPasswordLength() int
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetJWTSecret returns the token signing secret. There is deliberately no
// default; an empty value is a startup-fatal configuration error.
func (Security) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, "")
}

// GetExecTimeout bounds a single playground run.
func (Security) GetExecTimeout() time.Duration {
	if raw := GetEnv(execTimeoutVar, ""); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 10 * time.Second
}

func (Security) GetMinPasswordLength() int {
	return 6
}
