package session

import (
	"errors"
	"os"
	"strings"
)

// ErrNoToken means no credential is available for remote calls.
var ErrNoToken = errors.New("no session token available")

// Provider supplies the bearer credential for remote calls. Login and
// logout belong to whatever issued the token; consumers here only read it
// and pass it explicitly into each operation.
type Provider interface {
	Token() (string, error)
}

// StaticProvider returns a fixed token, typically read from config.
type StaticProvider struct {
	token string
}

func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: strings.TrimSpace(token)}
}

func (p *StaticProvider) Token() (string, error) {
	if p.token == "" {
		return "", ErrNoToken
	}
	return p.token, nil
}

// EnvProvider reads the token from an environment variable on every call,
// so an externally refreshed credential is picked up without a restart.
type EnvProvider struct {
	key string
}

func NewEnvProvider(key string) *EnvProvider {
	return &EnvProvider{key: key}
}

func (p *EnvProvider) Token() (string, error) {
	token := strings.TrimSpace(os.Getenv(p.key))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
