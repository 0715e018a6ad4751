package kv

// Package kv abstracts the device-local key-value store that backs the
// personalization caches (saved addresses, cart contents, login session).

import (
	"context"
	"errors"
	"fmt"
)

// Provider defines the interface for the local key-value store.
// Implementations may fail on any call; callers that treat their data as a
// convenience cache are expected to map errors to "no data".
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider              string
	RedisConnectionString string
	FilePath              string
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider()
	case "redis":
		return NewRedisProvider(cfg.RedisConnectionString)
	case "file":
		return NewFileProvider(cfg.FilePath)
	default:
		return nil, fmt.Errorf("unsupported kv provider: %s", cfg.Provider)
	}
}

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")
