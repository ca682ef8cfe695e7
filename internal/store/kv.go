// Package store provides the key-value persistence used across the training pages,
// together with explicit change notifications for anything that caches its contents.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound indicates the key does not exist or has expired.
var ErrNotFound = errors.New("key not found")

// Backend names accepted by ValidateBackend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQL    = "sql"
)

// KV is a last-writer-wins key-value store. Values are opaque JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl keeps the value until it is deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Keys lists live keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ValidateBackend normalises a backend name.
func ValidateBackend(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "":
		return BackendMemory, nil
	case BackendMemory, BackendRedis, BackendSQL:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported store backend %q", name)
	}
}

func expiryFrom(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	expires := now.Add(ttl)
	return &expires
}
