// Package kv is the local key/value repository the persistence gateway
// writes its JSON documents into.
package kv

import (
	"context"
)

// Repository stores opaque values under string keys.
//
// Get returns (nil, nil) for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
