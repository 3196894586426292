package kvstore

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is a flat string to string persistence store.
// Absent keys are reported with ErrKeyNotFound by Get, and are
// silently omitted from GetMany results.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	SetMany(ctx context.Context, pairs map[string]string) error
	Clear(ctx context.Context) error
	// Replace swaps the whole content for pairs in one step.
	// On error the previous content is kept.
	Replace(ctx context.Context, pairs map[string]string) error
}

// Snapshot reads every key of the store
func Snapshot(ctx context.Context, store Store) (map[string]string, error) {
	keys, err := store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	return store.GetMany(ctx, keys)
}
