// Package kv provides the durable key-value storage the tracker persists
// into. Keys and values are plain strings, mirroring browser local storage.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Open for an unrecognised driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage is closed")

// Storage is a string key-value store. Get reports ok=false for a missing
// key; a missing key is not an error. Remove of a missing key is a no-op.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open returns the storage backend named by driver. path is ignored by the
// memory driver.
func Open(ctx context.Context, driver, path string) (Storage, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, path)
	case DriverBolt:
		return OpenBolt(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: %w: %q", ErrUnknownDriver, driver)
	}
}
