package cache

import (
	"context"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // file backend
	RedisURL string // redis backend
}

// Open returns the backend named by opts.Backend. An empty backend is
// "none".
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.RedisURL)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file or redis)", opts.Backend)
	}
}
