package session

import (
	"context"

	"github.com/matzehuels/coffeetier/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory = backendMemory
	BackendRedis  = backendRedis
	BackendFile   = backendFile
)

// Options selects and configures a backend.
type Options struct {
	Backend string // memory (default), redis or file
	Dir     string // file backend directory
	Redis   RedisConfig
}

// Open creates the store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown session backend %q (must be memory, redis or file)", opts.Backend)
}
