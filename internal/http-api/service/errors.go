package service

import "errors"

// Error taxonomy surfaced to callers. Storage failures are wrapped with %w
// and reach the caller as-is; conditional pointer updates silently no-op
// rather than raising a conflict.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
