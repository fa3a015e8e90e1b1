package core

import (
	"context"

	"github.com/spf13/afero"
)

// Context keys for run options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	fsKey             contextKey = "fs"
)

// WithSuppressHeader marks the context so that run headers are not printed.
// The MCP server relies on this to keep the protocol stream clean.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithFs makes commands run with ctx read and write through fs instead of the
// process filesystem.
func WithFs(ctx context.Context, fs afero.Fs) context.Context {
	return context.WithValue(ctx, fsKey, fs)
}

// fsFrom returns the filesystem carried by ctx, or the process filesystem.
func fsFrom(ctx context.Context) afero.Fs {
	if fs, ok := ctx.Value(fsKey).(afero.Fs); ok && fs != nil {
		return fs
	}
	return appFs
}
