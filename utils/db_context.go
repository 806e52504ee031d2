package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds ordinary lookups so a stuck connection cannot
// leave a request hanging indefinitely.
const DefaultQueryTimeout = 30 * time.Second

// SlowQueryTimeout is for report-style queries (exports, PDF summaries).
const SlowQueryTimeout = 60 * time.Second

// GetQueryContext returns a context with the given timeout for database work.
func GetQueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

// GetDefaultQueryContext returns a context with the default query timeout.
func GetDefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, DefaultQueryTimeout)
}
