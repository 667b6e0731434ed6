package dbmetrics

import "context"

type executorKey struct{}

// WithExecutor returns a context carrying an open transaction executor.
// Repositories pick it up via GetExecutor, so the same repository code runs
// both inside and outside a transaction.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey{}, executor)
}

// GetExecutor returns the transaction executor from the context, or def when
// the context carries none.
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorKey{}).(DBExecutor); ok {
		return executor
	}
	return def
}

// IsInTransaction reports whether the context carries a transaction executor.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey{}).(DBExecutor)
	return ok
}
