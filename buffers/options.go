package buffers

import "github.com/elslush/Performance/bufferpool"

type Option[T any] func(*config[T])

type config[T any] struct {
	// initialCapacity is the number of elements rented up front.
	// Zero keeps the writer on the empty sentinel until the first write.
	initialCapacity int

	// pool is the shared allocator the writer rents its storage from.
	// The pool is borrowed, never owned, and must outlive the writer.
	pool bufferpool.IPool[T]
}

func WithInitialCapacity[T any](initialCapacity int) Option[T] {
	return func(cfg *config[T]) {
		cfg.initialCapacity = initialCapacity
	}
}

func WithPool[T any](pool bufferpool.IPool[T]) Option[T] {
	return func(cfg *config[T]) {
		cfg.pool = pool
	}
}
