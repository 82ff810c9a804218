package buffers

import (
	"fmt"
	"math/bits"

	"go.uber.org/zap"

	"github.com/elslush/Performance/bufferpool"
)

const (
	// minimumCapacity floors every growth, so growing from the empty
	// sentinel never rents a zero-size block.
	minimumCapacity = 8

	// defaultReserveHint substitutes for Reserve(0), so hint-free
	// one-element-at-a-time write loops always receive a usable region.
	defaultReserveHint = 8
)

// ResizableWriter accumulates sequentially appended elements in a single
// pool-rented contiguous block, doubling the block through the pool whenever
// the next write would not fit. Keeping the storage on a shared pool
// eliminates the need to allocate a fresh backing array for every logical
// message, so the GC doesn't have to be kicked in to clean up short-lived
// buffers.
//
// A writer exclusively owns its block between Rent and Return and is not
// safe for concurrent use; callers with concurrent producers must shard or
// synchronize externally.
type ResizableWriter[T any] struct {
	// storage is the pool-rented backing block, or nil before the first
	// rental. The capacity of the writer is always len(storage).
	storage []T

	// length is the committed write cursor, 0 <= length <= len(storage).
	length int

	// reserved is the size of the outstanding reservation, 0 when none.
	reserved int

	pool bufferpool.IPool[T]

	// disposed is terminal; once set, storage is gone and every operation fails.
	disposed bool
}

// New creates a writer renting from its own predictable pool unless
// WithPool overrides it. With a zero initial capacity no block is rented
// until the first write.
func New[T any](opts ...Option[T]) (*ResizableWriter[T], error) {
	cfg := config[T]{
		pool: bufferpool.NewPredictablePool[T](),
	}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.initialCapacity < 0 {
		return nil, fmt.Errorf("%w: negative initial capacity %d", ErrInvalidArgument, cfg.initialCapacity)
	}

	w := &ResizableWriter[T]{pool: cfg.pool}
	if cfg.initialCapacity > 0 {
		w.storage = cfg.pool.Rent(cfg.initialCapacity)
	}
	return w, nil
}

// WriteOne appends a single element, growing the storage if needed.
func (w *ResizableWriter[T]) WriteOne(item T) error {
	if w.disposed {
		return ErrWriterDisposed
	}

	// a direct write bypasses the two-phase protocol, so the outstanding
	// reservation must not survive it
	w.reserved = 0
	if err := w.grow(1); err != nil {
		return err
	}

	w.storage[w.length] = item
	w.length++
	return nil
}

// WriteSlice appends all elements of items in order, growing the storage
// at most once. Writing an empty slice mutates nothing.
func (w *ResizableWriter[T]) WriteSlice(items []T) error {
	if w.disposed {
		return ErrWriterDisposed
	}
	if len(items) == 0 {
		return nil
	}

	w.reserved = 0
	if err := w.grow(len(items)); err != nil {
		return err
	}

	copy(w.storage[w.length:], items)
	w.length += len(items)
	return nil
}

// Reserve grows the storage so at least sizeHint free elements follow the
// committed cursor and returns a mutable view over exactly that region.
// A zero sizeHint is promoted to a small default, so the returned view is
// never empty. Reserving again before Commit re-derives the view without
// moving the cursor.
//
// The view is valid until the next mutating call on the writer. WriteOne,
// WriteSlice, Reset and Dispose all invalidate it; a Commit issued after
// one of those fails with ErrInvalidState instead of touching storage the
// reservation no longer covers. A repeated Reserve invalidates the earlier
// view too whenever it grows the storage: the block backing that view has
// been returned to the pool and may already be lent to another writer.
func (w *ResizableWriter[T]) Reserve(sizeHint int) ([]T, error) {
	if w.disposed {
		return nil, ErrWriterDisposed
	}
	if sizeHint < 0 {
		return nil, fmt.Errorf("%w: negative size hint %d", ErrInvalidArgument, sizeHint)
	}
	if sizeHint == 0 {
		sizeHint = defaultReserveHint
	}

	if err := w.grow(sizeHint); err != nil {
		return nil, err
	}

	w.reserved = sizeHint
	return w.storage[w.length : w.length+sizeHint], nil
}

// Commit declares that count elements of the outstanding reservation were
// written and advances the cursor over them. The bound is the reservation,
// not the remaining capacity: the view handed out by Reserve is only
// guaranteed valid up to its hint.
func (w *ResizableWriter[T]) Commit(count int) error {
	if w.disposed {
		return ErrWriterDisposed
	}
	if count < 0 {
		return fmt.Errorf("%w: negative commit count %d", ErrInvalidArgument, count)
	}
	if count > w.reserved {
		return fmt.Errorf("%w: commit of %d exceeds the outstanding reservation of %d", ErrInvalidState, count, w.reserved)
	}

	w.length += count
	w.reserved = 0
	return nil
}

// WrittenView returns a read-only view over the committed prefix.
func (w *ResizableWriter[T]) WrittenView() ([]T, error) {
	if w.disposed {
		return nil, ErrWriterDisposed
	}
	return w.storage[:w.length], nil
}

// FullView returns the entire backing block, including the stale tail past
// the committed cursor, for callers that need the whole region.
func (w *ResizableWriter[T]) FullView() ([]T, error) {
	if w.disposed {
		return nil, ErrWriterDisposed
	}
	return w.storage, nil
}

// Len reports the committed element count.
func (w *ResizableWriter[T]) Len() int {
	return w.length
}

// Cap reports the length of the backing block.
func (w *ResizableWriter[T]) Cap() int {
	return len(w.storage)
}

// Reset drops the committed data and the outstanding reservation but keeps
// the backing block, amortizing the rental across logical messages.
func (w *ResizableWriter[T]) Reset() error {
	if w.disposed {
		return ErrWriterDisposed
	}
	w.length = 0
	w.reserved = 0
	return nil
}

// Dispose returns the backing block to the pool and makes the writer
// terminal. Only the first call releases; later calls are no-ops, so a
// block can never be returned twice.
func (w *ResizableWriter[T]) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true

	if len(w.storage) > 0 {
		w.pool.Return(w.storage)
	}
	w.storage = nil
	w.length = 0
	w.reserved = 0
}

// grow ensures the block has room for additional elements past the
// committed cursor. The old block is returned to the pool only after the
// committed prefix has been copied out of it, so the pool never sees a
// block still in use. On any error the writer is left untouched.
func (w *ResizableWriter[T]) grow(additional int) error {
	needed := w.length + additional
	if needed < w.length {
		// int wrap-around, the requested total is unrepresentable
		zap.L().Error("buffer growth overflows",
			zap.Int("length", w.length),
			zap.Int("additional", additional))
		return fmt.Errorf("%w: %d + %d elements", ErrSizeOverflow, w.length, additional)
	}
	if needed <= len(w.storage) {
		return nil
	}

	newCapacity := nextPowerOfTwo(needed)
	if newCapacity < needed {
		zap.L().Error("buffer growth overflows",
			zap.Int("needed", needed))
		return fmt.Errorf("%w: no power of two holds %d elements", ErrSizeOverflow, needed)
	}

	// the pool may over-allocate; the writer capacity tracks the block
	// actually lent, not the minimum requested
	block := w.pool.Rent(newCapacity)
	if w.length > 0 {
		copy(block, w.storage[:w.length])
	}
	if len(w.storage) > 0 {
		// the empty sentinel was never rented and must not be returned
		w.pool.Return(w.storage)
	}
	w.storage = block
	return nil
}

// nextPowerOfTwo rounds n up to a power of two, floored at minimumCapacity.
// Overflows to a negative value when n exceeds the largest representable
// power of two; grow treats that as a fatal size error.
func nextPowerOfTwo(n int) int {
	if n <= minimumCapacity {
		return minimumCapacity
	}
	return 1 << bits.Len(uint(n-1))
}

var _ IWriter[byte] = (*ResizableWriter[byte])(nil)
