package buffers

// IWriter is a growable, pool-backed write sink for elements of a single
// type. Data enters either through the direct write operations, or through
// the two-phase Reserve/Commit protocol where the caller fills the reserved
// view in place and then declares how much of it was actually used.
type IWriter[T any] interface {
	// WriteOne appends a single element.
	WriteOne(item T) error

	// WriteSlice appends all given elements in order.
	WriteSlice(items []T) error

	// Reserve grows the storage so at least sizeHint elements fit past the
	// committed cursor and returns a mutable view over that free region.
	// The view stays valid only until the next mutating call; any direct
	// write, Reset or Dispose invalidates the outstanding reservation.
	Reserve(sizeHint int) ([]T, error)

	// Commit declares how many elements of the outstanding reservation were
	// written, advancing the committed cursor.
	Commit(count int) error

	// WrittenView returns a read-only view over the committed prefix.
	WrittenView() ([]T, error)

	// FullView returns the entire backing block, including the stale tail
	// past the committed cursor.
	FullView() ([]T, error)

	// Len reports the committed element count.
	Len() int

	// Cap reports the length of the backing block.
	Cap() int

	// Reset drops the committed data but keeps the backing block, so the
	// writer can be reused without renting again.
	Reset() error

	// Dispose returns the backing block to the pool. Terminal and idempotent.
	Dispose()
}
