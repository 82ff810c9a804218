package buffers

import (
	"errors"
	"fmt"
)

// Errors \\

var (
	// ErrInvalidArgument reports a negative or otherwise ill-formed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports a protocol violation, such as committing more
	// elements than the outstanding reservation promised.
	ErrInvalidState = errors.New("invalid state")

	// ErrWriterDisposed reports an operation on a writer whose storage has
	// already been returned to the pool.
	ErrWriterDisposed = fmt.Errorf("%w: writer already disposed", ErrInvalidState)

	// ErrSizeOverflow reports a growth request beyond the representable range.
	ErrSizeOverflow = errors.New("size overflow")
)
