package buffers

import (
	"io"

	"go.uber.org/zap"

	"github.com/elslush/Performance/bufferpool"
)

// readChunkSize is the reservation granted per Read while draining a
// reader of unknown length.
const readChunkSize = 512

// StreamWriter adapts a byte ResizableWriter to the io writing interfaces,
// so the buffer can terminate any io.Copy or fmt.Fprintf pipeline. It is a
// thin facade: every write path converges on the core's growth routine.
type StreamWriter struct {
	core IWriter[byte]
}

// NewStreamWriter creates a byte writer renting from the process-wide
// shared byte pool unless WithPool overrides it.
func NewStreamWriter(opts ...Option[byte]) (*StreamWriter, error) {
	opts = append([]Option[byte]{WithPool[byte](bufferpool.Bytes)}, opts...)
	core, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{core: core}, nil
}

func (s *StreamWriter) Write(p []byte) (int, error) {
	if err := s.core.WriteSlice(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *StreamWriter) WriteByte(c byte) error {
	return s.core.WriteOne(c)
}

// WriteString appends v without an intermediate []byte conversion, by
// copying the string straight into a reserved view.
func (s *StreamWriter) WriteString(v string) (int, error) {
	if len(v) == 0 {
		return 0, nil
	}

	view, err := s.core.Reserve(len(v))
	if err != nil {
		return 0, err
	}
	n := copy(view, v)
	if err := s.core.Commit(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ReadFrom drains r into the buffer, reserving a chunk at a time and
// committing only what the reader actually produced.
func (s *StreamWriter) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		view, err := s.core.Reserve(readChunkSize)
		if err != nil {
			return total, err
		}

		n, readErr := r.Read(view)
		if n > 0 {
			if err := s.core.Commit(n); err != nil {
				return total, err
			}
			total += int64(n)
		}
		if readErr == io.EOF {
			return total, nil
		}
		if readErr != nil {
			zap.L().Error("failed to drain reader into the buffer", zap.Error(readErr))
			return total, readErr
		}
	}
}

// Bytes returns the committed prefix of the buffer.
func (s *StreamWriter) Bytes() ([]byte, error) {
	return s.core.WrittenView()
}

// Block returns the entire backing block, including the stale tail.
func (s *StreamWriter) Block() ([]byte, error) {
	return s.core.FullView()
}

func (s *StreamWriter) Len() int {
	return s.core.Len()
}

func (s *StreamWriter) Cap() int {
	return s.core.Cap()
}

func (s *StreamWriter) Reset() error {
	return s.core.Reset()
}

func (s *StreamWriter) Dispose() {
	s.core.Dispose()
}

var (
	_ io.Writer       = (*StreamWriter)(nil)
	_ io.ByteWriter   = (*StreamWriter)(nil)
	_ io.StringWriter = (*StreamWriter)(nil)
	_ io.ReaderFrom   = (*StreamWriter)(nil)
)
