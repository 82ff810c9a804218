package buffers

import (
	"testing"

	"github.com/elslush/Performance/bufferpool"
)

var (
	chunks = [][]byte{ // Total: ~3.7MB per round
		makeDummyChunk(64 * 1024),
		makeDummyChunk(256 * 1024),
		makeDummyChunk(1024),
		makeDummyChunk(1024 * 1024),
		makeDummyChunk(512 * 1024),
		makeDummyChunk(2 * 1024 * 1024),
	}
)

func makeDummyChunk(size int) []byte {
	chunk := make([]byte, size)
	for i := 0; i < size; i++ {
		chunk[i] = 0xff
	}
	return chunk
}

func Benchmark_Append_Buffer(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf []byte
		for _, c := range chunks {
			buf = append(buf, c...)
		}
		_ = buf
	}
}

func Benchmark_Pooled_Writer(b *testing.B) {
	pool := bufferpool.NewPredictablePool[byte]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w, err := New(WithPool[byte](pool))
		if err != nil {
			b.Fatal(err)
		}
		for _, c := range chunks {
			if err := w.WriteSlice(c); err != nil {
				b.Fatal(err)
			}
		}
		w.Dispose()
	}
}

func Benchmark_Pooled_Writer_Reset_Reuse(b *testing.B) {
	w, err := New[byte]()
	if err != nil {
		b.Fatal(err)
	}
	defer w.Dispose()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, c := range chunks {
			if err := w.WriteSlice(c); err != nil {
				b.Fatal(err)
			}
		}
		if err := w.Reset(); err != nil {
			b.Fatal(err)
		}
	}
}
