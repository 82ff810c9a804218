package bufferpool

import (
	"math/bits"
	"sync"
)

const (
	// maximumClassCnt limits the number of capacity classes to 2^31.
	// There are no reuse benefits in caching blocks with bigger capacities,
	// those are left to the GC.
	maximumClassCnt = 24
	minClassShift   = 8
)

// IPool lends and reclaims fixed-size storage blocks. Rent returns a block
// whose length is at least minLen; the renter exclusively owns the whole
// block until it is handed back via Return. Implementations must be safe
// for concurrent Rent/Return from independent renters, but a single block
// must never be shared between two renters at once.
type IPool[T any] interface {
	Rent(minLen int) []T
	Return(block []T)
}

// PredictablePool contains classes of sync.Pool for blocks of various capacities.
//
//	classes[0] is for capacities from 0 upto 256
//	classes[1] is for capacities from 257 upto 512
//	classes[2] is for capacities from 513 upto 1024
//	...
//	classes[n] is for capacities from 2^(n+7)+1 to 2^(n+8)
type PredictablePool[T any] struct {
	classes [maximumClassCnt]sync.Pool
}

func NewPredictablePool[T any]() *PredictablePool[T] {
	return &PredictablePool[T]{}
}

// Bytes is the process-wide shared pool for byte blocks.
var Bytes = NewPredictablePool[byte]()

func (p *PredictablePool[T]) Rent(minLen int) []T {
	id, classCap := getClassIDAndCapacity(minLen)
	if classCap < minLen {
		// past the largest class the id clamp would under-serve the renter,
		// so allocate exactly; Return drops non class-sized blocks, the GC
		// reclaims it
		return make([]T, minLen)
	}
	if b := p.classes[id].Get(); b != nil {
		block := b.([]T)
		return block[:cap(block)]
	}

	// if the class is empty, then allocate a new classCap block
	return make([]T, classCap)
}

func (p *PredictablePool[T]) Return(block []T) {
	capacity := cap(block)
	id, classCap := getClassIDAndCapacity(capacity)
	if capacity != classCap {
		// only exact class-sized blocks are reusable; a smaller block kept
		// in this class would break the Rent length guarantee, and there is
		// no class at all for blocks above the largest capacity
		return
	}

	// reset the block and remains the capacity, and put into the class
	p.classes[id].Put(block[:0])
}

// getClassIDAndCapacity predict the classId from given block size
// and return the class maximum capacity
func getClassIDAndCapacity(size int) (int, int) {
	size--
	size = max(size, 0)
	size >>= minClassShift
	id := bits.Len(uint(size))
	id = min(id, maximumClassCnt-1)
	return id, 1 << (id + minClassShift)
}

var _ IPool[byte] = (*PredictablePool[byte])(nil)
