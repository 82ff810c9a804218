package bufferpool

import "sync"

// CountingPool wraps an inner pool and records every Rent and Return, so
// callers can verify that a renter neither leaks blocks nor hands the same
// block back twice. Blocks are tracked by the address of their first
// element, which stays stable for the lifetime of the block.
type CountingPool[T any] struct {
	inner IPool[T]

	mu            sync.Mutex
	rents         int
	returns       int
	doubleReturns int
	outstanding   map[*T]struct{}
}

func NewCountingPool[T any](inner IPool[T]) *CountingPool[T] {
	return &CountingPool[T]{
		inner:       inner,
		outstanding: make(map[*T]struct{}),
	}
}

func (p *CountingPool[T]) Rent(minLen int) []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	block := p.inner.Rent(minLen)
	p.rents++
	if len(block) > 0 {
		p.outstanding[&block[0]] = struct{}{}
	}
	return block
}

func (p *CountingPool[T]) Return(block []T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.returns++
	if len(block) == 0 {
		return
	}

	key := &block[0]
	if _, ok := p.outstanding[key]; !ok {
		// either never rented from here, or already returned
		p.doubleReturns++
		return
	}
	delete(p.outstanding, key)
	p.inner.Return(block)
}

// Rents reports how many blocks have been lent out.
func (p *CountingPool[T]) Rents() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rents
}

// Returns reports how many blocks have been handed back.
func (p *CountingPool[T]) Returns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.returns
}

// DoubleReturns reports how many returned blocks were not outstanding at
// the time of their return.
func (p *CountingPool[T]) DoubleReturns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doubleReturns
}

// Outstanding reports how many rented blocks have not been returned yet.
func (p *CountingPool[T]) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.outstanding)
}

var _ IPool[byte] = (*CountingPool[byte])(nil)
