package sim

import (
	"github.com/charmbracelet/log"
)

// Poolable is the contract every pooled entity type must satisfy.
type Poolable interface {
	// Reset returns the instance to a usable default state.
	Reset()
	// Dispose releases the underlying resources. The instance must never be
	// referenced after Dispose.
	Dispose()
	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}

// PoolStats describes the current state of a pool.
type PoolStats struct {
	Created   int // Total instances manufactured by the factory
	Reused    int // Acquisitions served from the idle set
	Available int // Idle instances ready for acquisition
	InUse     int // Instances currently checked out
}

// Pool is a reuse store for short-lived entities. Acquire pops an idle
// instance and resets it, manufacturing a new one when none is idle; Release
// returns an instance to the idle set, disposing it when the pool is at
// capacity. The pool tracks the checked-out set so releasing a foreign
// instance is detected and warned about rather than corrupting state.
type Pool[T interface {
	Poolable
	comparable
}] struct {
	factory func() T
	idle    []T
	inUse   map[T]struct{}
	maxSize int
	created int
	reused  int
	logger  *log.Logger
}

// NewPool creates a pool with the given factory and capacity.
func NewPool[T interface {
	Poolable
	comparable
}](factory func() T, maxSize int, logger *log.Logger) *Pool[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pool[T]{
		factory: factory,
		idle:    make([]T, 0, maxSize),
		inUse:   make(map[T]struct{}),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Acquire returns a reset instance, reusing an idle one when available.
func (p *Pool[T]) Acquire() T {
	var item T
	if n := len(p.idle); n > 0 {
		item = p.idle[n-1]
		p.idle = p.idle[:n-1]
		item.Reset()
		p.reused++
	} else {
		item = p.factory()
		p.created++
	}
	p.inUse[item] = struct{}{}
	return item
}

// Release returns an instance to the idle set, or disposes it immediately if
// the pool is at capacity. Releasing an instance that was not checked out is
// logged as a warning and otherwise ignored.
func (p *Pool[T]) Release(item T) {
	if _, ok := p.inUse[item]; !ok {
		p.logger.Warn("pool: release of instance that was not checked out")
		return
	}
	delete(p.inUse, item)
	if len(p.idle) < p.maxSize {
		p.idle = append(p.idle, item)
		return
	}
	item.Dispose()
}

// Prewarm eagerly manufactures idle instances up to n, capped by capacity.
func (p *Pool[T]) Prewarm(n int) {
	for len(p.idle) < n && len(p.idle) < p.maxSize {
		p.idle = append(p.idle, p.factory())
		p.created++
	}
}

// Resize changes the pool capacity, disposing any idle excess when shrinking.
func (p *Pool[T]) Resize(newMax int) {
	if newMax < 1 {
		newMax = 1
	}
	p.maxSize = newMax
	for len(p.idle) > newMax {
		n := len(p.idle)
		p.idle[n-1].Dispose()
		p.idle = p.idle[:n-1]
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Created:   p.created,
		Reused:    p.reused,
		Available: len(p.idle),
		InUse:     len(p.inUse),
	}
}

// DisposeAll disposes every idle instance and forgets the in-use set.
// Called on total teardown; nothing may touch the pool afterwards.
func (p *Pool[T]) DisposeAll() {
	for _, item := range p.idle {
		item.Dispose()
	}
	p.idle = p.idle[:0]
	for item := range p.inUse {
		item.Dispose()
	}
	p.inUse = make(map[T]struct{})
}
