package sim

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

type poolItem struct {
	resets   int
	disposed bool
}

func (p *poolItem) Reset()           { p.resets++ }
func (p *poolItem) Dispose()         { p.disposed = true }
func (p *poolItem) IsDisposed() bool { return p.disposed }

func newTestPool(maxSize int) *Pool[*poolItem] {
	return NewPool(func() *poolItem { return &poolItem{} }, maxSize, log.New(io.Discard))
}

func TestPoolAcquireReleaseRoundTrip(t *testing.T) {
	const n = 5
	pool := newTestPool(8)

	items := make([]*poolItem, 0, n)
	for range n {
		items = append(items, pool.Acquire())
	}

	stats := pool.Stats()
	if stats.Created != n {
		t.Errorf("created = %d, want %d", stats.Created, n)
	}
	if stats.InUse != n {
		t.Errorf("in use = %d, want %d", stats.InUse, n)
	}

	for _, item := range items {
		pool.Release(item)
	}
	stats = pool.Stats()
	if stats.Available != n {
		t.Errorf("available = %d, want %d", stats.Available, n)
	}
	if stats.InUse != 0 {
		t.Errorf("in use = %d, want 0", stats.InUse)
	}

	// A second cycle must be served entirely from the idle set.
	second := make([]*poolItem, 0, n)
	for range n {
		second = append(second, pool.Acquire())
	}
	stats = pool.Stats()
	if stats.Created != n {
		t.Errorf("created after reuse cycle = %d, want %d", stats.Created, n)
	}
	if stats.Reused != n {
		t.Errorf("reused = %d, want %d", stats.Reused, n)
	}
	for _, item := range second {
		if item.resets != 1 {
			t.Errorf("reused item resets = %d, want 1", item.resets)
		}
	}
}

func TestPoolReleaseBeyondCapacityDisposes(t *testing.T) {
	pool := newTestPool(2)

	items := []*poolItem{pool.Acquire(), pool.Acquire(), pool.Acquire()}
	for _, item := range items {
		pool.Release(item)
	}

	stats := pool.Stats()
	if stats.Available != 2 {
		t.Errorf("available = %d, want 2", stats.Available)
	}

	disposed := 0
	for _, item := range items {
		if item.IsDisposed() {
			disposed++
		}
	}
	if disposed != 1 {
		t.Errorf("disposed = %d, want exactly 1", disposed)
	}
}

func TestPoolReleaseForeignInstanceIgnored(t *testing.T) {
	pool := newTestPool(4)
	item := pool.Acquire()
	pool.Release(item)
	before := pool.Stats()

	// Double release of the same instance, and release of one the pool never
	// manufactured. Neither may change counters.
	pool.Release(item)
	pool.Release(&poolItem{})

	after := pool.Stats()
	if after != before {
		t.Errorf("stats changed on misuse: before %+v, after %+v", before, after)
	}
}

func TestPoolPrewarm(t *testing.T) {
	pool := newTestPool(4)
	pool.Prewarm(10)

	stats := pool.Stats()
	if stats.Available != 4 {
		t.Errorf("available after prewarm = %d, want 4 (capped by capacity)", stats.Available)
	}
	if stats.Created != 4 {
		t.Errorf("created after prewarm = %d, want 4", stats.Created)
	}
}

func TestPoolResizeShrinkDisposesIdleExcess(t *testing.T) {
	pool := newTestPool(6)
	pool.Prewarm(6)

	pool.Resize(2)
	stats := pool.Stats()
	if stats.Available != 2 {
		t.Errorf("available after shrink = %d, want 2", stats.Available)
	}

	// Releases past the new capacity are disposed rather than retained.
	a, b, c := pool.Acquire(), pool.Acquire(), pool.Acquire()
	pool.Release(a)
	pool.Release(b)
	pool.Release(c)
	if pool.Stats().Available != 2 {
		t.Errorf("available = %d, want 2", pool.Stats().Available)
	}
	if !c.IsDisposed() {
		t.Error("release at capacity should dispose the instance")
	}
}

func TestPoolDisposeAll(t *testing.T) {
	pool := newTestPool(4)
	idle := pool.Acquire()
	held := pool.Acquire()
	pool.Release(idle)

	pool.DisposeAll()

	if !idle.IsDisposed() {
		t.Error("idle instance should be disposed")
	}
	if !held.IsDisposed() {
		t.Error("checked-out instance should be disposed")
	}
	stats := pool.Stats()
	if stats.Available != 0 || stats.InUse != 0 {
		t.Errorf("stats after teardown = %+v, want empty", stats)
	}
}
