package cloudsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward, running every timer that falls due in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()

		next.f()
	}
}

// armed counts timers that are neither stopped nor fired.
func (c *fakeClock) armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

var errOffline = errors.New("offline")

// fakeBackend is an in-memory remote document.
type fakeBackend struct {
	mu         sync.Mutex
	doc        catalog.Catalog
	fetchErr   error
	replaceErr error
	fetches    int
	writes     []catalog.Catalog
	remote     bool

	// When block is non-nil, Replace signals entered and waits on block.
	block   chan struct{}
	entered chan struct{}
}

func newFakeBackend(doc catalog.Catalog) *fakeBackend {
	return &fakeBackend{doc: doc.Clone(), remote: true}
}

func (b *fakeBackend) Fetch(context.Context) (catalog.Catalog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches++
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return b.doc.Clone(), nil
}

func (b *fakeBackend) Replace(ctx context.Context, products catalog.Catalog) error {
	b.mu.Lock()
	block, entered := b.block, b.entered
	b.mu.Unlock()

	if block != nil {
		entered <- struct{}{}
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.replaceErr != nil {
		return b.replaceErr
	}
	b.doc = products.Clone()
	b.writes = append(b.writes, products.Clone())
	return nil
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Remote() bool { return b.remote }

func (b *fakeBackend) set(doc catalog.Catalog) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc = doc.Clone()
}

func (b *fakeBackend) setFetchErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchErr = err
}

func (b *fakeBackend) setReplaceErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replaceErr = err
}

func (b *fakeBackend) fetchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches
}

func (b *fakeBackend) written() []catalog.Catalog {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]catalog.Catalog, len(b.writes))
	copy(out, b.writes)
	return out
}

// memSnapshots is an in-memory snapshot.Store.
type memSnapshots struct {
	mu      sync.Mutex
	data    catalog.Catalog
	ok      bool
	saves   int
	saveErr error
}

func (m *memSnapshots) Save(products catalog.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = products.Clone()
	m.ok = true
	m.saves++
	return nil
}

func (m *memSnapshots) Load() (catalog.Catalog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone(), m.ok
}
