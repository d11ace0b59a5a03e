package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/snapshot"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/state"
)

const (
	DefaultDebounce     = 1500 * time.Millisecond
	DefaultPollInterval = 30 * time.Second
)

// ErrStopped is returned by operations on a stopped engine.
var ErrStopped = errors.New("sync engine stopped")

// ErrSaveInFlight is returned by Refresh while a backend write is running.
var ErrSaveInFlight = errors.New("save in progress, try again shortly")

// Options configure an Engine.
type Options struct {
	Backend Backend
	// Snapshots is the local cache written on every mutation and adoption. Optional.
	Snapshots snapshot.Store
	// Defaults is the catalog shown when neither backend nor snapshot has data.
	Defaults catalog.Catalog
	Store    *state.Store
	Clock    Clock
	Debounce time.Duration
	// PollInterval <= 0 disables background polling.
	PollInterval time.Duration
	Logger       *zap.Logger
}

// Engine owns the displayed catalog and keeps it in step with the backend.
type Engine struct {
	backend      Backend
	snapshots    snapshot.Store
	defaults     catalog.Catalog
	store        *state.Store
	clock        Clock
	logger       *zap.Logger
	pollInterval time.Duration

	// mu serializes mutations with adoption of fetched catalogs.
	mu         sync.Mutex
	products   catalog.Catalog
	pending    catalog.Catalog
	hasPending bool

	// writeMu keeps at most one remote write in flight.
	writeMu sync.Mutex
	fetches singleflight.Group

	saveTask *Task
	pollTask *Task

	lifeMu  sync.Mutex
	started bool
	stopped bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// New builds an engine. Call Start to load the catalog.
func New(opts Options) (*Engine, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	e := &Engine{
		backend:      opts.Backend,
		snapshots:    opts.Snapshots,
		defaults:     opts.Defaults,
		store:        opts.Store,
		clock:        opts.Clock,
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
	}
	if e.defaults == nil {
		e.defaults = catalog.Defaults()
	}
	if e.store == nil {
		e.store = &state.Store{}
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.logger = e.logger.With(zap.String("component", "cloudsync"), zap.String("backend", e.backend.Name()))

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.saveTask = NewTask(e.clock, debounce, e.background(e.debouncedSave))
	e.pollTask = NewTask(e.clock, e.pollInterval, e.background(e.pollTick))
	return e, nil
}

// Store returns the state store the engine publishes into.
func (e *Engine) Store() *state.Store { return e.store }

// Snapshot returns the current published state.
func (e *Engine) Snapshot() state.Snapshot { return e.store.Snapshot() }

// Catalog returns a copy of the current catalog.
func (e *Engine) Catalog() catalog.Catalog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.products.Clone()
}

// Pending reports whether a mutation is waiting to be written to the backend.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasPending
}

// Start loads the catalog: backend first, then the local snapshot, then the built-in
// defaults. Fallback is silent: the status stays synced. Polling starts afterwards
// for remote backends.
func (e *Engine) Start(ctx context.Context) state.Source {
	e.lifeMu.Lock()
	if e.started || e.stopped {
		e.lifeMu.Unlock()
		return e.store.Snapshot().Source
	}
	e.started = true
	e.lifeMu.Unlock()

	source := e.load(ctx)

	if e.backend.Remote() && e.pollInterval > 0 {
		e.pollTask.Reset()
		e.logger.Debug("polling started", zap.Duration("interval", e.pollInterval))
	}
	return source
}

func (e *Engine) load(ctx context.Context) state.Source {
	products, err := e.fetch(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err == nil {
		// A local-only backend never reaches a shared store, so it never counts as synced.
		source := state.SourceLocal
		var syncedAt time.Time
		if e.backend.Remote() {
			source = state.SourceRemote
			syncedAt = e.clock.Now()
			e.saveLocal(products)
		}
		e.products = products.Clone()
		e.store.Load(products, source, syncedAt)
		e.logger.Info("catalog loaded", zap.String("source", string(source)), zap.Int("products", len(products)))
		return source
	}

	e.logger.Warn("initial fetch failed, using fallback", zap.Error(err))
	if e.snapshots != nil {
		if cached, ok := e.snapshots.Load(); ok {
			e.products = cached.Clone()
			e.store.Load(cached, state.SourceLocal, time.Time{})
			e.logger.Info("catalog loaded", zap.String("source", string(state.SourceLocal)), zap.Int("products", len(cached)))
			return state.SourceLocal
		}
	}
	e.products = e.defaults.Clone()
	e.store.Load(e.defaults, state.SourceDefaults, time.Time{})
	e.logger.Info("catalog loaded", zap.String("source", string(state.SourceDefaults)), zap.Int("products", len(e.defaults)))
	return state.SourceDefaults
}

// Mutate applies fn to a copy of the catalog. On success the result becomes the
// displayed catalog, is written to the local snapshot at once, and a backend write is
// scheduled after the debounce window. Each call restarts the window.
func (e *Engine) Mutate(fn func(catalog.Catalog) (catalog.Catalog, error)) error {
	if e.isStopped() {
		return ErrStopped
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.products.Clone())
	if err != nil {
		return err
	}
	if next == nil {
		next = catalog.Catalog{}
	}
	e.products = next
	e.store.SetProducts(next)
	e.saveLocal(next)

	e.pending = next.Clone()
	e.hasPending = true
	e.saveTask.Reset()
	return nil
}

// Flush cancels the debounce and writes the pending catalog now. It returns nil
// when nothing is pending.
func (e *Engine) Flush(ctx context.Context) error {
	e.saveTask.Cancel()
	return e.writePending(ctx)
}

// Refresh fetches the backend immediately and adopts the result if it differs. On
// success the status becomes synced. A failure is returned and leaves state untouched.
// Like a poll tick, it does nothing while a write is in flight.
func (e *Engine) Refresh(ctx context.Context) (bool, error) {
	if e.store.Status() == state.StatusSaving {
		return false, ErrSaveInFlight
	}
	changed, err := e.sync(ctx, false)
	if err != nil {
		return false, fmt.Errorf("refresh catalog: %w", err)
	}
	e.store.MarkSynced()
	e.logger.Info("manual refresh", zap.Bool("changed", changed))
	return changed, nil
}

// Stop cancels scheduled work and waits for running callbacks. Pending writes are
// dropped; call Flush first to keep them.
func (e *Engine) Stop() {
	e.lifeMu.Lock()
	if e.stopped {
		e.lifeMu.Unlock()
		return
	}
	e.stopped = true
	e.lifeMu.Unlock()

	e.saveTask.Close()
	e.pollTask.Close()
	e.cancel()
	e.wg.Wait()
	e.logger.Debug("sync engine stopped")
}

func (e *Engine) isStopped() bool {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()
	return e.stopped
}

// background wraps a timer callback so Stop can wait for it.
func (e *Engine) background(fn func(context.Context)) func() {
	return func() {
		e.lifeMu.Lock()
		if e.stopped {
			e.lifeMu.Unlock()
			return
		}
		e.wg.Add(1)
		e.lifeMu.Unlock()
		defer e.wg.Done()

		fn(e.ctx)
	}
}

func (e *Engine) debouncedSave(ctx context.Context) {
	// The error is already published to the store.
	_ = e.writePending(ctx)
}

func (e *Engine) writePending(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	if !e.hasPending {
		e.mu.Unlock()
		return nil
	}
	data := e.pending
	e.pending = nil
	e.hasPending = false
	e.mu.Unlock()

	e.store.BeginSave()
	start := e.clock.Now()
	if err := e.backend.Replace(ctx, data); err != nil {
		e.store.SaveFailed(err)
		e.logger.Warn("catalog write failed", zap.Error(err), zap.Int("products", len(data)))
		return fmt.Errorf("write catalog: %w", err)
	}

	e.mu.Lock()
	e.saveLocal(data)
	e.mu.Unlock()

	now := e.clock.Now()
	e.store.SaveSucceeded(now)
	e.logger.Info("catalog written",
		zap.Int("products", len(data)),
		zap.Duration("elapsed", now.Sub(start)),
	)
	return nil
}

func (e *Engine) pollTick(ctx context.Context) {
	defer e.pollTask.Reset()

	if e.store.Status() == state.StatusSaving {
		e.logger.Debug("poll skipped, write in flight")
		return
	}
	if _, err := e.sync(ctx, true); err != nil {
		e.logger.Warn("poll failed", zap.Error(err))
	}
}

// sync fetches and adopts the backend catalog when it differs from the current one.
func (e *Engine) sync(ctx context.Context, background bool) (bool, error) {
	products, err := e.fetch(ctx)
	now := e.clock.Now()
	if err != nil {
		if background {
			e.store.PollFailed(err, now)
		}
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	changed := !catalog.Equal(e.products, products)
	var adopt catalog.Catalog
	if changed {
		adopt = products
		e.products = products.Clone()
		e.saveLocal(products)
		e.logger.Info("adopted remote catalog", zap.Int("products", len(products)), zap.Bool("background", background))
	}
	e.store.Fetched(adopt, now)
	return changed, nil
}

// fetch coalesces concurrent backend reads.
func (e *Engine) fetch(ctx context.Context) (catalog.Catalog, error) {
	v, err, shared := e.fetches.Do("fetch", func() (any, error) {
		return e.backend.Fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		e.logger.Debug("fetch shared with concurrent caller")
	}
	products, _ := v.(catalog.Catalog)
	if products == nil {
		products = catalog.Catalog{}
	}
	return products.Clone(), nil
}

// saveLocal writes the snapshot. Failures are recorded and never abort the caller.
// Callers hold e.mu.
func (e *Engine) saveLocal(products catalog.Catalog) {
	if e.snapshots == nil {
		return
	}
	err := e.snapshots.Save(products)
	e.store.SetLocalError(err)
	if err != nil {
		e.logger.Warn("local snapshot save failed", zap.Error(err))
	}
}
