// Package registry owns the processor table: it maps ids to storage
// processors and hands out the mstring.Factory bound to each.
//
// An Engine is created by Init and is inactive after Close. Every entrypoint,
// and every constructor of a factory obtained from it, fails with
// mstring.ErrNotActive once the engine is closed.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"

	"github.com/joshuapare/strkit/internal/config"
	"github.com/joshuapare/strkit/internal/logger"
	"github.com/joshuapare/strkit/mstring"
	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/arena"
	"github.com/joshuapare/strkit/storage/heap"
	"github.com/joshuapare/strkit/storage/offheap"
)

// Built-in processor ids.
const (
	OffHeapID = config.ProcessorOffHeap
	HeapID    = config.ProcessorHeap
	ArenaID   = config.ProcessorArena
)

// Engine is an initialized processor registry.
type Engine struct {
	mu        sync.Mutex
	factories map[string]*mstring.Factory
	active    atomic.Bool

	cfg *config.Config
}

// Option configures Init.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// Init builds an active engine with the built-in processors registered: the
// off-heap processor always, heap and arena when the configuration enables
// them.
func Init(opts ...Option) (*Engine, error) {
	e := &Engine{
		factories: make(map[string]*mstring.Factory),
		cfg:       config.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	e.active.Store(true)

	if _, err := e.Register(OffHeapID, offheap.New()); err != nil {
		return nil, err
	}
	if e.cfg.Processors.Heap.Enabled {
		if _, err := e.Register(HeapID, heap.New()); err != nil {
			return nil, err
		}
	}
	if e.cfg.Processors.Arena.Enabled {
		p, err := arena.New(e.cfg.Processors.Arena.ChunkSize)
		if err != nil {
			return nil, fmt.Errorf("registry: arena: %w", err)
		}
		if _, err := e.Register(ArenaID, p); err != nil {
			return nil, err
		}
	}

	logger.Info("engine initialized",
		slog.Any("processors", e.IDs()),
		slog.String("default", e.cfg.Processors.Default),
		slog.Bool("auto_release", e.cfg.AutoRelease))
	return e, nil
}

// Active reports whether the engine accepts calls.
func (e *Engine) Active() bool { return e.active.Load() }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config { return e.cfg }

// Locale returns the configured default locale.
func (e *Engine) Locale() language.Tag { return e.cfg.Locale() }

func (e *Engine) check() error {
	if !e.active.Load() {
		return mstring.ErrNotActive
	}
	return nil
}

// Register binds p to id and returns its factory. A duplicate id fails with
// mstring.ErrConflict.
func (e *Engine) Register(id string, p storage.Processor) (*mstring.Factory, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("registry: empty processor id: %w", mstring.ErrNullArgument)
	}
	if p == nil {
		return nil, fmt.Errorf("registry: processor %q: %w", id, mstring.ErrNullArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.factories[id]; ok {
		return nil, fmt.Errorf("registry: processor %q: %w", id, mstring.ErrConflict)
	}
	f := mstring.NewFactory(p,
		mstring.WithGate(e.Active),
		mstring.WithAutoRelease(e.cfg.AutoRelease))
	e.factories[id] = f
	logger.Debug("processor registered", slog.String("id", id), slog.String("type", fmt.Sprintf("%T", p)))
	return f, nil
}

// Get returns the factory registered under id.
func (e *Engine) Get(id string) (*mstring.Factory, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: processor %q: %w", id, mstring.ErrNotFound)
	}
	return f, nil
}

// Deregister removes id and returns the factory it held. Strings already
// built by that factory stay valid.
func (e *Engine) Deregister(id string) (*mstring.Factory, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: processor %q: %w", id, mstring.ErrNotFound)
	}
	delete(e.factories, id)
	logger.Debug("processor deregistered", slog.String("id", id))
	return f, nil
}

// Default returns the factory of the configured default processor, the
// off-heap processor unless configured otherwise.
func (e *Engine) Default() (*mstring.Factory, error) {
	return e.Get(e.cfg.Processors.Default)
}

// IDs returns the registered ids in sorted order, or nil once closed.
func (e *Engine) IDs() []string {
	if e.check() != nil {
		return nil
	}
	e.mu.Lock()
	ids := make([]string, 0, len(e.factories))
	for id := range e.factories {
		ids = append(ids, id)
	}
	e.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Close deactivates the engine. Strings already built stay valid and must
// still be released; new construction fails.
func (e *Engine) Close() error {
	if !e.active.CompareAndSwap(true, false) {
		return mstring.ErrNotActive
	}
	e.mu.Lock()
	n := len(e.factories)
	clear(e.factories)
	e.mu.Unlock()
	logger.Info("engine closed", slog.Int("processors", n))
	return nil
}
