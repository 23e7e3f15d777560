package cachefake

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goforj/cachecheck"
)

// Op identifies a store operation for assertions.
type Op string

const (
	OpReady Op = "ready"
	OpGet   Op = "get"
	OpSet   Op = "set"
)

// Call is one recorded store operation.
type Call struct {
	Op    Op
	Key   string
	Value []byte
	TTL   time.Duration
}

// Fake exposes a deterministic in-memory store plus assertion helpers for tests.
// It wraps the memory store so no external services are needed.
type Fake struct {
	mu       sync.Mutex
	store    *countingStore
	counts   map[Op]map[string]int
	calls    []Call
	failures map[Op]map[string]error
	opened   []cachecheck.StoreConfig
	closed   int
}

// New creates a Fake using an in-memory store.
func New() *Fake {
	f := &Fake{
		counts:   make(map[Op]map[string]int),
		failures: make(map[Op]map[string]error),
	}
	f.store = &countingStore{inner: cachecheck.NewMemoryStore(), driver: cachecheck.DriverMemory, fake: f}
	return f
}

// Store returns the fake store to inject into code under test.
func (f *Fake) Store() cachecheck.Store { return f.store }

// Registry returns a registry whose drivers all open the fake store. With no
// drivers given, every known driver is registered.
func (f *Fake) Registry(drivers ...cachecheck.Driver) *cachecheck.Registry {
	if len(drivers) == 0 {
		drivers = []cachecheck.Driver{cachecheck.DriverMemcached, cachecheck.DriverRedis, cachecheck.DriverMemory}
	}
	reg := cachecheck.NewRegistry()
	for _, d := range drivers {
		reg.Register(d, func(_ context.Context, cfg cachecheck.StoreConfig) (cachecheck.Store, error) {
			f.mu.Lock()
			f.opened = append(f.opened, cfg)
			f.store.driver = cfg.Driver
			f.mu.Unlock()
			return f.store, nil
		})
	}
	return reg
}

// FailOn makes op on key return err. An empty key matches every key.
func (f *Fake) FailOn(op Op, key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures[op] == nil {
		f.failures[op] = make(map[string]error)
	}
	f.failures[op][key] = err
}

// Opened returns the configs the registry opened stores with.
func (f *Fake) Opened() []cachecheck.StoreConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cachecheck.StoreConfig(nil), f.opened...)
}

// Closed reports how many times the store was closed.
func (f *Fake) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Calls returns every recorded operation in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Reset clears recorded calls and counts. Injected failures are kept.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = make(map[Op]map[string]int)
	f.calls = nil
}

// AssertCalled verifies key was touched by op the expected number of times.
func (f *Fake) AssertCalled(t *testing.T, op Op, key string, times int) {
	t.Helper()
	if got := f.Count(op, key); got != times {
		t.Fatalf("expected %s %q called %d times, got %d", op, key, times, got)
	}
}

// AssertNotCalled ensures key was never touched by op.
func (f *Fake) AssertNotCalled(t *testing.T, op Op, key string) {
	t.Helper()
	if got := f.Count(op, key); got != 0 {
		t.Fatalf("expected %s %q not called, got %d", op, key, got)
	}
}

// AssertTotal ensures the total call count for an op matches times.
func (f *Fake) AssertTotal(t *testing.T, op Op, times int) {
	t.Helper()
	if got := f.Total(op); got != times {
		t.Fatalf("expected %s total=%d, got %d", op, times, got)
	}
}

// Count returns calls for op+key.
func (f *Fake) Count(op Op, key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[op] == nil {
		return 0
	}
	return f.counts[op][key]
}

// Total returns total calls for an op across keys.
func (f *Fake) Total(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int
	for _, v := range f.counts[op] {
		sum += v
	}
	return sum
}

func (f *Fake) record(call Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[call.Op] == nil {
		f.counts[call.Op] = make(map[string]int)
	}
	f.counts[call.Op][call.Key]++
	f.calls = append(f.calls, call)
	if err, ok := f.failures[call.Op][call.Key]; ok {
		return err
	}
	return f.failures[call.Op][""]
}

// countingStore wraps a Store to record calls and inject failures.
type countingStore struct {
	inner  cachecheck.Store
	driver cachecheck.Driver
	fake   *Fake
}

func (s *countingStore) Driver() cachecheck.Driver { return s.driver }

func (s *countingStore) Ready(ctx context.Context) error {
	if err := s.fake.record(Call{Op: OpReady}); err != nil {
		return err
	}
	return s.inner.Ready(ctx)
}

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.fake.record(Call{Op: OpGet, Key: key}); err != nil {
		return nil, false, err
	}
	return s.inner.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := s.fake.record(Call{Op: OpSet, Key: key, Value: append([]byte(nil), val...), TTL: ttl}); err != nil {
		return err
	}
	return s.inner.Set(ctx, key, val, ttl)
}

func (s *countingStore) Close() error {
	s.fake.mu.Lock()
	s.fake.closed++
	s.fake.mu.Unlock()
	return nil
}
