package cachecheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryDrivers(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []Driver{DriverMemcached, DriverMemory, DriverRedis}, reg.Drivers())
	for _, d := range reg.Drivers() {
		assert.NoError(t, reg.Available(d))
	}
}

func TestRegistryAvailableMissingDriver(t *testing.T) {
	err := NewRegistry().Available(DriverMemcached)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCapability)
	assert.Contains(t, err.Error(), "memcached")

	var nilReg *Registry
	assert.ErrorIs(t, nilReg.Available(DriverMemory), ErrMissingCapability)
	assert.Nil(t, nilReg.Drivers())
}

func TestRegistryOpenMissingDriverReturnsErrorStore(t *testing.T) {
	store := NewRegistry().Open(context.Background(), StoreConfig{Driver: DriverRedis})
	assert.Equal(t, DriverRedis, store.Driver())
	assert.ErrorIs(t, store.Set(context.Background(), "k", []byte("v"), time.Second), ErrMissingCapability)
	_, _, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMissingCapability)
	assert.ErrorIs(t, store.Ready(context.Background()), ErrMissingCapability)
	assert.NoError(t, store.Close())
}

func TestRegistryOpenSurfacesConstructionError(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry().Register(DriverMemcached, func(context.Context, StoreConfig) (Store, error) {
		return nil, boom
	})
	store := reg.Open(context.Background(), StoreConfig{})
	assert.Equal(t, DriverMemcached, store.Driver())
	assert.ErrorIs(t, store.Set(context.Background(), "k", nil, time.Second), boom)
}

func TestRegistryOpenWithAppliesOptionsAndDefaults(t *testing.T) {
	var got StoreConfig
	reg := NewRegistry().Register(DriverMemory, func(_ context.Context, cfg StoreConfig) (Store, error) {
		got = cfg
		return newMemoryStore(cfg)
	})
	store := reg.OpenWith(context.Background(), DriverMemory,
		WithAddress("cache.local:11211"),
		WithPrefix("pfx"),
	)
	require.Equal(t, DriverMemory, store.Driver())
	assert.Equal(t, "cache.local:11211", got.Address)
	assert.Equal(t, "pfx", got.Prefix)
	assert.Equal(t, defaultOperationTimeout, got.Timeout)
	assert.Equal(t, defaultMemoryCleanupInterval, got.MemoryCleanupInterval)

	reg.OpenWith(context.Background(), DriverMemory, WithTimeout(time.Second), WithMemoryCleanupInterval(time.Minute))
	assert.Equal(t, time.Second, got.Timeout)
	assert.Equal(t, time.Minute, got.MemoryCleanupInterval)
}

func TestDefaultRegistryRequiresAddress(t *testing.T) {
	for _, d := range []Driver{DriverMemcached, DriverRedis} {
		store := DefaultRegistry().Open(context.Background(), StoreConfig{Driver: d})
		assert.Error(t, store.Set(context.Background(), "k", []byte("v"), time.Second), "driver %s", d)
	}
}
