// Package cachecheck verifies that a cache cluster is reachable through its
// configuration endpoint.
//
// A Runner resolves the endpoint, checks that a client backend for the chosen
// Driver is registered, opens a Store, writes a liveness probe key, writes a
// batch of keys and reads a subset back. The first failing step ends the run
// with a *StepError that matches one of ErrMissingArgument,
// ErrMissingCapability, ErrConnection, ErrWrite or ErrRead.
//
// Stores exist for memcached (bradfitz/gomemcache), redis (go-redis) and an
// in-process memory store for dry runs.
package cachecheck
