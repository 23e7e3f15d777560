package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goforj/cachecheck"
	"github.com/goforj/cachecheck/cachefake"
)

func runCLI(t *testing.T, reg *cachecheck.Registry, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, reg)
	return code, stdout.String(), stderr.String()
}

func TestRunWithoutEndpointFails(t *testing.T) {
	fake := cachefake.New()
	code, stdout, stderr := runCLI(t, fake.Registry())
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "AWS ElastiCache :: Connection Tester Script")
	assert.Contains(t, stderr, "[ERROR] You MUST specify the cluster endpoint!")
	assert.Empty(t, fake.Opened())
}

func TestRunSucceedsAgainstFake(t *testing.T) {
	fake := cachefake.New()
	code, _, stderr := runCLI(t, fake.Registry(), "--endpoint", "my-cluster.example.com:11222", "-p", "11300")
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "[OK] Connected to my-cluster.example.com cluster!")
	assert.Contains(t, stderr, "Cluster port: 11222")
	assert.Contains(t, stderr, "[OK] \tcloudlabs_9 = ElasticacheIsGreat! #9.")
	assert.Contains(t, stderr, "Well done, you are all set!")
	assert.NotContains(t, stderr, "\033[")
	fake.AssertTotal(t, cachefake.OpSet, 101)
	fake.AssertTotal(t, cachefake.OpGet, 10)
}

func TestRunShortFlags(t *testing.T) {
	fake := cachefake.New()
	code, _, _ := runCLI(t, fake.Registry(), "-e", "node.local", "-p", "11300")
	assert.Equal(t, 0, code)
	assert.Equal(t, "node.local:11300", fake.Opened()[0].Address)
}

func TestRunMissingCapabilityFails(t *testing.T) {
	code, _, stderr := runCLI(t, cachecheck.NewRegistry(), "-e", "node.local")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "[ERROR] Memcached client support is not available!")
}

func TestRunWriteFailureFails(t *testing.T) {
	fake := cachefake.New()
	fake.FailOn(cachefake.OpSet, "cloudlabs_42", assert.AnError)
	code, _, stderr := runCLI(t, fake.Registry(), "-e", "node.local", "--verbose")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "[ERROR] Cannot write cloudlabs_42 key.")
	assert.Contains(t, stderr, "[DEBUG] memcached set cloudlabs_41")
	assert.Contains(t, stderr, "check failed at writes-complete")
	fake.AssertNotCalled(t, cachefake.OpSet, "cloudlabs_43")
}

func TestRunRedisDriverDefaultPort(t *testing.T) {
	fake := cachefake.New()
	code, _, _ := runCLI(t, fake.Registry(), "-e", "node.local", "--driver", "redis")
	assert.Equal(t, 0, code)
	assert.Equal(t, "node.local:6379", fake.Opened()[0].Address)
	assert.Equal(t, cachecheck.DriverRedis, fake.Opened()[0].Driver)
}

func TestRunConfigFileWithFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: redis
endpoint: from-file.example.com
port: 6380
keys: 12
reads: 3
timeout: 2s
`), 0o600))

	fake := cachefake.New()
	code, _, stderr := runCLI(t, fake.Registry(), "--config", path, "--keys", "20")
	require.Equal(t, 0, code, stderr)
	cfg := fake.Opened()[0]
	assert.Equal(t, cachecheck.DriverRedis, cfg.Driver)
	assert.Equal(t, "from-file.example.com:6380", cfg.Address)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	fake.AssertTotal(t, cachefake.OpSet, 21)
	fake.AssertTotal(t, cachefake.OpGet, 3)

	fake = cachefake.New()
	code, _, _ = runCLI(t, fake.Registry(), "-c", path, "-e", "flag.example.com", "-d", "memcached")
	require.Equal(t, 0, code)
	assert.Equal(t, "flag.example.com:6380", fake.Opened()[0].Address)
	assert.Equal(t, cachecheck.DriverMemcached, fake.Opened()[0].Driver)
}

func TestRunInvalidSettings(t *testing.T) {
	for _, args := range [][]string{
		{"-e", "h", "--reads", "200"},
		{"-e", "h", "--driver", "dynamodb"},
		{"-e", "h", "--ttl", "10ms"},
		{"-e", "h", "-c", "/does/not/exist.yaml"},
	} {
		code, _, stderr := runCLI(t, cachefake.New().Registry(), args...)
		assert.Equal(t, 1, code, "args %v", args)
		assert.Contains(t, stderr, "[ERROR] Invalid settings", "args %v", args)
	}
}

func TestRunFlagErrors(t *testing.T) {
	code, _, stderr := runCLI(t, cachefake.New().Registry(), "--bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown flag")

	code, _, stderr = runCLI(t, cachefake.New().Registry(), "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Usage: cache-check")
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, cachefake.New().Registry(), "--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "cache-check version dev\n", stdout)
}

func TestRunEmbeddedPortIgnoresInvalidPortFlag(t *testing.T) {
	fake := cachefake.New()
	code, _, stderr := runCLI(t, fake.Registry(), "-e", "node.local:11211", "-p", "99999")
	require.Equal(t, 0, code, stderr)
	require.Len(t, fake.Opened(), 1)
	assert.Equal(t, "node.local:11211", fake.Opened()[0].Address)
}

func TestRunInvalidPortFlagWithoutEmbeddedPort(t *testing.T) {
	fake := cachefake.New()
	code, _, stderr := runCLI(t, fake.Registry(), "-e", "node.local", "-p", "99999")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "[ERROR] Invalid cluster endpoint")
	assert.Empty(t, fake.Opened())
}

func TestRunRejectsTTLBeyondThirtyDays(t *testing.T) {
	fake := cachefake.New()
	code, _, stderr := runCLI(t, fake.Registry(), "-e", "node.local", "--ttl", "800h")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "[ERROR] Invalid settings")
	assert.Empty(t, fake.Opened())
}
