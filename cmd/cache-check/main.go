// Command cache-check tests connectivity to a cache cluster through its
// configuration endpoint: it writes a batch of keys, reads a few back and
// exits non-zero on the first failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/goforj/cachecheck"
	"github.com/goforj/cachecheck/console"
)

var version = "dev"

const (
	scriptTitle       = "AWS ElastiCache :: Connection Tester Script"
	scriptDescription = "This CLI script tests connectivity to an AWS ElastiCache Memcached\n " +
		"cluster using the configuration endpoint for node discovery."
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, cachecheck.DefaultRegistry()))
}

type options struct {
	configFile string
	driver     string
	endpoint   string
	port       int
	keys       int
	reads      int
	ttl        time.Duration
	timeout    time.Duration
	noColor    bool
	verbose    bool
	version    bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, reg *cachecheck.Registry) int {
	fs := flag.NewFlagSet("cache-check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := cachecheck.DefaultSettings()
	var opts options
	fs.StringVarP(&opts.endpoint, "endpoint", "e", "", "cluster configuration endpoint, optionally host:port")
	fs.IntVarP(&opts.port, "port", "p", defaults.Driver.DefaultPort(), "cluster port when the endpoint has none")
	fs.StringVarP(&opts.driver, "driver", "d", string(defaults.Driver), "cache driver (memcached, redis, memory)")
	fs.StringVarP(&opts.configFile, "config", "c", "", "YAML settings file")
	fs.IntVar(&opts.keys, "keys", defaults.Keys, "number of keys to write")
	fs.IntVar(&opts.reads, "reads", defaults.Reads, "number of written keys to read back")
	fs.DurationVar(&opts.ttl, "ttl", defaults.TTL, "expiry of written keys")
	fs.DurationVar(&opts.timeout, "timeout", defaults.Timeout, "per-operation network timeout")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log every cache operation")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cache-check --endpoint=your.endpoint.here.cache.amazonaws.com [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if opts.version {
		fmt.Fprintf(stdout, "cache-check version %s\n", version)
		return 0
	}

	consoleOpts := []console.Option{console.WithVerbose(opts.verbose)}
	if opts.noColor {
		consoleOpts = append(consoleOpts, console.WithColor(false))
	}
	out := console.New(stdout, stderr, consoleOpts...)
	out.Banner(scriptTitle, scriptDescription)

	settings, err := resolveSettings(fs, opts, defaults)
	if err != nil {
		out.Error("Invalid settings: %v", err)
		return 1
	}

	runner := cachecheck.NewRunner(settings, out,
		cachecheck.WithRegistry(reg),
		cachecheck.WithObserver(out),
	)
	if err := runner.Run(ctx); err != nil {
		var stepErr *cachecheck.StepError
		if errors.As(err, &stepErr) {
			out.Debug("check failed at %s: %v", stepErr.Stage, err)
		}
		return 1
	}
	return 0
}

// resolveSettings layers defaults, the optional YAML file and explicitly set flags.
func resolveSettings(fs *flag.FlagSet, opts options, base cachecheck.Settings) (cachecheck.Settings, error) {
	settings := base
	// Port 0 lets the driver pick its default unless a file or flag sets one.
	settings.Port = 0
	if opts.configFile != "" {
		loaded, err := cachecheck.LoadSettings(opts.configFile, settings)
		if err != nil {
			return base, err
		}
		settings = loaded
	}

	if fs.Changed("driver") || opts.configFile == "" {
		driver, err := cachecheck.ParseDriver(opts.driver)
		if err != nil {
			return base, err
		}
		settings.Driver = driver
	}
	if fs.Changed("endpoint") {
		settings.Endpoint = opts.endpoint
	}
	if fs.Changed("port") {
		settings.Port = opts.port
	}
	if fs.Changed("keys") {
		settings.Keys = opts.keys
	}
	if fs.Changed("reads") {
		settings.Reads = opts.reads
	}
	if fs.Changed("ttl") {
		settings.TTL = opts.ttl
	}
	if fs.Changed("timeout") {
		settings.Timeout = opts.timeout
	}
	return settings, settings.Validate()
}
