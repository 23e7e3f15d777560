package cachecheck

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
)

// Stage is a step of the linear check procedure.
type Stage int

const (
	StageStart Stage = iota
	StageArgsParsed
	StageCapabilityChecked
	StageConnected
	StageProbeOK
	StageWritesComplete
	StageReadsComplete
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageStart:             "start",
	StageArgsParsed:        "args-parsed",
	StageCapabilityChecked: "capability-checked",
	StageConnected:         "connected",
	StageProbeOK:           "probe-ok",
	StageWritesComplete:    "writes-complete",
	StageReadsComplete:     "reads-complete",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "stage(" + strconv.Itoa(int(s)) + ")"
}

const (
	probeKeyPrefix = "connCK_"
	probeValue     = "OK"
	probeKeyLength = 5
	progressEvery  = 10
)

// Reporter receives the human readable status lines of a run.
type Reporter interface {
	Info(format string, args ...any)
	OK(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Runner executes one connectivity check. It is not safe for concurrent use.
type Runner struct {
	settings  Settings
	reporter  Reporter
	registry  *Registry
	observer  Observer
	storeOpts []StoreOption
	probeKey  func() string
	stage     Stage
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithRegistry replaces the default driver registry.
func WithRegistry(reg *Registry) RunnerOption {
	return func(r *Runner) { r.registry = reg }
}

// WithObserver attaches an observer to the store used by the run.
func WithObserver(obs Observer) RunnerOption {
	return func(r *Runner) { r.observer = obs }
}

// WithStoreOptions appends options applied when the store is opened.
func WithStoreOptions(opts ...StoreOption) RunnerOption {
	return func(r *Runner) { r.storeOpts = append(r.storeOpts, opts...) }
}

// WithProbeKey overrides the generator of the liveness probe key.
func WithProbeKey(gen func() string) RunnerOption {
	return func(r *Runner) { r.probeKey = gen }
}

// NewRunner creates a check runner for settings that reports through rep.
//
// Example: dry run against the in-process store
//
//	settings := cachecheck.DefaultSettings()
//	settings.Driver = cachecheck.DriverMemory
//	settings.Endpoint = "localhost"
//	err := cachecheck.NewRunner(settings, reporter).Run(context.Background())
//	fmt.Println(err) // <nil>
func NewRunner(settings Settings, rep Reporter, opts ...RunnerOption) *Runner {
	r := &Runner{
		settings: settings,
		reporter: rep,
		registry: DefaultRegistry(),
		probeKey: RandomProbeKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stage reports how far the last Run got.
func (r *Runner) Stage() Stage { return r.stage }

// Run performs the check and returns nil only when every step succeeded.
// The first failure is reported, ends the run and is returned as a *StepError.
func (r *Runner) Run(ctx context.Context) error {
	r.stage = StageStart
	s := r.settings
	title := s.Driver.Title()

	target, err := ParseEndpoint(s.Endpoint, s.EffectivePort())
	if err != nil {
		if s.Endpoint == "" {
			r.reporter.Error("You MUST specify the cluster endpoint!\n\tUsage: cache-check --endpoint=your.endpoint.here.cache.amazonaws.com")
		} else {
			r.reporter.Error("Invalid cluster endpoint: %v", err)
		}
		return r.fail(StageArgsParsed, ErrMissingArgument, "", err)
	}
	r.stage = StageArgsParsed

	if err := r.registry.Available(s.Driver); err != nil {
		r.reporter.Error("%s client support is not available!\n\tPlease check the lab documentation and try again.", title)
		return r.fail(StageCapabilityChecked, ErrMissingCapability, "", err)
	}
	r.reporter.OK("%s client support is available!", title)
	r.stage = StageCapabilityChecked

	r.reporter.Info("Cluster endpoint: %s\nCluster port: %d", target.Host, target.Port)
	r.reporter.Info("Trying to connect to the %s cluster...", title)

	opts := append([]StoreOption{
		WithAddress(target.Address()),
		WithTimeout(s.Timeout),
	}, r.storeOpts...)
	store := Observe(r.registry.OpenWith(ctx, s.Driver, opts...), r.observer)
	defer store.Close()
	r.stage = StageConnected

	probe := r.probeKey()
	if err := store.Set(ctx, probe, []byte(probeValue), s.ProbeTTL); err != nil {
		r.reporter.Error("Cannot connect to the %s %s cluster!\n\tPlease check the Security Group rules and try again.\n\tError: %v", target.Host, title, err)
		return r.fail(StageProbeOK, ErrConnection, probe, err)
	}
	r.reporter.OK("Connected to %s cluster!", target.Host)
	r.stage = StageProbeOK

	r.reporter.Info("Trying to write data to %s:", target.Host)
	for i := 0; i < s.Keys; i++ {
		key := s.KeyName(i)
		if err := store.Set(ctx, key, []byte(s.ValueFor(i)), s.TTL); err != nil {
			r.reporter.Error("Cannot write %s key. Error: %v", key, err)
			return r.fail(StageWritesComplete, ErrWrite, key, err)
		}
		if i%progressEvery == 0 && i != 0 {
			r.reporter.OK("%s to %s keys written.", s.KeyName(i-progressEvery), key)
		}
	}
	r.stage = StageWritesComplete

	r.reporter.Info("\nTrying to read stored values from %s:", target.Host)
	for i := 0; i < s.Reads; i++ {
		key := s.KeyName(i)
		body, ok, err := store.Get(ctx, key)
		if err != nil {
			r.reporter.Error("Cannot read %s key. Error: %v", key, err)
			return r.fail(StageReadsComplete, ErrRead, key, err)
		}
		switch {
		case !ok:
			r.reporter.Warn("\t%s = .", key)
		case string(body) != s.ValueFor(i):
			r.reporter.Warn("\t%s = %s. (expected %s)", key, body, s.ValueFor(i))
		default:
			r.reporter.OK("\t%s = %s.", key, body)
		}
	}
	r.stage = StageReadsComplete

	r.reporter.Info("\nWell done, you are all set!")
	r.stage = StageDone
	return nil
}

func (r *Runner) fail(stage Stage, kind error, key string, err error) error {
	r.stage = StageFailed
	return &StepError{Stage: stage, Kind: kind, Key: key, Err: err}
}

const probeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomProbeKey returns a fresh liveness probe key such as "connCK_a9Zk2".
func RandomProbeKey() string {
	b := make([]byte, probeKeyLength)
	for i := range b {
		b[i] = probeAlphabet[rand.Intn(len(probeAlphabet))]
	}
	return fmt.Sprintf("%s%s", probeKeyPrefix, b)
}
