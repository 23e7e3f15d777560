package cachecheck

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultKeyPrefix   = "cloudlabs_"
	DefaultValuePrefix = "ElasticacheIsGreat! #"
	DefaultWriteCount  = 100
	DefaultReadCount   = 10
	DefaultTTL         = 60 * time.Second
	DefaultProbeTTL    = time.Second

	// MaxTTL is the longest relative expiry memcached accepts; larger values
	// are read as absolute Unix timestamps.
	MaxTTL = 30 * 24 * time.Hour
)

// Settings is the resolved configuration of one check run.
type Settings struct {
	Driver   Driver `yaml:"driver"`
	Endpoint string `yaml:"endpoint"`
	// Port is used when Endpoint carries no port. Zero selects the driver default.
	// The range is checked by ParseEndpoint, only when Port is the one dialed.
	Port int `yaml:"port"`

	KeyPrefix   string        `yaml:"key_prefix"`
	ValuePrefix string        `yaml:"value_prefix"`
	Keys        int           `yaml:"keys"`
	Reads       int           `yaml:"reads"`
	TTL         time.Duration `yaml:"ttl"`
	ProbeTTL    time.Duration `yaml:"probe_ttl"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DefaultSettings returns the settings of a standard ElastiCache Memcached check.
func DefaultSettings() Settings {
	return Settings{
		Driver:      DriverMemcached,
		KeyPrefix:   DefaultKeyPrefix,
		ValuePrefix: DefaultValuePrefix,
		Keys:        DefaultWriteCount,
		Reads:       DefaultReadCount,
		TTL:         DefaultTTL,
		ProbeTTL:    DefaultProbeTTL,
		Timeout:     defaultOperationTimeout,
	}
}

// LoadSettings overlays the YAML file at path onto base. Fields absent from the
// file keep their base value.
func LoadSettings(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}
	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if out.Driver, err = ParseDriver(string(out.Driver)); err != nil {
		return base, err
	}
	return out, nil
}

// KeyName returns the name of the i-th bulk key.
func (s Settings) KeyName(i int) string { return s.KeyPrefix + strconv.Itoa(i) }

// ValueFor returns the value written under the i-th bulk key.
func (s Settings) ValueFor(i int) string { return s.ValuePrefix + strconv.Itoa(i) }

// EffectivePort is Port, or the driver default when Port is unset.
func (s Settings) EffectivePort() int {
	if s.Port != 0 {
		return s.Port
	}
	return s.Driver.DefaultPort()
}

// Validate rejects settings that cannot describe a meaningful run.
// An empty endpoint is left to the run itself so it is reported like any other step.
func (s Settings) Validate() error {
	var errs []error
	if _, err := ParseDriver(string(s.Driver)); err != nil {
		errs = append(errs, err)
	}
	if s.Keys < 1 {
		errs = append(errs, fmt.Errorf("keys must be positive, got %d", s.Keys))
	}
	if s.Reads < 0 || s.Reads > s.Keys {
		errs = append(errs, fmt.Errorf("reads must be between 0 and keys (%d), got %d", s.Keys, s.Reads))
	}
	if s.TTL < time.Second || s.TTL > MaxTTL {
		errs = append(errs, fmt.Errorf("ttl must be between 1s and %s, got %s", MaxTTL, s.TTL))
	}
	if s.ProbeTTL < time.Second || s.ProbeTTL > MaxTTL {
		errs = append(errs, fmt.Errorf("probe ttl must be between 1s and %s, got %s", MaxTTL, s.ProbeTTL))
	}
	if s.KeyPrefix == "" {
		errs = append(errs, errors.New("key prefix must not be empty"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrMissingArgument, errors.Join(errs...))
}
