// Package config holds the command-line options of the bcapi tool and their
// TOML file counterpart. Values set by flag or environment win over the file,
// and built-in defaults fill whatever is still unset. An option counts as set
// when it is non-zero or was marked with MarkSet, so an explicit zero survives.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goodnatureofminers/bcapi/internal/log"
	"github.com/goodnatureofminers/bcapi/pkg/gateway"
	"github.com/goodnatureofminers/bcapi/pkg/resource"
)

// Defaults applied after the config file is merged.
const (
	DefaultRPS          = 5
	DefaultWorkers      = 4
	DefaultBatchSize    = 20
	DefaultPollInterval = 30 * time.Second
	DefaultMaxBackfill  = 10
	DefaultLogLevel     = "info"
	DefaultNetwork      = "mainnet"
)

// Options are the global options shared by every command.
type Options struct {
	ConfigFile   string        `long:"config" env:"BCAPI_CONFIG" description:"TOML config file" toml:"-"`
	BaseURL      string        `long:"base-url" env:"BCAPI_BASE_URL" description:"explorer API base URL" toml:"base_url"`
	Network      string        `long:"network" env:"BCAPI_NETWORK" description:"network used for script decoding and metric labels" toml:"network"`
	Timeout      time.Duration `long:"timeout" env:"BCAPI_TIMEOUT" description:"HTTP request timeout, 0 uses the built-in default" toml:"timeout"`
	RPS          int           `long:"rps" env:"BCAPI_RPS" description:"maximum requests per second, 0 or negative disables throttling" toml:"rps"`
	UserAgent    string        `long:"user-agent" env:"BCAPI_USER_AGENT" description:"User-Agent header" toml:"user_agent"`
	Workers      int           `long:"workers" env:"BCAPI_WORKERS" description:"concurrent requests for batch commands, 0 uses the built-in default" toml:"workers"`
	BatchSize    int           `long:"batch-size" env:"BCAPI_BATCH_SIZE" description:"addresses per multiaddr request, 0 uses the built-in default" toml:"batch_size"`
	PollInterval time.Duration `long:"poll-interval" env:"BCAPI_POLL_INTERVAL" description:"tip polling interval for follow, 0 uses the built-in default" toml:"poll_interval"`
	MaxBackfill  int           `long:"max-backfill" env:"BCAPI_MAX_BACKFILL" description:"blocks fetched backwards per poll when following, 0 uses the built-in default" toml:"max_backfill"`
	MetricsAddr  string        `long:"metrics-addr" env:"BCAPI_METRICS_ADDR" description:"listen address for /metrics, empty disables" toml:"metrics_addr"`
	LogLevel     string        `long:"log-level" env:"BCAPI_LOG_LEVEL" description:"debug, info, warn or error" toml:"log_level"`
	LogFile      string        `long:"log-file" env:"BCAPI_LOG_FILE" description:"rotate logs into this file instead of stderr" toml:"log_file"`

	set map[string]bool
}

// MarkSet records options given explicitly, by long flag name.
func (o *Options) MarkSet(names ...string) {
	if o.set == nil {
		o.set = make(map[string]bool, len(names))
	}
	for _, name := range names {
		o.set[name] = true
	}
}

// LoadFile decodes a TOML config file. Unknown keys are rejected.
func LoadFile(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Options{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// Resolve merges the config file named by ConfigFile, if any, and applies defaults.
func (o Options) Resolve() (Options, error) {
	if o.ConfigFile != "" {
		file, err := LoadFile(o.ConfigFile)
		if err != nil {
			return Options{}, err
		}
		o = o.Merge(file)
	}
	o = o.ApplyDefaults()
	return o, o.Validate()
}

// Merge fills every unset field of o from other.
func (o Options) Merge(other Options) Options {
	fill(o.set, "base-url", &o.BaseURL, other.BaseURL)
	fill(o.set, "network", &o.Network, other.Network)
	fill(o.set, "timeout", &o.Timeout, other.Timeout)
	fill(o.set, "rps", &o.RPS, other.RPS)
	fill(o.set, "user-agent", &o.UserAgent, other.UserAgent)
	fill(o.set, "workers", &o.Workers, other.Workers)
	fill(o.set, "batch-size", &o.BatchSize, other.BatchSize)
	fill(o.set, "poll-interval", &o.PollInterval, other.PollInterval)
	fill(o.set, "max-backfill", &o.MaxBackfill, other.MaxBackfill)
	fill(o.set, "metrics-addr", &o.MetricsAddr, other.MetricsAddr)
	fill(o.set, "log-level", &o.LogLevel, other.LogLevel)
	fill(o.set, "log-file", &o.LogFile, other.LogFile)
	return o
}

// ApplyDefaults fills unset fields with built-in defaults.
func (o Options) ApplyDefaults() Options {
	return o.Merge(Options{
		BaseURL:      gateway.DefaultBaseURL,
		Network:      DefaultNetwork,
		Timeout:      gateway.DefaultTimeout,
		RPS:          DefaultRPS,
		UserAgent:    gateway.DefaultUserAgent,
		Workers:      DefaultWorkers,
		BatchSize:    DefaultBatchSize,
		PollInterval: DefaultPollInterval,
		MaxBackfill:  DefaultMaxBackfill,
		LogLevel:     DefaultLogLevel,
	})
}

// Validate rejects values no command can work with.
func (o Options) Validate() error {
	var errs []error
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", o.Timeout))
	}
	if o.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", o.Workers))
	}
	if o.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size must not be negative, got %d", o.BatchSize))
	}
	if o.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("poll interval must not be negative, got %s", o.PollInterval))
	}
	if _, err := resource.ChainParams(o.Network); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(o.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Gateway returns the library-level gateway config.
func (o Options) Gateway() gateway.Config {
	rps := o.RPS
	if rps < 0 {
		rps = 0
	}
	return gateway.Config{
		BaseURL:   o.BaseURL,
		Timeout:   o.Timeout,
		RPS:       rps,
		UserAgent: o.UserAgent,
	}
}

// Log returns the logger config.
func (o Options) Log() log.Config {
	return log.Config{Level: o.LogLevel, File: o.LogFile}
}

func fill[T comparable](set map[string]bool, name string, dst *T, v T) {
	var zero T
	if *dst == zero && !set[name] {
		*dst = v
	}
}
