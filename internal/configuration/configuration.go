package configuration

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"

	"github.com/project-flotta/sys-metrics-sim/internal/generator"
	"github.com/project-flotta/sys-metrics-sim/internal/keyboard"
)

const (
	DefaultIntervalSeconds      = 10
	DefaultInstances            = 1
	DefaultStatsIntervalSeconds = 30
	DefaultWriteTimeoutSeconds  = 10
	DefaultLogLevel             = "INFO"
)

var ErrConflictingModes = errors.New("only one of --random, --keys and --flap can be set")

// Config is everything the simulator reads at startup. Positional
// arguments and flags override values loaded from a file.
type Config struct {
	IntervalSeconds      int            `json:"intervalSeconds"`
	Instances            int            `json:"instances"`
	IndexName            string         `json:"indexName"`
	ClusterURL           string         `json:"clusterURL"`
	Mode                 generator.Mode `json:"mode"`
	Seed                 int64          `json:"seed,omitempty"`
	CreateIndex          bool           `json:"createIndex,omitempty"`
	StatsIntervalSeconds int            `json:"statsIntervalSeconds"`
	WriteTimeoutSeconds  int            `json:"writeTimeoutSeconds"`
	MetricsAddress       string         `json:"metricsAddress,omitempty"`
	TagsFile             string         `json:"tagsFile,omitempty"`
	AWSRegion            string         `json:"awsRegion,omitempty"`
	LogLevel             string         `json:"logLevel"`
	Debug                bool           `json:"debug,omitempty"`
}

func Defaults() Config {
	return Config{
		IntervalSeconds:      DefaultIntervalSeconds,
		Instances:            DefaultInstances,
		Mode:                 generator.ModeSine,
		StatsIntervalSeconds: DefaultStatsIntervalSeconds,
		WriteTimeoutSeconds:  DefaultWriteTimeoutSeconds,
		LogLevel:             DefaultLogLevel,
	}
}

// LoadFile overlays a YAML (or JSON) file on the defaults.
func LoadFile(file string) (Config, error) {
	cfg := Defaults()
	data, err := ioutil.ReadFile(filepath.Clean(file))
	if err != nil {
		return cfg, fmt.Errorf("cannot read configuration file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse configuration file %s: %w", file, err)
	}
	return cfg, nil
}

// ModeFromFlags maps the mutually exclusive mode flags to a mode, sine when
// none is set.
func ModeFromFlags(random, keys, flap bool) (generator.Mode, error) {
	mode := generator.ModeSine
	set := 0
	if random {
		mode = generator.ModeRandom
		set++
	}
	if keys {
		mode = generator.ModeKeys
		set++
	}
	if flap {
		mode = generator.ModeFlap
		set++
	}
	if set > 1 {
		return "", ErrConflictingModes
	}
	return mode, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result error

	if c.IntervalSeconds < 1 {
		result = multierror.Append(result, fmt.Errorf("interval must be at least 1 second, got %d", c.IntervalSeconds))
	}
	if c.Instances < 1 {
		result = multierror.Append(result, fmt.Errorf("instances must be at least 1, got %d", c.Instances))
	}
	if c.IndexName == "" {
		result = multierror.Append(result, fmt.Errorf("index name is required"))
	}
	if c.ClusterURL == "" {
		result = multierror.Append(result, fmt.Errorf("cluster URL is required"))
	} else if u, err := url.Parse(c.ClusterURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid cluster URL: %w", err))
	} else if u.Scheme == "" {
		result = multierror.Append(result, fmt.Errorf("cluster URL %q has no scheme", c.ClusterURL))
	}

	mode, err := generator.ParseMode(string(c.Mode))
	if err != nil {
		result = multierror.Append(result, err)
	} else if mode == generator.ModeKeys && c.Instances > keyboard.MaxHosts {
		result = multierror.Append(result, fmt.Errorf("%w, got %d", keyboard.ErrTooManyHosts, c.Instances))
	}

	if c.StatsIntervalSeconds < 1 {
		result = multierror.Append(result, fmt.Errorf("stats interval must be at least 1 second, got %d", c.StatsIntervalSeconds))
	}
	if c.WriteTimeoutSeconds < 1 {
		result = multierror.Append(result, fmt.Errorf("write timeout must be at least 1 second, got %d", c.WriteTimeoutSeconds))
	}
	return result
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.StatsIntervalSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}
