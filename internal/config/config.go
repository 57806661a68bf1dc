package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vela/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vela.yaml"

	// DefaultFrameInterval is the default animation frame spacing.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultTransitionDuration is used by effects that get no duration.
	DefaultTransitionDuration = 400 * time.Millisecond

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "127.0.0.1:7070"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vela"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Config represents the complete vela.yaml configuration.
type Config struct {
	// Runtime contains scheduler, hydration and transition settings.
	Runtime RuntimeConfig `yaml:"runtime"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log"`

	// Inspector contains the debug server settings.
	Inspector InspectorConfig `yaml:"inspector"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// Export contains the keyframes stylesheet destination.
	Export ExportConfig `yaml:"export"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RuntimeConfig contains runtime settings.
type RuntimeConfig struct {
	// FrameInterval is the spacing of animation frames.
	FrameInterval time.Duration `yaml:"frame_interval"`

	// StrictHydration turns text mismatches into hydration errors.
	StrictHydration bool `yaml:"strict_hydration"`

	// TransitionDuration is the default duration of built-in effects.
	TransitionDuration time.Duration `yaml:"transition_duration"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// InspectorConfig contains inspector settings.
type InspectorConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`
}

// ExportConfig contains stylesheet export settings.
type ExportConfig struct {
	// Target is a file path or an s3://bucket/key URL. Empty means stdout.
	Target string `yaml:"target,omitempty"`

	// Region is the AWS region for s3 targets.
	Region string `yaml:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			FrameInterval:      DefaultFrameInterval,
			TransitionDuration: DefaultTransitionDuration,
		},
		Log:       LogConfig{Level: DefaultLogLevel},
		Inspector: InspectorConfig{Addr: DefaultInspectorAddr},
		Metrics:   MetricsConfig{Namespace: DefaultNamespace},
	}
}

// Load reads configuration from the specified directory.
// It looks for vela.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOptional is like Load but falls back to the defaults, with
// environment overrides applied, when there is no vela.yaml.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	var e *errors.Error
	if stderrors.As(err, &e) && stderrors.Is(e.Wrapped, os.ErrNotExist) {
		cfg = New()
		if err := cfg.applyEnv(os.LookupEnv); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, err
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E203").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			if cause := e.Wrapped; cause != nil {
				e = e.WithLocationFromError(path, cause)
			}
			return nil, e
		}
		return nil, err
	}
	cfg.configPath = path
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes vela.yaml content over the defaults. Environment
// overrides are not applied.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E201").
			WithSuggestion("Check that vela.yaml is valid YAML and durations look like 16ms or 1s").
			Wrap(err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E203").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E203").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// applyEnv overrides fields from VELA_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	durations := map[string]*time.Duration{
		"VELA_FRAME_INTERVAL":      &c.Runtime.FrameInterval,
		"VELA_TRANSITION_DURATION": &c.Runtime.TransitionDuration,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return errors.New("E202").WithDetailf("%s=%q is not a duration", key, v)
			}
			*dst = d
		}
	}

	if v, ok := lookup("VELA_STRICT_HYDRATION"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E202").WithDetailf("VELA_STRICT_HYDRATION=%q is not a boolean", v)
		}
		c.Runtime.StrictHydration = b
	}

	strs := map[string]*string{
		"VELA_LOG_LEVEL":         &c.Log.Level,
		"VELA_INSPECTOR_ADDR":    &c.Inspector.Addr,
		"VELA_METRICS_NAMESPACE": &c.Metrics.Namespace,
		"VELA_EXPORT_TARGET":     &c.Export.Target,
		"VELA_EXPORT_REGION":     &c.Export.Region,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Runtime.FrameInterval <= 0 {
		return errors.New("E202").WithDetail("runtime.frame_interval must be positive")
	}
	if c.Runtime.TransitionDuration < 0 {
		return errors.New("E202").WithDetail("runtime.transition_duration must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if strings.HasPrefix(c.Export.Target, "s3://") {
		if _, _, ok := SplitS3(c.Export.Target); !ok {
			return errors.New("E202").
				WithDetailf("export.target %q must look like s3://bucket/key", c.Export.Target)
		}
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, errors.New("E202").
			WithDetailf("log.level %q is not one of debug, info, warn, error", name)
	}
	return level, nil
}

// LogLevel returns the configured level, or info when it is invalid.
func (c *Config) LogLevel() slog.Level {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// SplitS3 splits an s3://bucket/key URL. ok is false when either part
// is missing.
func SplitS3(target string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(target, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, bucket != "" && key != ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the one holding vela.yaml.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E203").
				WithDetail("No vela.yaml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
