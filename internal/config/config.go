package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matsim-io/simnorm/api/v1alpha1"
	"github.com/matsim-io/simnorm/internal/logging"
	"github.com/matsim-io/simnorm/pkg/hubbard"
	"github.com/matsim-io/simnorm/pkg/quantum"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SIMNORM"

// J-coupling rules accepted by NormalizerConfig.JCouplingRule.
const (
	JCouplingMultiplicity = "multiplicity"
	JCouplingNone         = "none"
)

// Configuration keys, shared by the config file, the environment and flags.
const (
	KeyWorkers                = "workers"
	KeyLogLevel               = "logLevel"
	KeyHubbardParametrization = "hubbardParametrization"
	KeyJCouplingRule          = "jCouplingRule"
	KeyTolerance              = "tolerance"
	KeyMetricsFile            = "metricsFile"
	KeyOverrides              = "overrides"
)

// NormalizerConfig configures a normalization run.
type NormalizerConfig struct {
	// Program is the program name an override entry applies to (only used in override entries)
	Program string `yaml:"program,omitempty" json:"program,omitempty"`

	// Workers bounds the number of simulations normalized in parallel. 0 means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`

	// LogLevel is one of error, info, debug or trace.
	LogLevel string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`

	// HubbardParametrization names the Slater-integral parametrization, "slater-condon" or "d-shell".
	HubbardParametrization string `yaml:"hubbardParametrization,omitempty" json:"hubbardParametrization,omitempty"`

	// JCouplingRule selects how j and mj override the degeneracy: "multiplicity" or "none".
	JCouplingRule string `yaml:"jCouplingRule,omitempty" json:"jCouplingRule,omitempty"`

	// Tolerance is the relative tolerance for comparing supplied and derived energies.
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`

	// MetricsFile is where Prometheus textfile metrics are written; empty disables them.
	MetricsFile string `yaml:"metricsFile,omitempty" json:"metricsFile,omitempty"`

	// Overrides holds per-program settings, keyed by program name.
	Overrides ProgramOverrides `yaml:"-" json:"-"`
}

// Default returns the configuration used when nothing is configured.
func Default() NormalizerConfig {
	return NormalizerConfig{
		LogLevel:               logging.LevelInfo,
		HubbardParametrization: hubbard.SlaterCondon{}.Name(),
		JCouplingRule:          JCouplingMultiplicity,
		Tolerance:              v1alpha1.DefaultTolerance,
	}
}

// Validate checks for invalid configuration values.
func (c *NormalizerConfig) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := hubbard.Lookup(c.HubbardParametrization); err != nil {
		errs = append(errs, err)
	}
	switch c.JCouplingRule {
	case "", JCouplingMultiplicity, JCouplingNone:
	default:
		errs = append(errs, fmt.Errorf("jCouplingRule must be %q or %q, got %q",
			JCouplingMultiplicity, JCouplingNone, c.JCouplingRule))
	}
	if c.Tolerance < 0 || c.Tolerance >= 1 {
		errs = append(errs, fmt.Errorf("tolerance must be in [0, 1), got %g", c.Tolerance))
	}
	return errors.Join(errs...)
}

// EffectiveWorkers returns Workers, or GOMAXPROCS when it is 0.
func (c *NormalizerConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Resolvers returns the normalization conventions selected by the configuration.
func (c *NormalizerConfig) Resolvers() (v1alpha1.Resolvers, error) {
	p, err := hubbard.Lookup(c.HubbardParametrization)
	if err != nil {
		return v1alpha1.Resolvers{}, err
	}
	r := v1alpha1.Resolvers{Degeneracy: quantum.Default, Slater: p, Tolerance: c.Tolerance}
	if c.JCouplingRule == JCouplingNone {
		r.Degeneracy = quantum.BaselineOnly
	}
	if r.Tolerance == 0 {
		r.Tolerance = v1alpha1.DefaultTolerance
	}
	return r, nil
}

// ResolversFor returns the conventions for simulations produced by program.
func (c *NormalizerConfig) ResolversFor(program string) (v1alpha1.Resolvers, error) {
	merged := c.Overrides.Merge(*c, program)
	return merged.Resolvers()
}

// Flags registers the command-line flags understood by Load.
func Flags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("workers", d.Workers, "simulations normalized in parallel (0 = GOMAXPROCS)")
	fs.String("log-level", d.LogLevel, "log level: error, info, debug or trace")
	fs.String("hubbard-parametrization", d.HubbardParametrization, "Slater-integral parametrization")
	fs.String("j-coupling-rule", d.JCouplingRule, "j/mj degeneracy rule: multiplicity or none")
	fs.Float64("tolerance", d.Tolerance, "relative tolerance for energy comparisons")
	fs.String("metrics-file", d.MetricsFile, "write Prometheus textfile metrics to this path")
}

var flagKeys = map[string]string{
	"workers":                 KeyWorkers,
	"log-level":               KeyLogLevel,
	"hubbard-parametrization": KeyHubbardParametrization,
	"j-coupling-rule":         KeyJCouplingRule,
	"tolerance":               KeyTolerance,
	"metrics-file":            KeyMetricsFile,
}

var envKeys = map[string]string{
	KeyWorkers:                EnvPrefix + "_WORKERS",
	KeyLogLevel:               EnvPrefix + "_LOG_LEVEL",
	KeyHubbardParametrization: EnvPrefix + "_HUBBARD_PARAMETRIZATION",
	KeyJCouplingRule:          EnvPrefix + "_J_COUPLING_RULE",
	KeyTolerance:              EnvPrefix + "_TOLERANCE",
	KeyMetricsFile:            EnvPrefix + "_METRICS_FILE",
}

// Load reads the configuration from path (optional), the environment and flags, in
// increasing order of precedence. Only flags that were set on the command line override
// the other sources.
func Load(path string, flags *pflag.FlagSet, logger logr.Logger) (NormalizerConfig, error) {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyHubbardParametrization, d.HubbardParametrization)
	v.SetDefault(KeyJCouplingRule, d.JCouplingRule)
	v.SetDefault(KeyTolerance, d.Tolerance)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return NormalizerConfig{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return NormalizerConfig{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return Load(env, flags, logger)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return NormalizerConfig{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := NormalizerConfig{
		Workers:                v.GetInt(KeyWorkers),
		LogLevel:               v.GetString(KeyLogLevel),
		HubbardParametrization: v.GetString(KeyHubbardParametrization),
		JCouplingRule:          v.GetString(KeyJCouplingRule),
		Tolerance:              v.GetFloat64(KeyTolerance),
		MetricsFile:            v.GetString(KeyMetricsFile),
		Overrides:              ParseProgramOverrides(v.GetStringMapString(KeyOverrides), logger),
	}
	if err := cfg.Validate(); err != nil {
		return NormalizerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.V(logging.DEBUG).Info("Loaded configuration",
		"path", path,
		"workers", cfg.Workers,
		"hubbardParametrization", cfg.HubbardParametrization,
		"jCouplingRule", cfg.JCouplingRule,
		"overrides", len(cfg.Overrides))
	return cfg, nil
}
