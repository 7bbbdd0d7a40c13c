package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/spring"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	FileName  = ".jarscope"
	EnvPrefix = "JARSCOPE"
)

// Formats accepted by report.format and the -o flag
var Formats = []string{"cli", "cli-more", "tui", "html", "json", "xml", "yaml"}

type Config struct {
	Markers  spring.Markers `mapstructure:"markers" yaml:"markers"`
	Scoring  health.Weights `mapstructure:"scoring" yaml:"scoring"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-" yaml:"-"`
}

type AnalysisConfig struct {
	IncludePackages []string `mapstructure:"includePackages" yaml:"includePackages"`
	ExcludePackages []string `mapstructure:"excludePackages" yaml:"excludePackages"`
	ClassCacheSize  int      `mapstructure:"classCacheSize" yaml:"classCacheSize" validate:"gte=0"`
	Workers         int      `mapstructure:"workers" yaml:"workers" validate:"gte=1,lte=64"`
}

type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=cli cli-more tui html json xml yaml"`
	Output string `mapstructure:"output" yaml:"output"`
}

func Default() *Config {
	return &Config{
		Markers: spring.DefaultMarkers(),
		Scoring: health.DefaultWeights(),
		Analysis: AnalysisConfig{
			ClassCacheSize: 4096,
			Workers:        4,
		},
		Report: ReportConfig{
			Format: "cli",
		},
	}
}

// Load reads configFile, or .jarscope.yaml from the working directory or
// $HOME when configFile is empty. A missing default file is not an error.
// Environment variables such as JARSCOPE_ANALYSIS_WORKERS override the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// setDefaults registers every key so that environment overrides apply to
// keys missing from the file
func setDefaults(v *viper.Viper, d *Config) {
	stereotypes := make([]map[string]any, 0, len(d.Markers.Stereotypes))
	for _, s := range d.Markers.Stereotypes {
		stereotypes = append(stereotypes, map[string]any{"annotation": s.Annotation, "type": string(s.Type)})
	}

	defaults := map[string]any{
		"markers.stereotypes": stereotypes,
		"markers.autowired":   d.Markers.Autowired,
		"markers.lazy":        d.Markers.Lazy,
		"markers.primary":     d.Markers.Primary,
		"markers.qualifier":   d.Markers.Qualifier,
		"markers.scope":       d.Markers.Scope,

		"scoring.critical": d.Scoring.Critical,
		"scoring.high":     d.Scoring.High,
		"scoring.medium":   d.Scoring.Medium,
		"scoring.low":      d.Scoring.Low,

		"analysis.includePackages": d.Analysis.IncludePackages,
		"analysis.excludePackages": d.Analysis.ExcludePackages,
		"analysis.classCacheSize":  d.Analysis.ClassCacheSize,
		"analysis.workers":         d.Analysis.Workers,

		"report.format": d.Report.Format,
		"report.output": d.Report.Output,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
