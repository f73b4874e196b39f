// Package config holds the ampliseq configuration: where the external tools
// live, how long any single invocation may run, and the canonical default
// parameters for the denoising operations.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// Config is the full ampliseq configuration. Every field has a usable
// default; a YAML file and then environment variables are applied on top.
type Config struct {
	Tools   ToolsConfig   `yaml:"tools"`
	Execute ExecuteConfig `yaml:"execute"`
	Deblur  DeblurConfig  `yaml:"deblur"`
	DADA2   DADA2Config   `yaml:"dada2"`
}

// ToolsConfig names the external executables. Plain names are resolved on
// PATH; absolute paths are used as-is.
type ToolsConfig struct {
	Prefetch    string `yaml:"prefetch"`
	FasterqDump string `yaml:"fasterq_dump"`
	SraStat     string `yaml:"sra_stat"`
	Qiime       string `yaml:"qiime"`
	Biom        string `yaml:"biom"`
	Picrust2    string `yaml:"picrust2"`
}

// ExecuteConfig bounds external tool invocations.
type ExecuteConfig struct {
	// Timeout applies to every single external invocation. sra-tools
	// downloads of large runs can take a while, hence the generous default.
	Timeout time.Duration `yaml:"timeout"`
	// Threads is passed to tools that parallelize internally.
	Threads int `yaml:"threads"`
}

// UnmarshalYAML accepts the timeout in time.ParseDuration notation ("30m",
// "2h"), which plain duration fields do not get from the YAML decoder.
func (e *ExecuteConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout string `yaml:"timeout"`
		Threads int    `yaml:"threads"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("execute.timeout: %w", err)
		}
		e.Timeout = d
	}
	if raw.Threads != 0 {
		e.Threads = raw.Threads
	}
	return nil
}

// DeblurConfig is the default parameter set for deblur denoise-16S.
type DeblurConfig struct {
	TrimLength  int `yaml:"trim_length"`
	LeftTrimLen int `yaml:"left_trim_len"`
	MinReads    int `yaml:"min_reads"`
	MinSize     int `yaml:"min_size"`
	JobsToStart int `yaml:"jobs_to_start"`
}

// DADA2Config is the default parameter set for dada2 denoise-paired.
type DADA2Config struct {
	TruncLenF  int     `yaml:"trunc_len_f"`
	TruncLenR  int     `yaml:"trunc_len_r"`
	TrimLeftF  int     `yaml:"trim_left_f"`
	TrimLeftR  int     `yaml:"trim_left_r"`
	MaxEEF     float64 `yaml:"max_ee_f"`
	MaxEER     float64 `yaml:"max_ee_r"`
	TruncQ     int     `yaml:"trunc_q"`
	MinOverlap int     `yaml:"min_overlap"`
	Threads    int     `yaml:"threads"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			Prefetch:    "prefetch",
			FasterqDump: "fasterq-dump",
			SraStat:     "sra-stat",
			Qiime:       "qiime",
			Biom:        "biom",
			Picrust2:    "picrust2_pipeline.py",
		},
		Execute: ExecuteConfig{
			Timeout: 2 * time.Hour,
			Threads: 2,
		},
		Deblur: DeblurConfig{
			TrimLength:  250,
			LeftTrimLen: 0,
			MinReads:    10,
			MinSize:     2,
			JobsToStart: 4,
		},
		DADA2: DADA2Config{
			TruncLenF:  240,
			TruncLenR:  200,
			TrimLeftF:  10,
			TrimLeftR:  10,
			MaxEEF:     2.0,
			MaxEER:     2.0,
			TruncQ:     2,
			MinOverlap: 12,
			Threads:    4,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, pfx.Err(fmt.Errorf("parsing %s: %w", path, err))
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides lets tool locations be set without a config file, which
// is how cluster module systems usually expose them.
func (c *Config) applyEnvOverrides() {
	for env, dst := range map[string]*string{
		"AMPLISEQ_PREFETCH":     &c.Tools.Prefetch,
		"AMPLISEQ_FASTERQ_DUMP": &c.Tools.FasterqDump,
		"AMPLISEQ_SRA_STAT":     &c.Tools.SraStat,
		"AMPLISEQ_QIIME":        &c.Tools.Qiime,
		"AMPLISEQ_BIOM":         &c.Tools.Biom,
		"AMPLISEQ_PICRUST2":     &c.Tools.Picrust2,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}
