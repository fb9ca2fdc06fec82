// Package config loads the sortbench CLI configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/sortbench"
	"github.com/hupe1980/sortbench/compress"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Output    OutputConfig    `yaml:"output"`
	MinIO     MinIOConfig     `yaml:"minio"`
	Resources ResourceConfig  `yaml:"resources"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// BenchmarkConfig controls what is measured.
type BenchmarkConfig struct {
	Sizes []int `yaml:"sizes"`
	// Seed seeds the record generator. 0 picks a time-based seed.
	Seed      int64 `yaml:"seed"`
	FinalSize int   `yaml:"final_size"`
	Verify    bool  `yaml:"verify"`
}

// OutputConfig selects where artifacts are written.
type OutputConfig struct {
	// Store is one of local, memory, s3, minio.
	Store       string `yaml:"store"`
	Dir         string `yaml:"dir"`
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix"`
	Endpoint    string `yaml:"endpoint"`
	Region      string `yaml:"region"`
	Compression string `yaml:"compression"`
	// RunDir places artifacts under a directory named after the run ID.
	RunDir      bool   `yaml:"run_dir"`
	TimingsFile string `yaml:"timings_file"`
	RecordsFile string `yaml:"records_file"`
}

// MinIOConfig holds credentials for the minio store.
type MinIOConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// ResourceConfig bounds artifact uploads.
type ResourceConfig struct {
	MaxUploads         int64 `yaml:"max_uploads"`
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	TextFile string `yaml:"textfile"`
}

// Store names.
const (
	StoreLocal  = "local"
	StoreMemory = "memory"
	StoreS3     = "s3"
	StoreMinIO  = "minio"
)

// ValidStores lists the supported artifact stores.
var ValidStores = []string{StoreLocal, StoreMemory, StoreS3, StoreMinIO}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Benchmark: BenchmarkConfig{
			Sizes:     slices.Clone(sortbench.DefaultSizes),
			FinalSize: sortbench.DefaultFinalSize,
		},
		Output: OutputConfig{
			Store:       StoreLocal,
			Dir:         ".",
			Compression: compress.None.String(),
			TimingsFile: "genealogy_sorting_times.csv",
			RecordsFile: "sorted_genealogy_output.csv",
		},
		Resources: ResourceConfig{
			MaxUploads: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. An empty path yields the
// defaults; a path that cannot be read is an error. Environment overrides are
// applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SORTBENCH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SORTBENCH_SEED %q: %w", v, err)
		}
		c.Benchmark.Seed = seed
	}
	if v := os.Getenv("SORTBENCH_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("SORTBENCH_STORE"); v != "" {
		c.Output.Store = v
	}
	if v := os.Getenv("SORTBENCH_COMPRESSION"); v != "" {
		c.Output.Compression = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.MinIO.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.MinIO.SecretKey = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := sortbench.ValidateSizes(c.Benchmark.Sizes); err != nil {
		return err
	}
	if c.Benchmark.FinalSize < 0 {
		return fmt.Errorf("%w: %d", sortbench.ErrInvalidFinalSize, c.Benchmark.FinalSize)
	}

	if !slices.Contains(ValidStores, c.Output.Store) {
		return fmt.Errorf("invalid store: %s (valid: %v)", c.Output.Store, ValidStores)
	}
	if (c.Output.Store == StoreS3 || c.Output.Store == StoreMinIO) && c.Output.Bucket == "" {
		return fmt.Errorf("store %s requires a bucket", c.Output.Store)
	}
	if c.Output.Store == StoreMinIO && c.Output.Endpoint == "" {
		return fmt.Errorf("store minio requires an endpoint")
	}
	if _, err := compress.ParseKind(c.Output.Compression); err != nil {
		return err
	}
	if c.Output.TimingsFile == "" || c.Output.RecordsFile == "" {
		return fmt.Errorf("output file names must not be empty")
	}

	if _, err := sortbench.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}

	if c.Resources.MaxUploads < 0 || c.Resources.IOLimitBytesPerSec < 0 {
		return fmt.Errorf("resource limits must not be negative")
	}
	return nil
}
