package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Metadata MetadataConfig `yaml:"metadata"`
	Storage  StorageConfig  `yaml:"storage"`
	Worker   WorkerConfig   `yaml:"worker"`
	Preview  PreviewConfig  `yaml:"preview"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT"`
	APIKey       string        `yaml:"api_key" envconfig:"API_KEY"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
}

// LLMConfig holds the chat-completion gateway configuration.
type LLMConfig struct {
	APIKey        string        `yaml:"api_key" envconfig:"GROQ_API_KEY"`
	BaseURL       string        `yaml:"base_url" envconfig:"LLM_BASE_URL"`
	Model         string        `yaml:"model" envconfig:"LLM_MODEL"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"LLM_TIMEOUT"`
	Temperature   float64       `yaml:"temperature" envconfig:"LLM_TEMPERATURE"`
	RetryAttempts int           `yaml:"retry_attempts" envconfig:"LLM_RETRY_ATTEMPTS"`
}

// Configured reports whether a credential is available.
func (c LLMConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Pipeline strategies.
const (
	StrategyDirect  = "direct"
	StrategyChained = "chained"
)

// Analysis failure policies.
const (
	AnalysisFailureFail    = "fail"
	AnalysisFailureDegrade = "degrade"
)

// PipelineConfig controls how the three-stage pipeline behaves.
type PipelineConfig struct {
	Strategy        string        `yaml:"strategy" envconfig:"PIPELINE_STRATEGY"`
	AnalysisFailure string        `yaml:"analysis_failure" envconfig:"PIPELINE_ANALYSIS_FAILURE"`
	StageTimeout    time.Duration `yaml:"stage_timeout" envconfig:"PIPELINE_STAGE_TIMEOUT"`
	IncludeHindi    bool          `yaml:"include_hindi" envconfig:"PIPELINE_INCLUDE_HINDI"`
}

// MetadataConfig holds video metadata provider configuration.
type MetadataConfig struct {
	YouTubeAPIKey string        `yaml:"youtube_api_key" envconfig:"YOUTUBE_API_KEY"`
	UserAgent     string        `yaml:"user_agent" envconfig:"METADATA_USER_AGENT"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"METADATA_TIMEOUT"`
}

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// StorageConfig holds run history storage configuration.
type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	DBPath string `yaml:"db_path" envconfig:"STORAGE_DB_PATH"`
}

// WorkerConfig holds worker pool configuration.
type WorkerConfig struct {
	Count        int           `yaml:"count" envconfig:"WORKER_COUNT"`
	PollInterval time.Duration `yaml:"poll_interval" envconfig:"WORKER_POLL_INTERVAL"`
	MaxRetries   int           `yaml:"max_retries" envconfig:"WORKER_MAX_RETRIES"`
}

// PreviewConfig holds thumbnail preview rendering configuration.
type PreviewConfig struct {
	Width     int           `yaml:"width" envconfig:"PREVIEW_WIDTH"`
	Height    int           `yaml:"height" envconfig:"PREVIEW_HEIGHT"`
	CacheSize int           `yaml:"cache_size" envconfig:"PREVIEW_CACHE_SIZE"`
	CacheTTL  time.Duration `yaml:"cache_ttl" envconfig:"PREVIEW_CACHE_TTL"`
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         9848,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 7 * time.Minute,
		},
		LLM: LLMConfig{
			BaseURL:       "https://api.groq.com/openai/v1",
			Model:         "llama3-8b-8192",
			Timeout:       60 * time.Second,
			Temperature:   0.7,
			RetryAttempts: 3,
		},
		Pipeline: PipelineConfig{
			Strategy:        StrategyChained,
			AnalysisFailure: AnalysisFailureFail,
			StageTimeout:    90 * time.Second,
			IncludeHindi:    true,
		},
		Metadata: MetadataConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timeout:   15 * time.Second,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			DBPath: "vidseo.db",
		},
		Worker: WorkerConfig{
			Count:        2,
			PollInterval: 2 * time.Second,
			MaxRetries:   2,
		},
		Preview: PreviewConfig{
			Width:     1280,
			Height:    720,
			CacheSize: 512,
			CacheTTL:  time.Hour,
		},
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values, which override defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are coherent. A missing LLM
// credential is allowed; the pipeline reports it per run.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	switch c.Pipeline.Strategy {
	case StrategyDirect, StrategyChained:
	default:
		return fmt.Errorf("PIPELINE_STRATEGY must be %q or %q", StrategyDirect, StrategyChained)
	}
	switch c.Pipeline.AnalysisFailure {
	case AnalysisFailureFail, AnalysisFailureDegrade:
	default:
		return fmt.Errorf("PIPELINE_ANALYSIS_FAILURE must be %q or %q", AnalysisFailureFail, AnalysisFailureDegrade)
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return fmt.Errorf("STORAGE_DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", DriverMemory, DriverSQLite)
	}
	if budget := c.RunBudget(); c.Server.WriteTimeout > 0 && c.Server.WriteTimeout < budget {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT %s is shorter than the run budget %s", c.Server.WriteTimeout, budget)
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1")
	}
	if c.Preview.Width < 64 || c.Preview.Height < 36 {
		return fmt.Errorf("preview dimensions too small: %dx%d", c.Preview.Width, c.Preview.Height)
	}
	return nil
}

// StageCallsPerRun is the worst-case number of stage-bounded LLM calls in one
// run: analysis, SEO, a tag top-up and thumbnails.
const StageCallsPerRun = 4

// RunBudget is the longest a synchronous run can take: the metadata lookup
// plus every stage hitting its timeout. Zero means unbounded.
func (c *Config) RunBudget() time.Duration {
	if c.Pipeline.StageTimeout <= 0 {
		return 0
	}
	return c.Metadata.Timeout + StageCallsPerRun*c.Pipeline.StageTimeout
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Redacted returns a copy safe to print: credentials are masked.
func (c Config) Redacted() Config {
	c.Server.APIKey = mask(c.Server.APIKey)
	c.LLM.APIKey = mask(c.LLM.APIKey)
	c.Metadata.YouTubeAPIKey = mask(c.Metadata.YouTubeAPIKey)
	return c
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-2:]
}
