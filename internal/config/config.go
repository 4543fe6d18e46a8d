package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Chroma      ChromaConfig      `yaml:"chroma"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Paths       PathsConfig       `yaml:"paths"`
	OCR         OCRConfig         `yaml:"ocr"`
	Review      ReviewConfig      `yaml:"review"`
	Report      ReportConfig      `yaml:"report"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ChromaConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GeminiConfig struct {
	Model              string   `yaml:"model"`
	VisionModel        string   `yaml:"vision_model"`
	APIKeys            []string `yaml:"api_keys"`
	MaxOutputTokens    int      `yaml:"max_output_tokens"`
	MaxRetries         int      `yaml:"max_retries"`
	RetryDelaySeconds  int      `yaml:"retry_delay_seconds"`
	QuotaRefillSeconds int      `yaml:"quota_refill_seconds"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type OCRConfig struct {
	Enabled bool   `yaml:"enabled"`
	Binary  string `yaml:"binary"`
}

type ReviewConfig struct {
	Mode      string `yaml:"mode"`
	BatchSize int    `yaml:"batch_size"`
}

type ReportConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Font     string `yaml:"font"`
	FontSize int    `yaml:"font_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	ReviewModeAuto        = "auto"
	ReviewModeInteractive = "interactive"
)

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Chroma.BaseURL == "" {
		return fmt.Errorf("chroma.base_url is required")
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	switch c.Review.Mode {
	case "":
		c.Review.Mode = ReviewModeAuto
	case ReviewModeAuto, ReviewModeInteractive:
	default:
		return fmt.Errorf("review.mode must be %q or %q", ReviewModeAuto, ReviewModeInteractive)
	}

	if c.Chroma.TimeoutSeconds == 0 {
		c.Chroma.TimeoutSeconds = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash-lite"
	}
	if c.Gemini.VisionModel == "" {
		c.Gemini.VisionModel = c.Gemini.Model
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 200
	}
	if c.Gemini.MaxRetries == 0 {
		c.Gemini.MaxRetries = 3
	}
	if c.Gemini.RetryDelaySeconds == 0 {
		c.Gemini.RetryDelaySeconds = 1
	}
	if c.Gemini.QuotaRefillSeconds == 0 {
		c.Gemini.QuotaRefillSeconds = 60
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.OCR.Binary == "" {
		c.OCR.Binary = "tesseract"
	}
	if c.Review.BatchSize == 0 {
		c.Review.BatchSize = 5
	}
	if c.Report.Font == "" {
		c.Report.Font = "Calibri"
	}
	if c.Report.FontSize == 0 {
		c.Report.FontSize = 11
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
