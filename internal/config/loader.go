package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".docscore.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .docscore.yaml configuration file.
// Zero values mean "not set" and leave the corresponding default in place.
type File struct {
	Fetch   FetchSection   `yaml:"fetch,omitempty"`
	AI      AISection      `yaml:"ai,omitempty"`
	Scoring ScoringSection `yaml:"scoring,omitempty"`
	Batch   BatchSection   `yaml:"batch,omitempty"`
}

// FetchSection configures page fetching and extraction.
type FetchSection struct {
	Timeout          time.Duration `yaml:"timeout,omitempty"`
	MaxRetries       *int          `yaml:"maxRetries,omitempty"`
	BackoffBase      time.Duration `yaml:"backoffBase,omitempty"`
	BackoffMax       time.Duration `yaml:"backoffMax,omitempty"`
	UserAgent        string        `yaml:"userAgent,omitempty"`
	MaxBodySize      int64         `yaml:"maxBodySize,omitempty"`
	MinContentLength *int          `yaml:"minContentLength,omitempty"`
	MinExtractWords  *int          `yaml:"minExtractWords,omitempty"`
}

// AISection configures the AI supplement client.
// The API key is deliberately absent; it is read from the environment.
type AISection struct {
	Disabled          bool              `yaml:"disabled,omitempty"`
	Model             string            `yaml:"model,omitempty"`
	Timeout           time.Duration     `yaml:"timeout,omitempty"`
	ExcerptBudget     int               `yaml:"excerptBudget,omitempty"`
	RequestsPerSecond *float64          `yaml:"requestsPerSecond,omitempty"`
	Prompts           map[string]string `yaml:"prompts,omitempty"`
}

// ScoringSection configures weights, tiers and analyzer thresholds.
type ScoringSection struct {
	Weights            *Weights `yaml:"weights,omitempty"`
	Tiers              []Tier   `yaml:"tiers,omitempty"`
	LongParagraphWords int      `yaml:"longParagraphWords,omitempty"`
	PassiveThreshold   *float64 `yaml:"passiveThreshold,omitempty"`
	TargetGradeMin     float64  `yaml:"targetGradeMin,omitempty"`
	TargetGradeMax     float64  `yaml:"targetGradeMax,omitempty"`
}

// BatchSection configures batch processing.
type BatchSection struct {
	Size int `yaml:"size,omitempty"`
}

// LoadConfigFile loads a configuration file from path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply overlays every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Fetch.Timeout > 0 {
		cfg.FetchTimeout = f.Fetch.Timeout
	}
	if f.Fetch.MaxRetries != nil {
		cfg.MaxRetries = *f.Fetch.MaxRetries
	}
	if f.Fetch.BackoffBase > 0 {
		cfg.BackoffBase = f.Fetch.BackoffBase
	}
	if f.Fetch.BackoffMax > 0 {
		cfg.BackoffMax = f.Fetch.BackoffMax
	}
	if f.Fetch.UserAgent != "" {
		cfg.UserAgent = f.Fetch.UserAgent
	}
	if f.Fetch.MaxBodySize > 0 {
		cfg.MaxBodySize = f.Fetch.MaxBodySize
	}
	if f.Fetch.MinContentLength != nil {
		cfg.MinContentLength = *f.Fetch.MinContentLength
	}
	if f.Fetch.MinExtractWords != nil {
		cfg.MinExtractWords = *f.Fetch.MinExtractWords
	}

	if f.AI.Disabled {
		cfg.DisableAI = true
	}
	if f.AI.Model != "" {
		cfg.AIModel = f.AI.Model
	}
	if f.AI.Timeout > 0 {
		cfg.AITimeout = f.AI.Timeout
	}
	if f.AI.ExcerptBudget > 0 {
		cfg.AIExcerptBudget = f.AI.ExcerptBudget
	}
	if f.AI.RequestsPerSecond != nil {
		cfg.AIRequestsPerSecond = *f.AI.RequestsPerSecond
	}
	if len(f.AI.Prompts) > 0 {
		if cfg.Prompts == nil {
			cfg.Prompts = make(map[string]string, len(f.AI.Prompts))
		}
		for k, v := range f.AI.Prompts {
			cfg.Prompts[k] = v
		}
	}

	if f.Scoring.Weights != nil {
		cfg.Weights = *f.Scoring.Weights
	}
	if len(f.Scoring.Tiers) > 0 {
		cfg.Tiers = f.Scoring.Tiers
	}
	if f.Scoring.LongParagraphWords > 0 {
		cfg.LongParagraphWords = f.Scoring.LongParagraphWords
	}
	if f.Scoring.PassiveThreshold != nil {
		cfg.PassiveThreshold = *f.Scoring.PassiveThreshold
	}
	if f.Scoring.TargetGradeMin > 0 {
		cfg.TargetGradeMin = f.Scoring.TargetGradeMin
	}
	if f.Scoring.TargetGradeMax > 0 {
		cfg.TargetGradeMax = f.Scoring.TargetGradeMax
	}

	if f.Batch.Size > 0 {
		cfg.BatchSize = f.Batch.Size
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .docscore.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .docscore.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
