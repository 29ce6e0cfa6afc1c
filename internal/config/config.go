package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/docscore/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "docscore"

	// DefaultFetchTimeout bounds a single URL's fetch, including every retry.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3

	// DefaultBackoffBase is the delay before the first retry. Each further
	// retry doubles it.
	DefaultBackoffBase = 1 * time.Second

	// DefaultBackoffMax caps a single backoff delay.
	DefaultBackoffMax = 10 * time.Second

	// DefaultUserAgent is a desktop browser User-Agent. Many documentation
	// hosts serve reduced pages or block unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits the response body read per page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMinContentLength is the minimum number of visible text
	// characters a fetched page must contain.
	DefaultMinContentLength = 500

	// DefaultMinExtractWords is the minimum word count an extraction
	// strategy must reach to be accepted.
	DefaultMinExtractWords = 50

	// DefaultAIModel is the Gemini model used for supplements.
	DefaultAIModel = "gemini-2.0-flash"

	// DefaultAITimeout bounds a single supplement request.
	DefaultAITimeout = 15 * time.Second

	// DefaultAIExcerptBudget is the maximum number of characters of page
	// text sent with a supplement request.
	DefaultAIExcerptBudget = 2000

	// DefaultAIRequestsPerSecond limits supplement requests across a batch.
	DefaultAIRequestsPerSecond = 2.0

	// DefaultLongParagraphWords is the word count above which a paragraph
	// counts as long.
	DefaultLongParagraphWords = 100

	// DefaultPassiveThreshold is the passive-voice ratio above which a
	// suggestion is emitted.
	DefaultPassiveThreshold = 0.25

	// DefaultTargetGradeMin and DefaultTargetGradeMax bound the target
	// Flesch-Kincaid grade band.
	DefaultTargetGradeMin = 8.0
	DefaultTargetGradeMax = 10.0

	// DefaultBatchSize is the number of URLs analyzed concurrently.
	DefaultBatchSize = 5

	// DefaultServeAddress is the listen address of the HTTP API.
	DefaultServeAddress = ":5000"
)

// Config holds all configuration options for docscore.
// It is populated from defaults, the optional YAML file and CLI flags, in
// that order, and passed explicitly to every component.
type Config struct {
	// FetchTimeout bounds the fetch of one URL including retries.
	FetchTimeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BackoffBase is the delay before the first retry.
	BackoffBase time.Duration

	// BackoffMax caps a single backoff delay.
	BackoffMax time.Duration

	// UserAgent is the User-Agent header sent with page requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// MinContentLength is the minimum visible text length of a fetched page.
	MinContentLength int

	// MinExtractWords is the minimum word count for an extraction strategy.
	MinExtractWords int

	// DisableAI turns off AI supplements even when an API key is set.
	DisableAI bool

	// AIAPIKey is the Gemini API key. Empty disables AI supplements.
	AIAPIKey string

	// AIModel is the Gemini model name.
	AIModel string

	// AITimeout bounds one supplement request.
	AITimeout time.Duration

	// AIExcerptBudget is the maximum excerpt length in characters.
	AIExcerptBudget int

	// AIRequestsPerSecond limits supplement requests. 0 disables limiting.
	AIRequestsPerSecond float64

	// Prompts overrides the prompt template of a criterion, keyed by
	// criterion identifier ("readability", "structure", ...).
	Prompts map[string]string

	// Weights is the contribution of each criterion to the overall score.
	Weights Weights

	// Tiers maps overall scores to recommendation labels.
	Tiers []Tier

	// LongParagraphWords is the word count above which a paragraph is long.
	LongParagraphWords int

	// PassiveThreshold is the passive ratio above which style suggests
	// rewriting in active voice.
	PassiveThreshold float64

	// TargetGradeMin and TargetGradeMax bound the target reading grade.
	TargetGradeMin float64
	TargetGradeMax float64

	// BatchSize is the number of URLs analyzed concurrently.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport enables JSON report output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// OutputDir, when set, receives per-URL results, extracted documents
	// and a batch summary.
	OutputDir string

	// Targets is the list of URLs to analyze.
	Targets []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		FetchTimeout:        DefaultFetchTimeout,
		MaxRetries:          DefaultMaxRetries,
		BackoffBase:         DefaultBackoffBase,
		BackoffMax:          DefaultBackoffMax,
		UserAgent:           DefaultUserAgent,
		MaxBodySize:         DefaultMaxBodySize,
		MinContentLength:    DefaultMinContentLength,
		MinExtractWords:     DefaultMinExtractWords,
		AIModel:             DefaultAIModel,
		AITimeout:           DefaultAITimeout,
		AIExcerptBudget:     DefaultAIExcerptBudget,
		AIRequestsPerSecond: DefaultAIRequestsPerSecond,
		Prompts:             make(map[string]string),
		Weights:             DefaultWeights(),
		Tiers:               DefaultTiers(),
		LongParagraphWords:  DefaultLongParagraphWords,
		PassiveThreshold:    DefaultPassiveThreshold,
		TargetGradeMin:      DefaultTargetGradeMin,
		TargetGradeMax:      DefaultTargetGradeMax,
		BatchSize:           DefaultBatchSize,
	}
}

// AIEnabled reports whether supplements should be requested.
func (c *Config) AIEnabled() bool {
	return !c.DisableAI && c.AIAPIKey != ""
}

// XDGDataDir returns the XDG data directory for docscore.
// On Linux: ~/.local/share/docscore
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for docscore.
// On Linux: ~/.config/docscore
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a *ConfigError for the first invalid value found. This is
// called once after flags and the config file are applied, before any
// URL is fetched.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return newConfigError("fetch_timeout", ErrInvalidTimeout, "")
	}
	if c.AITimeout <= 0 {
		return newConfigError("ai_timeout", ErrInvalidTimeout, "")
	}
	if c.MaxRetries < 0 {
		return newConfigError("max_retries", ErrInvalidRetries, "")
	}
	if c.BackoffBase < 0 || c.BackoffMax < 0 || c.BackoffMax < c.BackoffBase {
		return newConfigError("backoff", ErrInvalidBackoff, "")
	}
	if c.MaxBodySize < 0 {
		return newConfigError("max_body_size", ErrInvalidMaxBodySize, "")
	}
	if c.MinContentLength < 0 {
		return newConfigError("min_content_length", ErrInvalidThreshold, "must be non-negative")
	}
	if c.MinExtractWords < 0 {
		return newConfigError("min_extract_words", ErrInvalidThreshold, "must be non-negative")
	}
	if c.AIExcerptBudget <= 0 {
		return newConfigError("ai_excerpt_budget", ErrInvalidThreshold, "must be positive")
	}
	if c.AIRequestsPerSecond < 0 {
		return newConfigError("ai_requests_per_second", ErrInvalidRateLimit, "")
	}
	if c.LongParagraphWords <= 0 {
		return newConfigError("long_paragraph_words", ErrInvalidThreshold, "must be positive")
	}
	if c.PassiveThreshold < 0 || c.PassiveThreshold > 1 {
		return newConfigError("passive_threshold", ErrInvalidThreshold, "must be within [0, 1]")
	}
	if c.TargetGradeMin <= 0 || c.TargetGradeMax < c.TargetGradeMin {
		return newConfigError("target_grade", ErrInvalidGradeBand, "")
	}
	if c.BatchSize <= 0 {
		return newConfigError("batch_size", ErrInvalidBatchSize, "")
	}
	if c.JSONReport && c.MarkdownReport {
		return newConfigError("report_format", ErrConflictingReportFormats, "")
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := ValidateTiers(c.Tiers); err != nil {
		return err
	}
	for name := range c.Prompts {
		if _, ok := model.ParseCriterion(name); !ok {
			return newConfigError("prompts."+name, ErrUnknownCriterion, "")
		}
	}
	return nil
}
