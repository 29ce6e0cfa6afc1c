package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/model"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Gemini REST endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// maxResponseSize limits the bytes read from an API response.
const maxResponseSize = 1 << 20

// GeminiClient is a Supplementer backed by the Gemini generateContent API.
// It sends exactly one request per call.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	// timeout bounds one call, including the rate limiter wait.
	timeout time.Duration

	// excerptBudget is the maximum excerpt length in characters.
	excerptBudget int

	// requestsPerSecond configures limiter. 0 disables limiting.
	requestsPerSecond float64
	limiter           *rate.Limiter

	promptOverrides map[string]string
	prompts         map[model.Criterion]*template.Template

	logger *slog.Logger
}

// Option configures a GeminiClient.
type Option func(*GeminiClient)

// WithModel sets the Gemini model name.
func WithModel(name string) Option {
	return func(c *GeminiClient) {
		if name != "" {
			c.model = name
		}
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *GeminiClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *GeminiClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *GeminiClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExcerptBudget sets the maximum excerpt length in characters.
func WithExcerptBudget(n int) Option {
	return func(c *GeminiClient) {
		if n > 0 {
			c.excerptBudget = n
		}
	}
}

// WithRequestsPerSecond limits the request rate shared by all callers of
// the client. 0 disables limiting.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *GeminiClient) {
		if rps >= 0 {
			c.requestsPerSecond = rps
		}
	}
}

// WithPrompts overrides prompt templates keyed by criterion identifier.
func WithPrompts(prompts map[string]string) Option {
	return func(c *GeminiClient) {
		c.promptOverrides = prompts
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *GeminiClient) {
		c.logger = logger
	}
}

// NewGeminiClient creates a client for apiKey. It fails only when a
// prompt template does not parse.
func NewGeminiClient(apiKey string, opts ...Option) (*GeminiClient, error) {
	c := &GeminiClient{
		apiKey:            apiKey,
		model:             config.DefaultAIModel,
		baseURL:           DefaultBaseURL,
		httpClient:        &http.Client{},
		timeout:           config.DefaultAITimeout,
		excerptBudget:     config.DefaultAIExcerptBudget,
		requestsPerSecond: config.DefaultAIRequestsPerSecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	prompts, err := parsePrompts(c.promptOverrides)
	if err != nil {
		return nil, err
	}
	c.prompts = prompts

	if c.requestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(c.requestsPerSecond), 1)
	}

	return c, nil
}

// New returns the Supplementer described by cfg: a GeminiClient when AI
// is enabled, otherwise Nop.
func New(cfg *config.Config, opts ...Option) (Supplementer, error) {
	if !cfg.AIEnabled() {
		return Nop{}, nil
	}
	base := []Option{
		WithModel(cfg.AIModel),
		WithTimeout(cfg.AITimeout),
		WithExcerptBudget(cfg.AIExcerptBudget),
		WithRequestsPerSecond(cfg.AIRequestsPerSecond),
		WithPrompts(cfg.Prompts),
	}
	return NewGeminiClient(cfg.AIAPIKey, append(base, opts...)...)
}

// Supplement reviews excerpt for criterion. It returns nil when the
// request fails for any reason.
func (c *GeminiClient) Supplement(ctx context.Context, criterion model.Criterion, excerpt string) *model.AIFindings {
	findings, err := c.supplement(ctx, criterion, excerpt)
	if err != nil {
		c.logger.Warn("AI supplement unavailable",
			"criterion", criterion.String(),
			"error", err,
		)
		return nil
	}
	c.logger.Debug("AI supplement received",
		"criterion", criterion.String(),
		"severity", findings.Severity.String(),
		"notes", len(findings.Notes),
	)
	return findings
}

func (c *GeminiClient) supplement(ctx context.Context, criterion model.Criterion, excerpt string) (*model.AIFindings, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fail := func(stage string, err error) (*model.AIFindings, error) {
		return nil, &SupplementError{Criterion: criterion, Stage: stage, Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail("rate_limit", err)
		}
	}

	prompt, err := c.render(criterion, excerpt)
	if err != nil {
		return fail("prompt", err)
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return fail("request", err)
	}

	findings, err := ParseFindings(text)
	if err != nil {
		return fail("parse", err)
	}
	return findings, nil
}

// render fills the criterion's prompt template.
func (c *GeminiClient) render(criterion model.Criterion, excerpt string) (string, error) {
	tmpl, ok := c.prompts[criterion]
	if !ok {
		return "", fmt.Errorf("no prompt for criterion %s", criterion)
	}
	var buf bytes.Buffer
	data := PromptData{
		Criterion: criterion.DisplayName(),
		Excerpt:   Truncate(excerpt, c.excerptBudget),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// generate sends one generateContent request and returns the text of the
// first candidate.
func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{Temperature: 0.2},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range gr.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// Gemini API types

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}
