// Package rewrite provides the two TextRewriter implementations: a chat
// completion client against an OpenAI-compatible API, and a deterministic
// rule-based fallback for credential-less deployments. The implementation is
// selected once at startup, not per call.
package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"humanizepro/internal/domain"
	"humanizepro/internal/prompt"
	"humanizepro/pkg/logger"
)

const systemInstruction = "You are an expert writing assistant. Rewrite text to read naturally, as if written by a person. Never add quotation marks or markup that is not in the original. Return only the humanized content, with no commentary."

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	maxTokensCap   = 4000
)

// OpenAIConfig configures the chat completion client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIRewriter issues one chat completion per rewrite. It has no side
// effects beyond the outbound call and never persists anything.
type OpenAIRewriter struct {
	cfg    OpenAIConfig
	client *http.Client
	log    *logger.Logger
}

func NewOpenAI(cfg OpenAIConfig, log *logger.Logger) *OpenAIRewriter {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &OpenAIRewriter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Model string `json:"model"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Rewrite builds the prompt, issues the completion, and returns the trimmed
// content. An empty completion falls back to the original input so callers
// never see empty output.
func (r *OpenAIRewriter) Rewrite(ctx context.Context, req domain.HumanizeRequest) (string, *domain.RewriteMetadata, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil, NewError(KindInvalidInput, nil)
	}

	maxTokens := len(req.Text) * 2
	if maxTokens > maxTokensCap {
		maxTokens = maxTokensCap
	}
	body, err := json.Marshal(chatRequest{
		Model: r.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt.Build(req.Text, req.Tone, req.Intensity, req.Language)},
		},
		Temperature: float64(req.Intensity) / 100,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", nil, NewError(KindUpstream, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", nil, NewError(KindUpstream, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", nil, NewError(KindUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, r.statusError(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", nil, NewError(KindUpstream, err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil, NewError(KindUpstream, fmt.Errorf("no choices in completion response"))
	}

	meta := &domain.RewriteMetadata{
		Model:            parsed.Model,
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
	}
	if meta.Model == "" {
		meta.Model = r.cfg.Model
	}

	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if out == "" {
		r.log.Warn("empty completion content, returning original text")
		return req.Text, meta, nil
	}
	return out, meta, nil
}

// statusError maps a non-200 provider response onto the error taxonomy.
func (r *OpenAIRewriter) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed apiError
	_ = json.Unmarshal(raw, &parsed)
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, parsed.Error.Message)

	if parsed.Error.Code == "insufficient_quota" || parsed.Error.Type == "insufficient_quota" {
		return NewError(KindInsufficientQuota, cause)
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewError(KindInvalidCredential, cause)
	case http.StatusPaymentRequired:
		return NewError(KindInsufficientQuota, cause)
	case http.StatusTooManyRequests:
		return NewError(KindRateLimited, cause)
	default:
		return NewError(KindUpstream, cause)
	}
}
