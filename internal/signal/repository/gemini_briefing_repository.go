package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/ratelimit"
)

// BriefingAIRepository generates a natural-language briefing for a scored
// signal.
type BriefingAIRepository interface {
	GenerateBriefing(ctx context.Context, signal dto.CompositeSignal, catalyst *entity.CatalystEvent) (*dto.BriefingResult, error)
}

// geminiBriefingRepository is an implementation of BriefingAIRepository
// that uses the Google Gemini API.
type geminiBriefingRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiBriefingRepository creates a new instance of geminiBriefingRepository.
func NewGeminiBriefingRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (BriefingAIRepository, error) {
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)

	return &geminiBriefingRepository{
		client:         &http.Client{Timeout: 90 * time.Second},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		genAiClient:    genAiClient,
	}, nil
}

// GenerateBriefing renders the prompt and runs it through Gemini.
func (r *geminiBriefingRepository) GenerateBriefing(ctx context.Context, signal dto.CompositeSignal, catalyst *entity.CatalystEvent) (*dto.BriefingResult, error) {
	prompt := BuildBriefingPrompt(signal, catalyst)

	geminiResp, err := r.executeGeminiRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseBriefingResponse(geminiResp)
}

func (r *geminiBriefingRepository) executeGeminiRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Gemini API",
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return &geminiResp, nil
}

func parseBriefingResponse(resp *dto.GeminiAPIResponse) (*dto.BriefingResult, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	jsonString := resp.Candidates[0].Content.Parts[0].Text
	jsonString = strings.Trim(jsonString, "`json\n`")

	var result dto.BriefingResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal briefing from Gemini response: %w", err)
	}
	return &result, nil
}
