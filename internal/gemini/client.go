// Package gemini calls the Gemini generateContent API for questions that no
// canned topic answers.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"lawdesk/internal/markdown"
)

var (
	// ErrEmptyAnswer is returned when the response carries no answer text.
	ErrEmptyAnswer = errors.New("gemini: response has no answer text")
	// ErrClientUnavailable is returned when the SDK client could not be built,
	// typically because no API key is configured.
	ErrClientUnavailable = errors.New("gemini: client unavailable")
)

// Generation parameters sent with every request.
const (
	temperature     float32 = 0.1
	topP            float32 = 0.9
	topK            float32 = 40
	maxOutputTokens int32   = 1024
)

var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Config describes how to reach the API.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string // Empty uses the SDK default endpoint
	Timeout        time.Duration
	RenderMarkdown bool
}

// Client answers legal questions through the Gemini API.
type Client struct {
	client         *genai.Client
	initErr        error
	model          string
	renderMarkdown bool
	genConfig      *genai.GenerateContentConfig
}

// New creates a client. A construction failure is not returned; it is kept
// and reported by every Generate call so that a missing key fails per request.
func New(ctx context.Context, cfg Config) *Client {
	c := &Client{
		model:          cfg.Model,
		renderMarkdown: cfg.RenderMarkdown,
		genConfig:      generationConfig(),
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		c.initErr = fmt.Errorf("%w: %v", ErrClientUnavailable, err)
		return c
	}
	c.client = client
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the question wrapped in the legal prompt and returns the answer text.
func (c *Client) Generate(ctx context.Context, question string) (string, error) {
	if c.initErr != nil {
		return "", c.initErr
	}

	prompt, err := renderPrompt(question)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	answer, err := answerText(resp)
	if err != nil {
		return "", err
	}

	if c.renderMarkdown {
		answer = markdown.ToHTML(answer)
	}
	return answer, nil
}

// answerText extracts candidates[0].content.parts[0].text.
func answerText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyAnswer
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", ErrEmptyAnswer
	}
	text := content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyAnswer
	}
	return text, nil
}

func generationConfig() *genai.GenerateContentConfig {
	safety := make([]*genai.SafetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		safety = append(safety, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockLowAndAbove,
		})
	}

	return &genai.GenerateContentConfig{
		Temperature:     ptr(temperature),
		TopP:            ptr(topP),
		TopK:            ptr(topK),
		MaxOutputTokens: maxOutputTokens,
		SafetySettings:  safety,
	}
}

func ptr[T any](v T) *T {
	return &v
}
