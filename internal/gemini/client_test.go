package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, renderMarkdown bool) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(context.Background(), Config{
		APIKey:         "test-key",
		Model:          "gemini-test",
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		RenderMarkdown: renderMarkdown,
	})
}

func writeAnswer(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
}

func TestGenerateSendsPromptAndParameters(t *testing.T) {
	var body map[string]any
	var path string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		writeAnswer(w, "<h3>Writs</h3>")
	}, false)

	answer, err := client.Generate(context.Background(), "What is a writ of mandamus?")
	require.NoError(t, err)
	assert.Equal(t, "<h3>Writs</h3>", answer)

	assert.True(t, strings.HasSuffix(path, "gemini-test:generateContent"), "path = %s", path)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	sent := string(raw)
	assert.Contains(t, sent, "What is a writ of mandamus?")
	assert.Contains(t, sent, "As an Indian legal expert")
	assert.Contains(t, sent, "BLOCK_LOW_AND_ABOVE")
	assert.Contains(t, sent, "HARM_CATEGORY_DANGEROUS_CONTENT")

	gen, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %s", sent)
	assert.EqualValues(t, 1024, gen["maxOutputTokens"])
	assert.EqualValues(t, 40, gen["topK"])
}

func TestGenerateRendersMarkdown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeAnswer(w, "**Bail** is a right for bailable offences.")
	}, true)

	answer, err := client.Generate(context.Background(), "bail?")
	require.NoError(t, err)
	assert.Contains(t, answer, "<strong>Bail</strong>")
}

func TestGenerateUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"code":500,"message":"backend exploded","status":"INTERNAL"}}`)
	}, false)

	_, err := client.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini generate")
}

func TestGenerateEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[]}`)
	}, false)

	_, err := client.Generate(context.Background(), "anything")
	assert.True(t, errors.Is(err, ErrEmptyAnswer), "got %v", err)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	client := New(context.Background(), Config{Model: "gemini-test", Timeout: time.Second})

	_, err := client.Generate(context.Background(), "anything")
	assert.True(t, errors.Is(err, ErrClientUnavailable), "got %v", err)
}

func TestAnswerText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{"nil response", nil, "", ErrEmptyAnswer},
		{"no candidates", &genai.GenerateContentResponse{}, "", ErrEmptyAnswer},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", ErrEmptyAnswer},
		{"blank text", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "  "}}},
		}}}, "", ErrEmptyAnswer},
		{"first part only", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "first"}, {Text: "second"}}},
		}}}, "first", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := answerText(tt.resp)
			assert.Equal(t, tt.want, got)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	prompt, err := renderPrompt("Is dowry illegal?")
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Is dowry illegal?"`)
	assert.Contains(t, prompt, "Focus exclusively on Indian law")
}
