package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// ErrAIUnavailable means no provider is configured or the call failed; every
// caller has a static fallback, so this is expected, not exceptional.
var ErrAIUnavailable = errors.New("ai provider unavailable")

// AIClient is a thin wrapper over an OpenAI-compatible chat-completions
// endpoint (Groq, OpenAI, etc.). Nil-safe: an unconfigured client answers
// ErrAIUnavailable so callers fall back to static content.
type AIClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// NewAIClientFromEnv returns nil when AI_API_KEY is unset; the service runs
// fine on fallbacks alone.
func NewAIClientFromEnv() *AIClient {
	apiKey := os.Getenv("AI_API_KEY")
	if apiKey == "" {
		log.Println("⚠️  AI_API_KEY not set — AI features will use static fallbacks")
		return nil
	}
	baseURL := os.Getenv("AI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	return &AIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user prompt pair and returns the raw completion
// text. jsonMode asks the provider for a JSON object response.
func (c *AIClient) Complete(systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	if c == nil || c.APIKey == "" {
		return "", ErrAIUnavailable
	}

	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	if jsonMode {
		reqBody.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}

	jsonData, _ := json.Marshal(reqBody)
	req, err := http.NewRequest("POST", fmt.Sprintf("%s/chat/completions", c.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("⚠️  AI provider request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️  AI provider returned %d: %.200s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: bad response: %v", ErrAIUnavailable, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrAIUnavailable)
	}
	return out.Choices[0].Message.Content, nil
}

// CompleteJSON decodes a JSON-mode completion into dst.
func (c *AIClient) CompleteJSON(systemPrompt, userPrompt string, dst interface{}) error {
	content, err := c.Complete(systemPrompt, userPrompt, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), dst); err != nil {
		return fmt.Errorf("%w: invalid json from provider: %v", ErrAIUnavailable, err)
	}
	return nil
}
