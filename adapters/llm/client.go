package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"stratcore/internal/config"
	"stratcore/ports"
)

// Client is the OpenAI-backed implementation of the reasoning port
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client
}

// NewClient creates a new reasoning client from AI configuration
func NewClient(cfg config.AIConfig) ports.ReasoningPort {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	log.Printf("[ReasoningClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d, timeout=%v",
		cfg.Model, cfg.Temperature, cfg.MaxTokens, timeout)

	return &Client{
		apiKey:      cfg.OpenAIKey,
		baseURL:     "https://api.openai.com/v1",
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Complete sends a system+user message pair to the chat completions API and
// returns the raw assistant content. Callers own all JSON parsing of the
// content because expected shapes vary per prompt.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	type requestBody struct {
		Model               string    `json:"model"`
		Messages            []message `json:"messages"`
		Temperature         float64   `json:"temperature,omitempty"`
		MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
	}

	reqBody := requestBody{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
	}

	promptPreview := prompt
	if len(prompt) > 500 {
		promptPreview = prompt[:500] + "..."
	}
	log.Printf("[ReasoningClient] Sending request to %s - promptLength=%d, temp=%.2f",
		c.model, len(prompt), c.temperature)
	log.Printf("[ReasoningClient] Prompt preview: %s", promptPreview)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("request timeout after %v: %w", c.timeout, err)
		}
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[ReasoningClient] ERROR: Failed to read response body: %v", err)
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	type openAIResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	var openaiResp openAIResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		log.Printf("[ReasoningClient] ERROR: Failed to parse OpenAI response envelope: %v", err)
		return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	if len(openaiResp.Choices) == 0 {
		log.Printf("[ReasoningClient] ERROR: No choices in OpenAI response")
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	content := strings.TrimSpace(openaiResp.Choices[0].Message.Content)
	log.Printf("[ReasoningClient] Received content length: %d bytes", len(content))
	return content, nil
}
