package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"notes-orchestrator/internal/domain"

	"golang.org/x/time/rate"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ChatClient sends role-tagged messages to an OpenAI-compatible chat
// completions endpoint (Groq). Safe for concurrent use.
type ChatClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client

	limiter *rate.Limiter
}

// NewChatClient constructs a client for the given endpoint and model. The
// limiter smooths request bursts so concurrent requests do not trip the
// provider's rate limits.
func NewChatClient(baseURL, apiKey, model string, httpClient *http.Client, requestsPerSecond float64) *ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	return &ChatClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		Client:  httpClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Chat sends the messages and returns the assistant reply text.
func (c *ChatClient) Chat(ctx context.Context, messages []domain.Message, temperature float64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqMessages := make([]chatMessage, len(messages))
	for i, m := range messages {
		reqMessages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	reqBody := chatRequest{
		Model:       c.Model,
		Messages:    reqMessages,
		Temperature: temperature,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// Version returns the wrapped model name.
func (c *ChatClient) Version() string {
	return c.Model
}

var _ domain.ChatClient = (*ChatClient)(nil)
