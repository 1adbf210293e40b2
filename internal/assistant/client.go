// Package assistant реализует клиент внешнего completion-сервиса
// с OpenAI-совместимым API.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/config"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

const (
	maxTokens   = 900
	temperature = 0.7
)

// Client отправляет запросы к /chat/completions и реализует
// интерфейс Completer чат-сервиса.
type Client struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт новый клиент completion-сервиса.
func NewClient(cfg config.Assistant) *Client {
	timeout := cfg.AssistantTimeout
	if timeout < 10*time.Second {
		timeout = 10 * time.Second
	}
	if timeout > 60*time.Second {
		timeout = 60 * time.Second
	}
	return &Client{
		apiURL:     cfg.AssistantAPIURL,
		apiKey:     cfg.AssistantAPIKey,
		model:      cfg.AssistantModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Complete отправляет сообщения модели и возвращает текст первого ответа.
func (c *Client) Complete(ctx context.Context, messages []models.ChatMessage, userUID string) (string, error) {
	const op = "assistant.Complete"

	if c.apiKey == "" {
		return "", fmt.Errorf("%s: api key is not configured", op)
	}

	req, err := c.newRequest(ctx, "/chat/completions", completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		User:        userUID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil {
			return "", fmt.Errorf("%s: %s", op, completion.Error.Message)
		}
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New(op + ": empty choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}
