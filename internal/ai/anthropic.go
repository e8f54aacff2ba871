package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com/v1"
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-3-5-sonnet-20241022"
)

type anthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newAnthropicService(apiKey, model string, httpClient *http.Client) *anthropicService {
	if model == "" {
		model = anthropicDefaultModel
	}
	return &anthropicService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    anthropicBaseURL,
		httpClient: httpClient,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (s *anthropicService) SendMessage(ctx context.Context, req Request) (*Response, error) {
	temperature, maxTokens := req.effective()

	// Anthropic takes the system prompt as a top-level field, so any
	// system-role messages in the history are dropped.
	messages := make([]anthropicMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			continue
		}
		messages = append(messages, anthropicMessage{Role: string(m.Role), Content: m.Content})
	}

	body := anthropicRequest{
		Model:       s.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      req.SystemPrompt,
		Messages:    messages,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", s.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: ProviderAnthropic, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: ProviderAnthropic, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Provider: ProviderAnthropic, Status: resp.StatusCode, Body: string(raw)}
	}

	var out anthropicResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Provider: ProviderAnthropic, Reason: err.Error()}
	}
	if len(out.Content) == 0 {
		return nil, &MalformedResponseError{Provider: ProviderAnthropic, Reason: "empty content"}
	}

	finish := FinishLength
	if out.StopReason == "end_turn" {
		finish = FinishStop
	}

	return &Response{
		Content:      out.Content[0].Text,
		Model:        s.model,
		FinishReason: finish,
		Usage: &Usage{
			PromptTokens:     out.Usage.InputTokens,
			CompletionTokens: out.Usage.OutputTokens,
			TotalTokens:      out.Usage.InputTokens + out.Usage.OutputTokens,
		},
	}, nil
}

func (s *anthropicService) BuildSystemPrompt(pc PregnancyContext) string {
	return buildSystemPrompt(pc)
}
