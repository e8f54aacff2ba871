package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// customService talks to a self-hosted endpoint with a simple contract:
// POST {baseURL}/chat with messages, systemPrompt and sampling settings,
// reply in one of content, message or response.
type customService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newCustomService(baseURL, apiKey string, httpClient *http.Client) *customService {
	return &customService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type customMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type customRequest struct {
	Messages     []customMessage `json:"messages"`
	SystemPrompt string          `json:"systemPrompt"`
	Temperature  float64         `json:"temperature"`
	MaxTokens    int             `json:"maxTokens"`
}

type customResponse struct {
	Content  string `json:"content"`
	Message  string `json:"message"`
	Response string `json:"response"`
	Usage    *struct {
		PromptTokens     int `json:"promptTokens"`
		CompletionTokens int `json:"completionTokens"`
		TotalTokens      int `json:"totalTokens"`
	} `json:"usage"`
}

func (s *customService) SendMessage(ctx context.Context, req Request) (*Response, error) {
	temperature, maxTokens := req.effective()

	messages := make([]customMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, customMessage{Role: string(m.Role), Content: m.Content})
	}

	body := customRequest{
		Messages:     messages,
		SystemPrompt: req.SystemPrompt,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: ProviderCustom, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: ProviderCustom, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Provider: ProviderCustom, Status: resp.StatusCode, Body: string(raw)}
	}

	var out customResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Provider: ProviderCustom, Reason: err.Error()}
	}

	content := out.Content
	if content == "" {
		content = out.Message
	}
	if content == "" {
		content = out.Response
	}
	if content == "" {
		return nil, &MalformedResponseError{Provider: ProviderCustom, Reason: "no reply field"}
	}

	var usage *Usage
	if out.Usage != nil {
		usage = &Usage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		}
	}

	return &Response{
		Content:      content,
		FinishReason: FinishStop,
		Usage:        usage,
	}, nil
}

func (s *customService) BuildSystemPrompt(pc PregnancyContext) string {
	return buildSystemPrompt(pc)
}
