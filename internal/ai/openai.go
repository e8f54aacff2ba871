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
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o"
)

type openAIService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newOpenAIService(apiKey, model string, httpClient *http.Client) *openAIService {
	if model == "" {
		model = openAIDefaultModel
	}
	return &openAIService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openAIBaseURL,
		httpClient: httpClient,
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (s *openAIService) SendMessage(ctx context.Context, req Request) (*Response, error) {
	temperature, maxTokens := req.effective()

	messages := make([]openAIMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openAIMessage{Role: string(RoleSystem), Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, openAIMessage{Role: string(m.Role), Content: m.Content})
	}

	body := openAIRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: ProviderOpenAI, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: ProviderOpenAI, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Provider: ProviderOpenAI, Status: resp.StatusCode, Body: string(raw)}
	}

	var out openAIResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Provider: ProviderOpenAI, Reason: err.Error()}
	}
	if len(out.Choices) == 0 {
		return nil, &MalformedResponseError{Provider: ProviderOpenAI, Reason: "empty choices"}
	}

	finish := FinishLength
	if out.Choices[0].FinishReason == "stop" {
		finish = FinishStop
	}

	return &Response{
		Content:      out.Choices[0].Message.Content,
		Model:        s.model,
		FinishReason: finish,
		Usage: &Usage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		},
	}, nil
}

func (s *openAIService) BuildSystemPrompt(pc PregnancyContext) string {
	return buildSystemPrompt(pc)
}
