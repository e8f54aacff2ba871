package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-1.5-pro"

	// geminiAck is the synthetic model turn that follows the system prompt,
	// since Gemini has no system role of its own.
	geminiAck = "Understood. I will follow these guidelines when responding."
)

type geminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newGeminiService(apiKey, model string, httpClient *http.Client) *geminiService {
	if model == "" {
		model = geminiDefaultModel
	}
	return &geminiService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: httpClient,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (s *geminiService) SendMessage(ctx context.Context, req Request) (*Response, error) {
	temperature, maxTokens := req.effective()

	contents := make([]geminiContent, 0, len(req.Messages)+2)
	if req.SystemPrompt != "" {
		contents = append(contents,
			geminiContent{Role: "user", Parts: []geminiPart{{Text: req.SystemPrompt}}},
			geminiContent{Role: "model", Parts: []geminiPart{{Text: geminiAck}}},
		)
	}
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			continue
		}
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}

	body := geminiRequest{Contents: contents}
	body.GenerationConfig.Temperature = temperature
	body.GenerationConfig.MaxOutputTokens = maxTokens

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// Gemini authenticates through a query parameter, not a header.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, url.QueryEscape(s.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: ProviderGemini, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: ProviderGemini, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Provider: ProviderGemini, Status: resp.StatusCode, Body: string(raw)}
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Provider: ProviderGemini, Reason: err.Error()}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, &MalformedResponseError{Provider: ProviderGemini, Reason: "empty candidates"}
	}

	usage := &Usage{}
	if md := out.UsageMetadata; md != nil {
		usage.PromptTokens = md.PromptTokenCount
		usage.CompletionTokens = md.CandidatesTokenCount
		usage.TotalTokens = md.TotalTokenCount
	}

	return &Response{
		Content:      out.Candidates[0].Content.Parts[0].Text,
		Model:        s.model,
		FinishReason: FinishStop,
		Usage:        usage,
	}, nil
}

func (s *geminiService) BuildSystemPrompt(pc PregnancyContext) string {
	return buildSystemPrompt(pc)
}
