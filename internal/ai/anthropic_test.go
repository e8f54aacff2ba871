package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicSendMessage(t *testing.T) {
	var gotReq anthropicRequest
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]string{{"text": "hello there"}},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	defer srv.Close()

	svc := newAnthropicService("test-key", "", srv.Client())
	svc.baseURL = srv.URL

	resp, err := svc.SendMessage(context.Background(), Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "ignore me"},
			{Role: RoleUser, Content: "hi"},
		},
		SystemPrompt: "be nice",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if gotHeaders.Get("x-api-key") != "test-key" {
		t.Errorf("x-api-key = %q", gotHeaders.Get("x-api-key"))
	}
	if gotHeaders.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotHeaders.Get("anthropic-version"))
	}

	if gotReq.Model != anthropicDefaultModel {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 1024 || gotReq.Temperature != 0.7 {
		t.Errorf("defaults not applied: max_tokens=%d temperature=%v", gotReq.MaxTokens, gotReq.Temperature)
	}
	if gotReq.System != "be nice" {
		t.Errorf("system = %q", gotReq.System)
	}
	// System-role history entries must be stripped.
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}

	if resp.Content != "hello there" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.FinishReason != FinishStop {
		t.Errorf("finish = %q", resp.FinishReason)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 15 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestAnthropicSendMessageFinishLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]string{{"text": "truncated"}},
			"stop_reason": "max_tokens",
			"usage":       map[string]int{"input_tokens": 1, "output_tokens": 1024},
		})
	}))
	defer srv.Close()

	svc := newAnthropicService("k", "", srv.Client())
	svc.baseURL = srv.URL

	resp, err := svc.SendMessage(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.FinishReason != FinishLength {
		t.Errorf("finish = %q, want length", resp.FinishReason)
	}
}

func TestAnthropicSendMessageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := newAnthropicService("k", "", srv.Client())
	svc.baseURL = srv.URL

	_, err := svc.SendMessage(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d", te.Status)
	}
	if te.Provider != ProviderAnthropic {
		t.Errorf("provider = %q", te.Provider)
	}
}
