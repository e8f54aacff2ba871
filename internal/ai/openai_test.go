package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAISendMessage(t *testing.T) {
	var gotReq openAIRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]string{"content": "hi back"},
				"finish_reason": "stop",
			}},
			"usage": map[string]int{"prompt_tokens": 20, "completion_tokens": 7, "total_tokens": 27},
		})
	}))
	defer srv.Close()

	svc := newOpenAIService("sk-test", "", srv.Client())
	svc.baseURL = srv.URL

	resp, err := svc.SendMessage(context.Background(), Request{
		Messages:     []Message{{Role: RoleUser, Content: "hi"}},
		SystemPrompt: "be nice",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != openAIDefaultModel {
		t.Errorf("model = %q", gotReq.Model)
	}
	// System prompt becomes the first message.
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "be nice" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens != 1024 || gotReq.Temperature != 0.7 {
		t.Errorf("defaults not applied: %d %v", gotReq.MaxTokens, gotReq.Temperature)
	}

	if resp.Content != "hi back" || resp.FinishReason != FinishStop {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 27 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestOpenAISendMessageFinishLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]string{"content": "cut off"},
				"finish_reason": "length",
			}},
			"usage": map[string]int{},
		})
	}))
	defer srv.Close()

	svc := newOpenAIService("k", "gpt-4o-mini", srv.Client())
	svc.baseURL = srv.URL

	resp, err := svc.SendMessage(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.FinishReason != FinishLength {
		t.Errorf("finish = %q", resp.FinishReason)
	}
	if resp.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", resp.Model)
	}
}
