package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCustomSendMessage(t *testing.T) {
	var gotReq customRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": "custom reply",
			"usage":   map[string]int{"promptTokens": 3, "completionTokens": 4, "totalTokens": 7},
		})
	}))
	defer srv.Close()

	svc := newCustomService(srv.URL, "secret", srv.Client())

	resp, err := svc.SendMessage(context.Background(), Request{
		Messages:     []Message{{Role: RoleUser, Content: "hi"}},
		SystemPrompt: "be nice",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.SystemPrompt != "be nice" {
		t.Errorf("systemPrompt = %q", gotReq.SystemPrompt)
	}
	if gotReq.Temperature != 0.7 || gotReq.MaxTokens != 1024 {
		t.Errorf("defaults not applied: %v %d", gotReq.Temperature, gotReq.MaxTokens)
	}
	if resp.Content != "custom reply" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 7 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestCustomSendMessageNoKeyOmitsAuthHeader(t *testing.T) {
	var hasAuth bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(map[string]string{"content": "ok"})
	}))
	defer srv.Close()

	svc := newCustomService(srv.URL, "", srv.Client())

	if _, err := svc.SendMessage(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if hasAuth {
		t.Error("Authorization header should be absent without an API key")
	}
}

func TestCustomSendMessageReplyFieldFallback(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"content first", map[string]any{"content": "a", "message": "b", "response": "c"}, "a"},
		{"message fallback", map[string]any{"message": "b", "response": "c"}, "b"},
		{"response fallback", map[string]any{"response": "c"}, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			svc := newCustomService(srv.URL, "", srv.Client())
			resp, err := svc.SendMessage(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
			if err != nil {
				t.Fatalf("SendMessage: %v", err)
			}
			if resp.Content != tt.want {
				t.Errorf("content = %q, want %q", resp.Content, tt.want)
			}
			if resp.Usage != nil {
				t.Errorf("usage = %+v, want nil", resp.Usage)
			}
		})
	}
}
