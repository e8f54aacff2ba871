package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/ai"
	"github.com/newlifejournal/newlifejournal/internal/domain"
)

type fakeChatStore struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

func (f *fakeChatStore) AddChatMessage(_ context.Context, m *domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeChatStore) RecentChatMessages(_ context.Context, pregnancyID uuid.UUID, limit int) ([]domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range f.messages {
		if m.PregnancyID == pregnancyID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeChatStore) ListChatMessages(_ context.Context, pregnancyID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	return f.RecentChatMessages(context.Background(), pregnancyID, limit)
}

func (f *fakeChatStore) all() []domain.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChatMessage(nil), f.messages...)
}

type fakeAdapter struct {
	mu       sync.Mutex
	requests []ai.Request
	reply    string
	err      error
	block    chan struct{} // when set, SendMessage waits until closed
}

func (f *fakeAdapter) SendMessage(_ context.Context, req ai.Request) (*ai.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Response{
		Content:      f.reply,
		Model:        "claude-3-5-sonnet-20241022",
		FinishReason: ai.FinishStop,
		Usage:        &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (f *fakeAdapter) BuildSystemPrompt(ai.PregnancyContext) string {
	return "test system prompt"
}

func (f *fakeAdapter) lastRequest() ai.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type fakeContextSource struct{}

func (fakeContextSource) Snapshot(context.Context, uuid.UUID, uuid.UUID) (*ai.PregnancyContext, error) {
	return &ai.PregnancyContext{
		Pregnancy: domain.Pregnancy{
			MotherName: "Anna",
			DueDate:    time.Now().Add(70 * 24 * time.Hour),
		},
		Now: time.Now(),
	}, nil
}

func newTestChat(adapter *fakeAdapter) (*ChatService, *fakeChatStore) {
	store := &fakeChatStore{}
	var svc ai.Service
	if adapter != nil {
		svc = adapter
	}
	return NewChatService(svc, "claude-3-5-sonnet-20241022", store, fakeContextSource{}, NewHub()), store
}

func TestChatSendPersistsBothTurns(t *testing.T) {
	adapter := &fakeAdapter{reply: "hello from ai"}
	chat, store := newTestChat(adapter)
	userID, pregID := uuid.New(), uuid.New()

	msg, err := chat.Send(context.Background(), userID, pregID, "how is week 30?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Role != domain.ChatRoleAssistant || msg.Content != "hello from ai" {
		t.Errorf("reply = %+v", msg)
	}
	if msg.Metadata == nil || msg.Metadata.Tokens == nil || *msg.Metadata.Tokens != 15 {
		t.Errorf("metadata = %+v", msg.Metadata)
	}
	if msg.Metadata.Cost == nil {
		t.Error("expected a cost estimate for a known model")
	}

	all := store.all()
	if len(all) != 2 {
		t.Fatalf("stored %d messages, want 2", len(all))
	}
	if all[0].Role != domain.ChatRoleUser || all[0].Content != "how is week 30?" {
		t.Errorf("first stored = %+v", all[0])
	}
	if all[1].Role != domain.ChatRoleAssistant {
		t.Errorf("second stored = %+v", all[1])
	}
}

func TestChatSendReplaysHistoryWindow(t *testing.T) {
	adapter := &fakeAdapter{reply: "ok"}
	chat, _ := newTestChat(adapter)
	userID, pregID := uuid.New(), uuid.New()

	for i := 0; i < 8; i++ {
		if _, err := chat.Send(context.Background(), userID, pregID, "turn"); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
	}

	// 7 prior turns * 2 messages = 14 stored; only the newest 10 plus the
	// new user turn go to the provider.
	req := adapter.lastRequest()
	if len(req.Messages) != 11 {
		t.Errorf("provider saw %d messages, want 11", len(req.Messages))
	}
	if req.SystemPrompt != "test system prompt" {
		t.Errorf("system prompt = %q", req.SystemPrompt)
	}
	if last := req.Messages[len(req.Messages)-1]; last.Role != ai.RoleUser {
		t.Errorf("last message role = %q", last.Role)
	}
}

func TestChatSendSingleFlight(t *testing.T) {
	adapter := &fakeAdapter{reply: "slow", block: make(chan struct{})}
	chat, _ := newTestChat(adapter)
	userID, pregID := uuid.New(), uuid.New()

	done := make(chan error, 1)
	go func() {
		_, err := chat.Send(context.Background(), userID, pregID, "first")
		done <- err
	}()

	// Wait for the first send to claim the slot.
	deadline := time.Now().Add(time.Second)
	for !chat.Busy(pregID) {
		if time.Now().After(deadline) {
			t.Fatal("first send never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := chat.Send(context.Background(), userID, pregID, "second"); err != domain.ErrActiveRequest {
		t.Errorf("second send err = %v, want ErrActiveRequest", err)
	}

	close(adapter.block)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
	if chat.Busy(pregID) {
		t.Error("slot not released after send finished")
	}
}

func TestChatSendProviderFailure(t *testing.T) {
	adapter := &fakeAdapter{err: &ai.TransportError{Provider: ai.ProviderAnthropic, Status: 429, Body: "rate limited"}}
	chat, store := newTestChat(adapter)
	userID, pregID := uuid.New(), uuid.New()

	msg, err := chat.Send(context.Background(), userID, pregID, "hello?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Content != fallbackReply {
		t.Errorf("content = %q", msg.Content)
	}
	if msg.Metadata == nil || !msg.Metadata.Error {
		t.Errorf("fallback not flagged: %+v", msg.Metadata)
	}

	// The user turn survives the failure.
	all := store.all()
	if len(all) != 2 || all[0].Role != domain.ChatRoleUser || all[0].Content != "hello?" {
		t.Errorf("stored = %+v", all)
	}

	if le := chat.LastError(pregID); !strings.Contains(le, "429") {
		t.Errorf("LastError = %q", le)
	}
	chat.ClearError(pregID)
	if le := chat.LastError(pregID); le != "" {
		t.Errorf("LastError after clear = %q", le)
	}
}

func TestChatSendErrorClearedOnNextTurn(t *testing.T) {
	adapter := &fakeAdapter{err: &ai.TransportError{Provider: ai.ProviderAnthropic, Status: 500}}
	chat, _ := newTestChat(adapter)
	userID, pregID := uuid.New(), uuid.New()

	if _, err := chat.Send(context.Background(), userID, pregID, "fail"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if chat.LastError(pregID) == "" {
		t.Fatal("expected an error to be recorded")
	}

	adapter.err = nil
	adapter.reply = "recovered"
	if _, err := chat.Send(context.Background(), userID, pregID, "retry"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if le := chat.LastError(pregID); le != "" {
		t.Errorf("LastError = %q after a successful turn", le)
	}
}

func TestChatSendValidation(t *testing.T) {
	chat, store := newTestChat(&fakeAdapter{reply: "ok"})

	if _, err := chat.Send(context.Background(), uuid.New(), uuid.New(), "   "); err != domain.ErrEmptyMessage {
		t.Errorf("empty send err = %v", err)
	}
	if len(store.all()) != 0 {
		t.Error("nothing should be stored for a rejected send")
	}

	disabled, _ := newTestChat(nil)
	if _, err := disabled.Send(context.Background(), uuid.New(), uuid.New(), "hi"); err != domain.ErrChatDisabled {
		t.Errorf("disabled send err = %v", err)
	}
	if disabled.Enabled() {
		t.Error("Enabled() should be false without a provider")
	}
}
