package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/ai"
	"github.com/newlifejournal/newlifejournal/internal/config"
	"github.com/newlifejournal/newlifejournal/internal/domain"
)

// fallbackReply is persisted as a flagged assistant turn when the provider
// call fails, so the conversation stays consistent on every device.
const fallbackReply = "Sorry, I encountered an error. Please try again."

type ChatStore interface {
	AddChatMessage(ctx context.Context, m *domain.ChatMessage) error
	RecentChatMessages(ctx context.Context, pregnancyID uuid.UUID, limit int) ([]domain.ChatMessage, error)
	ListChatMessages(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error)
}

// ContextSource provides the pregnancy snapshot the system prompt is built
// from.
type ContextSource interface {
	Snapshot(ctx context.Context, userID, pregnancyID uuid.UUID) (*ai.PregnancyContext, error)
}

type conversationState struct {
	busy    bool
	lastErr string
}

// ChatService orchestrates the assistant conversation: one in-flight
// request per pregnancy, user turn persisted before the provider call,
// flagged fallback reply on failure.
type ChatService struct {
	ai     ai.Service
	model  string
	store  ChatStore
	source ContextSource
	hub    *Hub

	mu     sync.Mutex
	states map[uuid.UUID]*conversationState
}

// NewChatService builds the orchestrator. aiSvc may be nil when no provider
// is configured; Send then fails with ErrChatDisabled.
func NewChatService(aiSvc ai.Service, model string, store ChatStore, source ContextSource, hub *Hub) *ChatService {
	return &ChatService{
		ai:     aiSvc,
		model:  model,
		store:  store,
		source: source,
		hub:    hub,
		states: make(map[uuid.UUID]*conversationState),
	}
}

func (s *ChatService) Enabled() bool { return s.ai != nil }

func (s *ChatService) state(pregnancyID uuid.UUID) *conversationState {
	st, ok := s.states[pregnancyID]
	if !ok {
		st = &conversationState{}
		s.states[pregnancyID] = st
	}
	return st
}

// tryAcquire claims the single conversation slot for a pregnancy.
func (s *ChatService) tryAcquire(pregnancyID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(pregnancyID)
	if st.busy {
		return false
	}
	st.busy = true
	st.lastErr = ""
	return true
}

func (s *ChatService) release(pregnancyID uuid.UUID, lastErr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(pregnancyID)
	st.busy = false
	st.lastErr = lastErr
}

// Send runs one conversation turn. The user message is persisted before the
// provider is called, so it survives provider failures; on failure a flagged
// fallback assistant message is persisted and returned instead of an error,
// and the failure text is kept until ClearError.
func (s *ChatService) Send(ctx context.Context, userID, pregnancyID uuid.UUID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if s.ai == nil {
		return nil, domain.ErrChatDisabled
	}

	if !s.tryAcquire(pregnancyID) {
		return nil, domain.ErrActiveRequest
	}
	lastErr := ""
	defer func() { s.release(pregnancyID, lastErr) }()

	snapshot, err := s.source.Snapshot(ctx, userID, pregnancyID)
	if err != nil {
		return nil, err
	}

	// History is read before the new turn is written, then the new turn is
	// appended, so the provider sees at most HistoryWindow+1 messages.
	history, err := s.store.RecentChatMessages(ctx, pregnancyID, config.HistoryWindow)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{
		ID:          uuid.New(),
		PregnancyID: pregnancyID,
		Role:        domain.ChatRoleUser,
		Content:     text,
		Timestamp:   time.Now(),
	}
	if err := s.store.AddChatMessage(ctx, userMsg); err != nil {
		return nil, err
	}
	s.hub.Publish(*userMsg)

	messages := make([]ai.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, ai.Message{Role: ai.Role(m.Role), Content: m.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: text})

	resp, err := s.ai.SendMessage(ctx, ai.Request{
		Messages:     messages,
		SystemPrompt: s.ai.BuildSystemPrompt(*snapshot),
	})
	if err != nil {
		slog.Error("ai request failed", "pregnancy_id", pregnancyID, "error", err)
		lastErr = err.Error()
		return s.persistAssistant(ctx, pregnancyID, fallbackReply, &domain.MessageMetadata{Error: true})
	}

	meta := &domain.MessageMetadata{Model: s.replyModel(resp)}
	if resp.Usage != nil {
		tokens := resp.Usage.TotalTokens
		meta.Tokens = &tokens
		meta.Cost = ai.EstimateCost(meta.Model, resp.Usage)
	}
	return s.persistAssistant(ctx, pregnancyID, resp.Content, meta)
}

func (s *ChatService) replyModel(resp *ai.Response) string {
	if resp.Model != "" {
		return resp.Model
	}
	return s.model
}

func (s *ChatService) persistAssistant(ctx context.Context, pregnancyID uuid.UUID, content string, meta *domain.MessageMetadata) (*domain.ChatMessage, error) {
	msg := &domain.ChatMessage{
		ID:          uuid.New(),
		PregnancyID: pregnancyID,
		Role:        domain.ChatRoleAssistant,
		Content:     content,
		Timestamp:   time.Now(),
		Metadata:    meta,
	}
	if err := s.store.AddChatMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.hub.Publish(*msg)
	return msg, nil
}

// History pages through the stored conversation, oldest first.
func (s *ChatService) History(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = config.ChatPageSize
	}
	return s.store.ListChatMessages(ctx, pregnancyID, limit, offset)
}

// LastError returns the failure text from the most recent Send, empty when
// the last turn succeeded or after ClearError.
func (s *ChatService) LastError(pregnancyID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(pregnancyID).lastErr
}

func (s *ChatService) ClearError(pregnancyID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(pregnancyID).lastErr = ""
}

// Busy reports whether a turn is currently in flight for the pregnancy.
func (s *ChatService) Busy(pregnancyID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(pregnancyID).busy
}
