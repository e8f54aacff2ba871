package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one persisted conversation turn. Messages are written once
// and never updated or deleted.
type ChatMessage struct {
	ID          uuid.UUID
	PregnancyID uuid.UUID
	Role        ChatRole
	Content     string
	Timestamp   time.Time
	Metadata    *MessageMetadata
}

// MessageMetadata carries optional bookkeeping for assistant turns.
type MessageMetadata struct {
	Model  string
	Tokens *int
	Cost   *decimal.Decimal
	Error  bool
}
