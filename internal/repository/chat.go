package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func (s *Store) AddChatMessage(ctx context.Context, m *domain.ChatMessage) error {
	var model string
	var tokens *int
	var cost *decimal.Decimal
	var isError bool
	if m.Metadata != nil {
		model = m.Metadata.Model
		tokens = m.Metadata.Tokens
		cost = m.Metadata.Cost
		isError = m.Metadata.Error
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_messages (id, pregnancy_id, role, content, timestamp, model, tokens, cost, is_error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.PregnancyID, m.Role, m.Content, m.Timestamp, model, tokens, cost, isError)
	if err != nil {
		return fmt.Errorf("add chat message: %w", err)
	}
	return nil
}

func scanChatMessage(rows pgx.Rows) (domain.ChatMessage, error) {
	var m domain.ChatMessage
	var model string
	var tokens *int
	var cost *decimal.Decimal
	var isError bool

	err := rows.Scan(&m.ID, &m.PregnancyID, &m.Role, &m.Content, &m.Timestamp, &model, &tokens, &cost, &isError)
	if err != nil {
		return m, err
	}
	if model != "" || tokens != nil || cost != nil || isError {
		m.Metadata = &domain.MessageMetadata{Model: model, Tokens: tokens, Cost: cost, Error: isError}
	}
	return m, nil
}

// RecentChatMessages returns the newest limit messages in chronological
// order, oldest first.
func (s *Store) RecentChatMessages(ctx context.Context, pregnancyID uuid.UUID, limit int) ([]domain.ChatMessage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, pregnancy_id, role, content, timestamp, model, tokens, cost, is_error
		FROM chat_messages WHERE pregnancy_id = $1
		ORDER BY timestamp DESC LIMIT $2`, pregnancyID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent chat messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse the DESC page back to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ListChatMessages pages through the full history, oldest first.
func (s *Store) ListChatMessages(ctx context.Context, pregnancyID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, pregnancy_id, role, content, timestamp, model, tokens, cost, is_error
		FROM chat_messages WHERE pregnancy_id = $1
		ORDER BY timestamp ASC LIMIT $2 OFFSET $3`, pregnancyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
