package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

type sendChatRequest struct {
	Content string `json:"content"`
}

type chatMessageResponse struct {
	ID        string               `json:"id"`
	Role      string               `json:"role"`
	Content   string               `json:"content"`
	Timestamp time.Time            `json:"timestamp"`
	Metadata  *chatMessageMetadata `json:"metadata,omitempty"`
}

type chatMessageMetadata struct {
	Model  string `json:"model,omitempty"`
	Tokens *int   `json:"tokens,omitempty"`
	Cost   string `json:"cost,omitempty"`
	Error  bool   `json:"error,omitempty"`
}

func toChatMessageResponse(m *domain.ChatMessage) chatMessageResponse {
	resp := chatMessageResponse{
		ID:        m.ID.String(),
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Metadata != nil {
		md := &chatMessageMetadata{
			Model:  m.Metadata.Model,
			Tokens: m.Metadata.Tokens,
			Error:  m.Metadata.Error,
		}
		if m.Metadata.Cost != nil {
			md.Cost = m.Metadata.Cost.String()
		}
		resp.Metadata = md
	}
	return resp
}

func (h *Handler) handleSendChat(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req sendChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	msg, err := h.deps.Chat.Send(r.Context(), userID, pregnancyID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatMessageResponse(msg))
}

func (h *Handler) handleListChat(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	// Chat history is scoped by ownership like every other record.
	if _, err := h.deps.Pregnancies.GetOwned(r.Context(), userID, pregnancyID); err != nil {
		writeError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.deps.Chat.History(r.Context(), pregnancyID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]chatMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toChatMessageResponse(&messages[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type chatStateResponse struct {
	Enabled bool   `json:"enabled"`
	Busy    bool   `json:"busy"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleChatState(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.deps.Pregnancies.GetOwned(r.Context(), userID, pregnancyID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatStateResponse{
		Enabled: h.deps.Chat.Enabled(),
		Busy:    h.deps.Chat.Busy(pregnancyID),
		Error:   h.deps.Chat.LastError(pregnancyID),
	})
}

func (h *Handler) handleClearChatError(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.deps.Pregnancies.GetOwned(r.Context(), userID, pregnancyID); err != nil {
		writeError(w, err)
		return
	}

	h.deps.Chat.ClearError(pregnancyID)
	w.WriteHeader(http.StatusNoContent)
}

// handleChatStream pushes new messages for one conversation over
// server-sent events until the client disconnects.
func (h *Handler) handleChatStream(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.deps.Pregnancies.GetOwned(r.Context(), userID, pregnancyID); err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := h.deps.Hub.Subscribe(pregnancyID)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-ch:
			payload, err := json.Marshal(toChatMessageResponse(&msg))
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
