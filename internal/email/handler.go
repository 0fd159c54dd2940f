package email

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Handler simulates a mail provider: messages are accepted, kept in an outbox
// and never actually delivered.
type Handler struct {
	logger *slog.Logger
	delay  func() time.Duration

	mu     sync.RWMutex
	outbox []Message
}

type Message struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sentAt"`
}

type Option func(*Handler)

// WithoutLatency disables the simulated provider latency.
func WithoutLatency() Option {
	return func(h *Handler) {
		h.delay = func() time.Duration { return 0 }
	}
}

func NewHandler(logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger: logger,
		delay: func() time.Duration {
			return time.Duration(50+rand.IntN(151)) * time.Millisecond
		},
		outbox: []Message{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type sendResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strings.Contains(req.To, "@") {
		h.writeError(w, http.StatusBadRequest, "invalid recipient")
		return
	}

	if d := h.delay(); d > 0 {
		time.Sleep(d)
	}

	h.mu.Lock()
	h.outbox = append(h.outbox, Message{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
		SentAt:  time.Now().UTC(),
	})
	h.mu.Unlock()

	h.logger.InfoContext(r.Context(), "email sent", "to", req.To, "subject", req.Subject)

	h.writeJSON(w, http.StatusOK, sendResponse{Status: "sent"})
}

// HandleList returns every accepted message, oldest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	messages := make([]Message, len(h.outbox))
	copy(messages, h.outbox)
	h.mu.RUnlock()

	h.writeJSON(w, http.StatusOK, messages)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
