package email

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), WithoutLatency())

	t.Run("accepted message lands in the outbox", func(t *testing.T) {
		body := `{"to":"ana@example.com","subject":"Order Confirmation: o1","body":"hello"}`
		rec := httptest.NewRecorder()
		h.HandleSend(rec, httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/messages", nil))

		var messages []Message
		if err := json.NewDecoder(rec.Body).Decode(&messages); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(messages) != 1 || messages[0].To != "ana@example.com" {
			t.Errorf("unexpected outbox: %+v", messages)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"malformed json", "{"},
			{"missing recipient", `{"subject":"x"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				h.HandleSend(rec, httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(tt.body)))
				if rec.Code != http.StatusBadRequest {
					t.Errorf("expected 400, got %d", rec.Code)
				}
			})
		}
	})
}
