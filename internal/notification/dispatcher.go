package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// EmailDispatcher posts messages to the e-mail service's /send endpoint.
type EmailDispatcher struct {
	baseURL    string
	httpClient *http.Client
}

func NewEmailDispatcher(baseURL string, client *http.Client) *EmailDispatcher {
	return &EmailDispatcher{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (d *EmailDispatcher) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}

// LogDispatcher only records the notification. Used when no e-mail service is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(ctx context.Context, msg Message) error {
	d.logger.InfoContext(ctx, "notification sent (simulation)", "to", msg.To, "subject", msg.Subject)
	return nil
}
