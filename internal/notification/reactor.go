package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

var ErrMissingOrderID = errors.New("order created event has no id")

// UserLookup resolves a user id. A nil user with a nil error means unknown.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// Reactor turns order created events into customer notifications.
type Reactor struct {
	inbox      Inbox
	users      UserLookup
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewReactor builds a reactor. users may be nil, in which case recipients fall
// back to a synthetic address derived from the user id.
func NewReactor(inbox Inbox, users UserLookup, dispatcher Dispatcher, logger *slog.Logger) *Reactor {
	return &Reactor{
		inbox:      inbox,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (r *Reactor) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order created event: %w", err)
	}
	if event.ID == "" {
		return ErrMissingOrderID
	}

	claimed, err := r.inbox.Claim(ctx, event.ID)
	if err != nil {
		return err
	}
	if !claimed {
		r.logger.InfoContext(ctx, "order already notified, skipping", "order_id", event.ID)
		return nil
	}

	msg := Message{
		To:      r.recipient(ctx, event.UserID),
		Subject: "Order Confirmation: " + event.ID,
		Body: fmt.Sprintf("Your order %s with %d products was received. Total: %s. Status: %s.",
			event.ID, len(event.ProductIDs), event.Total.String(), event.Status),
	}

	if err := r.dispatcher.Send(ctx, msg); err != nil {
		// The offset is committed regardless; releasing only lets a redelivery
		// of this event (offset reset or rebalance) try again.
		if relErr := r.inbox.Release(ctx, event.ID); relErr != nil {
			r.logger.ErrorContext(ctx, "failed to release inbox claim", "error", relErr, "order_id", event.ID)
		}
		return fmt.Errorf("send notification for order %s: %w", event.ID, err)
	}

	r.logger.InfoContext(ctx, "notification sent", "order_id", event.ID, "user_id", event.UserID, "to", msg.To)
	return nil
}

func (r *Reactor) recipient(ctx context.Context, userID string) string {
	fallback := userID + "@example.com"
	if r.users == nil {
		return fallback
	}

	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		r.logger.WarnContext(ctx, "user lookup failed, using fallback address", "error", err, "user_id", userID)
		return fallback
	}
	if user == nil || user.Email == "" {
		return fallback
	}
	return user.Email
}
