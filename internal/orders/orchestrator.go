package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

const DefaultPublishTimeout = 5 * time.Second

// publishDeadlineMargin is left on the caller's deadline for the response to
// travel back after publishing gives up.
const publishDeadlineMargin = 500 * time.Millisecond

var errPublishBudgetExhausted = errors.New("no time left before the caller's deadline")

// EventPublisher delivers an event under a partitioning key.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Orchestrator owns order creation: persist first, then announce the stored
// order. The announcement is best-effort and never undoes or fails the create.
type Orchestrator struct {
	repo      *OrderRepository
	publisher EventPublisher
	logger    *slog.Logger

	publishTimeout time.Duration
	attempts       int
	backoff        time.Duration

	newID func() string
	now   func() time.Time

	created         metric.Int64Counter
	publishFailures metric.Int64Counter
}

type Option func(*Orchestrator)

func WithPublishTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.publishTimeout = d
		}
	}
}

// WithPublishRetry retries a failed publish up to attempts times in total,
// waiting backoff between tries. Every try reuses the order id as key.
func WithPublishRetry(attempts int, backoff time.Duration) Option {
	return func(o *Orchestrator) {
		if attempts > 0 {
			o.attempts = attempts
		}
		o.backoff = backoff
	}
}

func withIDGenerator(f func() string) Option {
	return func(o *Orchestrator) { o.newID = f }
}

func withClock(f func() time.Time) Option {
	return func(o *Orchestrator) { o.now = f }
}

// NewOrchestrator wires the order flow. A nil publisher disables event publishing.
func NewOrchestrator(repo *OrderRepository, publisher EventPublisher, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		repo:           repo,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: DefaultPublishTimeout,
		attempts:       1,
		newID:          uuid.NewString,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	meter := otel.Meter("orders")
	var err error
	if o.created, err = meter.Int64Counter("orders.created",
		metric.WithDescription("Orders persisted."),
	); err != nil {
		return nil, err
	}
	if o.publishFailures, err = meter.Int64Counter("orders.publish.failures",
		metric.WithDescription("Order events that could not be published."),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Orchestrator) CreateOrder(ctx context.Context, userID string, productIDs []string) (domain.Order, error) {
	order := domain.Order{
		ID:         o.newID(),
		UserID:     userID,
		ProductIDs: cloneIDs(productIDs),
		Total:      domain.OrderTotal(productIDs),
		Status:     domain.OrderStatusPending,
		CreatedAt:  o.now().UTC(),
	}

	if err := o.repo.Create(order); err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	o.created.Add(ctx, 1)
	o.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.Total.String(),
	)

	if o.publisher != nil {
		o.publish(ctx, order)
	}

	return order, nil
}

func (o *Orchestrator) publish(ctx context.Context, order domain.Order) {
	// The order is already stored: a caller hanging up must not abort the
	// announcement, but a publish must never outlive the caller's deadline.
	deadline, hasDeadline := ctx.Deadline()
	ctx = context.WithoutCancel(ctx)
	event := domain.NewOrderCreatedEvent(order)

	var err error
	for attempt := 1; attempt <= o.attempts; attempt++ {
		timeout := o.publishTimeout
		if hasDeadline {
			timeout = min(timeout, time.Until(deadline)-publishDeadlineMargin)
		}
		if timeout <= 0 {
			if err == nil {
				err = errPublishBudgetExhausted
			}
			break
		}

		pubCtx, cancel := context.WithTimeout(ctx, timeout)
		err = o.publisher.Publish(pubCtx, order.ID, event)
		cancel()
		if err == nil {
			return
		}
		if attempt < o.attempts {
			if hasDeadline && time.Until(deadline)-publishDeadlineMargin <= o.backoff {
				break
			}
			o.logger.WarnContext(ctx, "publish attempt failed", "error", err, "order_id", order.ID, "attempt", attempt)
			time.Sleep(o.backoff)
		}
	}

	o.publishFailures.Add(ctx, 1)
	o.logger.ErrorContext(ctx, "failed to publish order created event", "error", err, "order_id", order.ID)
}

func (o *Orchestrator) GetOrder(id string) (*domain.Order, bool) {
	order, ok := o.repo.Get(id)
	if !ok {
		return nil, false
	}
	return &order, true
}

func (o *Orchestrator) ListOrdersByUser(userID string) []domain.Order {
	return o.repo.ListByUser(userID)
}
