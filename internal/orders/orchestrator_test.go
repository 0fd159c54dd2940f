package orders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	events   []domain.OrderCreatedEvent
	failures int
	err      error
	ctxErr   error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, key)
	p.ctxErr = ctx.Err()
	if p.failures > 0 {
		p.failures--
		return p.err
	}
	if p.err != nil && p.failures < 0 {
		return p.err
	}
	p.events = append(p.events, event.(domain.OrderCreatedEvent))
	return nil
}

// blockingPublisher hangs until the publish context ends.
type blockingPublisher struct{}

func (blockingPublisher) Publish(ctx context.Context, _ string, _ any) error {
	<-ctx.Done()
	return ctx.Err()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(t *testing.T, pub EventPublisher, opts ...Option) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(NewOrderRepository(), pub, discardLogger(), opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return o
}

func TestOrchestrator_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("total, status and stored record", func(t *testing.T) {
		pub := &recordingPublisher{}
		o := newTestOrchestrator(t, pub)

		order, err := o.CreateOrder(ctx, "user-1", []string{"1", "1", "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !order.Total.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected total 300, got %s", order.Total)
		}
		if order.Status != domain.OrderStatusPending {
			t.Errorf("expected pending, got %s", order.Status)
		}
		if order.ID == "" || order.CreatedAt.IsZero() {
			t.Errorf("expected id and createdAt to be set: %+v", order)
		}

		stored, ok := o.GetOrder(order.ID)
		if !ok {
			t.Fatal("expected order to be stored")
		}
		if !reflect.DeepEqual(*stored, order) {
			t.Errorf("stored order differs:\n%+v\n%+v", *stored, order)
		}
	})

	t.Run("event mirrors the stored order and is keyed by id", func(t *testing.T) {
		pub := &recordingPublisher{}
		o := newTestOrchestrator(t, pub)

		order, err := o.CreateOrder(ctx, "user-1", []string{"1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(pub.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(pub.events))
		}
		if pub.keys[0] != order.ID {
			t.Errorf("expected key %s, got %s", order.ID, pub.keys[0])
		}
		if !reflect.DeepEqual(pub.events[0], domain.NewOrderCreatedEvent(order)) {
			t.Errorf("event does not match order: %+v", pub.events[0])
		}
	})

	t.Run("publish failure still returns the persisted order", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker unreachable"), failures: -1}
		o := newTestOrchestrator(t, pub)

		order, err := o.CreateOrder(ctx, "user-1", []string{"1", "2"})
		if err != nil {
			t.Fatalf("publish failure must not fail the create: %v", err)
		}
		if _, ok := o.GetOrder(order.ID); !ok {
			t.Error("order must remain retrievable after a failed publish")
		}
		if len(pub.keys) != 1 {
			t.Errorf("default policy is a single attempt, got %d", len(pub.keys))
		}
	})

	t.Run("retry hook reuses the key", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("timeout"), failures: 2}
		o := newTestOrchestrator(t, pub, WithPublishRetry(3, time.Millisecond))

		order, err := o.CreateOrder(ctx, "user-1", []string{"1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{order.ID, order.ID, order.ID}
		if !reflect.DeepEqual(pub.keys, want) {
			t.Errorf("expected keys %v, got %v", want, pub.keys)
		}
		if len(pub.events) != 1 {
			t.Errorf("expected the third attempt to succeed, got %d events", len(pub.events))
		}
	})

	t.Run("cancelled caller does not cancel the publish", func(t *testing.T) {
		pub := &recordingPublisher{}
		o := newTestOrchestrator(t, pub)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := o.CreateOrder(cctx, "user-1", []string{"1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pub.ctxErr != nil {
			t.Errorf("publish context should be live, got %v", pub.ctxErr)
		}
	})

	t.Run("hanging publish stays within the caller's deadline", func(t *testing.T) {
		o := newTestOrchestrator(t, blockingPublisher{}, WithPublishTimeout(time.Minute))

		dctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		if _, err := o.CreateOrder(dctx, "user-1", []string{"1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dctx.Err() != nil {
			t.Errorf("expected CreateOrder to return before the deadline, got %v", dctx.Err())
		}
	})

	t.Run("duplicate id fails and publishes nothing", func(t *testing.T) {
		pub := &recordingPublisher{}
		o := newTestOrchestrator(t, pub, withIDGenerator(func() string { return "fixed" }))

		if _, err := o.CreateOrder(ctx, "user-1", []string{"1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := o.CreateOrder(ctx, "user-2", []string{"2"})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
		if len(pub.keys) != 1 {
			t.Errorf("expected only the first order published, got %d", len(pub.keys))
		}
		stored, _ := o.GetOrder("fixed")
		if stored.UserID != "user-1" {
			t.Error("first order must not be overwritten")
		}
	})

	t.Run("nil publisher skips publishing", func(t *testing.T) {
		o := newTestOrchestrator(t, nil)
		if _, err := o.CreateOrder(ctx, "user-1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("createdAt is UTC", func(t *testing.T) {
		local := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
		o := newTestOrchestrator(t, nil, withClock(func() time.Time { return local }))

		order, _ := o.CreateOrder(ctx, "user-1", []string{"1"})
		if order.CreatedAt.Location() != time.UTC || !order.CreatedAt.Equal(local) {
			t.Errorf("unexpected createdAt %v", order.CreatedAt)
		}
	})
}

func TestOrchestrator_ListOrdersByUser(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator(t, nil)

	a, _ := o.CreateOrder(ctx, "ana", []string{"1"})
	_, _ = o.CreateOrder(ctx, "bruno", []string{"2"})
	b, _ := o.CreateOrder(ctx, "ana", []string{"1", "2"})

	got := o.ListOrdersByUser("ana")
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("unexpected orders: %+v", got)
	}

	if none := o.ListOrdersByUser("nobody"); none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestOrderRepository_ReturnsCopies(t *testing.T) {
	repo := NewOrderRepository()
	ids := []string{"1", "2"}
	if err := repo.Create(domain.Order{ID: "o1", ProductIDs: ids}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids[0] = "mutated"
	got, _ := repo.Get("o1")
	if got.ProductIDs[0] != "1" {
		t.Error("stored order must not alias the caller's slice")
	}

	got.ProductIDs[1] = "mutated"
	again, _ := repo.Get("o1")
	if again.ProductIDs[1] != "2" {
		t.Error("Get must return a copy")
	}
}
