package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var publisherTracer = otel.Tracer("messaging/publisher")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends one event per call. Each call owns its own writer, which is
// closed before Publish returns, so no connection outlives a publish.
type Publisher struct {
	topic     string
	newWriter func() messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		topic: topic,
		newWriter: func() messageWriter {
			return &kafka.Writer{
				Addr:                   kafka.TCP(brokers...),
				Topic:                  topic,
				Balancer:               &kafka.Hash{},
				RequiredAcks:           kafka.RequireOne,
				MaxAttempts:            1,
				AllowAutoTopicCreation: true,
			}
		},
	}
}

func (p *Publisher) Topic() string {
	return p.topic
}

// Publish marshals event to JSON and writes it under key. Marshal, write and
// close failures all surface as the returned error; nothing is retried here.
func (p *Publisher) Publish(ctx context.Context, key string, event any) (err error) {
	ctx, span := publisherTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	otel.GetTextMapPropagator().Inject(ctx, NewHeaderCarrier(&msg))

	w := p.newWriter()
	writeErr := w.WriteMessages(ctx, msg)
	closeErr := w.Close()

	if writeErr != nil {
		writeErr = fmt.Errorf("write to %s: %w", p.topic, writeErr)
	}
	if closeErr != nil {
		closeErr = fmt.Errorf("close writer: %w", closeErr)
	}
	return errors.Join(writeErr, closeErr)
}
