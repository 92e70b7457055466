package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/retry"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 5 * time.Second
)

// NATSPublisher publishes events on a core NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	retry   retry.Policy
}

// PublishRetryPolicy bounds attempts to deliver one event.
var PublishRetryPolicy = retry.NewPolicy(retry.BackoffExponential, 200*time.Millisecond, 2*time.Second, 3)

// NewNATSPublisher connects to url. Events are published on subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if url == "" || subject == "" {
		return nil, ferrors.ConfigError("NATS url and subject are required").Build()
	}

	conn, err := nats.Connect(url,
		nats.Name("siteindex"),
		nats.Timeout(connectTimeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", logfields.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("NATS reconnected", logfields.URL(c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, ferrors.NetworkError("failed to connect to NATS").
			WithCause(err).
			WithContext(logfields.KeyURL, url).
			Build()
	}

	slog.Info("NATS publisher initialized", logfields.URL(url), logfields.Subject(subject))
	return &NATSPublisher{conn: conn, subject: subject, retry: PublishRetryPolicy}, nil
}

// PublishSnapshotGenerated publishes event and flushes the connection so the
// call returns only after the server has received it.
func (p *NATSPublisher) PublishSnapshotGenerated(ctx context.Context, event SnapshotGenerated) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.retry.Do(ctx, func(ctx context.Context) error {
		if err := p.conn.Publish(p.subject, data); err != nil {
			return ferrors.NetworkError("failed to publish event").WithCause(err).WithContext(logfields.KeySubject, p.subject).Build()
		}
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := p.conn.FlushWithContext(ctx); err != nil {
			return ferrors.NetworkError("failed to flush event").WithCause(err).WithContext(logfields.KeySubject, p.subject).Build()
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("Published snapshot event",
		logfields.RunID(event.RunID),
		logfields.SlugCount(event.SlugCount),
		logfields.Subject(p.subject))
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
