// Package events publishes committed comment writes so other services can react.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/threaded-blog/domain"
)

const SubjectPrefix = "blog.comments."

// Subject returns the NATS subject for an event type, e.g. blog.comments.created.
func Subject(t domain.CommentEventType) string {
	return SubjectPrefix + string(t)
}

type natsPublisher struct {
	conn *nats.Conn
}

var _ domain.CommentEventPublisher = (*natsPublisher)(nil)

// NewPublisher connects to NATS. With an empty url it returns a publisher that drops events.
func NewPublisher(url string) (domain.CommentEventPublisher, func(), error) {
	if url == "" {
		logrus.Warn("NATS_URL not set, comment events will not be published")
		return Noop{}, func() {}, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("threaded-blog"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, err
	}
	return &natsPublisher{conn: nc}, func() { _ = nc.Drain() }, nil
}

func (p *natsPublisher) Publish(_ context.Context, ev domain.CommentEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(Subject(ev.Type), data)
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, domain.CommentEvent) error { return nil }
