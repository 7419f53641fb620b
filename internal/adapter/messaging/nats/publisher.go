package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"github.com/nats-io/nats.go"
)

const (
	subjectListingCreated = "listing.created"
	subjectListingUpdated = "listing.updated"
	subjectListingDeleted = "listing.deleted"
)

// Publisher announces listing lifecycle events on NATS. It implements
// usecase.EventPublisher; callers treat every publish as best-effort.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishListingCreated(ctx context.Context, listing *domain.Listing) error {
	return p.publish(subjectListingCreated, listing)
}

func (p *Publisher) PublishListingUpdated(ctx context.Context, listing *domain.Listing) error {
	return p.publish(subjectListingUpdated, listing)
}

func (p *Publisher) PublishListingDeleted(ctx context.Context, id string) error {
	return p.publish(subjectListingDeleted, map[string]string{"id": id})
}

func (p *Publisher) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	return p.conn.Publish(subject, data)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
