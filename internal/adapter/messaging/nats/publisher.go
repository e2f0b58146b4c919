package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

const (
	subjectOfferCreated = "offer.created"
	subjectOfferDeleted = "offer.deleted"
	subjectUserDeleted  = "user.deleted"
)

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

type offerCreatedEvent struct {
	OfferID string  `json:"offer_id"`
	OwnerID string  `json:"owner_id"`
	Title   string  `json:"title"`
	Price   float64 `json:"price"`
}

type deletedEvent struct {
	ID string `json:"id"`
}

func (p *Publisher) PublishOfferCreated(ctx context.Context, offer *domain.Offer) error {
	return p.publish(subjectOfferCreated, offerCreatedEvent{
		OfferID: offer.ID,
		OwnerID: offer.OwnerID,
		Title:   offer.Title,
		Price:   offer.Price,
	})
}

func (p *Publisher) PublishOfferDeleted(ctx context.Context, offerID string) error {
	return p.publish(subjectOfferDeleted, deletedEvent{ID: offerID})
}

func (p *Publisher) PublishUserDeleted(ctx context.Context, userID string) error {
	return p.publish(subjectUserDeleted, deletedEvent{ID: userID})
}

func (p *Publisher) publish(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
