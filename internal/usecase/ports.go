package usecase

import (
	"context"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

// OfferCache is the read cache for offers fetched by id.
// Get returns (nil, nil) on a miss.
type OfferCache interface {
	Get(ctx context.Context, id string) (*domain.Offer, error)
	Set(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher emits lifecycle events for other services to consume.
type EventPublisher interface {
	PublishOfferCreated(ctx context.Context, offer *domain.Offer) error
	PublishOfferDeleted(ctx context.Context, offerID string) error
	PublishUserDeleted(ctx context.Context, userID string) error
}
