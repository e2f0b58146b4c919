package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByToken(ctx context.Context, token string) (*User, error)
	Delete(ctx context.Context, id string) error
}

type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	Update(ctx context.Context, offer *Offer) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Offer, error)
	FindByFilter(ctx context.Context, filter OfferFilter) ([]*OfferPreview, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Offer, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
