package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

const offerTTL = 1 * time.Hour

type OfferCache struct {
	client *redis.Client
}

func NewOfferCache(addr string) (*OfferCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &OfferCache{client: client}, nil
}

func (c *OfferCache) Get(ctx context.Context, id string) (*domain.Offer, error) {
	data, err := c.client.Get(ctx, "offer:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var offer domain.Offer
	if err := json.Unmarshal(data, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (c *OfferCache) Set(ctx context.Context, offer *domain.Offer) error {
	data, err := json.Marshal(offer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "offer:"+offer.ID, data, offerTTL).Err()
}

func (c *OfferCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "offer:"+id).Err()
}
