package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
	"github.com/TimBERNIC/tedvin-backend/internal/mailer"
)

type OfferUsecase struct {
	offers    domain.OfferRepository
	users     domain.UserRepository
	storage   domain.MediaStorage
	cache     OfferCache
	publisher EventPublisher
	mail      mailer.Sender
	namespace string
	logger    *zap.Logger
}

func NewOfferUsecase(
	offers domain.OfferRepository,
	users domain.UserRepository,
	storage domain.MediaStorage,
	cache OfferCache,
	publisher EventPublisher,
	mail mailer.Sender,
	namespace string,
	logger *zap.Logger,
) *OfferUsecase {
	return &OfferUsecase{
		offers:    offers,
		users:     users,
		storage:   storage,
		cache:     cache,
		publisher: publisher,
		mail:      mail,
		namespace: namespace,
		logger:    logger.Named("OfferUsecase"),
	}
}

type PublishInput struct {
	Title       string
	Description string
	Price       float64
	Condition   string
	Location    string
	Brand       string
	Size        string
	Color       string
	Picture     []byte
}

// Publish validates and creates a new offer for the authenticated owner.
// The image is uploaded to a folder scoped by the new offer's id before the
// record is persisted, so a stored offer never lacks its image reference.
func (uc *OfferUsecase) Publish(ctx context.Context, owner *domain.User, in PublishInput) (*domain.Offer, error) {
	if len(in.Picture) == 0 {
		return nil, domain.ErrMissingParameters
	}
	if len(in.Title) > domain.MaxTitleLength {
		return nil, domain.ErrTitleTooLong
	}
	if len(in.Description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}
	if in.Price > domain.MaxPrice {
		return nil, domain.ErrPriceTooHigh
	}

	offer := &domain.Offer{
		ID:          domain.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Details: domain.ProductDetails{
			Condition: in.Condition,
			Location:  in.Location,
			Brand:     in.Brand,
			Size:      in.Size,
			Color:     in.Color,
		},
		OwnerID: owner.ID,
		Owner:   owner,
	}

	image, err := uc.storage.Upload(ctx, in.Picture, domain.OfferFolder(uc.namespace, offer.ID))
	if err != nil {
		uc.logger.Error("Offer image upload failed", zap.String("ownerID", owner.ID), zap.Error(err))
		return nil, err
	}
	offer.Image = image

	if err := uc.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	uc.logger.Info("Offer published", zap.String("offerID", offer.ID), zap.String("ownerID", owner.ID))

	if uc.publisher != nil {
		if err := uc.publisher.PublishOfferCreated(ctx, offer); err != nil {
			uc.logger.Warn("Failed to publish offer.created event", zap.String("offerID", offer.ID), zap.Error(err))
		}
	}
	if owner.Newsletter && uc.mail != nil {
		body := fmt.Sprintf("Your offer '%s' has been published.", offer.Title)
		if err := uc.mail.SendEmail([]string{owner.Email}, "Offer published", body); err != nil {
			uc.logger.Warn("Failed to send offer published email", zap.String("offerID", offer.ID), zap.Error(err))
		}
	}

	return offer, nil
}

// Search returns the title/price previews matching the filter. Results are
// sorted by price and paginated with a fixed page size.
func (uc *OfferUsecase) Search(ctx context.Context, filter domain.OfferFilter) ([]*domain.OfferPreview, error) {
	return uc.offers.FindByFilter(ctx, filter)
}

// GetByID returns the full offer with its owner dereferenced. Cached offers
// are served as-is; a missing owner record leaves Owner nil.
func (uc *OfferUsecase) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("Offer cache read failed", zap.String("offerID", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	offer, err := uc.offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.populateOwner(ctx, offer)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, offer); err != nil {
			uc.logger.Warn("Offer cache write failed", zap.String("offerID", id), zap.Error(err))
		}
	}
	return offer, nil
}

type UpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Condition   *string
	Location    *string
	Brand       *string
	Size        *string
	Color       *string
	Picture     []byte
}

// Update applies a partial update: only present fields overwrite their value
// or detail slot. A new picture replaces the remote image; deleting the old
// object is best-effort and never blocks the new upload.
func (uc *OfferUsecase) Update(ctx context.Context, id string, in UpdateInput) (*domain.Offer, error) {
	offer, err := uc.offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if len(*in.Title) > domain.MaxTitleLength {
			return nil, domain.ErrTitleTooLong
		}
		offer.Title = *in.Title
	}
	if in.Description != nil {
		if len(*in.Description) > domain.MaxDescriptionLength {
			return nil, domain.ErrDescriptionTooLong
		}
		offer.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price > domain.MaxPrice {
			return nil, domain.ErrPriceTooHigh
		}
		offer.Price = *in.Price
	}
	if in.Condition != nil {
		offer.Details.Condition = *in.Condition
	}
	if in.Location != nil {
		offer.Details.Location = *in.Location
	}
	if in.Brand != nil {
		offer.Details.Brand = *in.Brand
	}
	if in.Size != nil {
		offer.Details.Size = *in.Size
	}
	if in.Color != nil {
		offer.Details.Color = *in.Color
	}

	if len(in.Picture) > 0 {
		if offer.Image != nil {
			if err := uc.storage.Delete(ctx, offer.Image.ID); err != nil {
				uc.logger.Warn("Failed to delete replaced offer image", zap.String("offerID", offer.ID), zap.Error(err))
			}
		}
		image, err := uc.storage.Upload(ctx, in.Picture, domain.OfferFolder(uc.namespace, offer.ID))
		if err != nil {
			uc.logger.Error("Replacement image upload failed", zap.String("offerID", offer.ID), zap.Error(err))
			return nil, err
		}
		offer.Image = image
	}

	if err := uc.offers.Update(ctx, offer); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, offer.ID); err != nil {
			uc.logger.Warn("Offer cache invalidation failed", zap.String("offerID", offer.ID), zap.Error(err))
		}
	}

	uc.populateOwner(ctx, offer)
	uc.logger.Info("Offer updated", zap.String("offerID", offer.ID))
	return offer, nil
}

// Delete removes an offer. Authorization is credential equality: the
// requester's token must equal the owner's stored token. Deletion order is
// image object, then image folder, then the local record. The remote store
// rejects deleting a non-empty folder.
func (uc *OfferUsecase) Delete(ctx context.Context, requester *domain.User, id string) error {
	offer, err := uc.offers.FindByID(ctx, id)
	if err != nil {
		return err
	}

	owner, err := uc.users.FindByID(ctx, offer.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorizedAction
		}
		return err
	}
	if requester == nil || requester.Token != owner.Token {
		uc.logger.Warn("Offer delete with non-owner token", zap.String("offerID", id))
		return domain.ErrUnauthorizedAction
	}

	if offer.Image != nil {
		if err := uc.storage.Delete(ctx, offer.Image.ID); err != nil {
			return err
		}
	}
	if err := uc.storage.DeleteFolder(ctx, domain.OfferFolder(uc.namespace, offer.ID)); err != nil {
		return err
	}
	if err := uc.offers.Delete(ctx, offer.ID); err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, offer.ID); err != nil {
			uc.logger.Warn("Offer cache invalidation failed", zap.String("offerID", offer.ID), zap.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishOfferDeleted(ctx, offer.ID); err != nil {
			uc.logger.Warn("Failed to publish offer.deleted event", zap.String("offerID", offer.ID), zap.Error(err))
		}
	}

	uc.logger.Info("Offer deleted", zap.String("offerID", offer.ID))
	return nil
}

func (uc *OfferUsecase) populateOwner(ctx context.Context, offer *domain.Offer) {
	owner, err := uc.users.FindByID(ctx, offer.OwnerID)
	if err != nil {
		uc.logger.Warn("Failed to resolve offer owner", zap.String("offerID", offer.ID), zap.String("ownerID", offer.OwnerID), zap.Error(err))
		return
	}
	offer.Owner = owner
}
