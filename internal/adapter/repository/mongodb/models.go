package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

type mediaDocument struct {
	ID  string `bson:"id"`
	URL string `bson:"url"`
}

func toMediaDocument(m *domain.MediaObject) *mediaDocument {
	if m == nil {
		return nil
	}
	return &mediaDocument{ID: m.ID, URL: m.URL}
}

func toDomainMedia(d *mediaDocument) *domain.MediaObject {
	if d == nil {
		return nil
	}
	return &domain.MediaObject{ID: d.ID, URL: d.URL}
}

type accountDocument struct {
	Username string         `bson:"username"`
	Avatar   *mediaDocument `bson:"avatar,omitempty"`
}

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Account    accountDocument    `bson:"account"`
	Newsletter bool               `bson:"newsletter"`
	Token      string             `bson:"token"`
	Hash       string             `bson:"hash"`
	Salt       string             `bson:"salt"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toUserDocument(u *domain.User) (*userDocument, error) {
	docID, err := objectIDFromDomain(u.ID)
	if err != nil {
		return nil, err
	}
	return &userDocument{
		ID:    docID,
		Email: u.Email,
		Account: accountDocument{
			Username: u.Account.Username,
			Avatar:   toMediaDocument(u.Account.Avatar),
		},
		Newsletter: u.Newsletter,
		Token:      u.Token,
		Hash:       u.Hash,
		Salt:       u.Salt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}, nil
}

func toDomainUser(d *userDocument) *domain.User {
	if d == nil {
		return nil
	}
	return &domain.User{
		ID:    d.ID.Hex(),
		Email: d.Email,
		Account: domain.Account{
			Username: d.Account.Username,
			Avatar:   toDomainMedia(d.Account.Avatar),
		},
		Newsletter: d.Newsletter,
		Token:      d.Token,
		Hash:       d.Hash,
		Salt:       d.Salt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// offerDocument mirrors the stored offer shape. product_details keeps the
// five positional single-key entries: condition, location, brand, size, color.
type offerDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Name        string              `bson:"product_name"`
	Description string              `bson:"product_description"`
	Price       float64             `bson:"product_price"`
	Details     []map[string]string `bson:"product_details"`
	Image       *mediaDocument      `bson:"product_image,omitempty"`
	Owner       primitive.ObjectID  `bson:"owner"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

func toOfferDocument(o *domain.Offer) (*offerDocument, error) {
	docID, err := objectIDFromDomain(o.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := objectIDFromDomain(o.OwnerID)
	if err != nil {
		return nil, err
	}
	return &offerDocument{
		ID:          docID,
		Name:        o.Title,
		Description: o.Description,
		Price:       o.Price,
		Details:     o.Details.Slots(),
		Image:       toMediaDocument(o.Image),
		Owner:       ownerID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

func toDomainOffer(d *offerDocument) *domain.Offer {
	if d == nil {
		return nil
	}
	return &domain.Offer{
		ID:          d.ID.Hex(),
		Title:       d.Name,
		Description: d.Description,
		Price:       d.Price,
		Details:     domain.DetailsFromSlots(d.Details),
		Image:       toDomainMedia(d.Image),
		OwnerID:     d.Owner.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func objectIDFromDomain(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	return primitive.ObjectIDFromHex(id)
}
