package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Limits enforced when an offer is published or updated.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 500
	MaxPrice             = 100000

	OffersPerPage = 5
)

// MediaObject references a file hosted on the remote object store.
type MediaObject struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Account is the public part of a user profile. It is the only user data
// ever included in offer responses.
type Account struct {
	Username string       `json:"username"`
	Avatar   *MediaObject `json:"avatar"`
}

type User struct {
	ID         string
	Email      string
	Account    Account
	Newsletter bool
	Token      string
	Hash       string
	Salt       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductDetails holds the five labeled offer attributes. The struct order is
// the storage order: condition, location, brand, size, color. Updates address
// slots by name, so the positions never shift.
type ProductDetails struct {
	Condition string
	Location  string
	Brand     string
	Size      string
	Color     string
}

// Slot labels for the serialized form of ProductDetails.
const (
	DetailCondition = "condition"
	DetailLocation  = "location"
	DetailBrand     = "brand"
	DetailSize      = "size"
	DetailColor     = "color"
)

// Slots renders the details as five positional single-key entries.
func (d ProductDetails) Slots() []map[string]string {
	return []map[string]string{
		{DetailCondition: d.Condition},
		{DetailLocation: d.Location},
		{DetailBrand: d.Brand},
		{DetailSize: d.Size},
		{DetailColor: d.Color},
	}
}

// DetailsFromSlots rebuilds ProductDetails from its serialized slot form.
// Entries are matched by label so a document with reordered keys still loads.
func DetailsFromSlots(slots []map[string]string) ProductDetails {
	var d ProductDetails
	for _, slot := range slots {
		for label, value := range slot {
			switch label {
			case DetailCondition:
				d.Condition = value
			case DetailLocation:
				d.Location = value
			case DetailBrand:
				d.Brand = value
			case DetailSize:
				d.Size = value
			case DetailColor:
				d.Color = value
			}
		}
	}
	return d
}

type Offer struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Details     ProductDetails
	Image       *MediaObject
	OwnerID     string
	Owner       *User // populated at read time, nil otherwise
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfferPreview is the reduced projection returned by offer searches.
type OfferPreview struct {
	Title string
	Price float64
}

// OfferFilter describes an offer search. Nil price bounds mean unbounded.
// Page is 1-indexed; pages have a fixed size of OffersPerPage.
type OfferFilter struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	SortDesc bool
	Page     int64
}

// NewID generates a new record identifier. IDs are generated before the
// record is persisted because remote media folders are scoped by them.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// UserFolder is the remote folder holding a user's avatar.
func UserFolder(namespace, userID string) string {
	return fmt.Sprintf("%s/user/%s", namespace, userID)
}

// OfferFolder is the remote folder holding an offer's image.
func OfferFolder(namespace, offerID string) string {
	return fmt.Sprintf("%s/offer/%s", namespace, offerID)
}
