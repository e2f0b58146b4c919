package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

type OfferRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewOfferRepository(db *mongo.Database, logger *zap.Logger) *OfferRepository {
	return &OfferRepository{
		collection: db.Collection("offers"),
		logger:     logger.Named("OfferRepository"),
	}
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	doc, err := toOfferDocument(offer)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Database error creating offer", zap.Error(err))
		return err
	}

	offer.ID = doc.ID.Hex()
	offer.CreatedAt = doc.CreatedAt
	offer.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	offer.UpdatedAt = time.Now()
	doc, err := toOfferDocument(offer)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"product_name":        doc.Name,
		"product_description": doc.Description,
		"product_price":       doc.Price,
		"product_details":     doc.Details,
		"product_image":       doc.Image,
		"updated_at":          doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Database error updating offer", zap.String("offerID", offer.ID), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOfferNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		r.logger.Error("Database error deleting offer", zap.String("offerID", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id must resolve to not-found, never crash the request.
		return nil, domain.ErrOfferNotFound
	}
	var doc offerDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		r.logger.Error("Database error fetching offer", zap.String("offerID", id), zap.Error(err))
		return nil, err
	}
	return toDomainOffer(&doc), nil
}

func (r *OfferRepository) FindByFilter(ctx context.Context, filter domain.OfferFilter) ([]*domain.OfferPreview, error) {
	query := buildFilterQuery(filter)
	opts := buildFindOptions(filter)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Database error searching offers", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*offerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding offer search results", zap.Error(err))
		return nil, err
	}

	previews := make([]*domain.OfferPreview, 0, len(docs))
	for _, doc := range docs {
		previews = append(previews, &domain.OfferPreview{Title: doc.Name, Price: doc.Price})
	}
	return previews, nil
}

func (r *OfferRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Offer, error) {
	objectID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	cursor, err := r.collection.Find(ctx, bson.M{"owner": objectID})
	if err != nil {
		r.logger.Error("Database error fetching offers by owner", zap.String("ownerID", ownerID), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*offerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	offers := make([]*domain.Offer, 0, len(docs))
	for _, doc := range docs {
		offers = append(offers, toDomainOffer(doc))
	}
	return offers, nil
}

func (r *OfferRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"owner": objectID})
	if err != nil {
		r.logger.Error("Database error bulk-deleting offers", zap.String("ownerID", ownerID), zap.Error(err))
		return 0, err
	}
	r.logger.Info("Offers bulk-deleted", zap.String("ownerID", ownerID), zap.Int64("count", result.DeletedCount))
	return result.DeletedCount, nil
}

// buildFilterQuery translates an OfferFilter into a Mongo query. Title is a
// case-insensitive substring match; the price bounds merge into one range.
func buildFilterQuery(filter domain.OfferFilter) bson.M {
	query := bson.M{}
	if filter.Title != "" {
		query["product_name"] = bson.M{"$regex": filter.Title, "$options": "i"}
	}
	price := bson.M{}
	if filter.PriceMin != nil {
		price["$gte"] = *filter.PriceMin
	}
	if filter.PriceMax != nil {
		price["$lte"] = *filter.PriceMax
	}
	if len(price) > 0 {
		query["product_price"] = price
	}
	return query
}

// buildFindOptions applies the fixed page size, the price sort and the
// reduced name/price projection used by offer searches.
func buildFindOptions(filter domain.OfferFilter) *options.FindOptions {
	sortOrder := 1
	if filter.SortDesc {
		sortOrder = -1
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: "product_price", Value: sortOrder}}).
		SetLimit(domain.OffersPerPage).
		SetSkip((page - 1) * domain.OffersPerPage).
		SetProjection(bson.M{"product_name": 1, "product_price": 1, "_id": 0})
}
