package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const listingsCollection = "listings"

// ListingRepository implements domain.ListingRepository on MongoDB. Every
// call round-trips; nothing is cached or retried here.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewListingRepository(db *mongo.Database, logger *zap.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection(listingsCollection),
		logger:     logger,
	}
}

func (r *ListingRepository) FetchAll(ctx context.Context) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("fetch listings failed", zap.Error(err))
		return nil, fmt.Errorf("%w: find listings: %v", domain.ErrTransport, err)
	}

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode listings: %v", domain.ErrTransport, err)
	}

	// Zero rows is a valid, successful result.
	listings := make([]*domain.Listing, 0, len(docs))
	for i := range docs {
		listings = append(listings, toDomainListing(&docs[i]))
	}
	return listings, nil
}

func (r *ListingRepository) FetchByID(ctx context.Context, id string) (*domain.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An id the store could never have issued matches nothing.
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		r.logger.Error("fetch listing failed", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: find listing %s: %v", domain.ErrTransport, id, err)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) Create(ctx context.Context, draft *domain.Listing) (*domain.Listing, error) {
	if err := validateShape(draft); err != nil {
		return nil, err
	}

	doc := toListingDocument(draft)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Images == nil {
		doc.Images = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("insert listing failed", zap.String("name", draft.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: insert listing: %v", domain.ErrTransport, err)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		// Nothing to update under an impossible id; same no-op as a
		// row that has since been deleted.
		return nil, nil
	}
	if err := validateShape(listing); err != nil {
		return nil, err
	}

	// created_at stays whatever the insert wrote; everything else is
	// replaced wholesale.
	set := bson.M{
		"name":         listing.Name,
		"price":        listing.Price,
		"engine":       listing.Engine,
		"engine_size":  listing.EngineSize,
		"mileage":      listing.Mileage,
		"transmission": listing.Transmission,
		"color":        listing.Color,
		"year":         listing.Year,
		"description":  listing.Description,
		"images":       listing.Images,
		"location":     listing.Location,
		"updated_at":   time.Now(),
	}

	var stored listingDocument
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// The target id no longer exists. The absence of a result is
		// the contract, not an error.
		return nil, nil
	}
	if err != nil {
		r.logger.Error("update listing failed", zap.String("listing_id", listing.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: update listing %s: %v", domain.ErrTransport, listing.ID, err)
	}
	return toDomainListing(&stored), nil
}

func (r *ListingRepository) DeleteByID(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Deleting an id that cannot exist is the same no-op as
		// deleting one that is already gone.
		return nil
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		r.logger.Error("delete listing failed", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("%w: delete listing %s: %v", domain.ErrTransport, id, err)
	}
	// A zero deleted count is fine: delete is idempotent.
	return nil
}

// validateShape rejects records the store would bounce, before the write.
func validateShape(l *domain.Listing) error {
	switch {
	case l.Name == "":
		return fmt.Errorf("%w: name is empty", domain.ErrValidation)
	case l.Price < 0:
		return fmt.Errorf("%w: negative price", domain.ErrValidation)
	case !l.Engine.Valid():
		return fmt.Errorf("%w: unknown engine %q", domain.ErrValidation, l.Engine)
	case !l.Transmission.Valid():
		return fmt.Errorf("%w: unknown transmission %q", domain.ErrValidation, l.Transmission)
	case l.Mileage < 0:
		return fmt.Errorf("%w: negative mileage", domain.ErrValidation)
	case l.Year <= 0:
		return fmt.Errorf("%w: non-positive year", domain.ErrValidation)
	}
	return nil
}
