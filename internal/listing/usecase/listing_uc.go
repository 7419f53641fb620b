package usecase

import (
	"context"
	"fmt"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.uber.org/zap"
)

// EventPublisher announces listing lifecycle changes. Publishing is
// best-effort: a failure is logged and never fails the operation that
// triggered it.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, listing *domain.Listing) error
	PublishListingUpdated(ctx context.Context, listing *domain.Listing) error
	PublishListingDeleted(ctx context.Context, id string) error
}

// ListingUsecase serves the browse flow and direct listing operations.
type ListingUsecase struct {
	repo      domain.ListingRepository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewListingUsecase(repo domain.ListingRepository, publisher EventPublisher, logger *zap.Logger) *ListingUsecase {
	return &ListingUsecase{repo: repo, publisher: publisher, logger: logger}
}

// Browse fetches the full listing set and applies spec in memory. The store
// itself never filters. fetched is the size of the set before filtering so
// callers can tell "store has no data" apart from "zero matches".
func (uc *ListingUsecase) Browse(ctx context.Context, spec domain.FilterSpec) (results []*domain.Listing, fetched int, err error) {
	listings, err := uc.repo.FetchAll(ctx)
	if err != nil {
		uc.logger.Error("browse: fetching listings failed", zap.Error(err))
		return nil, 0, fmt.Errorf("browse listings: %w", err)
	}
	return domain.Filter(listings, spec), len(listings), nil
}

func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := uc.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", id, err)
	}
	return listing, nil
}

// Update replaces the stored record wholesale. A (nil, nil) return mirrors
// the repository contract: the target id no longer exists and nothing was
// written.
func (uc *ListingUsecase) Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	updated, err := uc.repo.Update(ctx, listing)
	if err != nil {
		uc.logger.Error("update listing failed", zap.String("listing_id", listing.ID), zap.Error(err))
		return nil, fmt.Errorf("update listing %s: %w", listing.ID, err)
	}
	if updated == nil {
		uc.logger.Warn("update targeted a missing listing", zap.String("listing_id", listing.ID))
		return nil, nil
	}
	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingUpdated(ctx, updated); pubErr != nil {
			uc.logger.Warn("publish listing.updated failed", zap.String("listing_id", updated.ID), zap.Error(pubErr))
		}
	}
	return updated, nil
}

// Delete is idempotent; deleting an id that is already gone succeeds.
func (uc *ListingUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		uc.logger.Error("delete listing failed", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if uc.publisher != nil {
		if pubErr := uc.publisher.PublishListingDeleted(ctx, id); pubErr != nil {
			uc.logger.Warn("publish listing.deleted failed", zap.String("listing_id", id), zap.Error(pubErr))
		}
	}
	return nil
}
