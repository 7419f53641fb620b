package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SessionState is the tri-state the auth collaborator exposes: the current
// user is not known yet, known to be absent, or present with a role.
type SessionState int

const (
	SessionUnresolved SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

type Session struct {
	State  SessionState
	UserID string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.State == SessionAuthenticated && s.Role == domain.RoleAdmin
}

// Decision is the outcome of the admin gate. Acting on it (waiting,
// redirecting, serving) is the caller's side effect; RouteFor itself is pure.
type Decision int

const (
	// DecisionWait: the session has not resolved to a user; do nothing yet.
	DecisionWait Decision = iota
	// DecisionRedirect: a non-admin user; send them away.
	DecisionRedirect
	// DecisionProceed: a resolved admin; load the dashboard.
	DecisionProceed
)

// RouteFor decides what the dashboard should do for a given session.
func RouteFor(s Session) Decision {
	switch s.State {
	case SessionAuthenticated:
		if s.Role == domain.RoleAdmin {
			return DecisionProceed
		}
		return DecisionRedirect
	default:
		return DecisionWait
	}
}

// DashboardData is the admin view's local snapshot of the two collections.
type DashboardData struct {
	Listings []*domain.Listing
	Users    []*domain.User
}

// DashboardController serves the admin view: an all-or-nothing concurrent
// load of listings and users, and mutations that touch the local snapshot
// only after the remote call confirms.
type DashboardController struct {
	listings domain.ListingRepository
	users    domain.UserRepository
	logger   *zap.Logger

	mu   sync.Mutex
	data *DashboardData
}

func NewDashboardController(listings domain.ListingRepository, users domain.UserRepository, logger *zap.Logger) *DashboardController {
	return &DashboardController{listings: listings, users: users, logger: logger}
}

// Load fetches both collections concurrently and keeps neither result unless
// both calls succeed. There is no ordering guarantee between the two fetches.
func (c *DashboardController) Load(ctx context.Context) (*DashboardData, error) {
	var (
		listings []*domain.Listing
		users    []*domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = c.listings.FetchAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = c.users.FetchAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("dashboard load failed", zap.Error(err))
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	data := &DashboardData{Listings: listings, Users: users}
	c.mu.Lock()
	c.data = data
	c.mu.Unlock()
	return data, nil
}

// Data returns the current snapshot, or nil before the first successful Load.
func (c *DashboardController) Data() *DashboardData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// DeleteListing removes the listing remotely, then drops it from the
// snapshot. The remote delete is idempotent, so a stale snapshot entry whose
// row is already gone still reconciles cleanly.
func (c *DashboardController) DeleteListing(ctx context.Context, id string) error {
	if err := c.listings.DeleteByID(ctx, id); err != nil {
		c.logger.Error("dashboard: delete listing failed", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data != nil {
		c.data.Listings = removeListing(c.data.Listings, id)
	}
	return nil
}

// UpdateListing sends the replacement remotely and swaps the returned record
// into the snapshot, leaving every other entry untouched. A (nil, nil)
// return means the target row no longer exists; the snapshot is not touched.
func (c *DashboardController) UpdateListing(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	updated, err := c.listings.Update(ctx, listing)
	if err != nil {
		c.logger.Error("dashboard: update listing failed", zap.String("listing_id", listing.ID), zap.Error(err))
		return nil, fmt.Errorf("update listing %s: %w", listing.ID, err)
	}
	if updated == nil {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data != nil {
		for i, l := range c.data.Listings {
			if l.ID == updated.ID {
				c.data.Listings[i] = updated
				break
			}
		}
	}
	return updated, nil
}

func (c *DashboardController) DeleteUser(ctx context.Context, id string) error {
	if err := c.users.DeleteByID(ctx, id); err != nil {
		c.logger.Error("dashboard: delete user failed", zap.String("user_id", id), zap.Error(err))
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data != nil {
		users := make([]*domain.User, 0, len(c.data.Users))
		for _, u := range c.data.Users {
			if u.ID != id {
				users = append(users, u)
			}
		}
		c.data.Users = users
	}
	return nil
}

func removeListing(listings []*domain.Listing, id string) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
