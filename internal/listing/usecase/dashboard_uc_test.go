package usecase

import (
	"context"
	"testing"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// anyCtx matches the derived contexts the errgroup hands to each fetch.
func anyCtx() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func TestRouteFor(t *testing.T) {
	cases := []struct {
		name    string
		session Session
		want    Decision
	}{
		{"unresolved waits", Session{State: SessionUnresolved}, DecisionWait},
		{"anonymous waits", Session{State: SessionAnonymous}, DecisionWait},
		{"plain user is redirected", Session{State: SessionAuthenticated, UserID: "u1", Role: "user"}, DecisionRedirect},
		{"admin proceeds", Session{State: SessionAuthenticated, UserID: "u2", Role: "admin"}, DecisionProceed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RouteFor(tc.session))
		})
	}
}

func TestDashboardController_Load_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	listings := []*domain.Listing{{ID: "1", Name: "Tesla Model 3"}}
	users := []*domain.User{{ID: "u1", Email: "a@b.c", Role: "user"}}

	t.Run("both succeed", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FetchAll", anyCtx()).Return(listings, nil).Once()
		userRepo := new(MockUserRepository)
		userRepo.On("FetchAll", anyCtx()).Return(users, nil).Once()

		c := NewDashboardController(listingRepo, userRepo, zap.NewNop())
		data, err := c.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, listings, data.Listings)
		assert.Equal(t, users, data.Users)
		assert.Equal(t, data, c.Data())
	})

	t.Run("user fetch failure hides the listings result", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FetchAll", anyCtx()).Return(listings, nil).Maybe()
		userRepo := new(MockUserRepository)
		userRepo.On("FetchAll", anyCtx()).Return(nil, domain.ErrTransport).Once()

		c := NewDashboardController(listingRepo, userRepo, zap.NewNop())
		data, err := c.Load(ctx)

		assert.ErrorIs(t, err, domain.ErrTransport)
		assert.Nil(t, data)
		assert.Nil(t, c.Data())
	})

	t.Run("listing fetch failure hides the users result", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FetchAll", anyCtx()).Return(nil, domain.ErrTransport).Once()
		userRepo := new(MockUserRepository)
		userRepo.On("FetchAll", anyCtx()).Return(users, nil).Maybe()

		c := NewDashboardController(listingRepo, userRepo, zap.NewNop())
		data, err := c.Load(ctx)

		assert.ErrorIs(t, err, domain.ErrTransport)
		assert.Nil(t, data)
	})
}

func TestDashboardController_DeleteListing_ReconcilesAfterConfirm(t *testing.T) {
	ctx := context.Background()
	listingRepo := new(MockListingRepository)
	listingRepo.On("FetchAll", anyCtx()).Return([]*domain.Listing{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}, nil).Once()
	userRepo := new(MockUserRepository)
	userRepo.On("FetchAll", anyCtx()).Return([]*domain.User{}, nil).Once()

	c := NewDashboardController(listingRepo, userRepo, zap.NewNop())
	_, err := c.Load(ctx)
	require.NoError(t, err)

	t.Run("remote failure leaves the snapshot untouched", func(t *testing.T) {
		listingRepo.On("DeleteByID", ctx, "2").Return(domain.ErrTransport).Once()

		err := c.DeleteListing(ctx, "2")

		assert.ErrorIs(t, err, domain.ErrTransport)
		assert.Len(t, c.Data().Listings, 3)
	})

	t.Run("confirmed delete removes only the matching id", func(t *testing.T) {
		listingRepo.On("DeleteByID", ctx, "2").Return(nil).Once()

		require.NoError(t, c.DeleteListing(ctx, "2"))

		ids := make([]string, 0)
		for _, l := range c.Data().Listings {
			ids = append(ids, l.ID)
		}
		assert.Equal(t, []string{"1", "3"}, ids)
	})
}

func TestDashboardController_UpdateListing_ReplacesMatchingRecord(t *testing.T) {
	ctx := context.Background()
	listingRepo := new(MockListingRepository)
	listingRepo.On("FetchAll", anyCtx()).Return([]*domain.Listing{
		{ID: "1", Price: 1000}, {ID: "2", Price: 2000},
	}, nil).Once()
	userRepo := new(MockUserRepository)
	userRepo.On("FetchAll", anyCtx()).Return([]*domain.User{}, nil).Once()

	c := NewDashboardController(listingRepo, userRepo, zap.NewNop())
	_, err := c.Load(ctx)
	require.NoError(t, err)

	t.Run("server record wins", func(t *testing.T) {
		sent := &domain.Listing{ID: "2", Price: 2500}
		stored := &domain.Listing{ID: "2", Price: 2500, Name: "normalized by store"}
		listingRepo.On("Update", ctx, sent).Return(stored, nil).Once()

		updated, err := c.UpdateListing(ctx, sent)

		require.NoError(t, err)
		assert.Same(t, stored, updated)
		assert.Same(t, stored, c.Data().Listings[1])
		assert.Equal(t, float64(1000), c.Data().Listings[0].Price)
	})

	t.Run("missing target is a handled nil, snapshot untouched", func(t *testing.T) {
		sent := &domain.Listing{ID: "gone"}
		listingRepo.On("Update", ctx, sent).Return(nil, nil).Once()

		updated, err := c.UpdateListing(ctx, sent)

		require.NoError(t, err)
		assert.Nil(t, updated)
		assert.Len(t, c.Data().Listings, 2)
	})
}

func TestDashboardController_DeleteUser_Reconciles(t *testing.T) {
	ctx := context.Background()
	listingRepo := new(MockListingRepository)
	listingRepo.On("FetchAll", anyCtx()).Return([]*domain.Listing{}, nil).Once()
	userRepo := new(MockUserRepository)
	userRepo.On("FetchAll", anyCtx()).Return([]*domain.User{
		{ID: "u1"}, {ID: "u2"},
	}, nil).Once()
	userRepo.On("DeleteByID", ctx, "u1").Return(nil).Once()

	c := NewDashboardController(listingRepo, userRepo, zap.NewNop())
	_, err := c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.DeleteUser(ctx, "u1"))
	require.Len(t, c.Data().Users, 1)
	assert.Equal(t, "u2", c.Data().Users[0].ID)
}
