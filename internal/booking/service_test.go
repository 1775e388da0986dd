package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/franchisemedia/adengine/internal/identity"
	"github.com/franchisemedia/adengine/internal/pricing"
	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/eventbus"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *AdBooking, slots []AdSlot, scope OverrideScope) error {
	args := m.Called(ctx, b, slots, scope)
	return args.Error(0)
}

func (m *mockRepo) GetBooking(ctx context.Context, id uuid.UUID) (*AdBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AdBooking), args.Error(1)
}

func (m *mockRepo) ListBookings(ctx context.Context, filter ListFilter) ([]AdBooking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AdBooking), args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepo) IncrementImpression(ctx context.Context, slotID uuid.UUID) error {
	args := m.Called(ctx, slotID)
	return args.Error(0)
}

func (m *mockRepo) IncrementClick(ctx context.Context, bookingID uuid.UUID) (string, error) {
	args := m.Called(ctx, bookingID)
	return args.String(0), args.Error(1)
}

type mockPriceResolver struct {
	mock.Mock
}

func (m *mockPriceResolver) GetQuote(ctx context.Context, in pricing.QuoteInput) (*pricing.Quote, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) ResolveOfficeLevel(ctx context.Context, userID uuid.UUID, explicit string) (identity.OfficeLevel, error) {
	args := m.Called(ctx, userID, explicit)
	return args.Get(0).(identity.OfficeLevel), args.Error(1)
}

func (m *mockIdentity) FranchiseHolderOf(ctx context.Context, userID uuid.UUID) (*identity.FranchiseHolder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.FranchiseHolder), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) Publish(ctx context.Context, subject string, event *eventbus.Event) error {
	args := m.Called(ctx, subject, event)
	return args.Error(0)
}

func TestBook(t *testing.T) {
	userID := uuid.MustParse("10000000-0000-0000-0000-000000000001")
	holderID := uuid.MustParse("66666666-6666-6666-6666-666666666666")
	appID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	categoryID := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	holder := &identity.FranchiseHolder{ID: holderID, UserID: userID}

	quote := &pricing.Quote{
		OfficeLevel: identity.OfficeLevelBranch,
		Multiplier:  1,
		Days: []pricing.DayPrice{
			{Date: "2026-09-01", Price: 100},
			{Date: "2026-09-02", Price: 100},
			{Date: "2026-09-03", Price: 150},
		},
	}

	req := CreateBookingRequest{
		AppID:      appID,
		CategoryID: categoryID,
		AdSlot:     SlotBranch1,
		LinkURL:    "https://example.com/promo",
		ImageURL:   "https://cdn.example.com/banner.png",
		Dates:      []string{"2026-09-01", "2026-09-03"},
	}

	t.Run("prices come from the resolver and sum into the total", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)
		events := new(mockEvents)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(holder, nil)
		prices.On("GetQuote", mock.Anything, mock.Anything).Return(quote, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		events.On("Publish", mock.Anything, eventbus.SubjectBookingCreated, mock.Anything).Return(nil)

		svc := NewService(repo, prices, ident, events)
		b, err := svc.Book(context.Background(), userID, req)

		require.NoError(t, err)
		assert.Equal(t, 250.0, b.TotalPrice)
		assert.Equal(t, holderID, b.HolderID)
		assert.Equal(t, SlotBranch1, b.GroupName)
		assert.Equal(t, StatusActive, b.Status)
		require.Len(t, b.Slots, 2)
		assert.Equal(t, 100.0, b.Slots[0].Price)
		assert.Equal(t, 150.0, b.Slots[1].Price)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("taken slot maps to a conflict error", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(holder, nil)
		prices.On("GetQuote", mock.Anything, mock.Anything).Return(quote, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(ErrSlotTaken)

		svc := NewService(repo, prices, ident, nil)
		_, err := svc.Book(context.Background(), userID, req)

		require.Error(t, err)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("user without a holder profile cannot book", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(nil, nil)

		svc := NewService(repo, prices, ident, nil)
		_, err := svc.Book(context.Background(), userID, req)

		require.Error(t, err)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("malformed date is rejected before pricing", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(holder, nil)

		bad := req
		bad.Dates = []string{"01/09/2026"}

		svc := NewService(repo, prices, ident, nil)
		_, err := svc.Book(context.Background(), userID, bad)

		require.Error(t, err)
		prices.AssertNotCalled(t, "GetQuote", mock.Anything, mock.Anything)
	})

	t.Run("event publish failures do not unwind the booking", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)
		events := new(mockEvents)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(holder, nil)
		prices.On("GetQuote", mock.Anything, mock.Anything).Return(quote, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		events.On("Publish", mock.Anything, eventbus.SubjectBookingCreated, mock.Anything).Return(errors.New("nats down"))

		svc := NewService(repo, prices, ident, events)
		b, err := svc.Book(context.Background(), userID, req)

		require.NoError(t, err)
		assert.NotNil(t, b)
	})

	t.Run("duplicate dates collapse to one slot", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(holder, nil)
		prices.On("GetQuote", mock.Anything, mock.Anything).Return(quote, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		dup := req
		dup.Dates = []string{"2026-09-01", "2026-09-01"}

		svc := NewService(repo, prices, ident, nil)
		b, err := svc.Book(context.Background(), userID, dup)

		require.NoError(t, err)
		require.Len(t, b.Slots, 1)
		assert.Equal(t, 100.0, b.TotalPrice)
	})

	t.Run("unknown ad slot name is rejected", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)

		bad := req
		bad.AdSlot = "sidebar_ads1"

		svc := NewService(repo, prices, ident, nil)
		_, err := svc.Book(context.Background(), userID, bad)

		require.Error(t, err)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a branch cannot book the head office slot", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)

		bad := req
		bad.AdSlot = SlotHeadOffice

		svc := NewService(repo, prices, ident, nil)
		_, err := svc.Book(context.Background(), userID, bad)

		require.Error(t, err)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("both branch slots are bookable independently", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(holder, nil)
		prices.On("GetQuote", mock.Anything, mock.Anything).Return(quote, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		second := req
		second.AdSlot = SlotBranch2

		svc := NewService(repo, prices, ident, nil)
		b, err := svc.Book(context.Background(), userID, second)

		require.NoError(t, err)
		assert.Equal(t, SlotBranch2, b.GroupName)
		require.NotEmpty(t, b.Slots)
		assert.Equal(t, SlotBranch2, b.Slots[0].GroupName)
	})

	t.Run("override flagging is scoped to the holder's master row", func(t *testing.T) {
		repo := new(mockRepo)
		prices := new(mockPriceResolver)
		ident := new(mockIdentity)

		countryID := uuid.MustParse("20000000-0000-0000-0000-000000000002")
		located := &identity.FranchiseHolder{ID: holderID, UserID: userID, CountryID: &countryID}

		ident.On("ResolveOfficeLevel", mock.Anything, userID, "").Return(identity.OfficeLevelBranch, nil)
		ident.On("FranchiseHolderOf", mock.Anything, userID).Return(located, nil)
		prices.On("GetQuote", mock.Anything, mock.Anything).Return(quote, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything,
			mock.MatchedBy(func(scope OverrideScope) bool {
				return scope.CountryID != nil && *scope.CountryID == countryID &&
					scope.Slot == pricing.SlotGeneral && scope.AdsType == pricing.AdsTypeHeader
			})).Return(nil)

		svc := NewService(repo, prices, ident, nil)
		_, err := svc.Book(context.Background(), userID, req)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestRecordClick(t *testing.T) {
	bookingID := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	t.Run("unknown booking maps to not found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("IncrementClick", mock.Anything, bookingID).Return("", ErrBookingNotFound)

		svc := NewService(repo, nil, nil, nil)
		_, err := svc.RecordClick(context.Background(), bookingID)

		require.Error(t, err)
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("click increments, publishes and returns the destination", func(t *testing.T) {
		repo := new(mockRepo)
		events := new(mockEvents)
		repo.On("IncrementClick", mock.Anything, bookingID).Return("https://example.com/promo", nil)
		events.On("Publish", mock.Anything, eventbus.SubjectAdClicked, mock.Anything).Return(nil)

		svc := NewService(repo, nil, nil, events)
		linkURL, err := svc.RecordClick(context.Background(), bookingID)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/promo", linkURL)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})
}

func TestRecordImpression(t *testing.T) {
	slotID := uuid.MustParse("88888888-8888-8888-8888-888888888888")

	t.Run("counter failure is swallowed", func(t *testing.T) {
		repo := new(mockRepo)
		events := new(mockEvents)
		repo.On("IncrementImpression", mock.Anything, slotID).Return(errors.New("db down"))

		svc := NewService(repo, nil, nil, events)
		svc.RecordImpression(context.Background(), slotID)

		events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateStatus(t *testing.T) {
	bookingID := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := NewService(new(mockRepo), nil, nil, nil)
		_, err := svc.UpdateStatus(context.Background(), bookingID, "archived")

		require.Error(t, err)
	})

	t.Run("valid transition refetches the booking", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("UpdateStatus", mock.Anything, bookingID, StatusInactive).Return(nil)
		repo.On("GetBooking", mock.Anything, bookingID).
			Return(&AdBooking{ID: bookingID, Status: StatusInactive}, nil)

		svc := NewService(repo, nil, nil, nil)
		b, err := svc.UpdateStatus(context.Background(), bookingID, StatusInactive)

		require.NoError(t, err)
		assert.Equal(t, StatusInactive, b.Status)
		repo.AssertExpectations(t)
	})
}
