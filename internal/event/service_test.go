package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/event-management-backend/internal/booking"
	"github.com/planora/event-management-backend/internal/offering"
	"github.com/planora/event-management-backend/internal/user"
	"github.com/planora/event-management-backend/internal/venue"
)

type fakeEventRepo struct {
	nextID        int
	events        map[string]*Event
	statusUpdates []Status
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*Event{}}
}

func (f *fakeEventRepo) Create(_ context.Context, e *Event) error {
	f.nextID++
	e.ID = fmt.Sprintf("evt-%d", f.nextID)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ Filter) ([]*Event, int, error) {
	var out []*Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(_ context.Context, e *Event) error {
	stored, ok := f.events[e.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *e
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) AddOfferings(_ context.Context, eventID string, offeringIDs []string) error {
	e, ok := f.events[eventID]
	if !ok {
		return ErrNotFound
	}
	e.OfferingIDs = append(e.OfferingIDs, offeringIDs...)
	return nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	e, ok := f.events[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = status
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeEventRepo) Cancel(_ context.Context, id string, penaltyAmount float64, cancelledAt time.Time) error {
	e, ok := f.events[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = StatusCancelled
	e.PenaltyApplied = penaltyAmount > 0
	e.PenaltyAmount = penaltyAmount
	e.CancelledAt = &cancelledAt
	return nil
}

func (f *fakeEventRepo) ListIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id, e := range f.events {
		if e.Status != StatusCancelled {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeBookingRepo struct {
	nextID  int
	batches [][]*booking.Request
}

func (f *fakeBookingRepo) CreateBatch(_ context.Context, reqs []*booking.Request) error {
	for _, r := range reqs {
		f.nextID++
		r.ID = fmt.Sprintf("req-%d", f.nextID)
		r.Status = booking.StatusPending
	}
	f.batches = append(f.batches, reqs)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*booking.Request, error) {
	for _, batch := range f.batches {
		for _, r := range batch {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return nil, booking.ErrNotFound
}

func (f *fakeBookingRepo) List(_ context.Context, _ booking.Visibility, _ booking.Filter) ([]*booking.Request, int, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepo) Resolve(_ context.Context, id string, status booking.Status, reason *string) (*booking.Request, error) {
	for _, batch := range f.batches {
		for _, r := range batch {
			if r.ID == id {
				r.Status = status
				r.Reason = reason
				return r, nil
			}
		}
	}
	return nil, booking.ErrNotFound
}

func (f *fakeBookingRepo) StatusesByEvent(_ context.Context, eventID string) ([]booking.Status, error) {
	var out []booking.Status
	for _, batch := range f.batches {
		for _, r := range batch {
			if r.EventID == eventID {
				out = append(out, r.Status)
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ItemProviderID(_ context.Context, _ booking.Kind, _ string) (string, error) {
	return "", booking.ErrNotFound
}

type fakeVenueService struct {
	venue.Service
	venues      map[string]*venue.Venue
	invalidated []time.Time
}

func (f *fakeVenueService) GetByID(_ context.Context, id string) (*venue.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venue.ErrNotFound
	}
	return v, nil
}

func (f *fakeVenueService) InvalidateSelectable(_ context.Context, day time.Time) {
	f.invalidated = append(f.invalidated, day)
}

type fakeOfferingService struct {
	offering.Service
	offerings map[string]*offering.Offering
}

func (f *fakeOfferingService) GetByID(_ context.Context, id string) (*offering.Offering, error) {
	o, ok := f.offerings[id]
	if !ok {
		return nil, offering.ErrNotFound
	}
	return o, nil
}

type fakeUserRepo struct {
	user.Repository
	users map[string]*user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestService(now time.Time) (*service, *fakeEventRepo, *fakeBookingRepo) {
	eventRepo := newFakeEventRepo()
	bookingRepo := &fakeBookingRepo{}

	svc := &service{
		repo:     eventRepo,
		bookings: bookingRepo,
		venues: &fakeVenueService{venues: map[string]*venue.Venue{
			"venue-1": {ID: "venue-1", ProviderID: "provider-1", Name: "Grand Hall"},
		}},
		offerings: &fakeOfferingService{offerings: map[string]*offering.Offering{
			"svc-1": {ID: "svc-1", ProviderID: "provider-2", Name: "Catering Co", Available: true},
			"svc-2": {ID: "svc-2", ProviderID: "provider-3", Name: "Snap Photos", Available: true},
		}},
		users: &fakeUserRepo{users: map[string]*user.User{
			"org-1": {ID: "org-1", Email: "organizer@example.com", Role: user.RoleOrganizer},
		}},
		now: func() time.Time { return now },
	}
	return svc, eventRepo, bookingRepo
}

func validCreateRequest() CreateRequest {
	start := time.Date(2026, 7, 10, 19, 30, 0, 0, time.UTC)
	return CreateRequest{
		OrganizerID:    "org-1",
		OrganizerEmail: "organizer@example.com",
		Name:           "Summer Gala",
		EventType:      TypeCorporate,
		StartTime:      start,
		EndTime:        start.Add(4 * time.Hour),
		RetailPrice:    5000,
	}
}

func TestCreateFansOutPendingRequests(t *testing.T) {
	svc, _, bookingRepo := newTestService(time.Now())

	venueID := "venue-1"
	req := validCreateRequest()
	req.VenueID = &venueID
	req.OfferingIDs = []string{"svc-1", "svc-2"}

	e, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, bookingRepo.batches, 1, "all requests must be created in one batch")
	batch := bookingRepo.batches[0]
	require.Len(t, batch, 3, "one venue and two services fan out into three requests")

	wantDay := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	var venueCount, serviceCount int
	for _, r := range batch {
		assert.Equal(t, booking.StatusPending, r.Status)
		assert.Equal(t, e.ID, r.EventID)
		assert.Equal(t, "Summer Gala", r.EventName)
		assert.Equal(t, "organizer@example.com", r.OrganizerEmail)
		assert.Equal(t, wantDay, r.Day)
		switch r.Kind {
		case booking.KindVenue:
			venueCount++
			assert.Equal(t, "venue-1", r.ItemID)
		case booking.KindService:
			serviceCount++
		}
	}
	assert.Equal(t, 1, venueCount)
	assert.Equal(t, 2, serviceCount)

	assert.Equal(t, StatusPlanning, e.Status, "pending requests put the event in planning")

	venues := svc.venues.(*fakeVenueService)
	assert.Equal(t, []time.Time{wantDay}, venues.invalidated,
		"the cached selectable listing must be dropped once the venue is requested")
}

func TestCreateWithoutResourcesStaysDraft(t *testing.T) {
	svc, _, bookingRepo := newTestService(time.Now())

	e, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Empty(t, bookingRepo.batches, "no resources means no requests")
	assert.Equal(t, StatusDraft, e.Status)
	assert.Empty(t, svc.venues.(*fakeVenueService).invalidated)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		req := validCreateRequest()
		req.Name = "   "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown event type", func(t *testing.T) {
		req := validCreateRequest()
		req.EventType = "rave"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("end before start", func(t *testing.T) {
		req := validCreateRequest()
		req.EndTime = req.StartTime.Add(-time.Hour)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("negative retail price", func(t *testing.T) {
		req := validCreateRequest()
		req.RetailPrice = -1
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("unknown venue", func(t *testing.T) {
		req := validCreateRequest()
		missing := "venue-404"
		req.VenueID = &missing
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, venue.ErrNotFound)
	})
}

func TestCancelPenalty(t *testing.T) {
	start := time.Date(2026, 7, 10, 19, 30, 0, 0, time.UTC)

	t.Run("inside the window charges ten percent", func(t *testing.T) {
		svc, _, _ := newTestService(start.AddDate(0, 0, -2))

		e, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		cancelled, err := svc.Cancel(context.Background(), e.ID, "org-1", false)
		require.NoError(t, err)

		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.True(t, cancelled.PenaltyApplied)
		assert.InDelta(t, 500, cancelled.PenaltyAmount, 1e-9)
		require.NotNil(t, cancelled.CancelledAt)
	})

	t.Run("outside the window is free", func(t *testing.T) {
		svc, _, _ := newTestService(start.AddDate(0, 0, -30))

		e, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		cancelled, err := svc.Cancel(context.Background(), e.ID, "org-1", false)
		require.NoError(t, err)

		assert.False(t, cancelled.PenaltyApplied)
		assert.Zero(t, cancelled.PenaltyAmount)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		svc, _, _ := newTestService(start.AddDate(0, 0, -30))

		e, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), e.ID, "org-1", false)
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), e.ID, "org-1", false)
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("only the organizer may cancel", func(t *testing.T) {
		svc, _, _ := newTestService(start.AddDate(0, 0, -30))

		e, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), e.ID, "someone-else", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = svc.Cancel(context.Background(), e.ID, "someone-else", true)
		assert.NoError(t, err, "admins may cancel on behalf of the organizer")
	})
}

func TestUpdateAddsResourcesAndRequests(t *testing.T) {
	svc, _, bookingRepo := newTestService(time.Now())

	e, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, StatusDraft, e.Status)

	venueID := "venue-1"
	updated, err := svc.Update(context.Background(), e.ID, UpdateRequest{
		VenueID:        &venueID,
		AddOfferingIDs: []string{"svc-1"},
	}, "org-1", false)
	require.NoError(t, err)

	require.Len(t, bookingRepo.batches, 1)
	batch := bookingRepo.batches[0]
	require.Len(t, batch, 2)
	for _, r := range batch {
		assert.Equal(t, booking.StatusPending, r.Status)
		assert.Equal(t, "organizer@example.com", r.OrganizerEmail)
	}

	assert.Equal(t, StatusPlanning, updated.Status)
	assert.Equal(t, []string{"svc-1"}, updated.OfferingIDs)
	require.NotNil(t, updated.VenueID)
	assert.Equal(t, "venue-1", *updated.VenueID)

	assert.Len(t, svc.venues.(*fakeVenueService).invalidated, 1,
		"selecting a venue on update must drop the cached listing")
}

func TestUpdateAlreadyLinkedOfferingIsIgnored(t *testing.T) {
	svc, _, bookingRepo := newTestService(time.Now())

	req := validCreateRequest()
	req.OfferingIDs = []string{"svc-1"}
	e, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, bookingRepo.batches, 1)

	_, err = svc.Update(context.Background(), e.ID, UpdateRequest{
		AddOfferingIDs: []string{"svc-1"},
	}, "org-1", false)
	require.NoError(t, err)

	assert.Len(t, bookingRepo.batches, 1, "re-adding a linked offering must not raise another request")
}

func TestUpdateCancelledEventFails(t *testing.T) {
	svc, _, _ := newTestService(time.Now().Add(30 * 24 * time.Hour))

	e, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), e.ID, "org-1", false)
	require.NoError(t, err)

	name := "New Name"
	_, err = svc.Update(context.Background(), e.ID, UpdateRequest{Name: &name}, "org-1", false)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRederive(t *testing.T) {
	svc, eventRepo, bookingRepo := newTestService(time.Now())

	venueID := "venue-1"
	req := validCreateRequest()
	req.VenueID = &venueID
	req.OfferingIDs = []string{"svc-1"}

	e, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, StatusPlanning, e.Status)

	batch := bookingRepo.batches[0]

	t.Run("partial confirmation stays planning", func(t *testing.T) {
		_, err := bookingRepo.Resolve(context.Background(), batch[0].ID, booking.StatusConfirmed, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Rederive(context.Background(), e.ID))

		got, err := eventRepo.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPlanning, got.Status)
	})

	t.Run("full confirmation confirms", func(t *testing.T) {
		_, err := bookingRepo.Resolve(context.Background(), batch[1].ID, booking.StatusConfirmed, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Rederive(context.Background(), e.ID))

		got, err := eventRepo.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})

	t.Run("sweep covers every event", func(t *testing.T) {
		require.NoError(t, svc.RederiveAll(context.Background()))

		got, err := eventRepo.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})
}
