package venue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID       int
	venues       map[string]*Venue
	availability map[string]map[time.Time]bool
	bookings     map[string][]*Booking

	selectable []*Venue
	listCalls  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		venues:       map[string]*Venue{},
		availability: map[string]map[time.Time]bool{},
		bookings:     map[string][]*Booking{},
	}
}

func (f *fakeRepo) Create(_ context.Context, v *Venue) error {
	f.nextID++
	v.ID = fmt.Sprintf("venue-%d", f.nextID)
	f.venues[v.ID] = v
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Venue, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Update(_ context.Context, v *Venue) error {
	stored, ok := f.venues[v.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *v
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.venues[id]; !ok {
		return ErrNotFound
	}
	delete(f.venues, id)
	return nil
}

func (f *fakeRepo) AddAvailability(_ context.Context, venueID string, days []time.Time) error {
	set, ok := f.availability[venueID]
	if !ok {
		set = map[time.Time]bool{}
		f.availability[venueID] = set
	}
	for _, d := range days {
		set[Day(d)] = true
	}
	return nil
}

func (f *fakeRepo) RemoveAvailability(_ context.Context, venueID string, day time.Time) error {
	day = Day(day)
	for _, b := range f.bookings[venueID] {
		if b.Day.Equal(day) {
			return ErrDateBooked
		}
	}
	delete(f.availability[venueID], day)
	return nil
}

func (f *fakeRepo) ListAvailability(_ context.Context, venueID string) ([]time.Time, error) {
	var days []time.Time
	for d := range f.availability[venueID] {
		days = append(days, d)
	}
	return days, nil
}

func (f *fakeRepo) ListBookings(_ context.Context, venueID string) ([]*Booking, error) {
	return f.bookings[venueID], nil
}

func (f *fakeRepo) ListSelectable(_ context.Context, _ time.Time) ([]*Venue, error) {
	f.listCalls++
	return f.selectable, nil
}

func seedVenue(repo *fakeRepo, providerID string) *Venue {
	v := &Venue{ProviderID: providerID, Name: "Grand Hall", CapacityMax: 200}
	_ = repo.Create(context.Background(), v)
	return v
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: " "})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("capacity min above max", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: "Hall", CapacityMin: 50, CapacityMax: 10})
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: "Hall", EventPrice: -1})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("valid venue", func(t *testing.T) {
		v, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: "  Hall  ", CapacityMax: 100})
		require.NoError(t, err)
		assert.Equal(t, "Hall", v.Name)
		assert.NotEmpty(t, v.ID)
	})
}

func TestOwnershipChecks(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	t.Run("only the owner may manage availability", func(t *testing.T) {
		repo := newFakeRepo()
		v := seedVenue(repo, "provider-1")
		svc := NewService(repo, nil)

		err := svc.AddAvailability(ctx, v.ID, []time.Time{day}, "provider-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		err = svc.AddAvailability(ctx, v.ID, []time.Time{day}, "provider-1", false)
		assert.NoError(t, err)
	})

	t.Run("admin override", func(t *testing.T) {
		repo := newFakeRepo()
		v := seedVenue(repo, "provider-1")
		svc := NewService(repo, nil)

		name := "Renamed Hall"
		updated, err := svc.Update(ctx, v.ID, UpdateRequest{Name: &name}, "admin-1", true)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Hall", updated.Name)
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		repo := newFakeRepo()
		v := seedVenue(repo, "provider-1")
		svc := NewService(repo, nil)

		assert.ErrorIs(t, svc.Delete(ctx, v.ID, "provider-2", false), ErrPermissionDenied)
		assert.NoError(t, svc.Delete(ctx, v.ID, "provider-1", false))
	})

	t.Run("EnsureOwner mirrors the management rules", func(t *testing.T) {
		repo := newFakeRepo()
		v := seedVenue(repo, "provider-1")
		svc := NewService(repo, nil)

		assert.ErrorIs(t, svc.EnsureOwner(ctx, v.ID, "provider-2", false), ErrPermissionDenied)
		assert.NoError(t, svc.EnsureOwner(ctx, v.ID, "provider-1", false))
		assert.NoError(t, svc.EnsureOwner(ctx, v.ID, "admin-1", true))
		assert.ErrorIs(t, svc.EnsureOwner(ctx, "venue-404", "provider-1", false), ErrNotFound)
	})
}

func TestRemoveAvailabilityBookedDate(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	v := seedVenue(repo, "provider-1")
	svc := NewService(repo, nil)

	require.NoError(t, svc.AddAvailability(ctx, v.ID, []time.Time{day}, "provider-1", false))
	repo.bookings[v.ID] = []*Booking{{VenueID: v.ID, Day: day, EventName: "Summer Gala"}}

	err := svc.RemoveAvailability(ctx, v.ID, day, "provider-1", false)
	assert.ErrorIs(t, err, ErrDateBooked, "a booked date must stay in the availability set")

	free := day.AddDate(0, 0, 1)
	require.NoError(t, svc.AddAvailability(ctx, v.ID, []time.Time{free}, "provider-1", false))
	assert.NoError(t, svc.RemoveAvailability(ctx, v.ID, free, "provider-1", false))
}

func TestListSelectableWithoutCache(t *testing.T) {
	repo := newFakeRepo()
	repo.selectable = []*Venue{{ID: "venue-1", Name: "Grand Hall"}}
	svc := NewService(repo, nil)

	day := time.Date(2026, 7, 10, 15, 4, 5, 0, time.UTC)

	got, err := svc.ListSelectable(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListSelectable(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "without redis every call hits the repository")
}

func TestSelectableCacheKey(t *testing.T) {
	day := time.Date(2026, 7, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "venues:selectable:2026-07-10", selectableCacheKey(Day(day)),
		"reads and invalidations must agree on the key")
}

func TestInvalidateSelectableWithoutCache(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	// No redis configured; must be a no-op.
	svc.InvalidateSelectable(context.Background(), time.Now())
}
