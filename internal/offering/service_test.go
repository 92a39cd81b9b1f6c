package offering

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID    int
	offerings map[string]*Offering
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{offerings: map[string]*Offering{}}
}

func (f *fakeRepo) Create(_ context.Context, o *Offering) error {
	f.nextID++
	o.ID = fmt.Sprintf("svc-%d", f.nextID)
	f.offerings[o.ID] = o
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Offering, error) {
	o, ok := f.offerings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Offering, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Update(_ context.Context, o *Offering) error {
	stored, ok := f.offerings[o.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *o
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.offerings[id]; !ok {
		return ErrNotFound
	}
	delete(f.offerings, id)
	return nil
}

func (f *fakeRepo) ListBookings(_ context.Context, _ string) ([]*Booking, error) {
	return nil, nil
}

func (f *fakeRepo) ListSelectable(_ context.Context) ([]*Offering, error) {
	var out []*Offering
	for _, o := range f.offerings {
		if o.Available {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestCreateDefaultsToAvailable(t *testing.T) {
	svc := NewService(newFakeRepo())

	o, err := svc.Create(context.Background(), CreateRequest{
		ProviderID: "provider-1",
		Name:       "Catering Co",
		Category:   CategoryCatering,
		Price:      120,
	})
	require.NoError(t, err)
	assert.True(t, o.Available, "new services start out selectable")
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: " ", Category: CategoryCatering})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: "X", Category: "plumbing"})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ProviderID: "p1", Name: "X", Category: CategorySecurity, Price: -5})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestAvailabilityToggleControlsSelectable(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateRequest{
		ProviderID: "provider-1",
		Name:       "Snap Photos",
		Category:   CategoryPhotography,
	})
	require.NoError(t, err)

	selectable, err := svc.ListSelectable(ctx)
	require.NoError(t, err)
	require.Len(t, selectable, 1)

	off := false
	_, err = svc.Update(ctx, o.ID, UpdateRequest{Available: &off}, "provider-1", false)
	require.NoError(t, err)

	selectable, err = svc.ListSelectable(ctx)
	require.NoError(t, err)
	assert.Empty(t, selectable, "unavailable services are not selectable")

	on := true
	_, err = svc.Update(ctx, o.ID, UpdateRequest{Available: &on}, "provider-1", false)
	require.NoError(t, err)

	selectable, err = svc.ListSelectable(ctx)
	require.NoError(t, err)
	assert.Len(t, selectable, 1, "toggling back on makes the service selectable again")
}

func TestUpdatePermission(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateRequest{
		ProviderID: "provider-1",
		Name:       "Catering Co",
		Category:   CategoryCatering,
	})
	require.NoError(t, err)

	name := "New Name"
	_, err = svc.Update(ctx, o.ID, UpdateRequest{Name: &name}, "provider-2", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Update(ctx, o.ID, UpdateRequest{Name: &name}, "admin-1", true)
	assert.NoError(t, err)
}
