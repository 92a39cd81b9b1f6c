package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID  int
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: map[string]*User{},
		byID:    map[string]*User{},
	}
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return ErrNotFound
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		u, err := svc.Register(ctx, "  Organizer@Example.COM ", "secretpass", "Alex", RoleOrganizer)
		require.NoError(t, err)
		assert.Equal(t, "organizer@example.com", u.Email)
		assert.Equal(t, RoleOrganizer, u.Role)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsSystemAdmin)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, "a@b.com", "secretpass", "", RoleOrganizer)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "a@b.com", "secretpass", "", RoleVenueProvider)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, "a@b.com", "short", "", RoleOrganizer)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("invalid role", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{})

		_, err := svc.Register(ctx, "a@b.com", "secretpass", "", Role("superuser"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeRepo) {
		repo := newFakeRepo()
		svc := NewService(repo, plainHasher{})
		_, err := svc.Register(ctx, "a@b.com", "secretpass", "", RoleOrganizer)
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("success updates last login", func(t *testing.T) {
		svc, repo := setup(t)

		u, err := svc.Login(ctx, "a@b.com", "secretpass")
		require.NoError(t, err)
		assert.NotNil(t, repo.byID[u.ID].LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "a@b.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Login(ctx, "nobody@b.com", "secretpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo := setup(t)
		repo.byEmail["a@b.com"].IsActive = false

		_, err := svc.Login(ctx, "a@b.com", "secretpass")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
