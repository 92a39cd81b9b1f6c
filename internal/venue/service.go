package venue

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type CreateRequest struct {
	ProviderID  string
	Name        string
	Location    string
	CapacityMin int
	CapacityMax int
	HourlyPrice float64
	EventPrice  float64
}

type UpdateRequest struct {
	Name        *string
	Location    *string
	CapacityMin *int
	CapacityMax *int
	HourlyPrice *float64
	EventPrice  *float64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isSysAdmin bool) (*Venue, error)
	Delete(ctx context.Context, id string, deleterID string, isSysAdmin bool) error

	AddAvailability(ctx context.Context, id string, days []time.Time, actorID string, isSysAdmin bool) error
	RemoveAvailability(ctx context.Context, id string, day time.Time, actorID string, isSysAdmin bool) error
	ListAvailability(ctx context.Context, id string) ([]time.Time, error)
	ListBookings(ctx context.Context, id string) ([]*Booking, error)

	// ListSelectable returns the venues an organizer may request for a day.
	ListSelectable(ctx context.Context, day time.Time) ([]*Venue, error)

	// InvalidateSelectable drops the cached selectable listing for a day.
	// Called whenever a booking request for that day is raised or resolved.
	InvalidateSelectable(ctx context.Context, day time.Time)

	// EnsureOwner verifies the actor may manage the venue.
	EnsureOwner(ctx context.Context, id string, actorID string, isSysAdmin bool) error

	SetPhotoPath(ctx context.Context, id string, path string, actorID string, isSysAdmin bool) (*Venue, error)
}

const selectableCacheTTL = 30 * time.Second

type service struct {
	repo  Repository
	cache *redis.Client // nil disables caching
}

// NewService creates a venue Service. The redis client is optional and only
// used to cache the selectable-venues query.
func NewService(repo Repository, cache *redis.Client) Service {
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Venue, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.CapacityMin < 0 || req.CapacityMax < req.CapacityMin {
		return nil, ErrInvalidCapacity
	}
	if req.HourlyPrice < 0 || req.EventPrice < 0 {
		return nil, ErrInvalidPrice
	}

	v := &Venue{
		ProviderID:  req.ProviderID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		CapacityMin: req.CapacityMin,
		CapacityMax: req.CapacityMax,
		HourlyPrice: req.HourlyPrice,
		EventPrice:  req.EventPrice,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	return s.repo.List(ctx, filter)
}

// requireOwner loads the venue and verifies the actor may manage it.
func (s *service) requireOwner(ctx context.Context, id, actorID string, isSysAdmin bool) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && v.ProviderID != actorID {
		return nil, ErrPermissionDenied
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isSysAdmin bool) (*Venue, error) {
	v, err := s.requireOwner(ctx, id, updaterID, isSysAdmin)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		v.Location = strings.TrimSpace(*req.Location)
	}
	if req.CapacityMin != nil {
		v.CapacityMin = *req.CapacityMin
	}
	if req.CapacityMax != nil {
		v.CapacityMax = *req.CapacityMax
	}
	if v.CapacityMin < 0 || v.CapacityMax < v.CapacityMin {
		return nil, ErrInvalidCapacity
	}
	if req.HourlyPrice != nil {
		v.HourlyPrice = *req.HourlyPrice
	}
	if req.EventPrice != nil {
		v.EventPrice = *req.EventPrice
	}
	if v.HourlyPrice < 0 || v.EventPrice < 0 {
		return nil, ErrInvalidPrice
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isSysAdmin bool) error {
	if _, err := s.requireOwner(ctx, id, deleterID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddAvailability(ctx context.Context, id string, days []time.Time, actorID string, isSysAdmin bool) error {
	if _, err := s.requireOwner(ctx, id, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.AddAvailability(ctx, id, days)
}

func (s *service) RemoveAvailability(ctx context.Context, id string, day time.Time, actorID string, isSysAdmin bool) error {
	if _, err := s.requireOwner(ctx, id, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.RemoveAvailability(ctx, id, day)
}

func (s *service) ListAvailability(ctx context.Context, id string) ([]time.Time, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListAvailability(ctx, id)
}

func (s *service) ListBookings(ctx context.Context, id string) ([]*Booking, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListBookings(ctx, id)
}

func selectableCacheKey(day time.Time) string {
	return "venues:selectable:" + day.Format("2006-01-02")
}

func (s *service) ListSelectable(ctx context.Context, day time.Time) ([]*Venue, error) {
	day = Day(day)

	cacheKey := selectableCacheKey(day)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []*Venue
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	venues, err := s.repo.ListSelectable(ctx, day)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(venues); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, selectableCacheTTL).Err(); err != nil {
				logger.WithError(err).Warn("failed to cache selectable venues")
			}
		}
	}

	return venues, nil
}

func (s *service) InvalidateSelectable(ctx context.Context, day time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, selectableCacheKey(Day(day))).Err(); err != nil {
		logger.WithError(err).Warn("failed to invalidate selectable venues cache")
	}
}

func (s *service) EnsureOwner(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	_, err := s.requireOwner(ctx, id, actorID, isSysAdmin)
	return err
}

func (s *service) SetPhotoPath(ctx context.Context, id string, path string, actorID string, isSysAdmin bool) (*Venue, error) {
	v, err := s.requireOwner(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}
	v.PhotoPath = &path
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}
