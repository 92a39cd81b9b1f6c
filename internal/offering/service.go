package offering

import (
	"context"
	"slices"
	"strings"
)

type CreateRequest struct {
	ProviderID string
	Name       string
	Category   Category
	Price      float64
	Location   string
}

type UpdateRequest struct {
	Name      *string
	Category  *Category
	Price     *float64
	Location  *string
	Available *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isSysAdmin bool) (*Offering, error)
	Delete(ctx context.Context, id string, deleterID string, isSysAdmin bool) error

	ListBookings(ctx context.Context, id string) ([]*Booking, error)
	ListSelectable(ctx context.Context) ([]*Offering, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Offering, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !slices.Contains(ValidCategories, req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	o := &Offering{
		ProviderID: req.ProviderID,
		Name:       strings.TrimSpace(req.Name),
		Category:   req.Category,
		Price:      req.Price,
		Location:   strings.TrimSpace(req.Location),
		Available:  true, // new offerings start selectable
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) requireOwner(ctx context.Context, id, actorID string, isSysAdmin bool) (*Offering, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && o.ProviderID != actorID {
		return nil, ErrPermissionDenied
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isSysAdmin bool) (*Offering, error) {
	o, err := s.requireOwner(ctx, id, updaterID, isSysAdmin)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		o.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !slices.Contains(ValidCategories, *req.Category) {
			return nil, ErrInvalidCategory
		}
		o.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		o.Price = *req.Price
	}
	if req.Location != nil {
		o.Location = strings.TrimSpace(*req.Location)
	}
	if req.Available != nil {
		o.Available = *req.Available
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isSysAdmin bool) error {
	if _, err := s.requireOwner(ctx, id, deleterID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListBookings(ctx context.Context, id string) ([]*Booking, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListBookings(ctx, id)
}

func (s *service) ListSelectable(ctx context.Context) ([]*Offering, error) {
	return s.repo.ListSelectable(ctx)
}
