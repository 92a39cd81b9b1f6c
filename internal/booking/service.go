package booking

import (
	"context"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/logger"
)

// Rederiver recomputes the derived status of an event after one of its
// booking requests changes. Implemented by the event service.
type Rederiver interface {
	Rederive(ctx context.Context, eventID string) error
}

// Notifier informs the organizer that one of their requests was resolved.
type Notifier interface {
	NotifyResolution(ctx context.Context, req *Request) error
}

// SelectableInvalidator drops cached venue selectability for a day after a
// request mutation. Implemented by the venue service.
type SelectableInvalidator interface {
	InvalidateSelectable(ctx context.Context, day time.Time)
}

type Service interface {
	// GetByID returns the request when the visibility scope covers it:
	// admins see all, providers their own resources, organizers their own
	// requests.
	GetByID(ctx context.Context, id string, vis Visibility) (*Request, error)

	List(ctx context.Context, vis Visibility, filter Filter) ([]*Request, int, error)

	// Approve confirms a pending request and appends the matching booking.
	// Only the owner of the targeted resource (or an admin) may approve.
	Approve(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Request, error)

	// Reject declines a pending request with an optional reason. It has no
	// effect on the resource's bookings or availability.
	Reject(ctx context.Context, id string, reason *string, actorID string, isSysAdmin bool) (*Request, error)
}

type service struct {
	repo       Repository
	rederiver  Rederiver
	notifier   Notifier
	selectable SelectableInvalidator
}

func NewService(repo Repository, rederiver Rederiver, notifier Notifier, selectable SelectableInvalidator) Service {
	return &service{
		repo:       repo,
		rederiver:  rederiver,
		notifier:   notifier,
		selectable: selectable,
	}
}

func (s *service) GetByID(ctx context.Context, id string, vis Visibility) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, req, vis); err != nil {
		return nil, err
	}
	return req, nil
}

// authorizeView applies the listing visibility rules to a single request.
func (s *service) authorizeView(ctx context.Context, req *Request, vis Visibility) error {
	if vis.All {
		return nil
	}
	if vis.OrganizerEmail != "" && req.OrganizerEmail == vis.OrganizerEmail {
		return nil
	}
	if vis.ProviderID != "" {
		providerID, err := s.repo.ItemProviderID(ctx, req.Kind, req.ItemID)
		if err != nil {
			return err
		}
		if providerID == vis.ProviderID {
			return nil
		}
	}
	return ErrPermissionDenied
}

func (s *service) List(ctx context.Context, vis Visibility, filter Filter) ([]*Request, int, error) {
	return s.repo.List(ctx, vis, filter)
}

func (s *service) Approve(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Request, error) {
	return s.resolve(ctx, id, StatusConfirmed, nil, actorID, isSysAdmin)
}

func (s *service) Reject(ctx context.Context, id string, reason *string, actorID string, isSysAdmin bool) (*Request, error) {
	return s.resolve(ctx, id, StatusRejected, reason, actorID, isSysAdmin)
}

func (s *service) resolve(ctx context.Context, id string, status Status, reason *string, actorID string, isSysAdmin bool) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin {
		providerID, err := s.repo.ItemProviderID(ctx, req.Kind, req.ItemID)
		if err != nil {
			return nil, err
		}
		if providerID != actorID {
			return nil, ErrPermissionDenied
		}
	}

	resolved, err := s.repo.Resolve(ctx, id, status, reason)
	if err != nil {
		return nil, err
	}

	// A rejection frees the day for other organizers; drop the cached
	// selectable listing either way.
	if resolved.Kind == KindVenue && s.selectable != nil {
		s.selectable.InvalidateSelectable(ctx, resolved.Day)
	}

	// The periodic sweep repairs the derived status if this call fails.
	if err := s.rederiver.Rederive(ctx, resolved.EventID); err != nil {
		logger.WithError(err).WithField("event_id", resolved.EventID).
			Warn("failed to re-derive event status after resolution")
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyResolution(ctx, resolved); err != nil {
			logger.WithError(err).WithField("request_id", resolved.ID).
				Warn("failed to notify organizer of resolution")
		}
	}

	return resolved, nil
}
