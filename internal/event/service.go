package event

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/planora/event-management-backend/internal/booking"
	"github.com/planora/event-management-backend/internal/offering"
	"github.com/planora/event-management-backend/internal/pkg/logger"
	"github.com/planora/event-management-backend/internal/user"
	"github.com/planora/event-management-backend/internal/venue"
)

type CreateRequest struct {
	OrganizerID    string
	OrganizerEmail string
	Name           string
	Description    string
	EventType      Type
	StartTime      time.Time
	EndTime        time.Time
	RetailPrice    float64
	VenueID        *string
	OfferingIDs    []string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	EventType   *Type
	StartTime   *time.Time
	EndTime     *time.Time
	RetailPrice *float64

	// VenueID selects a venue for an event that has none yet, or replaces the
	// current selection. Either way a fresh venue request is raised.
	VenueID *string

	// AddOfferingIDs links further offerings; each raises a service request.
	AddOfferingIDs []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Event, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error

	// Cancel marks the event cancelled, charging the late-cancellation
	// penalty when inside the window. Cancelled is terminal.
	Cancel(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Event, error)

	// Rederive recomputes the event's derived status from its booking
	// requests and persists it if it changed.
	Rederive(ctx context.Context, eventID string) error

	// RederiveAll sweeps every non-cancelled event through Rederive.
	RederiveAll(ctx context.Context) error
}

type service struct {
	repo      Repository
	bookings  booking.Repository
	venues    venue.Service
	offerings offering.Service
	users     user.Repository
	now       func() time.Time
}

func NewService(repo Repository, bookings booking.Repository, venues venue.Service, offerings offering.Service, users user.Repository) Service {
	return &service{
		repo:      repo,
		bookings:  bookings,
		venues:    venues,
		offerings: offerings,
		users:     users,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !slices.Contains(ValidTypes, req.EventType) {
		return nil, ErrInvalidType
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.RetailPrice < 0 {
		return nil, ErrInvalidPrice
	}

	if req.VenueID != nil {
		if _, err := s.venues.GetByID(ctx, *req.VenueID); err != nil {
			return nil, err
		}
	}
	for _, id := range req.OfferingIDs {
		if _, err := s.offerings.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	e := &Event{
		OrganizerID: req.OrganizerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		EventType:   req.EventType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		RetailPrice: req.RetailPrice,
		Status:      StatusDraft,
		VenueID:     req.VenueID,
		OfferingIDs: req.OfferingIDs,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	reqs := buildRequests(e, req.OrganizerEmail, req.VenueID, req.OfferingIDs)
	if len(reqs) > 0 {
		if err := s.bookings.CreateBatch(ctx, reqs); err != nil {
			return nil, err
		}
		// The new pending request hides the venue from the selectable listing.
		if req.VenueID != nil {
			s.venues.InvalidateSelectable(ctx, venue.Day(e.StartTime))
		}
		// Freshly created requests are all pending, so derivation lands on
		// planning without a round trip.
		e.Status = StatusPlanning
		if err := s.repo.UpdateStatus(ctx, e.ID, e.Status); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// buildRequests fans the selected resources out into one pending request per
// resource, all targeting the day of the event's start.
func buildRequests(e *Event, organizerEmail string, venueID *string, offeringIDs []string) []*booking.Request {
	day := venue.Day(e.StartTime)

	var reqs []*booking.Request
	if venueID != nil {
		reqs = append(reqs, &booking.Request{
			Kind:           booking.KindVenue,
			ItemID:         *venueID,
			EventID:        e.ID,
			EventName:      e.Name,
			OrganizerEmail: organizerEmail,
			Day:            day,
		})
	}
	for _, id := range offeringIDs {
		reqs = append(reqs, &booking.Request{
			Kind:           booking.KindService,
			ItemID:         id,
			EventID:        e.ID,
			EventName:      e.Name,
			OrganizerEmail: organizerEmail,
			Day:            day,
		})
	}
	return reqs
}

func (s *service) GetByID(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) requireOrganizer(ctx context.Context, id, actorID string, isSysAdmin bool) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && e.OrganizerID != actorID {
		return nil, ErrPermissionDenied
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Event, error) {
	e, err := s.requireOrganizer(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}
	if e.Status == StatusCancelled {
		return nil, ErrCancelled
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.EventType != nil {
		if !slices.Contains(ValidTypes, *req.EventType) {
			return nil, ErrInvalidType
		}
		e.EventType = *req.EventType
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if !e.EndTime.After(e.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.RetailPrice != nil {
		if *req.RetailPrice < 0 {
			return nil, ErrInvalidPrice
		}
		e.RetailPrice = *req.RetailPrice
	}

	var newVenueID *string
	if req.VenueID != nil && (e.VenueID == nil || *e.VenueID != *req.VenueID) {
		if _, err := s.venues.GetByID(ctx, *req.VenueID); err != nil {
			return nil, err
		}
		e.VenueID = req.VenueID
		newVenueID = req.VenueID
	}

	var newOfferingIDs []string
	for _, oid := range req.AddOfferingIDs {
		if slices.Contains(e.OfferingIDs, oid) {
			continue
		}
		if _, err := s.offerings.GetByID(ctx, oid); err != nil {
			return nil, err
		}
		newOfferingIDs = append(newOfferingIDs, oid)
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	if len(newOfferingIDs) > 0 {
		if err := s.repo.AddOfferings(ctx, e.ID, newOfferingIDs); err != nil {
			return nil, err
		}
	}

	if newVenueID != nil || len(newOfferingIDs) > 0 {
		// Requests carry the organizer's email even when an admin edits.
		organizer, err := s.users.GetByID(ctx, e.OrganizerID)
		if err != nil {
			return nil, err
		}

		reqs := buildRequests(e, organizer.Email, newVenueID, newOfferingIDs)
		if err := s.bookings.CreateBatch(ctx, reqs); err != nil {
			return nil, err
		}
		if newVenueID != nil {
			s.venues.InvalidateSelectable(ctx, venue.Day(e.StartTime))
		}
		if err := s.Rederive(ctx, e.ID); err != nil {
			logger.WithError(err).WithField("event_id", e.ID).
				Warn("failed to re-derive event status after update")
		}
	}

	return s.repo.GetByID(ctx, e.ID)
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	if _, err := s.requireOrganizer(ctx, id, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Event, error) {
	e, err := s.requireOrganizer(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}
	if e.Status == StatusCancelled {
		return nil, ErrCancelled
	}

	now := s.now().UTC()
	penalty := CancellationPenalty(e.RetailPrice, e.StartTime, now)

	if err := s.repo.Cancel(ctx, e.ID, penalty, now); err != nil {
		return nil, err
	}

	e.Status = StatusCancelled
	e.PenaltyApplied = penalty > 0
	e.PenaltyAmount = penalty
	e.CancelledAt = &now
	return e, nil
}

func (s *service) Rederive(ctx context.Context, eventID string) error {
	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	statuses, err := s.bookings.StatusesByEvent(ctx, eventID)
	if err != nil {
		return err
	}

	next := DeriveStatus(e.Status, statuses)
	if next == e.Status {
		return nil
	}
	return s.repo.UpdateStatus(ctx, eventID, next)
}

func (s *service) RederiveAll(ctx context.Context) error {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.Rederive(ctx, id); err != nil {
			logger.WithError(err).WithField("event_id", id).
				Warn("status sweep failed for event")
		}
	}
	return nil
}
