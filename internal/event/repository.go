package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error

	// AddOfferings links additional offerings to the event, skipping ones
	// already linked.
	AddOfferings(ctx context.Context, eventID string, offeringIDs []string) error

	UpdateStatus(ctx context.Context, id string, status Status) error

	// Cancel marks the event cancelled and records the penalty outcome.
	Cancel(ctx context.Context, id string, penaltyAmount float64, cancelledAt time.Time) error

	// ListIDs returns the ids of all non-cancelled events, for the
	// reconciliation sweep.
	ListIDs(ctx context.Context) ([]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var eventColumns = []string{
	"id", "organizer_id", "name", "description", "event_type",
	"start_time", "end_time", "retail_price", "status", "venue_id",
	"penalty_applied", "penalty_amount", "cancelled_at", "created_at", "updated_at",
}

func scanEvent(row pgx.Row, e *Event) error {
	return row.Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.Description, &e.EventType,
		&e.StartTime, &e.EndTime, &e.RetailPrice, &e.Status, &e.VenueID,
		&e.PenaltyApplied, &e.PenaltyAmount, &e.CancelledAt, &e.CreatedAt, &e.UpdatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, e *Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create event tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.events").
		Columns("organizer_id", "name", "description", "event_type",
			"start_time", "end_time", "retail_price", "status", "venue_id").
		Values(e.OrganizerID, e.Name, e.Description, e.EventType,
			e.StartTime, e.EndTime, e.RetailPrice, e.Status, e.VenueID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create event query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create event failed: %w", err)
	}

	if err := insertOfferings(ctx, tx, e.ID, e.OfferingIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertOfferings(ctx context.Context, tx pgx.Tx, eventID string, offeringIDs []string) error {
	if len(offeringIDs) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.event_offerings").Columns("event_id", "offering_id")
	for _, id := range offeringIDs {
		insert = insert.Values(eventID, id)
	}

	query, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build link offerings query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("link offerings failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(eventColumns...).
		From("public.events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event query failed: %w", err)
	}

	var e Event
	if err := scanEvent(r.pool.QueryRow(ctx, query, args...), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", err)
	}

	offeringIDs, err := r.listOfferingIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	e.OfferingIDs = offeringIDs

	return &e, nil
}

func (r *pgxRepository) listOfferingIDs(ctx context.Context, eventID string) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("offering_id").
		From("public.event_offerings").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list event offerings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list event offerings failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event offering failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(eventColumns, "count(*) OVER() AS total_count")...).
		From("public.events")

	if filter.OrganizerID != "" {
		query = query.Where(squirrel.Eq{"organizer_id": filter.OrganizerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.EventType != "" {
		query = query.Where(squirrel.Eq{"event_type": filter.EventType})
	}

	orderBy := "start_time"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list events query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	var total int

	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID, &e.OrganizerID, &e.Name, &e.Description, &e.EventType,
			&e.StartTime, &e.EndTime, &e.RetailPrice, &e.Status, &e.VenueID,
			&e.PenaltyApplied, &e.PenaltyAmount, &e.CancelledAt, &e.CreatedAt, &e.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event failed: %w", err)
		}
		events = append(events, &e)
	}

	return events, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Event) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.events").
		Set("name", e.Name).
		Set("description", e.Description).
		Set("event_type", e.EventType).
		Set("start_time", e.StartTime).
		Set("end_time", e.EndTime).
		Set("retail_price", e.RetailPrice).
		Set("venue_id", e.VenueID).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update event query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete event query failed: %w", err)
	}

	// Booking requests go with the event (ON DELETE CASCADE); bookings that
	// were already confirmed stay.
	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete event failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddOfferings(ctx context.Context, eventID string, offeringIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add offerings tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertOfferings(ctx, tx, eventID, offeringIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.events").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Cancel(ctx context.Context, id string, penaltyAmount float64, cancelledAt time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.events").
		Set("status", StatusCancelled).
		Set("penalty_applied", penaltyAmount > 0).
		Set("penalty_amount", penaltyAmount).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", cancelledAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cancel event query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("cancel event failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListIDs(ctx context.Context) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id").
		From("public.events").
		Where(squirrel.NotEq{"status": StatusCancelled}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list event ids query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list event ids failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event id failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
