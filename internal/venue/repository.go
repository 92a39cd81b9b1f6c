package venue

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
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error

	// AddAvailability marks the given days as available. Days already in the
	// availability set are ignored.
	AddAvailability(ctx context.Context, venueID string, days []time.Time) error

	// RemoveAvailability removes a day from the availability set. It fails
	// with ErrDateBooked while a confirmed booking exists on that day:
	// availability membership is a precondition for booking.
	RemoveAvailability(ctx context.Context, venueID string, day time.Time) error

	ListAvailability(ctx context.Context, venueID string) ([]time.Time, error)
	ListBookings(ctx context.Context, venueID string) ([]*Booking, error)

	// ListSelectable returns venues bookable on the given day: the day is in
	// the availability set, has no confirmed booking, and is not targeted by
	// a pending venue booking request.
	ListSelectable(ctx context.Context, day time.Time) ([]*Venue, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var venueColumns = []string{
	"id", "provider_id", "name", "location", "capacity_min", "capacity_max",
	"hourly_price", "event_price", "photo_path", "created_at",
}

func scanVenue(row pgx.Row, v *Venue) error {
	return row.Scan(
		&v.ID, &v.ProviderID, &v.Name, &v.Location, &v.CapacityMin, &v.CapacityMax,
		&v.HourlyPrice, &v.EventPrice, &v.PhotoPath, &v.CreatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, v *Venue) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.venues").
		Columns("provider_id", "name", "location", "capacity_min", "capacity_max", "hourly_price", "event_price").
		Values(v.ProviderID, v.Name, v.Location, v.CapacityMin, v.CapacityMax, v.HourlyPrice, v.EventPrice).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create venue query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&v.ID, &v.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(venueColumns...).
		From("public.venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get venue query failed: %w", err)
	}

	var v Venue
	if err := scanVenue(r.pool.QueryRow(ctx, query, args...), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(venueColumns, "count(*) OVER() AS total_count")...).
		From("public.venues")

	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"provider_id": filter.ProviderID})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"location": "%" + filter.Location + "%"})
	}
	if filter.MinCapacity > 0 {
		query = query.Where(squirrel.GtOrEq{"capacity_max": filter.MinCapacity})
	}

	orderBy := "created_at"
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
		return nil, 0, fmt.Errorf("build list venues query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues failed: %w", err)
	}
	defer rows.Close()

	var venues []*Venue
	var total int

	for rows.Next() {
		var v Venue
		if err := rows.Scan(
			&v.ID, &v.ProviderID, &v.Name, &v.Location, &v.CapacityMin, &v.CapacityMax,
			&v.HourlyPrice, &v.EventPrice, &v.PhotoPath, &v.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan venue failed: %w", err)
		}
		venues = append(venues, &v)
	}

	return venues, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Venue) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.venues").
		Set("name", v.Name).
		Set("location", v.Location).
		Set("capacity_min", v.CapacityMin).
		Set("capacity_max", v.CapacityMax).
		Set("hourly_price", v.HourlyPrice).
		Set("event_price", v.EventPrice).
		Set("photo_path", v.PhotoPath).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update venue query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update venue failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete venue query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete venue failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddAvailability(ctx context.Context, venueID string, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.venue_availability").Columns("venue_id", "day")
	for _, d := range days {
		insert = insert.Values(venueID, Day(d))
	}
	query, args, err := insert.Suffix("ON CONFLICT (venue_id, day) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build add availability query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("add availability failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveAvailability(ctx context.Context, venueID string, day time.Time) error {
	day = Day(day)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove availability failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock out concurrent approvals for the same venue/day, then verify no
	// confirmed booking occupies the day.
	var booked bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.venue_bookings
			WHERE venue_id = $1 AND day = $2
			FOR SHARE
		)`, venueID, day).Scan(&booked)
	if err != nil {
		return fmt.Errorf("check venue booking failed: %w", err)
	}
	if booked {
		return ErrDateBooked
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM public.venue_availability WHERE venue_id = $1 AND day = $2`,
		venueID, day); err != nil {
		return fmt.Errorf("remove availability failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) ListAvailability(ctx context.Context, venueID string) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT day FROM public.venue_availability WHERE venue_id = $1 ORDER BY day`,
		venueID)
	if err != nil {
		return nil, fmt.Errorf("list availability failed: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan availability day failed: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}

func (r *pgxRepository) ListBookings(ctx context.Context, venueID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "venue_id", "day", "user_email", "event_name", "created_at").
		From("public.venue_bookings").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list venue bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list venue bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.VenueID, &b.Day, &b.UserEmail, &b.EventName, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venue booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

// selectableVenuesQuery matches venues bookable on a day: the day is in the
// availability set, no confirmed booking occupies it, and no pending venue
// booking request targets it. Only pending requests block; a rejected request
// frees the day again.
const selectableVenuesQuery = `
	SELECT v.id, v.provider_id, v.name, v.location, v.capacity_min, v.capacity_max,
	       v.hourly_price, v.event_price, v.photo_path, v.created_at
	FROM public.venues v
	WHERE EXISTS (
		SELECT 1 FROM public.venue_availability va
		WHERE va.venue_id = v.id AND va.day = $1
	)
	AND NOT EXISTS (
		SELECT 1 FROM public.venue_bookings vb
		WHERE vb.venue_id = v.id AND vb.day = $1
	)
	AND NOT EXISTS (
		SELECT 1 FROM public.booking_requests br
		WHERE br.kind = 'venue' AND br.item_id = v.id
		  AND br.day = $1 AND br.status = 'pending'
	)
	ORDER BY v.name
`

func (r *pgxRepository) ListSelectable(ctx context.Context, day time.Time) ([]*Venue, error) {
	rows, err := r.pool.Query(ctx, selectableVenuesQuery, Day(day))
	if err != nil {
		return nil, fmt.Errorf("list selectable venues failed: %w", err)
	}
	defer rows.Close()

	var venues []*Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(
			&v.ID, &v.ProviderID, &v.Name, &v.Location, &v.CapacityMin, &v.CapacityMax,
			&v.HourlyPrice, &v.EventPrice, &v.PhotoPath, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan selectable venue failed: %w", err)
		}
		venues = append(venues, &v)
	}
	return venues, nil
}
