package offering

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, o *Offering) error
	Delete(ctx context.Context, id string) error

	ListBookings(ctx context.Context, offeringID string) ([]*Booking, error)

	// ListSelectable returns offerings whose availability flag is set.
	ListSelectable(ctx context.Context) ([]*Offering, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var offeringColumns = []string{
	"id", "provider_id", "name", "category", "price", "location", "available", "created_at",
}

func scanOffering(row pgx.Row, o *Offering) error {
	return row.Scan(
		&o.ID, &o.ProviderID, &o.Name, &o.Category, &o.Price,
		&o.Location, &o.Available, &o.CreatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, o *Offering) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.offerings").
		Columns("provider_id", "name", "category", "price", "location", "available").
		Values(o.ProviderID, o.Name, o.Category, o.Price, o.Location, o.Available).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create offering query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Offering, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(offeringColumns...).
		From("public.offerings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get offering query failed: %w", err)
	}

	var o Offering
	if err := scanOffering(r.pool.QueryRow(ctx, query, args...), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get offering failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(offeringColumns, "count(*) OVER() AS total_count")...).
		From("public.offerings")

	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"provider_id": filter.ProviderID})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"location": "%" + filter.Location + "%"})
	}
	if filter.Available != nil {
		query = query.Where(squirrel.Eq{"available": *filter.Available})
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
		return nil, 0, fmt.Errorf("build list offerings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offerings failed: %w", err)
	}
	defer rows.Close()

	var offerings []*Offering
	var total int

	for rows.Next() {
		var o Offering
		if err := rows.Scan(
			&o.ID, &o.ProviderID, &o.Name, &o.Category, &o.Price,
			&o.Location, &o.Available, &o.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan offering failed: %w", err)
		}
		offerings = append(offerings, &o)
	}

	return offerings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Offering) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.offerings").
		Set("name", o.Name).
		Set("category", o.Category).
		Set("price", o.Price).
		Set("location", o.Location).
		Set("available", o.Available).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update offering query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update offering failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.offerings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete offering query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete offering failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListBookings(ctx context.Context, offeringID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "offering_id", "day", "user_email", "event_name", "created_at").
		From("public.offering_bookings").
		Where(squirrel.Eq{"offering_id": offeringID}).
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list offering bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offering bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.OfferingID, &b.Day, &b.UserEmail, &b.EventName, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan offering booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) ListSelectable(ctx context.Context) ([]*Offering, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(offeringColumns...).
		From("public.offerings").
		Where(squirrel.Eq{"available": true}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list selectable offerings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list selectable offerings failed: %w", err)
	}
	defer rows.Close()

	var offerings []*Offering
	for rows.Next() {
		var o Offering
		if err := scanOffering(rows, &o); err != nil {
			return nil, fmt.Errorf("scan selectable offering failed: %w", err)
		}
		offerings = append(offerings, &o)
	}
	return offerings, nil
}
