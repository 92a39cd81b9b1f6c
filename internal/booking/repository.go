package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Visibility restricts a listing to the requests an actor is entitled to see.
// Admins set All; providers see requests targeting resources they own;
// organizers see requests raised for their own events.
type Visibility struct {
	All            bool
	ProviderID     string
	OrganizerEmail string
}

type Repository interface {
	// CreateBatch inserts all requests in a single transaction, each starting
	// out pending. Either every request is created or none is.
	CreateBatch(ctx context.Context, reqs []*Request) error

	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, vis Visibility, filter Filter) ([]*Request, int, error)

	// Resolve moves a pending request to the given terminal status. The update
	// is conditional on the request still being pending, so concurrent
	// resolutions cannot overwrite each other. On approval the matching
	// booking row is appended in the same transaction.
	Resolve(ctx context.Context, id string, status Status, reason *string) (*Request, error)

	// StatusesByEvent returns the statuses of every request raised for the
	// event, in no particular order.
	StatusesByEvent(ctx context.Context, eventID string) ([]Status, error)

	// ItemProviderID resolves the owning provider of the targeted resource.
	ItemProviderID(ctx context.Context, kind Kind, itemID string) (string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var requestColumns = []string{
	"id", "kind", "item_id", "event_id", "event_name", "organizer_email",
	"day", "status", "reason", "created_at", "updated_at",
}

func scanRequest(row pgx.Row, req *Request) error {
	return row.Scan(
		&req.ID, &req.Kind, &req.ItemID, &req.EventID, &req.EventName,
		&req.OrganizerEmail, &req.Day, &req.Status, &req.Reason,
		&req.CreatedAt, &req.UpdatedAt,
	)
}

func (r *pgxRepository) CreateBatch(ctx context.Context, reqs []*Request) error {
	if len(reqs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create requests tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	for _, req := range reqs {
		req.Status = StatusPending
		query, args, err := psql.Insert("public.booking_requests").
			Columns("kind", "item_id", "event_id", "event_name", "organizer_email", "day", "status").
			Values(req.Kind, req.ItemID, req.EventID, req.EventName, req.OrganizerEmail, req.Day, req.Status).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create request query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return fmt.Errorf("create request failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(requestColumns...).
		From("public.booking_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req Request
	if err := scanRequest(r.pool.QueryRow(ctx, query, args...), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) List(ctx context.Context, vis Visibility, filter Filter) ([]*Request, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(requestColumns, "count(*) OVER() AS total_count")...).
		From("public.booking_requests")

	if !vis.All {
		var scope squirrel.Or
		if vis.ProviderID != "" {
			scope = append(scope,
				squirrel.And{
					squirrel.Eq{"kind": KindVenue},
					squirrel.Expr("item_id IN (SELECT id FROM public.venues WHERE provider_id = ?)", vis.ProviderID),
				},
				squirrel.And{
					squirrel.Eq{"kind": KindService},
					squirrel.Expr("item_id IN (SELECT id FROM public.offerings WHERE provider_id = ?)", vis.ProviderID),
				},
			)
		}
		if vis.OrganizerEmail != "" {
			scope = append(scope, squirrel.Eq{"organizer_email": vis.OrganizerEmail})
		}
		if len(scope) == 0 {
			return nil, 0, nil
		}
		query = query.Where(scope)
	}

	if filter.EventID != "" {
		query = query.Where(squirrel.Eq{"event_id": filter.EventID})
	}
	if filter.ItemID != "" {
		query = query.Where(squirrel.Eq{"item_id": filter.ItemID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("created_at " + orderDir)

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
		return nil, 0, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var reqs []*Request
	var total int

	for rows.Next() {
		var req Request
		if err := rows.Scan(
			&req.ID, &req.Kind, &req.ItemID, &req.EventID, &req.EventName,
			&req.OrganizerEmail, &req.Day, &req.Status, &req.Reason,
			&req.CreatedAt, &req.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan request failed: %w", err)
		}
		reqs = append(reqs, &req)
	}

	return reqs, total, nil
}

func (r *pgxRepository) Resolve(ctx context.Context, id string, status Status, reason *string) (*Request, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin resolve tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := resolveRequestQuery(id, status, reason, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("build resolve query failed: %w", err)
	}

	var req Request
	if err := scanRequest(tx.QueryRow(ctx, query, args...), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the request does not exist or it was resolved first by
			// a concurrent call. Look it up to tell the two apart.
			if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
				return nil, lookupErr
			}
			return nil, ErrAlreadyResolved
		}
		return nil, fmt.Errorf("resolve request failed: %w", err)
	}

	stmts, err := resolutionStatements(&req, status)
	if err != nil {
		return nil, err
	}
	for _, st := range stmts {
		if _, err := tx.Exec(ctx, st.query, st.args...); err != nil {
			return nil, fmt.Errorf("append booking failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit resolve tx failed: %w", err)
	}
	return &req, nil
}

// resolveRequestQuery builds the conditional status update. The pending guard
// in the WHERE clause is what makes concurrent resolutions lose cleanly
// instead of overwriting each other.
func resolveRequestQuery(id string, status Status, reason *string, now time.Time) (string, []any, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Update("public.booking_requests").
		Set("status", status).
		Set("reason", reason).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": StatusPending}).
		Suffix("RETURNING " + joinColumns(requestColumns)).
		ToSql()
}

// sqlStatement is one additional write of a resolution transaction.
type sqlStatement struct {
	query string
	args  []any
}

// resolutionStatements returns the writes that accompany a resolution beyond
// the request row itself. Confirming appends exactly one booking row for the
// targeted resource; rejecting writes nothing else.
func resolutionStatements(req *Request, status Status) ([]sqlStatement, error) {
	if status != StatusConfirmed {
		return nil, nil
	}
	query, args, err := appendBookingQuery(req)
	if err != nil {
		return nil, fmt.Errorf("build append booking query failed: %w", err)
	}
	return []sqlStatement{{query: query, args: args}}, nil
}

// appendBookingQuery records the confirmed occupation on the targeted resource.
func appendBookingQuery(req *Request) (string, []any, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	table := "public.venue_bookings"
	itemColumn := "venue_id"
	if req.Kind == KindService {
		table = "public.offering_bookings"
		itemColumn = "offering_id"
	}

	return psql.Insert(table).
		Columns(itemColumn, "day", "user_email", "event_name").
		Values(req.ItemID, req.Day, req.OrganizerEmail, req.EventName).
		ToSql()
}

func (r *pgxRepository) StatusesByEvent(ctx context.Context, eventID string) ([]Status, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("status").
		From("public.booking_requests").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build statuses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list statuses failed: %w", err)
	}
	defer rows.Close()

	var statuses []Status
	for rows.Next() {
		var s Status
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan status failed: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (r *pgxRepository) ItemProviderID(ctx context.Context, kind Kind, itemID string) (string, error) {
	table := "public.venues"
	if kind == KindService {
		table = "public.offerings"
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("provider_id").
		From(table).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build item provider query failed: %w", err)
	}

	var providerID string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&providerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get item provider failed: %w", err)
	}
	return providerID, nil
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}
