package supplyrequests

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// Repository defines persistence operations for supply requests.
type Repository interface {
	List(ctx context.Context) ([]SupplyRequest, error)
	Get(ctx context.Context, id int64) (SupplyRequest, error)
	Create(ctx context.Context, req SupplyRequest) (int64, error)
	Update(ctx context.Context, req SupplyRequest) error
	Delete(ctx context.Context, id int64) error
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGRepository implements Repository using PostgreSQL. Each method runs a
// single statement.
type PGRepository struct {
	db DBTX
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(db DBTX) *PGRepository {
	return &PGRepository{db: db}
}

// List returns every request, newest first.
func (r *PGRepository) List(ctx context.Context) ([]SupplyRequest, error) {
	rows, err := r.db.Query(ctx, listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SupplyRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// Get fetches one request.
func (r *PGRepository) Get(ctx context.Context, id int64) (SupplyRequest, error) {
	req, err := scanRequest(r.db.QueryRow(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SupplyRequest{}, shared.ErrNotFound
		}
		return SupplyRequest{}, err
	}
	return req, nil
}

// Create inserts a row and returns the generated id.
func (r *PGRepository) Create(ctx context.Context, req SupplyRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, insertQuery,
		req.ItemName, req.Quantity, string(req.Priority), string(req.Status), req.RequestedBy,
		req.NeededBy, req.Justification, req.PreferredSupplier, req.RequestedOn,
	).Scan(&id)
	return id, err
}

// Update overwrites every mutable column of the row keyed by req.ID.
func (r *PGRepository) Update(ctx context.Context, req SupplyRequest) error {
	tag, err := r.db.Exec(ctx, updateQuery,
		req.ItemName, req.Quantity, string(req.Priority), string(req.Status), req.RequestedBy,
		req.NeededBy, req.Justification, req.PreferredSupplier, req.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the row keyed by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteQuery, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanRequest(row pgx.Row) (SupplyRequest, error) {
	var (
		req      SupplyRequest
		priority string
		status   string
	)
	err := row.Scan(
		&req.ID, &req.ItemName, &req.Quantity, &priority, &status,
		&req.RequestedBy, &req.NeededBy, &req.Justification, &req.PreferredSupplier, &req.RequestedOn,
	)
	if err != nil {
		return SupplyRequest{}, err
	}
	req.Priority = Priority(priority)
	req.Status = Status(status)
	return req, nil
}

var _ Repository = (*PGRepository)(nil)
