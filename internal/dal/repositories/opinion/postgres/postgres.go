package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/webshop-labs/order/internal/dal/interfaces/iopinionrepo"
	"github.com/webshop-labs/order/internal/dal/postgres"
	"github.com/webshop-labs/order/internal/service/models/opinion"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// OpinionRepository implements the opinion repository for PostgreSQL.
type OpinionRepository struct {
	conn postgres.Querier
}

// NewOpinionRepository creates a new opinion repository bound to a pool or a
// transaction.
func NewOpinionRepository(conn postgres.Querier) *OpinionRepository {
	return &OpinionRepository{
		conn: conn,
	}
}

// Insert stores a new opinion. The unique constraint on order_id is the
// authoritative duplicate guard; a violation maps to iopinionrepo.ErrDuplicate.
func (r *OpinionRepository) Insert(ctx context.Context, op opinion.Opinion) (*opinion.Opinion, error) {
	query, args, err := sq.Insert("order_opinions").
		Columns("order_id", "rating", "content").
		Values(op.OrderID, op.Rating, op.Content).
		Suffix("RETURNING opinion_id, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build opinion insert query: %w", err)
	}

	inserted := op
	err = r.conn.QueryRow(ctx, query, args...).Scan(&inserted.ID, &inserted.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, iopinionrepo.ErrDuplicate
		}

		return nil, fmt.Errorf("failed to insert opinion for order %d: %w", op.OrderID, err)
	}

	return &inserted, nil
}

// ExistsByOrderID reports whether the order already has an opinion.
func (r *OpinionRepository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	query, args, err := sq.Select("1").
		From("order_opinions").
		Where(sq.Eq{"order_id": orderID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build opinion exists query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to query opinion for order %d: %w", orderID, err)
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("rows iteration error: %w", err)
	}

	return exists, nil
}
