package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/webshop-labs/order/internal/dal/postgres"
	"github.com/webshop-labs/order/internal/service/models/opinion"
	"github.com/webshop-labs/order/internal/service/models/order"
)

// orderDal represents the order data access layer model.
type orderDal struct {
	OrderID      int64
	SubjectID    *int64
	CustomerName string
	Email        string
	Phone        string
	StatusID     int
	OrderDate    time.Time
}

// toModel converts orderDal to the service layer Order model.
func (o *orderDal) toModel() (*order.Order, error) {
	status, err := order.StatusFromID(o.StatusID)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:           o.OrderID,
		SubjectID:    o.SubjectID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Status:       status,
		OrderDate:    o.OrderDate,
	}, nil
}

// OrderRepository implements the order repository for PostgreSQL.
type OrderRepository struct {
	conn postgres.Querier
}

// NewOrderRepository creates a new order repository bound to a pool or a
// transaction.
func NewOrderRepository(conn postgres.Querier) *OrderRepository {
	return &OrderRepository{
		conn: conn,
	}
}

// Insert stores a new order header and returns the assigned id.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (int64, error) {
	query, args, err := sq.Insert("orders").
		Columns("user_id", "customer_name", "email", "phone", "status_id", "order_date").
		Values(o.SubjectID, o.CustomerName, o.Email, o.Phone, o.Status.ID(), o.OrderDate).
		Suffix("RETURNING order_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build order insert query: %w", err)
	}

	var id int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	return id, nil
}

// GetByIDForUpdate fetches an order header with a row lock so concurrent
// read-check-write sequences on the same order serialize. Returns nil when
// the order does not exist.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select("order_id", "user_id", "customer_name", "email", "phone", "status_id", "order_date").
		From("orders").
		Where(sq.Eq{"order_id": id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order select query: %w", err)
	}

	var dal orderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.OrderID,
		&dal.SubjectID,
		&dal.CustomerName,
		&dal.Email,
		&dal.Phone,
		&dal.StatusID,
		&dal.OrderDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	model, err := dal.toModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	return model, nil
}

// UpdateStatus persists a new status for the order. Nothing else on the
// order row changes.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	query, args, err := sq.Update("orders").
		Set("status_id", status.ID()).
		Where(sq.Eq{"order_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, err)
	}

	return nil
}

// Query lists orders matching the filter, newest first, each joined with its
// opinion when one exists.
func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(
		"o.order_id",
		"o.user_id",
		"o.customer_name",
		"o.email",
		"o.phone",
		"o.status_id",
		"o.order_date",
		"op.opinion_id",
		"op.rating",
		"op.content",
		"op.created_at",
	).
		From("orders o").
		LeftJoin("order_opinions op ON op.order_id = o.order_id").
		OrderBy("o.order_date DESC", "o.order_id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.SubjectID != nil {
		builder = builder.Where(sq.Eq{"o.user_id": *filter.SubjectID})
	}
	if filter.StatusID != nil {
		builder = builder.Where(sq.Eq{"o.status_id": *filter.StatusID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var (
			dal            orderDal
			opinionID      *int64
			rating         *int
			content        *string
			opinionCreated *time.Time
		)

		err := rows.Scan(
			&dal.OrderID,
			&dal.SubjectID,
			&dal.CustomerName,
			&dal.Email,
			&dal.Phone,
			&dal.StatusID,
			&dal.OrderDate,
			&opinionID,
			&rating,
			&content,
			&opinionCreated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.toModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}

		if opinionID != nil {
			model.Opinion = &opinion.Opinion{
				ID:        *opinionID,
				OrderID:   dal.OrderID,
				Rating:    *rating,
				Content:   *content,
				CreatedAt: *opinionCreated,
			}
		}

		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
