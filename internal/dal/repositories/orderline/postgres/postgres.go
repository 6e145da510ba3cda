package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/webshop-labs/order/internal/dal/postgres"
	"github.com/webshop-labs/order/internal/service/models/orderline"
)

// OrderLineRepository implements the order line repository for PostgreSQL.
type OrderLineRepository struct {
	conn postgres.Querier
}

// NewOrderLineRepository creates a new order line repository bound to a pool
// or a transaction.
func NewOrderLineRepository(conn postgres.Querier) *OrderLineRepository {
	return &OrderLineRepository{
		conn: conn,
	}
}

// BulkInsert stores all lines of an order in one statement.
func (r *OrderLineRepository) BulkInsert(ctx context.Context, lines []orderline.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	builder := sq.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "list_price", "vat", "discount").
		PlaceholderFormat(sq.Dollar)

	for _, line := range lines {
		builder = builder.Values(
			line.OrderID,
			line.ProductID,
			line.Quantity,
			line.ListPrice,
			line.Vat,
			line.Discount,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order lines insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk insert order lines: %w", err)
	}

	return nil
}

// ListByOrderID fetches the lines of one order.
func (r *OrderLineRepository) ListByOrderID(ctx context.Context, orderID int64) ([]orderline.OrderLine, error) {
	query, args, err := sq.Select("order_id", "product_id", "quantity", "list_price", "vat", "discount").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("product_id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order lines select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []orderline.OrderLine
	for rows.Next() {
		var line orderline.OrderLine
		err := rows.Scan(
			&line.OrderID,
			&line.ProductID,
			&line.Quantity,
			&line.ListPrice,
			&line.Vat,
			&line.Discount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lines, nil
}
