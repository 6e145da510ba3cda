package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/webshop-labs/order/internal/dal/postgres"
)

// ProductRepository is the catalog adapter: it resolves current product
// prices from the products table. Catalog management itself lives outside
// this service.
type ProductRepository struct {
	client *postgres.Client
}

// NewProductRepository creates a new product repository.
func NewProductRepository(client *postgres.Client) *ProductRepository {
	return &ProductRepository{
		client: client,
	}
}

// PricesByIDs resolves the current price of each requested product in a
// single batched lookup. Unknown ids are simply absent from the result; the
// caller decides how to report them.
func (r *ProductRepository) PricesByIDs(ctx context.Context, productIDs []int64) (map[int64]float64, error) {
	if len(productIDs) == 0 {
		return map[int64]float64{}, nil
	}

	query, args, err := sq.Select("product_id", "price").
		From("products").
		Where(sq.Eq{"product_id": productIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product prices query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query product prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[int64]float64, len(productIDs))
	for rows.Next() {
		var (
			id    int64
			price float64
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product price: %w", err)
		}
		prices[id] = price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return prices, nil
}
