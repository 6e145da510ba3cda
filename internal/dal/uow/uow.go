package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop-labs/order/internal/dal/interfaces/iopinionrepo"
	"github.com/webshop-labs/order/internal/dal/interfaces/iorderlinerepo"
	"github.com/webshop-labs/order/internal/dal/interfaces/iorderrepo"
	"github.com/webshop-labs/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/webshop-labs/order/internal/dal/postgres"
	opinionrepo "github.com/webshop-labs/order/internal/dal/repositories/opinion/postgres"
	orderrepo "github.com/webshop-labs/order/internal/dal/repositories/order/postgres"
	orderlinerepo "github.com/webshop-labs/order/internal/dal/repositories/orderline/postgres"
	outboxrepo "github.com/webshop-labs/order/internal/dal/repositories/outbox/postgres"
)

// unitOfWork scopes repositories to a single transaction so the order
// header, its lines and the outbox event commit or roll back together.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.Repository
	orderLineRepo iorderlinerepo.Repository
	opinionRepo   iopinionrepo.Repository
	outboxRepo    ioutboxrepo.Repository
}

// NewUnitOfWork creates a unit of work. Until Begin is called the
// repositories run directly against the pool.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		pool:          client.Pool(),
		orderRepo:     orderrepo.NewOrderRepository(client.Pool()),
		orderLineRepo: orderlinerepo.NewOrderLineRepository(client.Pool()),
		opinionRepo:   opinionrepo.NewOpinionRepository(client.Pool()),
		outboxRepo:    outboxrepo.NewOutboxRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.Repository {
	return u.orderRepo
}

func (u *unitOfWork) OrderLineRepository() iorderlinerepo.Repository {
	return u.orderLineRepo
}

func (u *unitOfWork) OpinionRepository() iopinionrepo.Repository {
	return u.opinionRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.Repository {
	return u.outboxRepo
}

// Begin opens a transaction and rebinds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewOrderRepository(tx)
	u.orderLineRepo = orderlinerepo.NewOrderLineRepository(tx)
	u.opinionRepo = opinionrepo.NewOpinionRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

// Commit commits the open transaction.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback aborts the open transaction. Safe to defer after a commit: the
// already-closed error is swallowed.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}

	return nil
}
