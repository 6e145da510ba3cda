package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/webshop-labs/order/internal/apperr"
	"github.com/webshop-labs/order/internal/dal/interfaces/iopinionrepo"
	"github.com/webshop-labs/order/internal/dal/interfaces/iorderlinerepo"
	"github.com/webshop-labs/order/internal/dal/interfaces/iorderrepo"
	"github.com/webshop-labs/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/webshop-labs/order/internal/dal/postgres"
	"github.com/webshop-labs/order/internal/dal/uow"
	"github.com/webshop-labs/order/internal/service/models/event"
	"github.com/webshop-labs/order/internal/service/models/opinion"
	"github.com/webshop-labs/order/internal/service/models/order"
	"github.com/webshop-labs/order/internal/service/models/orderline"
)

// catalog resolves current product prices. The catalog itself is an external
// collaborator; this service only ever reads prices from it.
type catalog interface {
	PricesByIDs(ctx context.Context, productIDs []int64) (map[int64]float64, error)
}

// unitOfWork scopes repositories to one transaction.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.Repository
	OrderLineRepository() iorderlinerepo.Repository
	OpinionRepository() iopinionrepo.Repository
	OutboxRepository() ioutboxrepo.Repository
}

// OrderService owns the order lifecycle: creation, status transitions and
// customer opinions.
type OrderService struct {
	catalog    catalog
	uowFactory func() unitOfWork
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil || s.uowFactory == nil {
		panic("ordersvc: catalog and unit-of-work source are required")
	}

	return s
}

// WithPostgresClient wires the service to Postgres-backed units of work.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithCatalog sets the catalog price resolver.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c catalog) option {
	return func(s *OrderService) {
		s.catalog = c
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work source. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(f func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = f
	}
}

// LineRequest is one requested product-quantity pair.
type LineRequest struct {
	ProductID int64
	Quantity  int `validate:"gt=0"`
}

// CreateOrderRequest is the raw order-creation payload after decoding.
type CreateOrderRequest struct {
	CustomerName string `validate:"required"`
	Email        string `validate:"required"`
	Phone        string `validate:"required,intl_phone"`
	SubjectID    *int64
	Lines        []LineRequest `validate:"required,min=1,dive"`
}

// CreateOrder validates the request, snapshots catalog prices and persists
// the order header with all its lines in a single transaction. Returns the
// new order id.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	if err := validateCreateOrder(req); err != nil {
		return 0, err
	}

	prices, err := s.resolvePrices(ctx, req.Lines)
	if err != nil {
		return 0, err
	}

	work := s.uowFactory()
	if err := work.Begin(ctx); err != nil {
		return 0, apperr.Upstream("failed to begin transaction", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	newOrder := order.Order{
		SubjectID:    req.SubjectID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       order.StatusNew,
		OrderDate:    time.Now(),
	}

	orderID, err := work.OrderRepository().Insert(ctx, newOrder)
	if err != nil {
		return 0, apperr.Upstream("failed to insert order", err)
	}

	lines := make([]orderline.OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		lines = append(lines, orderline.OrderLine{
			OrderID:   orderID,
			ProductID: lr.ProductID,
			Quantity:  lr.Quantity,
			ListPrice: prices[lr.ProductID],
			Vat:       orderline.DefaultVat,
			Discount:  orderline.DefaultDiscount,
		})
	}

	if err := work.OrderLineRepository().BulkInsert(ctx, lines); err != nil {
		return 0, apperr.Upstream("failed to insert order lines", err)
	}

	msg, err := event.NewMessage(event.RoutingKeyOrderCreated, event.OrderCreated{
		OrderID:      orderID,
		CustomerName: newOrder.CustomerName,
		Email:        newOrder.Email,
		LineCount:    len(lines),
		OrderDate:    newOrder.OrderDate,
	})
	if err != nil {
		return 0, apperr.Upstream("failed to build order created event", err)
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return 0, apperr.Upstream("failed to stage order created event", err)
	}

	if err := work.Commit(ctx); err != nil {
		return 0, apperr.Upstream("failed to commit order", err)
	}

	return orderID, nil
}

// resolvePrices resolves the catalog price of every distinct requested
// product in one batched lookup. Any unresolved id fails the whole request
// with the precise missing list.
func (s *OrderService) resolvePrices(ctx context.Context, lines []LineRequest) (map[int64]float64, error) {
	distinct := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, lr := range lines {
		if _, ok := seen[lr.ProductID]; ok {
			continue
		}
		seen[lr.ProductID] = struct{}{}
		distinct = append(distinct, lr.ProductID)
	}

	prices, err := s.catalog.PricesByIDs(ctx, distinct)
	if err != nil {
		return nil, apperr.Upstream("failed to resolve product prices", err)
	}

	if len(prices) != len(distinct) {
		var missing []int64
		for _, id := range distinct {
			if _, ok := prices[id]; !ok {
				missing = append(missing, id)
			}
		}

		return nil, apperr.NotFound(
			"unknown-product",
			"Unknown product",
			"The order references products that do not exist in the catalog.",
		).With("missing_product_ids", missing)
	}

	return prices, nil
}

// StatusTransition reports a committed status change.
type StatusTransition struct {
	PreviousStatus order.Status
	NewStatus      order.Status
}

// ChangeStatus moves an existing order to a new status. The read-check-write
// sequence runs in one transaction with a row lock so two concurrent
// transitions cannot both succeed against a stale current status.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID int64, newStatusID int) (*StatusTransition, error) {
	work := s.uowFactory()
	if err := work.Begin(ctx); err != nil {
		return nil, apperr.Upstream("failed to begin transaction", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	current, err := work.OrderRepository().GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, apperr.Upstream("failed to load order", err)
	}
	if current == nil {
		return nil, orderNotFound(orderID)
	}

	// A missing order is reported before the target status is even looked at.
	next, err := order.StatusFromID(newStatusID)
	if err != nil {
		return nil, apperr.Validation(
			"unknown-status",
			"Unknown target status",
			fmt.Sprintf("Status with id %d is not defined.", newStatusID),
		).With("provided_id", newStatusID)
	}

	// Cancellation is terminal regardless of the rank of the target status.
	if current.Status == order.StatusCancelled {
		return nil, apperr.StateViolation(
			"order-cancelled",
			"Order cancelled",
			"The status of an order that has already been cancelled cannot be changed.",
		).With("current_status", current.Status.String())
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, apperr.StateViolation(
			"regressive-transition",
			"Status regression not allowed",
			fmt.Sprintf("The order status cannot move from %s back to %s.", current.Status, next),
		).
			With("current_status", current.Status.String()).
			With("requested_status", next.String())
	}

	if err := work.OrderRepository().UpdateStatus(ctx, orderID, next); err != nil {
		return nil, apperr.Upstream("failed to update order status", err)
	}

	msg, err := event.NewMessage(event.RoutingKeyOrderStatusChanged, event.OrderStatusChanged{
		OrderID:        orderID,
		PreviousStatus: current.Status.String(),
		NewStatus:      next.String(),
	})
	if err != nil {
		return nil, apperr.Upstream("failed to build status changed event", err)
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, apperr.Upstream("failed to stage status changed event", err)
	}

	if err := work.Commit(ctx); err != nil {
		return nil, apperr.Upstream("failed to commit status change", err)
	}

	return &StatusTransition{
		PreviousStatus: current.Status,
		NewStatus:      next,
	}, nil
}

// AddOpinion attaches a customer opinion to a completed or cancelled order
// the submitter owns. At most one opinion exists per order; the database
// unique constraint backs the pre-check up under concurrency.
func (s *OrderService) AddOpinion(ctx context.Context, orderID, subjectID int64, rating int, content string) (*opinion.Opinion, error) {
	if err := validateOpinion(rating, content); err != nil {
		return nil, err
	}

	work := s.uowFactory()
	if err := work.Begin(ctx); err != nil {
		return nil, apperr.Upstream("failed to begin transaction", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	current, err := work.OrderRepository().GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, apperr.Upstream("failed to load order", err)
	}
	if current == nil {
		return nil, orderNotFound(orderID)
	}

	if !current.OwnedBy(subjectID) {
		return nil, apperr.Forbidden(
			"not-owner",
			"Access denied",
			"Opinions can only be added to your own orders.",
		)
	}

	if !current.Status.Terminal() {
		return nil, apperr.StateViolation(
			"not-eligible",
			"Opinion not allowed yet",
			"Opinions can only be added to fulfilled or cancelled orders.",
		).With("current_status", current.Status.String())
	}

	exists, err := work.OpinionRepository().ExistsByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperr.Upstream("failed to check existing opinion", err)
	}
	if exists {
		return nil, duplicateOpinion()
	}

	inserted, err := work.OpinionRepository().Insert(ctx, opinion.Opinion{
		OrderID: orderID,
		Rating:  rating,
		Content: content,
	})
	if errors.Is(err, iopinionrepo.ErrDuplicate) {
		return nil, duplicateOpinion()
	}
	if err != nil {
		return nil, apperr.Upstream("failed to insert opinion", err)
	}

	msg, err := event.NewMessage(event.RoutingKeyOpinionCreated, event.OpinionCreated{
		OrderID: orderID,
		Rating:  rating,
	})
	if err != nil {
		return nil, apperr.Upstream("failed to build opinion created event", err)
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, apperr.Upstream("failed to stage opinion created event", err)
	}

	if err := work.Commit(ctx); err != nil {
		return nil, apperr.Upstream("failed to commit opinion", err)
	}

	return inserted, nil
}

// GetOrders lists orders matching the filter, joined with their opinions.
func (s *OrderService) GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	work := s.uowFactory()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, apperr.Upstream("failed to query orders", err)
	}

	if orders == nil {
		orders = []order.Order{}
	}

	return orders, nil
}

// GetOrdersByStatus lists orders in the given status. An unknown status id
// is reported as not found, matching the status dictionary semantics.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, statusID int) ([]order.Order, error) {
	if _, err := order.StatusFromID(statusID); err != nil {
		return nil, apperr.NotFound(
			"unknown-status",
			"Status does not exist",
			fmt.Sprintf("No status with id %d is defined.", statusID),
		).With("provided_id", statusID)
	}

	return s.GetOrders(ctx, order.QueryOrdersModel{StatusID: &statusID})
}

// StatusInfo is one entry of the status dictionary.
type StatusInfo struct {
	StatusID   int    `json:"statusId"`
	StatusName string `json:"statusName"`
}

// ListStatuses returns the status dictionary. The enumeration is closed, so
// it is served from the domain model rather than a table read.
func (s *OrderService) ListStatuses() []StatusInfo {
	statuses := make([]StatusInfo, 0, len(order.All()))
	for _, st := range order.All() {
		statuses = append(statuses, StatusInfo{StatusID: st.ID(), StatusName: st.String()})
	}

	return statuses
}

func orderNotFound(orderID int64) error {
	return apperr.NotFound(
		"order-not-found",
		"Order does not exist",
		fmt.Sprintf("No order with id %d was found.", orderID),
	).With("provided_id", orderID)
}

func duplicateOpinion() error {
	return apperr.Conflict(
		"duplicate-opinion",
		"Opinion already exists",
		"An opinion has already been added to this order.",
	)
}
