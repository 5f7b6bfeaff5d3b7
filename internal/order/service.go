package order

import (
	"context"
	"strings"

	"dineqr-be/internal/events"
	"dineqr-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, orderID int) (*Order, error)
	List(ctx context.Context, filter *OrderFilterInput, limit, page *int32) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int, status OrderStatus) (*Order, error)
	Cancel(ctx context.Context, orderID int, reason, cancelledBy string) error
	CancelItem(ctx context.Context, orderID, itemID int, reason, cancelledBy string) error
}

type service struct {
	repo Repository
	pub  events.Publisher
}

func NewService(repo Repository, pub events.Publisher) Service {
	return &service{repo: repo, pub: pub}
}

// Create validates the request, snapshots totals, persists order and items
// atomically, and broadcasts the new order. Validation failures never touch
// the database.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int("table_number", input.TableNumber),
	)

	if err := validateCreateInput(input); err != nil {
		log.Warn("order validation failed", zap.Error(err))
		return nil, err
	}

	o := &Order{
		TableNumber:   input.TableNumber,
		CustomerID:    input.CustomerID,
		Currency:      strings.ToUpper(input.Currency),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: derivePaymentStatus(input.PaymentMethod),
		Status:        StatusPending,
		Items:         make([]OrderItem, 0, len(input.Items)),
	}

	var totalINR, totalUSD float64
	for _, in := range input.Items {
		totalINR += in.PriceINR * float64(in.Quantity)
		totalUSD += in.PriceUSD * float64(in.Quantity)
		o.Items = append(o.Items, OrderItem{
			MenuItemID: in.MenuItemID,
			Name:       in.Name,
			Quantity:   in.Quantity,
			PriceINR:   in.PriceINR,
			PriceUSD:   in.PriceUSD,
		})
	}
	o.TotalAmountINR = round2(totalINR)
	o.TotalAmountUSD = round2(totalUSD)

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	s.broadcast(ctx, events.EventNewOrder, o)

	log.Info("order created",
		zap.Int("order_id", o.ID),
		zap.Float64("total_inr", o.TotalAmountINR),
	)
	return o, nil
}

func (s *service) Get(ctx context.Context, orderID int) (*Order, error) {
	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) List(ctx context.Context, filter *OrderFilterInput, limit, page *int32) ([]*Order, error) {
	return s.repo.FetchOrders(ctx, filter, limit, page)
}

// UpdateStatus applies the status machine: forward-only through the kitchen
// flow, cancellation from any non-terminal state.
func (s *service) UpdateStatus(ctx context.Context, orderID int, status OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Int("order_id", orderID),
		zap.String("status", string(status)),
	)

	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, status) {
		log.Warn("rejected status transition",
			zap.String("from", string(current.Status)),
		)
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.broadcastStatus(ctx, updated)

	log.Info("order status updated")
	return updated, nil
}

// Cancel is idempotent: cancelling an already-cancelled order succeeds and
// appends another audit record.
func (s *service) Cancel(ctx context.Context, orderID int, reason, cancelledBy string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Cancel"),
		zap.Int("order_id", orderID),
	)

	if err := s.repo.CancelOrder(ctx, orderID, reason, cancelledBy); err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		return err
	}

	if updated, err := s.repo.GetOrderDetail(ctx, orderID); err == nil {
		s.broadcastStatus(ctx, updated)
	}

	log.Info("order cancelled", zap.String("cancelled_by", cancelledBy))
	return nil
}

// CancelItem cancels one item without recomputing the order totals: the
// amounts recorded at creation stay as the financial snapshot.
func (s *service) CancelItem(ctx context.Context, orderID, itemID int, reason, cancelledBy string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelItem"),
		zap.Int("order_id", orderID),
		zap.Int("item_id", itemID),
	)

	if err := s.repo.CancelOrderItem(ctx, orderID, itemID, reason, cancelledBy); err != nil {
		log.Error("failed to cancel order item", zap.Error(err))
		return err
	}

	if updated, err := s.repo.GetOrderDetail(ctx, orderID); err == nil {
		s.broadcastStatus(ctx, updated)
	}

	log.Info("order item cancelled", zap.String("cancelled_by", cancelledBy))
	return nil
}

// broadcast is fire-and-forget: the mutation already committed, so a
// broadcaster fault is logged and swallowed.
func (s *service) broadcast(ctx context.Context, event string, o *Order) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, event, ToOrderResponse(o)); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish event",
			zap.String("event", event),
			zap.Int("order_id", o.ID),
			zap.Error(err),
		)
	}
}

// broadcastStatus publishes order-status-updated with items omitted.
func (s *service) broadcastStatus(ctx context.Context, o *Order) {
	if s.pub == nil {
		return
	}
	slim := *o
	slim.Items = nil
	if err := s.pub.Publish(ctx, events.EventOrderStatusUpdated, ToOrderResponse(&slim)); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish event",
			zap.String("event", events.EventOrderStatusUpdated),
			zap.Int("order_id", o.ID),
			zap.Error(err),
		)
	}
}

func validateCreateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyOrder
	}

	switch strings.ToUpper(input.Currency) {
	case CurrencyINR, CurrencyUSD:
	default:
		return ErrInvalidCurrency
	}

	if strings.TrimSpace(input.PaymentMethod) == "" {
		return ErrPaymentMethodRequired
	}

	for _, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return ErrItemNameRequired
		}
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if item.PriceINR < 0 || item.PriceUSD < 0 {
			return ErrInvalidPrice
		}
	}

	return nil
}

// derivePaymentStatus: cash settles at the table after service, anything
// else was charged up front.
func derivePaymentStatus(method string) PaymentStatus {
	if strings.EqualFold(method, "cash") {
		return PaymentPending
	}
	return PaymentPaid
}
