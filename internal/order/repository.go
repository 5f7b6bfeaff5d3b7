package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dineqr-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrderDetail(ctx context.Context, orderID int) (*Order, error)
	FetchOrders(ctx context.Context, filter *OrderFilterInput, limit, page *int32) ([]*Order, error)
	FetchOrderItems(ctx context.Context, orderIDs []int) (map[int][]OrderItem, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status OrderStatus) error
	CancelOrder(ctx context.Context, orderID int, reason, cancelledBy string) error
	CancelOrderItem(ctx context.Context, orderID, itemID int, reason, cancelledBy string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder writes the order and all its items as one transaction. The
// table number is re-resolved inside the transaction so an order can never
// commit against a table that was deleted after validation.
func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Int("table_number", o.TableNumber),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// 1. Resolve the table inside the transaction
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM tables
		WHERE number = $1 AND active = TRUE
	`, o.TableNumber).Scan(&o.TableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("table not found")
			return ErrTableNotFound
		}
		log.Error("failed to resolve table", zap.Error(err))
		return err
	}

	// 2. Insert the order row
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			table_id, table_number, customer_id, currency,
			payment_method, payment_status, status,
			total_amount_inr, total_amount_usd
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at
	`,
		o.TableID,
		o.TableNumber,
		o.CustomerID,
		o.Currency,
		o.PaymentMethod,
		o.PaymentStatus,
		o.Status,
		o.TotalAmountINR,
		o.TotalAmountUSD,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 3. Insert item rows, snapshotting name and prices
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		item.Status = ItemActive

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, menu_item_id, name, quantity,
				price_inr, price_usd, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`,
			item.OrderID,
			item.MenuItemID,
			item.Name,
			item.Quantity,
			item.PriceINR,
			item.PriceUSD,
			item.Status,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed", zap.Int("order_id", o.ID))
	return nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID int) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, table_id, table_number, customer_id, currency,
		       payment_method, payment_status, status,
		       total_amount_inr, total_amount_usd, prep_minutes,
		       created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.TableID, &o.TableNumber, &o.CustomerID, &o.Currency,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.TotalAmountINR, &o.TotalAmountUSD, &o.PrepMinutes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity,
		       price_inr, price_usd, status
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Quantity, &item.PriceINR, &item.PriceUSD, &item.Status,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) FetchOrders(
	ctx context.Context,
	filter *OrderFilterInput,
	limit, page *int32,
) ([]*Order, error) {

	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	offset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FetchOrders"),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	query := `
		SELECT o.id, o.table_id, o.table_number, o.customer_id, o.currency,
		       o.payment_method, o.payment_status, o.status,
		       o.total_amount_inr, o.total_amount_usd, o.prep_minutes,
		       o.created_at, o.updated_at
		FROM orders o
		WHERE 1=1
	`

	args := []interface{}{}
	argIndex := 1

	if filter != nil {
		if filter.Status != nil {
			query += fmt.Sprintf(" AND o.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}
		if filter.TableNumber != nil {
			query += fmt.Sprintf(" AND o.table_number = $%d", argIndex)
			args = append(args, *filter.TableNumber)
			argIndex++
		}
		if filter.CustomerID != nil {
			query += fmt.Sprintf(" AND o.customer_id = $%d", argIndex)
			args = append(args, *filter.CustomerID)
			argIndex++
		}
		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
			args = append(args, *filter.DateFrom)
			argIndex++
		}
		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
			args = append(args, *filter.DateTo)
			argIndex++
		}
	}

	query += " ORDER BY o.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	log.Debug("executing fetch orders query",
		zap.String("query", strings.Join(strings.Fields(query), " ")),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var orderIDs []int

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.TableID, &o.TableNumber, &o.CustomerID, &o.Currency,
			&o.PaymentMethod, &o.PaymentStatus, &o.Status,
			&o.TotalAmountINR, &o.TotalAmountUSD, &o.PrepMinutes,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(orders) == 0 {
		return []*Order{}, nil
	}

	itemsByOrder, err := r.FetchOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = itemsByOrder[o.ID]
	}

	log.Info("fetch orders success", zap.Int("count", len(orders)))
	return orders, nil
}

// FetchOrderItems batch-loads items for a set of orders in one query.
func (r *repository) FetchOrderItems(ctx context.Context, orderIDs []int) (map[int][]OrderItem, error) {
	result := make(map[int][]OrderItem)
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity,
		       price_inr, price_usd, status
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Quantity, &item.PriceINR, &item.PriceUSD, &item.Status,
		); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID int, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// CancelOrder flips the order to cancelled and appends the audit record in
// the same transaction: if the audit write fails, the status change rolls
// back with it.
func (r *repository) CancelOrder(ctx context.Context, orderID int, reason, cancelledBy string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrder"),
		zap.Int("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, StatusCancelled, orderID)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cancellations (order_id, order_item_id, reason, cancelled_by)
		VALUES ($1, NULL, $2, $3)
	`, orderID, reason, cancelledBy)
	if err != nil {
		log.Error("failed to insert cancellation record", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancel transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

// CancelOrderItem cancels a single item. The item must belong to the given
// order; a mismatched pair updates zero rows and reports not found.
func (r *repository) CancelOrderItem(ctx context.Context, orderID, itemID int, reason, cancelledBy string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrderItem"),
		zap.Int("order_id", orderID),
		zap.Int("item_id", itemID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE order_items
		SET status = $1
		WHERE id = $2 AND order_id = $3
	`, ItemCancelled, itemID, orderID)
	if err != nil {
		log.Error("failed to update item status", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderItemNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cancellations (order_id, order_item_id, reason, cancelled_by)
		VALUES ($1, $2, $3, $4)
	`, orderID, itemID, reason, cancelledBy)
	if err != nil {
		log.Error("failed to insert cancellation record", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancel transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}
