package order

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type ItemStatus string

const (
	ItemActive    ItemStatus = "active"
	ItemCancelled ItemStatus = "cancelled"
)

// Currencies the menu is priced in. Prices are snapshotted onto items in
// both currencies at order creation.
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

type Order struct {
	ID          int
	TableID     int
	TableNumber int // denormalized for display
	CustomerID  *int

	Currency      string
	PaymentMethod string
	PaymentStatus PaymentStatus
	Status        OrderStatus

	TotalAmountINR float64
	TotalAmountUSD float64

	PrepMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID      int
	OrderID int

	// MenuItemID may dangle once the menu item is removed; name and prices
	// are snapshots taken at order creation.
	MenuItemID *int
	Name       string
	Quantity   int
	PriceINR   float64
	PriceUSD   float64
	Status     ItemStatus
}

// Cancellation is an append-only audit record. A nil OrderItemID means the
// whole order was cancelled.
type Cancellation struct {
	ID          int
	OrderID     int
	OrderItemID *int
	Reason      string
	CancelledBy string
	CreatedAt   time.Time
}

type CreateOrderInput struct {
	TableNumber   int
	CustomerID    *int
	Currency      string
	PaymentMethod string
	Items         []CreateOrderItemInput
}

type CreateOrderItemInput struct {
	MenuItemID *int
	Name       string
	Quantity   int
	PriceINR   float64
	PriceUSD   float64
}

type OrderFilterInput struct {
	Status      *OrderStatus
	TableNumber *int
	CustomerID  *int
	DateFrom    *time.Time
	DateTo      *time.Time
}
