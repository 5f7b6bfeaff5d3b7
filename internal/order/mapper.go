package order

import "time"

// Request/response DTOs for the HTTP surface.

type CreateOrderRequest struct {
	TableNumber   int                `json:"tableNumber"`
	CustomerID    *int               `json:"customerId,omitempty"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	MenuItemID *int    `json:"menuItemId,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	PriceINR   float64 `json:"priceInr"`
	PriceUSD   float64 `json:"priceUsd"`
}

type CancelRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy,omitempty"`
}

type UpdateStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

type OrderResponse struct {
	ID             int                 `json:"id"`
	TableID        int                 `json:"tableId"`
	TableNumber    int                 `json:"tableNumber"`
	CustomerID     *int                `json:"customerId,omitempty"`
	Currency       string              `json:"currency"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentStatus  PaymentStatus       `json:"paymentStatus"`
	OrderStatus    OrderStatus         `json:"orderStatus"`
	TotalAmountINR float64             `json:"totalAmountInr"`
	TotalAmountUSD float64             `json:"totalAmountUsd"`
	PrepMinutes    *int                `json:"prepMinutes,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	Items          []OrderItemResponse `json:"items,omitempty"`
}

type OrderItemResponse struct {
	ID         int        `json:"id"`
	MenuItemID *int       `json:"menuItemId,omitempty"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	PriceINR   float64    `json:"priceInr"`
	PriceUSD   float64    `json:"priceUsd"`
	Status     ItemStatus `json:"status"`
}

func (req CreateOrderRequest) ToInput() CreateOrderInput {
	input := CreateOrderInput{
		TableNumber:   req.TableNumber,
		CustomerID:    req.CustomerID,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Items:         make([]CreateOrderItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, CreateOrderItemInput{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			PriceINR:   item.PriceINR,
			PriceUSD:   item.PriceUSD,
		})
	}
	return input
}

func ToOrderResponse(o *Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:             o.ID,
		TableID:        o.TableID,
		TableNumber:    o.TableNumber,
		CustomerID:     o.CustomerID,
		Currency:       o.Currency,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		OrderStatus:    o.Status,
		TotalAmountINR: o.TotalAmountINR,
		TotalAmountUSD: o.TotalAmountUSD,
		PrepMinutes:    o.PrepMinutes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			PriceINR:   item.PriceINR,
			PriceUSD:   item.PriceUSD,
			Status:     item.Status,
		})
	}
	return resp
}

func ToOrderListResponse(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
