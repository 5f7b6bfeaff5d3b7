package order

import (
	"net/http"
	"strconv"
	"time"

	"dineqr-be/internal/auth"
	"dineqr-be/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordOrderOperation("create", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		metrics.RecordOrderOperation("create", false)
		respondError(c, err)
		return
	}

	metrics.RecordOrderOperation("create", true)
	c.JSON(http.StatusCreated, ToOrderResponse(o))
}

func (h *Handler) Get(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.Get(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToOrderResponse(o))
}

func (h *Handler) List(c *gin.Context) {
	filter, limit, page, err := parseListQuery(c)
	if err != nil {
		metrics.RecordOrderOperation("list", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, err := h.svc.List(c.Request.Context(), filter, limit, page)
	if err != nil {
		metrics.RecordOrderOperation("list", false)
		respondError(c, err)
		return
	}

	metrics.RecordOrderOperation("list", true)
	c.JSON(http.StatusOK, ToOrderListResponse(orders))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordOrderOperation("update_status", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), orderID, OrderStatus(req.OrderStatus))
	if err != nil {
		metrics.RecordOrderOperation("update_status", false)
		respondError(c, err)
		return
	}

	metrics.RecordOrderOperation("update_status", true)
	c.JSON(http.StatusOK, ToOrderResponse(o))
}

func (h *Handler) Cancel(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordOrderOperation("cancel", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cancelledBy := req.CancelledBy
	if cancelledBy == "" {
		cancelledBy = auth.ActorFrom(c.Request.Context())
	}

	if err := h.svc.Cancel(c.Request.Context(), orderID, req.Reason, cancelledBy); err != nil {
		metrics.RecordOrderOperation("cancel", false)
		respondError(c, err)
		return
	}

	metrics.RecordOrderOperation("cancel", true)
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled", "orderId": orderID})
}

func (h *Handler) CancelItem(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordOrderOperation("cancel_item", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cancelledBy := req.CancelledBy
	if cancelledBy == "" {
		cancelledBy = auth.ActorFrom(c.Request.Context())
	}

	if err := h.svc.CancelItem(c.Request.Context(), orderID, itemID, req.Reason, cancelledBy); err != nil {
		metrics.RecordOrderOperation("cancel_item", false)
		respondError(c, err)
		return
	}

	metrics.RecordOrderOperation("cancel_item", true)
	c.JSON(http.StatusOK, gin.H{"message": "order item cancelled", "orderId": orderID, "itemId": itemID})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, missing references are 404, everything else is a
// storage failure.
func respondError(c *gin.Context, err error) {
	switch {
	case IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseListQuery(c *gin.Context) (*OrderFilterInput, *int32, *int32, error) {
	filter := &OrderFilterInput{}

	if s := c.Query("status"); s != "" {
		status := OrderStatus(s)
		if !ValidStatus(status) {
			return nil, nil, nil, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if s := c.Query("tableNumber"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, nil, nil, err
		}
		filter.TableNumber = &n
	}
	if s := c.Query("customerId"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, nil, nil, err
		}
		filter.CustomerID = &n
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, nil, err
		}
		filter.DateFrom = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, nil, err
		}
		filter.DateTo = &t
	}

	var limit, page *int32
	if s := c.Query("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, nil, nil, err
		}
		v := int32(n)
		limit = &v
	}
	if s := c.Query("page"); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, nil, nil, err
		}
		v := int32(n)
		page = &v
	}

	return filter, limit, page, nil
}
