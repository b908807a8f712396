package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	app "github.com/farrdeeen/FastOrderLogic/internal/application/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

type OrderHandler struct {
	svc *app.Service
}

func NewOrderHandler(svc *app.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var cmd app.CreateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.Create(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCustomer), errors.Is(err, domain.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id":     o.OrderID,
		"order_index":  o.OrderIndex,
		"total_amount": o.TotalAmount,
		"message":      "order created",
	})
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := domain.ListFilter{
		PaymentStatus:  c.Query("payment_status"),
		DeliveryStatus: c.Query("delivery_status"),
		Channel:        c.Query("channel"),
		Search:         c.Query("search"),
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be YYYY-MM-DD"})
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	views, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(views))
	for _, v := range views {
		out = append(out, orderView(v))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out, "count": len(out)})
}

func orderView(v app.View) gin.H {
	o := v.Order
	items := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, gin.H{
			"item_id":      it.ItemID,
			"product_id":   it.ProductID,
			"product_name": it.ProductName,
			"quantity":     it.Quantity,
			"unit_price":   it.UnitPrice,
			"total_price":  it.TotalPrice,
		})
	}

	view := gin.H{
		"order_id":        o.OrderID,
		"channel":         o.Channel,
		"payment_status":  o.PaymentStatus,
		"delivery_status": o.DeliveryStatus,
		"order_status":    o.OrderStatus,
		"payment_type":    o.PaymentType,
		"total_items":     o.TotalItems,
		"subtotal":        o.Subtotal,
		"gst":             o.GST,
		"delivery_charge": o.DeliveryCharge,
		"total_amount":    o.TotalAmount,
		"awb_number":      o.AWBNumber,
		"invoice_number":  o.InvoiceNumber,
		"remarks":         o.Remarks,
		"created_at":      o.CreatedAt,
		"updated_at":      o.UpdatedAt,
		"items":           items,
		"serial_status":   v.SerialStatus,
	}
	if v.Customer != nil {
		custType := customer.TypeOnline
		if o.OfflineCustomerID != nil {
			custType = customer.TypeOffline
		}
		view["customer"] = gin.H{
			"customer_id": v.Customer.CustomerID,
			"type":        custType,
			"name":        v.Customer.Name,
			"mobile":      v.Customer.Mobile,
			"email":       v.Customer.Email,
		}
	}
	if v.Address != nil {
		view["address"] = gin.H{
			"address_id":   v.Address.AddressID,
			"name":         v.Address.Name,
			"mobile":       v.Address.Mobile,
			"address_line": v.Address.AddressLine,
			"locality":     v.Address.Locality,
			"city":         v.Address.City,
			"state_id":     v.Address.StateID,
			"pincode":      v.Address.Pincode,
		}
	}
	return view
}

func (h *OrderHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.svc.MarkPaid)
}

func (h *OrderHandler) MarkFulfilled(c *gin.Context) {
	h.transition(c, h.svc.MarkFulfilled)
}

func (h *OrderHandler) MarkInvoiced(c *gin.Context) {
	h.transition(c, h.svc.MarkInvoiced)
}

func (h *OrderHandler) MarkShipped(c *gin.Context) {
	var payload struct {
		AWBNumber string `json:"awb_number"`
	}
	// body is optional, the AWB defaults server-side
	_ = c.ShouldBindJSON(&payload)

	if err := h.svc.MarkShipped(c.Request.Context(), c.Param("order_id"), payload.AWBNumber); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order shipped"})
}

func (h *OrderHandler) TogglePayment(c *gin.Context) {
	payment, err := h.svc.TogglePayment(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_status": payment})
}

func (h *OrderHandler) UpdateDeliveryStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.UpdateDeliveryStatus(c.Request.Context(), c.Param("order_id"), payload.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDeliveryStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "delivery status updated"})
}

func (h *OrderHandler) UpdateRemarks(c *gin.Context) {
	var payload struct {
		Remarks string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateRemarks(c.Request.Context(), c.Param("order_id"), payload.Remarks); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "remarks updated"})
}

func (h *OrderHandler) SerialNumbers(c *gin.Context) {
	groups, err := h.svc.SerialNumbers(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	out := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		out = append(out, gin.H{
			"item_id":        g.ItemID,
			"product_id":     g.ProductID,
			"product_name":   g.ProductName,
			"quantity":       g.Quantity,
			"serial_numbers": g.Serials,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *OrderHandler) SaveSerialNumbers(c *gin.Context) {
	var payload struct {
		Items []app.SerialAssignment `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SaveSerialNumbers(c.Request.Context(), c.Param("order_id"), payload.Items); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "serial numbers saved"})
}

func (h *OrderHandler) CreateLocalInvoice(c *gin.Context) {
	number, err := h.svc.CreateLocalInvoice(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice_number": number})
}

func (h *OrderHandler) DownloadInvoiceRedirect(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/zoho/orders/"+c.Param("order_id")+"/invoice/download")
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, orderID string) error) {
	if err := fn(c.Request.Context(), c.Param("order_id")); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order updated"})
}

func respondOrderError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
