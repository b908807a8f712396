package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/farrdeeen/FastOrderLogic/internal/application/invoice"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/zoho"
)

type ZohoHandler struct {
	client *zoho.Client
	svc    *app.Service
}

func NewZohoHandler(client *zoho.Client, svc *app.Service) *ZohoHandler {
	return &ZohoHandler{client: client, svc: svc}
}

// Auth sends the operator to the Zoho consent screen.
func (h *ZohoHandler) Auth(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.client.AuthURL())
}

// Callback completes the OAuth dance and persists tokens.
func (h *ZohoHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code query parameter is missing"})
		return
	}

	if err := h.client.ExchangeCode(c.Request.Context(), code); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "zoho connected"})
}

func (h *ZohoHandler) CreateInvoice(c *gin.Context) {
	var payload struct {
		OrderID string `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CreateForOrder(c.Request.Context(), payload.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotConnected):
			c.JSON(http.StatusConflict, gin.H{"error": "zoho is not connected, visit /zoho/auth first"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// DownloadInvoice streams the Books PDF for the order's invoice. The
// invoice is located by reference number, which holds the order id.
func (h *ZohoHandler) DownloadInvoice(c *gin.Context) {
	orderID := c.Param("order_id")

	inv, err := h.client.FindInvoiceByReference(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if inv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no invoice for this order"})
		return
	}

	pdf, err := h.client.InvoicePDF(c.Request.Context(), inv.InvoiceID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+inv.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
