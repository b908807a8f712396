package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farrdeeen/FastOrderLogic/internal/interfaces/http/handler"
)

type Handlers struct {
	Orders    *handler.OrderHandler
	Customers *handler.CustomerHandler
	Catalog   *handler.CatalogHandler
	Sync      *handler.SyncHandler
	Zoho      *handler.ZohoHandler
}

// RegisterRoutes wires the full API surface. auth may be nil, in which
// case everything is open.
func RegisterRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend running"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	if auth != nil {
		api.Use(auth)
	}

	orders := api.Group("/orders")
	{
		orders.POST("/create", h.Orders.Create)
		orders.GET("/list", h.Orders.List)
		orders.PUT("/:order_id/mark-paid", h.Orders.MarkPaid)
		orders.PUT("/:order_id/mark-fulfilled", h.Orders.MarkFulfilled)
		orders.PUT("/:order_id/mark-invoiced", h.Orders.MarkInvoiced)
		orders.PUT("/:order_id/update-delivery", h.Orders.MarkShipped)
		orders.PUT("/:order_id/toggle-payment", h.Orders.TogglePayment)
		orders.PUT("/:order_id/delivery-status", h.Orders.UpdateDeliveryStatus)
		orders.PUT("/:order_id/remarks", h.Orders.UpdateRemarks)
		orders.GET("/:order_id/serial_numbers", h.Orders.SerialNumbers)
		orders.POST("/:order_id/serial_numbers/save", h.Orders.SaveSerialNumbers)
		orders.POST("/:order_id/create-invoice", h.Orders.CreateLocalInvoice)
		orders.GET("/:order_id/invoice/download", h.Orders.DownloadInvoiceRedirect)
	}

	customers := api.Group("/customers")
	{
		customers.POST("/create", h.Customers.Create)
		customers.GET("/list", h.Customers.List)
		customers.GET("/details", h.Customers.Details)
		customers.GET("/:cust_type/:cust_id/addresses", h.Customers.Addresses)
		customers.POST("/address/create", h.Customers.AddAddress)
	}

	dropdowns := api.Group("/dropdowns")
	{
		dropdowns.GET("/products/list", h.Catalog.Products)
		dropdowns.GET("/products/details", h.Catalog.ProductDetails)
		dropdowns.GET("/products/get_price", h.Catalog.ProductPrice)
		dropdowns.GET("/states/list", h.Catalog.States)
	}
	api.GET("/states/list", h.Catalog.States)

	sync := api.Group("/sync")
	{
		sync.GET("/wix", h.Sync.Sync)
		sync.GET("/wix/recover", h.Sync.Recover)
		sync.GET("/wix/reconcile", h.Sync.Reconcile)
	}

	zoho := api.Group("/zoho")
	{
		zoho.GET("/auth", h.Zoho.Auth)
		zoho.GET("/oauth/callback", h.Zoho.Callback)
		zoho.POST("/invoice", h.Zoho.CreateInvoice)
		zoho.GET("/orders/:order_id/invoice/download", h.Zoho.DownloadInvoice)
	}
}
