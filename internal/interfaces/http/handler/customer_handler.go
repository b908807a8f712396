package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "github.com/farrdeeen/FastOrderLogic/internal/application/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

type CustomerHandler struct {
	svc *app.Service
}

func NewCustomerHandler(svc *app.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var cmd app.CreateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrMissingField), errors.Is(err, customer.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "customer with this mobile already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer_id": id, "message": "customer created"})
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(customers))
	for _, cust := range customers {
		out = append(out, gin.H{
			"customer_id": cust.CustomerID,
			"type":        cust.Type,
			"name":        cust.Name,
			"mobile":      cust.Mobile,
			"email":       cust.Email,
		})
	}
	c.JSON(http.StatusOK, gin.H{"customers": out})
}

func (h *CustomerHandler) Details(c *gin.Context) {
	custType := c.Query("type")
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	d, err := h.svc.Get(c.Request.Context(), custType, id)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	out := gin.H{
		"customer_id": d.Customer.CustomerID,
		"name":        d.Customer.Name,
		"mobile":      d.Customer.Mobile,
		"email":       d.Customer.Email,
		"gst_number":  d.Customer.GSTNumber,
	}
	if d.Address != nil {
		out["address"] = gin.H{
			"address_id":   d.Address.AddressID,
			"address_line": d.Address.AddressLine,
			"locality":     d.Address.Locality,
			"city":         d.Address.City,
			"state_id":     d.Address.StateID,
			"state":        d.StateName,
			"pincode":      d.Address.Pincode,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Addresses(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("cust_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cust_id must be an integer"})
		return
	}

	options, err := h.svc.Addresses(c.Request.Context(), c.Param("cust_type"), id)
	if err != nil {
		if errors.Is(err, customer.ErrInvalidType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(options))
	for _, opt := range options {
		out = append(out, gin.H{
			"address_id": opt.Address.AddressID,
			"label":      opt.Label,
			"state_id":   opt.Address.StateID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"addresses": out})
}

func (h *CustomerHandler) AddAddress(c *gin.Context) {
	var cmd app.AddAddressCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.svc.AddAddress(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrMissingField), errors.Is(err, customer.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address_id": id, "message": "address created"})
}
