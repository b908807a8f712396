package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "github.com/farrdeeen/FastOrderLogic/internal/application/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

type CatalogHandler struct {
	svc *app.Service
}

func NewCatalogHandler(svc *app.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Products(c *gin.Context) {
	products, err := h.svc.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, gin.H{
			"product_id": p.ProductID,
			"name":       p.Name,
			"sku_id":     p.SKUID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (h *CatalogHandler) ProductDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	d, err := h.svc.ProductDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id":  d.ProductID,
		"name":        d.Name,
		"sku_id":      d.SKUID,
		"gst_percent": d.GSTPercent,
	})
}

func (h *CatalogHandler) ProductPrice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id must be an integer"})
		return
	}

	price, err := h.svc.ProductPrice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

func (h *CatalogHandler) States(c *gin.Context) {
	states, err := h.svc.States(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(states))
	for _, s := range states {
		out = append(out, gin.H{
			"state_id":     s.StateID,
			"name":         s.Name,
			"abbreviation": s.Abbreviation,
		})
	}
	c.JSON(http.StatusOK, gin.H{"states": out})
}
