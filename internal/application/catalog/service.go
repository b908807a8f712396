package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

// Service feeds the dropdown endpoints for order entry.
type Service struct {
	products repository.ProductRepository
	states   repository.StateRepository
	log      logger.Logger
}

func NewService(products repository.ProductRepository, states repository.StateRepository, log logger.Logger) *Service {
	return &Service{products: products, states: states, log: log}
}

func (s *Service) Products(ctx context.Context) ([]catalog.Product, error) {
	return s.products.List(ctx)
}

// ProductDetails returns the dropdown view with the HSN GST rate
// resolved, 18% when the product has no HSN mapping.
func (s *Service) ProductDetails(ctx context.Context, productID int64) (*catalog.ProductDetails, error) {
	return s.products.Details(ctx, productID)
}

// LatestSellingPrice reads the most recent inbound transaction price for
// a SKU, zero when the device has never been purchased.
func (s *Service) LatestSellingPrice(ctx context.Context, sku string) (decimal.Decimal, error) {
	if sku == "" {
		return decimal.Zero, fmt.Errorf("sku is empty")
	}
	return s.products.LatestSellingPrice(ctx, sku)
}

// ProductPrice resolves the product's SKU and returns its latest
// inbound transaction price.
func (s *Service) ProductPrice(ctx context.Context, productID int64) (decimal.Decimal, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if p.SKUID == "" {
		return decimal.Zero, nil
	}
	return s.products.LatestSellingPrice(ctx, p.SKUID)
}

func (s *Service) States(ctx context.Context) ([]catalog.State, error) {
	return s.states.List(ctx)
}
