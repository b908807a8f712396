package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/zoho"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
	"github.com/farrdeeen/FastOrderLogic/pkg/metrics"
)

var ErrNotConnected = errors.New("zoho is not connected")

// Books is the slice of the Zoho client the invoice flow needs.
type Books interface {
	Connected() bool
	FindItemBySKU(ctx context.Context, sku string) (*zoho.Item, error)
	FindOrCreateContact(ctx context.Context, name, mobile, email string) (*zoho.Contact, error)
	CreateInvoice(ctx context.Context, contactID, referenceNumber string, date time.Time, lines []zoho.InvoiceLine) (*zoho.Invoice, error)
}

type Service struct {
	books     Books
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	log       logger.Logger
}

func NewService(
	books Books,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	log logger.Logger,
) *Service {
	return &Service{
		books:     books,
		orders:    orders,
		customers: customers,
		products:  products,
		log:       log,
	}
}

// Result is the created Books invoice plus the order it was raised for.
type Result struct {
	OrderID       string  `json:"order_id"`
	InvoiceID     string  `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Total         float64 `json:"total"`
}

// CreateForOrder raises a Zoho Books invoice for the order, stamps the
// returned invoice number on the order row and marks it completed.
func (s *Service) CreateForOrder(ctx context.Context, orderID string) (*Result, error) {
	if !s.books.Connected() {
		return nil, ErrNotConnected
	}

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	cust, err := s.orderCustomer(ctx, o)
	if err != nil {
		return nil, err
	}
	contact, err := s.books.FindOrCreateContact(ctx, cust.Name, cust.Mobile, cust.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve contact: %w", err)
	}

	lines := make([]zoho.InvoiceLine, 0, len(o.Items))
	for _, item := range o.Items {
		line, err := s.buildLine(ctx, item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	inv, err := s.books.CreateInvoice(ctx, contact.ContactID, o.OrderID, o.CreatedAt, lines)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	if err := s.orders.SetInvoiceNumber(ctx, orderID, inv.InvoiceNumber); err != nil {
		return nil, fmt.Errorf("store invoice number: %w", err)
	}
	if err := s.orders.SetOrderStatus(ctx, orderID, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	metrics.InvoicesCreatedTotal.Inc()
	s.log.Info("invoice created",
		logger.String("order_id", orderID),
		logger.String("invoice_number", inv.InvoiceNumber),
	)
	return &Result{
		OrderID:       orderID,
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Total:         inv.Total,
	}, nil
}

func (s *Service) orderCustomer(ctx context.Context, o *domain.Order) (*customer.Customer, error) {
	switch {
	case o.CustomerID != nil:
		return s.customers.Get(ctx, customer.TypeOnline, *o.CustomerID)
	case o.OfflineCustomerID != nil:
		return s.customers.Get(ctx, customer.TypeOffline, *o.OfflineCustomerID)
	default:
		return nil, domain.ErrNoCustomer
	}
}

// buildLine maps one order item to a Books line. A matched Books item
// contributes its id and name only; the rate always comes from the
// order's stored unit price, which is what the customer actually paid.
func (s *Service) buildLine(ctx context.Context, item domain.Item) (zoho.InvoiceLine, error) {
	sku := ""
	if item.ProductID != nil {
		p, err := s.products.Get(ctx, *item.ProductID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return zoho.InvoiceLine{}, fmt.Errorf("load product %d: %w", *item.ProductID, err)
		}
		if p != nil {
			if p.ZohoSKU != "" {
				sku = p.ZohoSKU
			} else {
				sku = p.SKUID
			}
		}
	}

	if sku != "" {
		zi, err := s.books.FindItemBySKU(ctx, sku)
		if err != nil {
			return zoho.InvoiceLine{}, fmt.Errorf("find item %q: %w", sku, err)
		}
		if zi != nil {
			return zoho.InvoiceLine{
				ItemID:      zi.ItemID,
				Name:        zi.Name,
				Description: LineDescription(sku, item.ProductName),
				Quantity:    item.Quantity,
				Rate:        item.UnitPrice.InexactFloat64(),
			}, nil
		}
	}

	return zoho.InvoiceLine{
		Name:        item.ProductName,
		Description: LineDescription(sku, item.ProductName),
		Quantity:    item.Quantity,
		Rate:        item.UnitPrice.InexactFloat64(),
	}, nil
}

// LineDescription picks a short invoice description: the Books SKU when
// mapped, a recognized device keyword, the first two words of the
// product name, or a generic placeholder.
func LineDescription(zohoSKU, productName string) string {
	if zohoSKU != "" {
		return zohoSKU
	}
	lower := strings.ToLower(productName)
	if strings.Contains(lower, "gps") {
		return "GPS"
	}
	if strings.Contains(lower, "scanner") {
		return "Scanner"
	}
	words := strings.Fields(productName)
	if len(words) >= 2 {
		return words[0] + " " + words[1]
	}
	if len(words) == 1 {
		return words[0]
	}
	return "Item"
}
