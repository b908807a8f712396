package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

// Publisher emits order events. Nil disables publishing.
type Publisher interface {
	PublishEvent(ctx context.Context, ev domain.Event) error
}

type Service struct {
	orders    repository.OrderRepository
	serials   repository.SerialNumberRepository
	customers repository.CustomerRepository
	addresses repository.AddressRepository
	publisher Publisher
	validate  *validator.Validate
	log       logger.Logger
}

func NewService(
	orders repository.OrderRepository,
	serials repository.SerialNumberRepository,
	customers repository.CustomerRepository,
	addresses repository.AddressRepository,
	publisher Publisher,
	log logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		serials:   serials,
		customers: customers,
		addresses: addresses,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
	}
}

type CreateItemCommand struct {
	ProductID   *int64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity" validate:"min=1"`
	UnitPrice   float64 `json:"unit_price" validate:"min=0"`
}

type CreateCommand struct {
	CustomerID        *int64              `json:"customer_id"`
	OfflineCustomerID *int64              `json:"offline_customer_id"`
	AddressID         int64               `json:"address_id" validate:"required"`
	Channel           string              `json:"channel"`
	PaymentType       string              `json:"payment_type"`
	GST               float64             `json:"gst" validate:"min=0"`
	DeliveryCharge    float64             `json:"delivery_charge" validate:"min=0"`
	Items             []CreateItemCommand `json:"items" validate:"min=1,dive"`
}

// Create books a point-of-sale order. The order id and index both come
// from the creation timestamp.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*domain.Order, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, err.Error())
	}
	if cmd.CustomerID == nil && cmd.OfflineCustomerID == nil {
		return nil, domain.ErrNoCustomer
	}

	now := time.Now()
	channel := cmd.Channel
	if channel == "" {
		channel = domain.ChannelOffline
	}
	paymentType := cmd.PaymentType
	if paymentType == "" {
		paymentType = domain.PaymentTypeOnline
	}

	var orderIndex int64
	if channel == domain.ChannelOffline {
		orderIndex = domain.OfflineOrderIndex(now)
	} else {
		idx, err := s.orders.NextOrderIndex(ctx)
		if err != nil {
			return nil, fmt.Errorf("next order index: %w", err)
		}
		orderIndex = idx
	}

	subtotal := decimal.Zero
	totalItems := 0
	items := make([]domain.Item, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		unit := decimal.NewFromFloat(it.UnitPrice)
		total := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(total)
		totalItems += it.Quantity
		items = append(items, domain.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   unit,
			TotalPrice:  total,
		})
	}

	gst := decimal.NewFromFloat(cmd.GST)
	deliveryCharge := decimal.NewFromFloat(cmd.DeliveryCharge)

	o := &domain.Order{
		OrderID:           domain.NewOfflineOrderID(now),
		CustomerID:        cmd.CustomerID,
		OfflineCustomerID: cmd.OfflineCustomerID,
		AddressID:         cmd.AddressID,
		TotalItems:        totalItems,
		Subtotal:          subtotal,
		GST:               gst,
		DeliveryCharge:    deliveryCharge,
		TotalAmount:       subtotal.Add(gst).Add(deliveryCharge),
		Channel:           channel,
		PaymentStatus:     domain.PaymentPending,
		DeliveryStatus:    domain.DeliveryNotShipped,
		OrderStatus:       domain.StatusPending,
		PaymentType:       paymentType,
		OrderIndex:        orderIndex,
		CreatedAt:         now,
		UpdatedAt:         now,
		Items:             items,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, domain.NewEvent(domain.EventCreated, o, now))
	s.log.Info("order created",
		logger.String("order_id", o.OrderID),
		logger.Int("total_items", o.TotalItems),
	)
	return o, nil
}

// View is an order joined with its customer, address and serial
// assignment summary for the listing screens.
type View struct {
	Order        domain.Order
	Customer     *customer.Customer
	Address      *customer.Address
	SerialStatus string
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]View, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	views := make([]View, 0, len(orders))
	for i := range orders {
		o := orders[i]
		view := View{Order: o}

		if o.CustomerID != nil {
			view.Customer, err = s.customers.Get(ctx, customer.TypeOnline, *o.CustomerID)
		} else if o.OfflineCustomerID != nil {
			view.Customer, err = s.customers.Get(ctx, customer.TypeOffline, *o.OfflineCustomerID)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load customer for %s: %w", o.OrderID, err)
		}

		addr, err := s.addresses.Get(ctx, o.AddressID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load address for %s: %w", o.OrderID, err)
		}
		view.Address = addr

		counts, err := s.serials.CountsByOrder(ctx, o.OrderID)
		if err != nil {
			return nil, fmt.Errorf("serial counts for %s: %w", o.OrderID, err)
		}
		view.SerialStatus = domain.SerialStatus(o.Items, counts)

		views = append(views, view)
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.Get(ctx, orderID)
}

func (s *Service) MarkPaid(ctx context.Context, orderID string) error {
	if err := s.orders.SetPaymentStatus(ctx, orderID, domain.PaymentPaid, domain.StatusApproved); err != nil {
		return err
	}
	s.publishStatus(ctx, orderID)
	return nil
}

func (s *Service) MarkFulfilled(ctx context.Context, orderID string) error {
	if err := s.orders.SetDeliveryStatus(ctx, orderID, domain.DeliveryReady); err != nil {
		return err
	}
	s.publishStatus(ctx, orderID)
	return nil
}

// MarkShipped sets SHIPPED with the given AWB, defaulting to a
// placeholder until the courier assigns one.
func (s *Service) MarkShipped(ctx context.Context, orderID, awb string) error {
	if awb == "" {
		awb = "To be assigned"
	}
	if err := s.orders.SetShipped(ctx, orderID, awb); err != nil {
		return err
	}
	s.publishStatus(ctx, orderID)
	return nil
}

func (s *Service) MarkInvoiced(ctx context.Context, orderID string) error {
	return s.orders.SetOrderStatus(ctx, orderID, domain.StatusCompleted)
}

// TogglePayment flips paid/pending and keeps the status code in step.
func (s *Service) TogglePayment(ctx context.Context, orderID string) (string, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	payment, status := domain.TogglePayment(o.PaymentStatus)
	if err := s.orders.SetPaymentStatus(ctx, orderID, payment, status); err != nil {
		return "", err
	}
	s.publishStatus(ctx, orderID)
	return payment, nil
}

func (s *Service) UpdateDeliveryStatus(ctx context.Context, orderID, status string) error {
	if !domain.ValidDeliveryStatus(status) {
		return domain.ErrInvalidDeliveryStatus
	}
	if err := s.orders.SetDeliveryStatus(ctx, orderID, status); err != nil {
		return err
	}
	s.publishStatus(ctx, orderID)
	return nil
}

func (s *Service) UpdateRemarks(ctx context.Context, orderID, remarks string) error {
	return s.orders.SetRemarks(ctx, orderID, remarks)
}

func (s *Service) SerialNumbers(ctx context.Context, orderID string) ([]domain.ItemSerials, error) {
	return s.serials.ListByOrder(ctx, orderID)
}

type SerialAssignment struct {
	ItemID  int64    `json:"item_id"`
	Serials []string `json:"serials"`
}

// SaveSerialNumbers replaces each item's serial set. Blank entries are
// dropped so partially filled forms round-trip cleanly.
func (s *Service) SaveSerialNumbers(ctx context.Context, orderID string, assignments []SerialAssignment) error {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return err
	}
	for _, a := range assignments {
		cleaned := make([]string, 0, len(a.Serials))
		for _, sr := range a.Serials {
			if sr = strings.TrimSpace(sr); sr != "" {
				cleaned = append(cleaned, sr)
			}
		}
		if err := s.serials.Replace(ctx, a.ItemID, cleaned); err != nil {
			return fmt.Errorf("replace serials for item %d: %w", a.ItemID, err)
		}
	}
	return nil
}

// CreateLocalInvoice stamps the order with a locally generated invoice
// number.
func (s *Service) CreateLocalInvoice(ctx context.Context, orderID string) (string, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return "", err
	}
	number := "INV-" + time.Now().Format("20060102-150405")
	if err := s.orders.SetInvoiceNumber(ctx, orderID, number); err != nil {
		return "", err
	}
	return number, nil
}

func (s *Service) publishStatus(ctx context.Context, orderID string) {
	if s.publisher == nil {
		return
	}
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		s.log.Warn("reload for event failed", logger.String("order_id", orderID), logger.Error(err))
		return
	}
	s.publish(ctx, domain.NewEvent(domain.EventStatusChanged, o, time.Now()))
}

func (s *Service) publish(ctx context.Context, ev domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, ev); err != nil {
		s.log.Warn("event publish failed", logger.String("order_id", ev.OrderID), logger.Error(err))
	}
}
