package wixsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/farrdeeen/FastOrderLogic/internal/config"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/wix"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
	"github.com/farrdeeen/FastOrderLogic/pkg/metrics"
)

// Fetcher abstracts the Wix client for testing.
type Fetcher interface {
	QueryOrders(ctx context.Context) ([]json.RawMessage, error)
	QueryAllOrders(ctx context.Context) ([]json.RawMessage, error)
	FetchOrderNumber(ctx context.Context, orderID string) string
}

// Publisher emits order events after a successful upsert. Nil-safe at
// the service level so the HTTP path works without Kafka.
type Publisher interface {
	PublishEvent(ctx context.Context, ev order.Event) error
}

// Service pulls orders from Wix and lands them in the local store with
// full customer, address and product resolution.
type Service struct {
	fetcher   Fetcher
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	addresses repository.AddressRepository
	products  repository.ProductRepository
	states    repository.StateRepository
	publisher Publisher
	log       logger.Logger
	cfg       config.WixConfig
}

func NewService(
	fetcher Fetcher,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	addresses repository.AddressRepository,
	products repository.ProductRepository,
	states repository.StateRepository,
	publisher Publisher,
	log logger.Logger,
	cfg config.WixConfig,
) *Service {
	return &Service{
		fetcher:   fetcher,
		orders:    orders,
		customers: customers,
		addresses: addresses,
		products:  products,
		states:    states,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
	}
}

// Sync statuses per order.
const (
	statusInserted = "inserted"
	statusUpdated  = "updated"
	statusSkipped  = "skipped"
)

type OrderFailure struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type SyncResult struct {
	Fetched  int            `json:"fetched"`
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Failed   []OrderFailure `json:"failed"`
}

// Sync fetches the latest page of remote orders and upserts each one.
// A failed order is reported and never blocks the rest of the batch.
func (s *Service) Sync(ctx context.Context, force bool) (*SyncResult, error) {
	timer := prometheus.NewTimer(metrics.SyncDuration)
	defer timer.ObserveDuration()

	raws, err := s.fetcher.QueryOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	result := &SyncResult{Fetched: len(raws), Failed: []OrderFailure{}}
	for _, raw := range raws {
		status, orderID, err := s.syncOne(ctx, raw, force)
		if err != nil {
			s.log.Error("order sync failed",
				logger.String("order_id", orderID),
				logger.Error(err),
			)
			result.Failed = append(result.Failed, OrderFailure{OrderID: orderID, Reason: err.Error()})
			metrics.SyncOrdersTotal.WithLabelValues("failed").Inc()
			continue
		}
		metrics.SyncOrdersTotal.WithLabelValues(status).Inc()
		switch status {
		case statusInserted:
			result.Inserted++
		case statusUpdated:
			result.Updated++
		default:
			result.Skipped++
		}
	}

	s.log.Info("wix sync finished",
		logger.Int("fetched", result.Fetched),
		logger.Int("inserted", result.Inserted),
		logger.Int("updated", result.Updated),
		logger.Int("skipped", result.Skipped),
		logger.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// HandleRawOrder is the Kafka consumer entry point: one raw payload,
// upserted without force.
func (s *Service) HandleRawOrder(ctx context.Context, payload []byte) error {
	_, orderID, err := s.syncOne(ctx, payload, false)
	if err != nil {
		return fmt.Errorf("sync order %s: %w", orderID, err)
	}
	return nil
}

func (s *Service) syncOne(ctx context.Context, raw json.RawMessage, force bool) (status, orderID string, err error) {
	var wo wix.Order
	if err := json.Unmarshal(raw, &wo); err != nil {
		return "", "", fmt.Errorf("decode payload: %w", err)
	}

	orderID = s.resolveOrderID(ctx, &wo)
	if orderID == "" {
		return "", "", fmt.Errorf("order has no usable identity")
	}

	exists, err := s.orders.Exists(ctx, orderID)
	if err != nil {
		return "", orderID, fmt.Errorf("existence check: %w", err)
	}
	if exists && !force {
		return statusSkipped, orderID, nil
	}

	now := time.Now().UTC()
	createdAt := ParseOrderTime(now, wo.CreatedAtRaw(), wo.UpdatedDate, wo.PaidAtRaw())

	items, totals, err := s.buildItems(ctx, &wo)
	if err != nil {
		return "", orderID, err
	}

	paymentStatus := order.PaymentPending
	orderStatus := order.StatusPending
	if wo.Paid() {
		paymentStatus = order.PaymentPaid
		orderStatus = order.StatusApproved
	}

	if exists {
		if err := s.orders.ReplaceItems(ctx, orderID, items); err != nil {
			return "", orderID, fmt.Errorf("replace items: %w", err)
		}
		if err := s.orders.UpdateTotals(ctx, orderID, totals.totalItems, totals.subtotal, totals.totalAmount, paymentStatus, now); err != nil {
			return "", orderID, fmt.Errorf("update totals: %w", err)
		}
		s.publish(ctx, order.Event{
			Type: order.EventSynced, OrderID: orderID, Channel: order.ChannelWix,
			PaymentStatus: paymentStatus, TotalAmount: totals.totalAmount.InexactFloat64(),
			OccurredAt: now,
		})
		return statusUpdated, orderID, nil
	}

	contact := wo.ResolveContact()
	customerID, offlineID, err := s.resolveCustomer(ctx, contact)
	if err != nil {
		return "", orderID, err
	}

	addressID, err := s.resolveAddress(ctx, contact, customerID, offlineID, createdAt)
	if err != nil {
		return "", orderID, err
	}

	orderIndex, err := s.orders.NextOrderIndex(ctx)
	if err != nil {
		return "", orderID, fmt.Errorf("next order index: %w", err)
	}

	o := &order.Order{
		OrderID:           orderID,
		CustomerID:        customerID,
		OfflineCustomerID: offlineID,
		AddressID:         addressID,
		TotalItems:        totals.totalItems,
		Subtotal:          totals.subtotal,
		DeliveryCharge:    totals.deliveryCharge,
		TotalAmount:       totals.totalAmount,
		Channel:           order.ChannelWix,
		PaymentStatus:     paymentStatus,
		DeliveryStatus:    order.DeliveryNotShipped,
		OrderStatus:       orderStatus,
		PaymentType:       order.PaymentTypeOnline,
		OrderIndex:        orderIndex,
		CreatedAt:         createdAt,
		UpdatedAt:         now,
		Items:             items,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return statusSkipped, orderID, nil
		}
		return "", orderID, fmt.Errorf("insert order: %w", err)
	}

	s.publish(ctx, order.NewEvent(order.EventSynced, o, now))
	return statusInserted, orderID, nil
}

func (s *Service) publish(ctx context.Context, ev order.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, ev); err != nil {
		s.log.Warn("event publish failed",
			logger.String("order_id", ev.OrderID),
			logger.Error(err),
		)
	}
}

// resolveOrderID prefers the human-facing order number, falls back to a
// single-order fetch, and finally to the remote UUID.
func (s *Service) resolveOrderID(ctx context.Context, wo *wix.Order) string {
	number := strings.TrimSpace(string(wo.Number))
	if number == "" && wo.ID != "" {
		number = s.fetcher.FetchOrderNumber(ctx, wo.ID)
	}
	if number == "" {
		number = wo.ID
	}
	if number == "" {
		return ""
	}
	return s.cfg.OrderPrefix + number
}

func (s *Service) resolveCustomer(ctx context.Context, contact wix.Contact) (customerID, offlineID *int64, err error) {
	mobile := NormalizeMobile(contact.Mobile)
	email := strings.TrimSpace(contact.Email)
	name := contact.Name

	if online, err := s.customers.FindOnline(ctx, mobile, email); err != nil {
		return nil, nil, fmt.Errorf("find online customer: %w", err)
	} else if online != nil {
		if err := s.customers.FillMissing(ctx, online.CustomerID, name, mobile, email); err != nil {
			return nil, nil, fmt.Errorf("fill customer fields: %w", err)
		}
		return &online.CustomerID, nil, nil
	}

	if mobile != "" {
		if offline, err := s.customers.FindOfflineByMobile(ctx, mobile); err != nil {
			return nil, nil, fmt.Errorf("find offline customer: %w", err)
		} else if offline != nil {
			return nil, &offline.CustomerID, nil
		}

		id, err := s.customers.CreateOffline(ctx, name, mobile, email)
		if errors.Is(err, repository.ErrAlreadyExists) {
			offline, ferr := s.customers.FindOfflineByMobile(ctx, mobile)
			if ferr != nil || offline == nil {
				return nil, nil, fmt.Errorf("offline customer collision on %s", mobile)
			}
			return nil, &offline.CustomerID, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("create offline customer: %w", err)
		}
		return nil, &id, nil
	}

	id, err := s.createWithSyntheticMobile(ctx, name, email)
	if err != nil {
		return nil, nil, err
	}
	return nil, &id, nil
}

func (s *Service) createWithSyntheticMobile(ctx context.Context, name, email string) (int64, error) {
	max, err := s.customers.MaxSyntheticMobile(ctx)
	if err != nil {
		return 0, fmt.Errorf("synthetic mobile sequence: %w", err)
	}

	id, err := s.customers.CreateOffline(ctx, name, SyntheticMobile(max+1), email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrAlreadyExists) {
		return 0, fmt.Errorf("create offline customer: %w", err)
	}

	id, err = s.customers.CreateOffline(ctx, name, TimestampMobile(time.Now()), email)
	if err != nil {
		return 0, fmt.Errorf("create offline customer: %w", err)
	}
	return id, nil
}

func (s *Service) resolveAddress(ctx context.Context, contact wix.Contact, customerID, offlineID *int64, createdAt time.Time) (int64, error) {
	mobile := NormalizeMobile(contact.Mobile)

	if contact.AddressLine != "" || mobile != "" || contact.Pincode != "" || contact.City != "" {
		match, err := s.addresses.FindMatch(ctx, contact.AddressLine, mobile, contact.Pincode, contact.City)
		if err != nil {
			return 0, fmt.Errorf("match address: %w", err)
		}
		if match != nil {
			return match.AddressID, nil
		}
	}

	stateID := s.resolveState(ctx, contact.State)

	a := &customer.Address{
		CustomerID:        customerID,
		OfflineCustomerID: offlineID,
		Name:              contact.Name,
		Mobile:            mobile,
		Pincode:           contact.Pincode,
		AddressLine:       contact.AddressLine,
		City:              contact.City,
		StateID:           stateID,
		AddressType:       "shipping",
		IsAvailable:       true,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	id, err := s.addresses.Create(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("create address: %w", err)
	}
	return id, nil
}

func (s *Service) resolveState(ctx context.Context, region string) int64 {
	defaultID := int64(s.cfg.DefaultStateID)
	if defaultID == 0 {
		defaultID = 1
	}

	name := NormalizeRegion(region)
	if name == "" {
		return defaultID
	}

	id, err := s.states.FindIDByName(ctx, name)
	if err != nil {
		s.log.Warn("state lookup failed", logger.String("region", region), logger.Error(err))
		return defaultID
	}
	if id == 0 {
		return defaultID
	}
	return id
}

type orderTotals struct {
	totalItems     int
	subtotal       decimal.Decimal
	deliveryCharge decimal.Decimal
	totalAmount    decimal.Decimal
}

// buildItems maps remote line items to order rows. The delivery charge
// is split evenly across total quantity and folded into unit prices.
func (s *Service) buildItems(ctx context.Context, wo *wix.Order) ([]order.Item, orderTotals, error) {
	lineItems := wo.AllLineItems()

	totalQty := 0
	for i := range lineItems {
		totalQty += lineItems[i].EffectiveQuantity()
	}

	deliveryCharge := decimal.Zero
	if wo.Totals != nil {
		deliveryCharge = wo.Totals.Shipping.Decimal()
	}
	share := DeliveryShare(deliveryCharge, totalQty)

	var (
		items    []order.Item
		subtotal = decimal.Zero
	)
	for i := range lineItems {
		li := &lineItems[i]

		product, err := s.resolveProduct(ctx, li)
		if err != nil {
			return nil, orderTotals{}, err
		}

		qty := li.EffectiveQuantity()
		unit := li.UnitPrice().Add(share)
		total := unit.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(total)

		item := order.Item{
			ProductName: li.EffectiveName(),
			Quantity:    qty,
			UnitPrice:   unit,
			TotalPrice:  total,
		}
		if product != nil {
			item.ProductID = &product.ProductID
			if item.ProductName == "" {
				item.ProductName = product.Name
			}
		}
		items = append(items, item)
	}

	return items, orderTotals{
		totalItems:     totalQty,
		subtotal:       subtotal,
		deliveryCharge: deliveryCharge,
		totalAmount:    subtotal,
	}, nil
}

// resolveProduct walks the mapping chain: SKU, then the remote catalog
// id, then the display name, then auto-creation, and finally the shared
// unknown-product row.
func (s *Service) resolveProduct(ctx context.Context, li *wix.LineItem) (*catalog.Product, error) {
	sku := li.EffectiveSKU()
	name := li.EffectiveName()

	if ValidSKU(sku) {
		p, err := s.products.FindBySKU(ctx, sku)
		if err != nil {
			return nil, fmt.Errorf("find product by sku: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}

	if wixID := li.EffectiveProductID(); wixID != "" {
		p, err := s.products.FindByWixID(ctx, wixID)
		if err != nil {
			return nil, fmt.Errorf("find product by wix id: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}

	if name != "" {
		p, err := s.products.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("find product by name: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}

	categoryID := int64(s.cfg.DefaultCategoryID)
	if ValidSKU(sku) {
		displayName := name
		if displayName == "" {
			displayName = sku
		}
		p, err := s.products.CreateAuto(ctx, displayName, "Auto-created from sync", categoryID, sku)
		if err != nil {
			return nil, fmt.Errorf("auto-create product: %w", err)
		}
		s.log.Info("auto-created product",
			logger.String("sku", sku),
			logger.Int64("product_id", p.ProductID),
		)
		return p, nil
	}

	if name != "" {
		p, err := s.products.CreateAuto(ctx, name, "Auto-created from sync", categoryID, "")
		if err != nil {
			return nil, fmt.Errorf("auto-create product: %w", err)
		}
		return p, nil
	}

	p, err := s.products.EnsureUnknownFallback(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("unknown product fallback: %w", err)
	}
	return p, nil
}
