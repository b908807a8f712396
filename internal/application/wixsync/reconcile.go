package wixsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/wix"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

const recoverSampleLimit = 5

type RecoverResult struct {
	RemoteCount  int               `json:"remote_count"`
	LocalCount   int               `json:"local_count"`
	MissingCount int               `json:"missing_count"`
	MissingIDs   []string          `json:"missing_ids"`
	Samples      []json.RawMessage `json:"samples"`
}

// Recover walks the full remote order set and reports which remote
// orders never landed locally. Read-only.
func (s *Service) Recover(ctx context.Context) (*RecoverResult, error) {
	raws, err := s.fetcher.QueryAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch all orders: %w", err)
	}

	localIDs, err := s.orders.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local ids: %w", err)
	}
	local := make(map[string]struct{}, len(localIDs))
	for _, id := range localIDs {
		local[id] = struct{}{}
	}

	result := &RecoverResult{
		RemoteCount: len(raws),
		LocalCount:  len(localIDs),
		MissingIDs:  []string{},
		Samples:     []json.RawMessage{},
	}
	for _, raw := range raws {
		var wo wix.Order
		if err := json.Unmarshal(raw, &wo); err != nil {
			continue
		}
		id := s.resolveOrderID(ctx, &wo)
		if id == "" {
			continue
		}
		if _, ok := local[id]; ok {
			continue
		}
		result.MissingIDs = append(result.MissingIDs, id)
		if len(result.Samples) < recoverSampleLimit {
			result.Samples = append(result.Samples, raw)
		}
	}
	result.MissingCount = len(result.MissingIDs)

	s.log.Info("wix recover finished",
		logger.Int("remote", result.RemoteCount),
		logger.Int("local", result.LocalCount),
		logger.Int("missing", result.MissingCount),
	)
	return result, nil
}

type Drift struct {
	OrderID string   `json:"order_id"`
	Fields  []string `json:"fields"`
	Fixed   bool     `json:"fixed"`
}

type ReconcileResult struct {
	Checked int     `json:"checked"`
	Drifted []Drift `json:"drifted"`
	Fixed   int     `json:"fixed"`
	Errors  int     `json:"errors"`
}

// Reconcile re-derives totals, payment status, address fields and line
// items for every remote order that exists locally and reports the
// drift. With fix set it patches the drifted fields order by order;
// there is no cross-field atomicity beyond the per-order item
// replacement.
func (s *Service) Reconcile(ctx context.Context, fix bool) (*ReconcileResult, error) {
	raws, err := s.fetcher.QueryAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch all orders: %w", err)
	}

	result := &ReconcileResult{Drifted: []Drift{}}
	for _, raw := range raws {
		var wo wix.Order
		if err := json.Unmarshal(raw, &wo); err != nil {
			continue
		}
		id := s.resolveOrderID(ctx, &wo)
		if id == "" {
			continue
		}

		local, err := s.orders.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			result.Errors++
			continue
		}
		result.Checked++

		drift, err := s.reconcileOne(ctx, &wo, local, fix)
		if err != nil {
			s.log.Error("reconcile failed",
				logger.String("order_id", id),
				logger.Error(err),
			)
			result.Errors++
			continue
		}
		if drift != nil {
			result.Drifted = append(result.Drifted, *drift)
			if drift.Fixed {
				result.Fixed++
			}
		}
	}

	s.log.Info("wix reconcile finished",
		logger.Int("checked", result.Checked),
		logger.Int("drifted", len(result.Drifted)),
		logger.Int("fixed", result.Fixed),
		logger.Int("errors", result.Errors),
	)
	return result, nil
}

func (s *Service) reconcileOne(ctx context.Context, wo *wix.Order, local *order.Order, fix bool) (*Drift, error) {
	items, totals, err := s.buildItems(ctx, wo)
	if err != nil {
		return nil, err
	}

	paymentStatus := order.PaymentPending
	if wo.Paid() {
		paymentStatus = order.PaymentPaid
	}

	var fields []string
	if local.TotalItems != totals.totalItems {
		fields = append(fields, "total_items")
	}
	if !local.Subtotal.Equal(totals.subtotal) {
		fields = append(fields, "subtotal")
	}
	if !local.TotalAmount.Equal(totals.totalAmount) {
		fields = append(fields, "total_amount")
	}
	if local.PaymentStatus != paymentStatus {
		fields = append(fields, "payment_status")
	}
	if itemsDrifted(local.Items, items) {
		fields = append(fields, "items")
	}

	contact := wo.ResolveContact()
	stored, err := s.storedAddress(ctx, local.AddressID)
	if err != nil {
		return nil, err
	}
	addressDrift := stored != nil && addressDrifted(stored, contact)
	if addressDrift {
		fields = append(fields, "address")
	}

	if len(fields) == 0 {
		return nil, nil
	}

	drift := &Drift{OrderID: local.OrderID, Fields: fields}
	if !fix {
		return drift, nil
	}

	if err := s.orders.ReplaceItems(ctx, local.OrderID, items); err != nil {
		return nil, fmt.Errorf("replace items: %w", err)
	}
	if err := s.orders.UpdateTotals(ctx, local.OrderID, totals.totalItems, totals.subtotal, totals.totalAmount, paymentStatus, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("update totals: %w", err)
	}
	if addressDrift {
		err := s.addresses.UpdateContact(ctx, local.AddressID,
			contact.Name, NormalizeMobile(contact.Mobile), contact.Pincode, contact.AddressLine, contact.City)
		if err != nil {
			return nil, fmt.Errorf("update address: %w", err)
		}
	}
	drift.Fixed = true
	return drift, nil
}

// storedAddress loads the order's address row, treating a missing row
// like a missing remote address: nothing to compare.
func (s *Service) storedAddress(ctx context.Context, addressID int64) (*customer.Address, error) {
	if addressID == 0 {
		return nil, nil
	}
	a, err := s.addresses.Get(ctx, addressID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load address: %w", err)
	}
	return a, nil
}

// addressDrifted compares the stored shipping address against the
// contact currently on the remote order. A remote order without any
// address data never counts as drift.
func addressDrifted(stored *customer.Address, contact wix.Contact) bool {
	if contact.AddressLine == "" && contact.City == "" && contact.Pincode == "" {
		return false
	}
	if stored.AddressLine != contact.AddressLine {
		return true
	}
	if stored.City != contact.City {
		return true
	}
	if stored.Pincode != contact.Pincode {
		return true
	}
	if mobile := NormalizeMobile(contact.Mobile); mobile != "" && stored.Mobile != mobile {
		return true
	}
	return false
}

func itemsDrifted(stored, computed []order.Item) bool {
	if len(stored) != len(computed) {
		return true
	}
	for i := range stored {
		if stored[i].Quantity != computed[i].Quantity {
			return true
		}
		if !stored[i].UnitPrice.Equal(computed[i].UnitPrice) {
			return true
		}
	}
	return false
}
