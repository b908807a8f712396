package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

type Service struct {
	customers repository.CustomerRepository
	addresses repository.AddressRepository
	states    repository.StateRepository
	validate  *validator.Validate
	log       logger.Logger
}

func NewService(
	customers repository.CustomerRepository,
	addresses repository.AddressRepository,
	states repository.StateRepository,
	log logger.Logger,
) *Service {
	return &Service{
		customers: customers,
		addresses: addresses,
		states:    states,
		validate:  validator.New(),
		log:       log,
	}
}

type CreateCommand struct {
	Type           string `json:"type"`
	Name           string `json:"name" validate:"required"`
	Mobile         string `json:"mobile" validate:"required"`
	Email          string `json:"email"`
	GSTNumber      string `json:"gst_number"`
	AddressLine    string `json:"address_line" validate:"required"`
	Locality       string `json:"locality"`
	City           string `json:"city" validate:"required"`
	StateID        int64  `json:"state_id" validate:"required"`
	Pincode        string `json:"pincode" validate:"required"`
	Landmark       string `json:"landmark"`
	AlternatePhone string `json:"alternate_phone"`
}

// Create inserts the customer and their first address in one
// transaction. Type defaults to offline, the walk-in case.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (int64, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return 0, fmt.Errorf("%w: %s", customer.ErrMissingField, err.Error())
	}
	custType := cmd.Type
	if custType == "" {
		custType = customer.TypeOffline
	}
	if !customer.ValidType(custType) {
		return 0, fmt.Errorf("%w: %q", customer.ErrInvalidType, cmd.Type)
	}

	now := time.Now()
	c := &customer.Customer{
		Type:      custType,
		Name:      cmd.Name,
		Mobile:    cmd.Mobile,
		Email:     cmd.Email,
		GSTNumber: cmd.GSTNumber,
		CreatedAt: now,
	}
	a := &customer.Address{
		Name:           cmd.Name,
		Mobile:         cmd.Mobile,
		Pincode:        cmd.Pincode,
		Locality:       cmd.Locality,
		AddressLine:    cmd.AddressLine,
		City:           cmd.City,
		StateID:        cmd.StateID,
		Landmark:       cmd.Landmark,
		AlternatePhone: cmd.AlternatePhone,
		AddressType:    "home",
		IsAvailable:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := s.customers.CreateWithAddress(ctx, c, a)
	if err != nil {
		return 0, fmt.Errorf("create %s customer: %w", custType, err)
	}
	s.log.Info("customer created",
		logger.String("type", custType),
		logger.Int64("customer_id", id),
	)
	return id, nil
}

// List returns online and offline customers merged, each tagged with
// its type.
func (s *Service) List(ctx context.Context) ([]customer.Customer, error) {
	return s.customers.ListAll(ctx)
}

// Details is a customer with their most recent address resolved for the
// order-entry screen.
type Details struct {
	Customer  customer.Customer
	Address   *customer.Address
	StateName string
}

func (s *Service) Get(ctx context.Context, custType string, customerID int64) (*Details, error) {
	if !customer.ValidType(custType) {
		return nil, fmt.Errorf("%w: %q", customer.ErrInvalidType, custType)
	}
	c, err := s.customers.Get(ctx, custType, customerID)
	if err != nil {
		return nil, err
	}

	d := &Details{Customer: *c}
	addr, err := s.addresses.LatestForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("latest address: %w", err)
	}
	if addr != nil {
		d.Address = addr
		d.StateName, err = s.stateName(ctx, addr.StateID)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AddressOption pairs an address with its dropdown label.
type AddressOption struct {
	Address customer.Address
	Label   string
}

func (s *Service) Addresses(ctx context.Context, custType string, customerID int64) ([]AddressOption, error) {
	if !customer.ValidType(custType) {
		return nil, fmt.Errorf("%w: %q", customer.ErrInvalidType, custType)
	}
	addrs, err := s.addresses.ListForCustomer(ctx, custType, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	options := make([]AddressOption, 0, len(addrs))
	for _, a := range addrs {
		options = append(options, AddressOption{Address: a, Label: a.Label()})
	}
	return options, nil
}

type AddAddressCommand struct {
	Type           string `json:"type"`
	CustomerID     int64  `json:"customer_id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Mobile         string `json:"mobile" validate:"required"`
	AddressLine    string `json:"address_line" validate:"required"`
	Locality       string `json:"locality"`
	City           string `json:"city" validate:"required"`
	StateID        int64  `json:"state_id" validate:"required"`
	Pincode        string `json:"pincode" validate:"required"`
	Landmark       string `json:"landmark"`
	AlternatePhone string `json:"alternate_phone"`
}

// AddAddress attaches another address to an existing customer of either
// type.
func (s *Service) AddAddress(ctx context.Context, cmd AddAddressCommand) (int64, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return 0, fmt.Errorf("%w: %s", customer.ErrMissingField, err.Error())
	}
	custType := cmd.Type
	if custType == "" {
		custType = customer.TypeOffline
	}
	if !customer.ValidType(custType) {
		return 0, fmt.Errorf("%w: %q", customer.ErrInvalidType, cmd.Type)
	}
	if _, err := s.customers.Get(ctx, custType, cmd.CustomerID); err != nil {
		return 0, err
	}

	now := time.Now()
	a := &customer.Address{
		Name:           cmd.Name,
		Mobile:         cmd.Mobile,
		Pincode:        cmd.Pincode,
		Locality:       cmd.Locality,
		AddressLine:    cmd.AddressLine,
		City:           cmd.City,
		StateID:        cmd.StateID,
		Landmark:       cmd.Landmark,
		AlternatePhone: cmd.AlternatePhone,
		AddressType:    "home",
		IsAvailable:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if custType == customer.TypeOnline {
		a.CustomerID = &cmd.CustomerID
	} else {
		a.OfflineCustomerID = &cmd.CustomerID
	}

	id, err := s.addresses.Create(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("create address: %w", err)
	}
	return id, nil
}

func (s *Service) stateName(ctx context.Context, stateID int64) (string, error) {
	states, err := s.states.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list states: %w", err)
	}
	for _, st := range states {
		if st.StateID == stateID {
			return st.Name, nil
		}
	}
	return "", nil
}
