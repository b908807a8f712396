package order

import "errors"

var (
	ErrNoCustomer            = errors.New("customer not selected")
	ErrNoAddress             = errors.New("address not selected")
	ErrInvalidDeliveryStatus = errors.New("invalid delivery status")
	ErrMissingField          = errors.New("required field is missing")
)
