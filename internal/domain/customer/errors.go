package customer

import "errors"

var (
	ErrMissingField = errors.New("required field is missing")
	ErrInvalidType  = errors.New("invalid customer type")
)
