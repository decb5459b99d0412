package phone

import "errors"

var (
	ErrEmptyNumber        = errors.New("empty phone number")
	ErrInvalidCountryCode = errors.New("invalid country code")
)
