package domain

import "errors"

var (
	ErrConfig        = errors.New("invalid configuration")
	ErrTrafficSource = errors.New("traffic source failure")
	ErrMissingDate   = errors.New("daily record missing date")
	ErrInvalidDate   = errors.New("daily record has invalid date")
	ErrNegativeCount = errors.New("daily record has negative count")
)
