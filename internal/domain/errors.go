package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrOverCapacity      = errors.New("amount exceeds remaining capacity")
	ErrDuplicateReport   = errors.New("revenue report already submitted for month")
	ErrWrongCampaignType = errors.New("operation not supported for campaign type")
)
