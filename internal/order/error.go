package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrNotDelivered    = errors.New("order has not been delivered")
	ErrAlreadyAssigned = errors.New("order already has a driver assigned")
	ErrPaymentPending  = errors.New("order payment has not completed")
	ErrDriverNotFound  = errors.New("driver not found")
)
