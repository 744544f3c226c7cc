// Package services defines the business logic for farms and products.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrFarmNotFound indicates that the requested farm does not exist.
	ErrFarmNotFound = errors.New("farm not found")

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// PartialWriteError reports a nested product creation that stopped between
// its two writes. The farm is always written first, so FarmSaved && !ProductSaved
// means the farm's sequence now holds an id with no product behind it.
type PartialWriteError struct {
	FarmID       string
	ProductID    string
	FarmSaved    bool
	ProductSaved bool
	Err          error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: farm %s saved=%t, product %s saved=%t: %v",
		e.FarmID, e.FarmSaved, e.ProductID, e.ProductSaved, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
