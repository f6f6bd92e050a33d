package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNotFound  = errors.New("dataset not found")
	ErrBadHeader = errors.New("dataset header invalid")
	ErrBadRecord = errors.New("dataset record invalid")
	ErrBadDriver = errors.New("unknown dataset driver")
	ErrPersist   = errors.New("dataset persist failed")
)
