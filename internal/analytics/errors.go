package analytics

import "errors"

var (
	ErrInvalidCadence = errors.New("invalid cadence")
	ErrMissingCadence = errors.New("goal has no cadence")
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrInvalidMeasure = errors.New("invalid measure")
)
