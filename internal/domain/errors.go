package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNetwork         = errors.New("network failure")
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuery    = errors.New("invalid search query")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSlotNotFound    = errors.New("storage slot not found")
)

// NetworkError reports a failed catalog request, either at the transport level
// or because the API answered with a non-success status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap matches ErrNetwork, ErrNotFound for 404 answers and the transport error, when there is one
func (e *NetworkError) Unwrap() []error {
	errs := []error{ErrNetwork}
	if e.StatusCode == 404 {
		errs = append(errs, ErrNotFound)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

