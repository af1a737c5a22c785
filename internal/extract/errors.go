package extract

import (
	"errors"
	"fmt"
)

// ErrDegraded is returned next to a usable result when an extractor had to
// fall back to a simpler strategy.
var ErrDegraded = errors.New("extraction degraded")

func degraded(cause any) error {
	if err, ok := cause.(error); ok {
		return fmt.Errorf("%w: %w", ErrDegraded, err)
	}
	return fmt.Errorf("%w: %v", ErrDegraded, cause)
}
