package exports

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("export not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidTimezone = fmt.Errorf("%w: unknown timezone", ErrInvalidInput)
	ErrExportFailed    = errors.New("export failed")
)
