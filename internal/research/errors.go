package research

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoResearch   = errors.New("no research for session")
)
