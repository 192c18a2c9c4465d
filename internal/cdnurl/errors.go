package cdnurl

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is wrapped by every error caused by a malformed option.
var ErrInvalidOption = errors.New("invalid option")

// ErrMissingCloudName is returned by New when the cloud name is empty.
var ErrMissingCloudName = errors.New("cloud name is required")

// OptionError describes an option that cannot be compiled.
type OptionError struct {
	// Key is the option name as supplied by the caller.
	Key string

	// Value is the offending value.
	Value any

	// Reason is a short human-readable explanation.
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option %q (%v): %s", e.Key, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidOption) hold for every OptionError.
func (e *OptionError) Unwrap() error {
	return ErrInvalidOption
}

func invalidOption(key string, value any, format string, args ...any) error {
	return &OptionError{
		Key:    key,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}
