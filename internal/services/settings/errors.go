package settings

import (
	"errors"

	"github.com/thenoetrevino/lineage/internal/validation"
)

// Settings-related errors
var (
	ErrMissingUser     = errors.New("user ID cannot be empty")
	ErrUnknownSetting  = errors.New("unknown setting")
	ErrInvalidSettings = validation.ErrInvalid
)
