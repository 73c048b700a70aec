package profile

import (
	"errors"

	"github.com/thenoetrevino/lineage/internal/validation"
)

// Profile-related errors
var (
	ErrMissingUser    = errors.New("user ID cannot be empty")
	ErrInvalidProfile = validation.ErrInvalid
)
