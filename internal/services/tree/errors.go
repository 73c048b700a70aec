package tree

import (
	"errors"

	"github.com/thenoetrevino/lineage/internal/familytree"
	"github.com/thenoetrevino/lineage/internal/validation"
)

// Tree errors. Store errors are re-exported so callers only import this package.
var (
	ErrMissingUser = errors.New("user ID cannot be empty")

	ErrMemberExists     = familytree.ErrAlreadyExists
	ErrMemberNotFound   = familytree.ErrNotFound
	ErrCycleDetected    = familytree.ErrCycleDetected
	ErrRootRelationship = familytree.ErrRootRelationship
	ErrInvalidRequest   = validation.ErrInvalid
)
