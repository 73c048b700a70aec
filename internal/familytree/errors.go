package familytree

import "errors"

// Errors returned by Store operations. They are wrapped with the offending
// name, so match them with errors.Is.
var (
	ErrAlreadyExists    = errors.New("member already exists")
	ErrNotFound         = errors.New("member not found")
	ErrCorrupt          = errors.New("corrupt family tree snapshot")
	ErrCycleDetected    = errors.New("member cannot be placed beneath itself or its descendants")
	ErrRootRelationship = errors.New("only the root member may use the Root relationship")
)
