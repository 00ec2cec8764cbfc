package routing

import "errors"

// Graph construction errors.
var (
	ErrDuplicateEdge     = errors.New("duplicate edge")
	ErrDanglingEndpoint  = errors.New("edge endpoint is not a known node")
	ErrNonPositiveWeight = errors.New("edge weight must be positive")
	ErrNegativeLevel     = errors.New("accessibility level must not be negative")
	ErrDuplicateNode     = errors.New("duplicate node")
)

// Query errors.
var (
	ErrUnknownNode = errors.New("unknown node")
	ErrUnreachable = errors.New("destination unreachable at this accessibility level")
)
