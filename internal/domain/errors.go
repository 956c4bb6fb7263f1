package domain

import "errors"

var (
	// ErrInternal is the single generic error surfaced for subgraph transport or execution failures
	ErrInternal = errors.New("internal error while querying subgraph")

	// ErrInvalidOwner is returned when an owner address is not a valid account
	ErrInvalidOwner = errors.New("invalid owner address")

	// ErrInvalidTimestamp is returned when a timestamp cannot be used for block resolution
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrUnknownChain is returned when a chain has no configuration
	ErrUnknownChain = errors.New("unknown chain")

	// ErrSubgraphNotConfigured is returned when a chain lacks the subgraph a query needs
	ErrSubgraphNotConfigured = errors.New("subgraph not configured")

	// ErrThirdPartyNotFound is returned when a third-party integration id is not registered
	ErrThirdPartyNotFound = errors.New("third party integration not found")
)
