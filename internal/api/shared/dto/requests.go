package dto

import (
	"fmt"
	"time"

	"github.com/feral-file/ff-ownership-resolver/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-ownership-resolver/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
)

// OwnershipCheckRequest represents the request body for checking ownership at a point in time
type OwnershipCheckRequest struct {
	Owner string `json:"owner"`
	// Assets holds names or item URNs depending on the route
	Assets []string `json:"assets"`
	// Timestamp is in Unix milliseconds
	Timestamp int64 `json:"timestamp"`
}

// Validate validates the request body
func (r *OwnershipCheckRequest) Validate() error {
	if r.Owner == "" {
		return apierrors.NewValidationError("owner is required")
	}

	if !domain.OwnerAddress(r.Owner).Normalize().Valid() {
		return apierrors.NewValidationError("owner must be a hex account address")
	}

	if len(r.Assets) > constants.MAX_ASSETS_PER_CHECK {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d assets allowed", constants.MAX_ASSETS_PER_CHECK))
	}

	if _, err := domain.UnixMilli(r.Timestamp); err != nil {
		return apierrors.NewValidationError("timestamp must be a positive Unix time in milliseconds")
	}

	return nil
}

// Time returns the requested timestamp
func (r *OwnershipCheckRequest) Time() time.Time {
	t, _ := domain.UnixMilli(r.Timestamp)
	return t
}

// BatchOwnershipRequest represents the request body for reading current ownership of many owners
type BatchOwnershipRequest struct {
	Queries []domain.OwnershipQuery `json:"queries"`
}

// Validate validates the request body
func (r *BatchOwnershipRequest) Validate() error {
	if len(r.Queries) == 0 {
		return apierrors.NewValidationError("queries is required")
	}

	if len(r.Queries) > constants.MAX_QUERIES_PER_BATCH_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d queries allowed", constants.MAX_QUERIES_PER_BATCH_REQUEST))
	}

	for i, q := range r.Queries {
		if q.Owner.Normalize() == "" {
			return apierrors.NewValidationError(fmt.Sprintf("queries[%d].owner is required", i))
		}
		if !q.Owner.Normalize().Valid() {
			return apierrors.NewValidationError(fmt.Sprintf("queries[%d].owner must be a hex account address", i))
		}
	}

	return nil
}

// NameOwnersRequest represents the request body for finding the owners of names
type NameOwnersRequest struct {
	Names []string `json:"names"`
}

// Validate validates the request body
func (r *NameOwnersRequest) Validate() error {
	if len(r.Names) == 0 {
		return apierrors.NewValidationError("names is required")
	}

	if len(r.Names) > constants.MAX_NAMES_PER_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d names allowed", constants.MAX_NAMES_PER_REQUEST))
	}

	return nil
}
