package dto

import "github.com/feral-file/ff-ownership-resolver/internal/domain"

// BatchOwnershipResponse represents the owners holding at least one of their requested assets
type BatchOwnershipResponse struct {
	Results []domain.OwnedAssets `json:"results"`
}

// NameOwnersResponse represents the current owners of the requested names
type NameOwnersResponse struct {
	Owners []domain.NameOwner `json:"owners"`
}

// CollectionsResponse represents the approved collections
type CollectionsResponse struct {
	Collections []domain.Collection `json:"collections"`
}

// ThirdPartiesResponse represents the approved third-party integrations
type ThirdPartiesResponse struct {
	ThirdParties []domain.ThirdPartyIntegration `json:"third_parties"`
}

// ThirdPartyResolverResponse represents the resolver registered for a third-party integration
type ThirdPartyResolverResponse struct {
	ID          string `json:"id"`
	ResolverURL string `json:"resolver_url"`
}
