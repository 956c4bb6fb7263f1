package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain identifies one of the two ledgers whose subgraphs are queried
type Chain string

const (
	// ChainL1 is the primary chain (Ethereum mainnet or testnet)
	ChainL1 Chain = "l1"
	// ChainL2 is the secondary scaling chain (Polygon)
	ChainL2 Chain = "l2"
)

// AllChains lists every chain in resolution order
var AllChains = []Chain{ChainL1, ChainL2}

// IsValidChain checks if a chain is known
func IsValidChain(chain Chain) bool {
	return chain == ChainL1 || chain == ChainL2
}

// String returns the string representation of the chain
func (c Chain) String() string {
	return string(c)
}

// OwnerAddress is a chain account identifier. Indexers store it lower-cased.
type OwnerAddress string

// Normalize returns the lower-cased form used by subgraph filters
func (a OwnerAddress) Normalize() OwnerAddress {
	return OwnerAddress(strings.ToLower(strings.TrimSpace(string(a))))
}

// Equal compares two addresses case-insensitively
func (a OwnerAddress) Equal(other OwnerAddress) bool {
	return a.Normalize() == other.Normalize()
}

// Valid checks the address is a hex EVM account
func (a OwnerAddress) Valid() bool {
	return common.IsHexAddress(string(a))
}

// String returns the string representation of the address
func (a OwnerAddress) String() string {
	return string(a)
}

// AssetIdentifier names a name registration or a catalog item (URN)
type AssetIdentifier string

// String returns the string representation of the asset identifier
func (a AssetIdentifier) String() string {
	return string(a)
}

// OwnershipQuery asks whether Owner holds every asset in Assets
type OwnershipQuery struct {
	Owner  OwnerAddress      `json:"owner"`
	Assets []AssetIdentifier `json:"assets"`
}

// OwnershipResult is the verdict for one owner.
// Failing is only populated when Result is false.
// Indeterminate marks a negative verdict where no chain could resolve a block for the timestamp,
// so the negative reflects missing evidence rather than confirmed non-ownership.
type OwnershipResult struct {
	Result           bool              `json:"result"`
	Failing          []AssetIdentifier `json:"failing,omitempty"`
	Indeterminate    bool              `json:"indeterminate,omitempty"`
	UnresolvedChains []Chain           `json:"unresolved_chains,omitempty"`
}

// OwnedAssets is one entry of a batch ownership read
type OwnedAssets struct {
	Owner  OwnerAddress      `json:"owner"`
	Assets []AssetIdentifier `json:"assets"`
}

// TimestampBounds is the window the resolver is willing to look back across
type TimestampBounds struct {
	Lower time.Time
	Upper time.Time
}

// NewTimestampBounds derives the bounds for a logical time and tolerance window.
// A negative tolerance is treated as zero so Lower never exceeds Upper.
func NewTimestampBounds(t time.Time, tolerance time.Duration) TimestampBounds {
	if tolerance < 0 {
		tolerance = 0
	}
	return TimestampBounds{
		Lower: t.Add(-tolerance),
		Upper: t,
	}
}

// ResolvedBlock is a block height known to the block search, with its timestamp
type ResolvedBlock struct {
	Timestamp time.Time
	Block     uint64
}

// PartialOwnership is the per-chain evidence collected before merge
type PartialOwnership struct {
	Chain       Chain
	Owner       OwnerAddress
	OwnedAssets map[AssetIdentifier]struct{}
	// Resolved is false when the chain could not pin any block for the timestamp
	Resolved bool
	// Block is the height the evidence was read at, zero when unresolved
	Block uint64
}

// NewPartialOwnership creates an empty owned-set for a chain
func NewPartialOwnership(chain Chain, owner OwnerAddress) *PartialOwnership {
	return &PartialOwnership{
		Chain:       chain,
		Owner:       owner,
		OwnedAssets: make(map[AssetIdentifier]struct{}),
	}
}

// Add records assets as owned
func (p *PartialOwnership) Add(assets ...AssetIdentifier) {
	for _, asset := range assets {
		p.OwnedAssets[asset] = struct{}{}
	}
}

// Owns checks if the asset was confirmed on this chain
func (p *PartialOwnership) Owns(asset AssetIdentifier) bool {
	_, ok := p.OwnedAssets[asset]
	return ok
}

// NameOwner pairs a registered name with its current owner
type NameOwner struct {
	Name  string       `json:"name"`
	Owner OwnerAddress `json:"owner"`
}

// Collection is a catalog collection listed by the collections subgraph
type Collection struct {
	Name string `json:"name"`
	URN  string `json:"urn"`
}

// ThirdPartyIntegration is a registered third-party catalog provider
type ThirdPartyIntegration struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ResolverURL string `json:"resolver_url"`
}

// UniqueAssets removes duplicated identifiers preserving first-seen order
func UniqueAssets(assets []AssetIdentifier) []AssetIdentifier {
	seen := make(map[AssetIdentifier]struct{}, len(assets))
	out := make([]AssetIdentifier, 0, len(assets))
	for _, asset := range assets {
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, asset)
	}
	return out
}

// ToAssetIdentifiers converts raw strings to asset identifiers
func ToAssetIdentifiers(values []string) []AssetIdentifier {
	assets := make([]AssetIdentifier, len(values))
	for i, v := range values {
		assets[i] = AssetIdentifier(v)
	}
	return assets
}

// AssetStrings converts asset identifiers back to raw strings
func AssetStrings(assets []AssetIdentifier) []string {
	values := make([]string, len(assets))
	for i, a := range assets {
		values[i] = string(a)
	}
	return values
}

// UnixMilli converts a millisecond timestamp as received at the API boundary
func UnixMilli(ms int64) (time.Time, error) {
	if ms <= 0 {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidTimestamp, ms)
	}
	return time.UnixMilli(ms).UTC(), nil
}
