package urn

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-ownership-resolver/internal/domain"
)

const (
	PROTOCOL_PREFIX = "urn:decentraland:"

	TypeCollectionsV1         = "collections-v1"
	TypeCollectionsV2         = "collections-v2"
	TypeCollectionsThirdParty = "collections-thirdparty"
	TypeBaseAvatars           = "base-avatars"

	NetworkOffChain = "off-chain"
)

// networkChains maps URN networks to the chain whose subgraphs index them
var networkChains = map[string]domain.Chain{
	"ethereum": domain.ChainL1,
	"mainnet":  domain.ChainL1,
	"sepolia":  domain.ChainL1,
	"goerli":   domain.ChainL1,
	"matic":    domain.ChainL2,
	"mumbai":   domain.ChainL2,
	"amoy":     domain.ChainL2,
}

// URN is a parsed asset identifier such as
// urn:decentraland:matic:collections-v2:0xabc...:3
type URN struct {
	Network    string
	Type       string
	Collection string
	Item       string
}

// Parse parses an asset URN. Parsing is case-insensitive on the protocol prefix.
func Parse(value string) (*URN, error) {
	if !strings.HasPrefix(strings.ToLower(value), PROTOCOL_PREFIX) {
		return nil, fmt.Errorf("not a decentraland urn: %s", value)
	}

	parts := strings.Split(value[len(PROTOCOL_PREFIX):], ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("urn is missing network or type: %s", value)
	}

	u := &URN{
		Network: strings.ToLower(parts[0]),
		Type:    strings.ToLower(parts[1]),
	}
	if len(parts) > 2 {
		u.Collection = parts[2]
	}
	if len(parts) > 3 {
		u.Item = strings.Join(parts[3:], ":")
	}

	return u, nil
}

// Chain returns the chain indexing this asset, false for off-chain or unknown networks
func (u *URN) Chain() (domain.Chain, bool) {
	chain, ok := networkChains[u.Network]
	return chain, ok
}

// RouteByChain groups assets by the chain that indexes them.
// Assets that cannot be attributed to a single chain are routed to every chain in fallback.
func RouteByChain(assets []domain.AssetIdentifier, fallback []domain.Chain) map[domain.Chain][]domain.AssetIdentifier {
	routes := make(map[domain.Chain][]domain.AssetIdentifier)
	for _, asset := range assets {
		u, err := Parse(asset.String())
		if err == nil {
			if chain, ok := u.Chain(); ok {
				routes[chain] = append(routes[chain], asset)
				continue
			}
		}
		for _, chain := range fallback {
			routes[chain] = append(routes[chain], asset)
		}
	}
	return routes
}
