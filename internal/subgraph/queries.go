package subgraph

// AssetKind selects which ownership query and subgraph serve an asset family
type AssetKind string

const (
	AssetKindName AssetKind = "name"
	AssetKindItem AssetKind = "item"
)

// Ownership queries alias the asset field to "asset" so every kind decodes into OwnershipRow
var (
	namesOwnershipQuery = MustParseQuery(`query NamesOwnership($owners: [String!]!, $assets: [String!]!, $first: Int!, $skip: Int!, $block: Block_height) {
  nfts(
    where: {owner_in: $owners, name_in: $assets, category: ens}
    first: $first
    skip: $skip
    block: $block
    orderBy: id
  ) {
    asset: name
    owner {
      address
    }
  }
}`, "names owned by addresses")

	itemsOwnershipQuery = MustParseQuery(`query ItemsOwnership($owners: [String!]!, $assets: [String!]!, $first: Int!, $skip: Int!, $block: Block_height) {
  nfts(
    where: {owner_in: $owners, urn_in: $assets}
    first: $first
    skip: $skip
    block: $block
    orderBy: id
  ) {
    asset: urn
    owner {
      address
    }
  }
}`, "items owned by addresses")

	ownersByNameQuery = MustParseQuery(`query OwnersByName($names: [String!]!, $first: Int!, $skip: Int!) {
  nfts(
    where: {name_in: $names, category: ens}
    first: $first
    skip: $skip
    orderBy: id
  ) {
    asset: name
    owner {
      address
    }
  }
}`, "owners of names")

	collectionsQuery = MustParseQuery(`query Collections($first: Int!, $skip: Int!) {
  collections(
    where: {isApproved: true}
    first: $first
    skip: $skip
    orderBy: urn
  ) {
    name
    urn
  }
}`, "approved collections")

	thirdPartiesQuery = MustParseQuery(`query ThirdParties($first: Int!, $skip: Int!) {
  thirdParties(
    where: {isApproved: true}
    first: $first
    skip: $skip
    orderBy: id
  ) {
    id
    resolver
    metadata {
      thirdParty {
        name
        description
      }
    }
  }
}`, "approved third party integrations")

	thirdPartyResolverQuery = MustParseQuery(`query ThirdPartyResolver($id: String!) {
  thirdParties(where: {id: $id, isApproved: true}) {
    id
    resolver
  }
}`, "third party resolver")
)

// ownershipQuery returns the ownership query for an asset kind
func ownershipQuery(kind AssetKind) Query {
	if kind == AssetKindName {
		return namesOwnershipQuery
	}
	return itemsOwnershipQuery
}

// OwnershipRow is one owned entity: the asset and the account holding it
type OwnershipRow struct {
	Asset string `json:"asset"`
	Owner struct {
		Address string `json:"address"`
	} `json:"owner"`
}

// ownershipPage is the response shape shared by the ownership queries
type ownershipPage struct {
	NFTs []OwnershipRow `json:"nfts"`
}

// collectionsPage is the response shape of the collections query
type collectionsPage struct {
	Collections []struct {
		Name string `json:"name"`
		URN  string `json:"urn"`
	} `json:"collections"`
}

// thirdPartyRow is one registered third party
type thirdPartyRow struct {
	ID       string `json:"id"`
	Resolver string `json:"resolver"`
	Metadata *struct {
		ThirdParty *struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"thirdParty"`
	} `json:"metadata"`
}

// thirdPartiesPage is the response shape of the third party queries
type thirdPartiesPage struct {
	ThirdParties []thirdPartyRow `json:"thirdParties"`
}
