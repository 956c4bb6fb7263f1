package subgraph

import (
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
)

// Batch is a group of ownership queries sent as one combined request
type Batch []domain.OwnershipQuery

// Size returns the number of asset entries the batch asks about
func (b Batch) Size() int {
	size := 0
	for _, q := range b {
		size += len(q.Assets)
	}
	return size
}

// Owners returns the distinct owners of the batch in order
func (b Batch) Owners() []string {
	seen := make(map[domain.OwnerAddress]struct{}, len(b))
	owners := make([]string, 0, len(b))
	for _, q := range b {
		if _, ok := seen[q.Owner]; ok {
			continue
		}
		seen[q.Owner] = struct{}{}
		owners = append(owners, q.Owner.String())
	}
	return owners
}

// Assets returns the distinct assets of the batch in order
func (b Batch) Assets() []string {
	var all []domain.AssetIdentifier
	for _, q := range b {
		all = append(all, q.Assets...)
	}
	return domain.AssetStrings(domain.UniqueAssets(all))
}

// Slice partitions ownership queries into the fewest order-preserving batches
// holding at most max asset entries each.
//
// An owner's asset list is never split across batches unless the list alone
// exceeds max, in which case it is cut into contiguous chunks of at most max
// entries. Queries without assets are dropped.
func Slice(queries []domain.OwnershipQuery, max int) []Batch {
	if max <= 0 {
		max = domain.DEFAULT_MAX_INPUT_CARDINALITY
	}

	var batches []Batch
	var current Batch
	currentSize := 0

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, current)
		}
		current = nil
		currentSize = 0
	}

	for _, q := range queries {
		for _, chunk := range chunkAssets(q.Assets, max) {
			if currentSize+len(chunk) > max {
				flush()
			}
			current = append(current, domain.OwnershipQuery{Owner: q.Owner, Assets: chunk})
			currentSize += len(chunk)
		}
	}
	flush()

	return batches
}

// chunkAssets cuts assets into contiguous chunks of at most size entries
func chunkAssets(assets []domain.AssetIdentifier, size int) [][]domain.AssetIdentifier {
	var chunks [][]domain.AssetIdentifier
	for start := 0; start < len(assets); start += size {
		end := min(start+size, len(assets))
		chunks = append(chunks, assets[start:end])
	}
	return chunks
}
