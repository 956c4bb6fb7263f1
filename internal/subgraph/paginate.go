package subgraph

import (
	"context"
)

// Paginate drains a first/skip query by advancing the offset one page at a time
// until a page shorter than pageSize comes back. Pages are fetched sequentially
// and concatenated in order; the first failing page aborts the whole read.
func Paginate[T any](ctx context.Context, pageSize int, fetch func(ctx context.Context, first int, skip int) ([]T, error)) ([]T, error) {
	if pageSize <= 0 {
		pageSize = 1
	}

	var all []T
	for skip := 0; ; skip += pageSize {
		page, err := fetch(ctx, pageSize, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
