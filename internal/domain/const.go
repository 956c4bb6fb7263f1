package domain

import "time"

const (
	// Resolution defaults
	DEFAULT_TOLERANCE_WINDOW      = 5 * time.Minute
	DEFAULT_MAX_INPUT_CARDINALITY = 1000
	DEFAULT_PAGE_SIZE             = 1000
	DEFAULT_MAX_CONCURRENCY       = 8

	// Subgraph entity categories
	CATEGORY_ENS = "ens"
)
