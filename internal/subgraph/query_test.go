package subgraph_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-resolver/internal/logger"
	"github.com/feral-file/ff-ownership-resolver/internal/subgraph"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestParseQuery(t *testing.T) {
	q, err := subgraph.ParseQuery(`query Owned($owners: [String!]!, $block: Block_height) {
  nfts(where: {owner_in: $owners}, block: $block) { id }
}`, "owned nfts")

	require.NoError(t, err)
	assert.Equal(t, "Owned", q.OperationName)
	assert.Equal(t, "owned nfts", q.Description)
	assert.True(t, q.Declares("owners"))
	assert.True(t, q.Declares(subgraph.BLOCK_VARIABLE))
	assert.False(t, q.Declares("assets"))
}

func TestParseQuery_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "syntax error",
			text: `query Broken { nfts { id }`,
		},
		{
			name: "anonymous operation",
			text: `query { nfts { id } }`,
		},
		{
			name: "mutation",
			text: `mutation Burn { burn(id: "1") }`,
		},
		{
			name: "multiple operations",
			text: `query A { nfts { id } } query B { nfts { id } }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := subgraph.ParseQuery(tt.text, tt.name)
			assert.Error(t, err)
		})
	}
}

func TestMustParseQuery_Panics(t *testing.T) {
	assert.Panics(t, func() {
		subgraph.MustParseQuery(`not graphql`, "broken")
	})
}
