package subgraph

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Query is a parsed, single-operation GraphQL query document
type Query struct {
	// Text is the document sent to the subgraph
	Text string
	// OperationName is the name of the only operation in the document
	OperationName string
	// Description is a human readable description used in logs
	Description string

	variables map[string]struct{}
}

// Declares checks if the query declares a variable
func (q Query) Declares(variable string) bool {
	_, ok := q.variables[variable]
	return ok
}

// ParseQuery parses a GraphQL query document and checks it holds exactly one named query operation
func ParseQuery(text string, description string) (Query, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: description, Input: text})
	if err != nil {
		return Query{}, fmt.Errorf("failed to parse query %q: %w", description, err)
	}

	if len(doc.Operations) != 1 {
		return Query{}, fmt.Errorf("query %q must contain exactly one operation, got %d", description, len(doc.Operations))
	}

	op := doc.Operations[0]
	if op.Operation != ast.Query {
		return Query{}, fmt.Errorf("query %q must be a query operation, got %s", description, op.Operation)
	}
	if op.Name == "" {
		return Query{}, errors.New("query operation must be named")
	}

	variables := make(map[string]struct{}, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		variables[v.Variable] = struct{}{}
	}

	return Query{
		Text:          text,
		OperationName: op.Name,
		Description:   description,
		variables:     variables,
	}, nil
}

// MustParseQuery is like ParseQuery but panics on malformed documents.
// It is intended for package-level query definitions.
func MustParseQuery(text string, description string) Query {
	q, err := ParseQuery(text, description)
	if err != nil {
		panic(err)
	}
	return q
}
