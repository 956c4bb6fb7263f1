package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// BLOCK_VARIABLE is the variable a query declares to accept a pinned block height
const BLOCK_VARIABLE = "block"

// Endpoint identifies one subgraph deployment
type Endpoint struct {
	Chain domain.Chain
	Name  string
	URL   string
}

// Configured checks if the endpoint has a URL
func (e Endpoint) Configured() bool {
	return e.URL != ""
}

// String returns a compact identity used in logs
func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%s", e.Chain, e.Name)
}

// Request is one subgraph call. A nil Block queries the latest indexed state.
type Request struct {
	Endpoint  Endpoint
	Query     Query
	Block     *uint64
	Variables map[string]any
}

// Executor issues subgraph requests
//
//go:generate mockgen -source=executor.go -destination=../mocks/subgraph_executor.go -package=mocks -mock_names=Executor=MockSubgraphExecutor
type Executor interface {
	// Execute issues exactly one request and decodes the response data into out.
	// Any transport or indexer failure is logged and returned as domain.ErrInternal.
	Execute(ctx context.Context, req Request, out any) error
}

// Run executes a request and maps the typed response with a pure mapping function
func Run[T any, R any](ctx context.Context, exec Executor, req Request, mapper func(T) R) (R, error) {
	var raw T
	if err := exec.Execute(ctx, req, &raw); err != nil {
		var zero R
		return zero, err
	}
	return mapper(raw), nil
}

// graphQLRequest represents a GraphQL request body
type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName"`
}

// graphQLResponse represents a GraphQL response body
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// graphQLExecutor implements Executor over HTTP
type graphQLExecutor struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	clock      adapter.Clock
}

// NewExecutor creates a new GraphQL executor
func NewExecutor(httpClient adapter.HTTPClient, json adapter.JSON, clock adapter.Clock) Executor {
	return &graphQLExecutor{
		httpClient: httpClient,
		json:       json,
		clock:      clock,
	}
}

// Execute issues one request at the requested block height
func (e *graphQLExecutor) Execute(ctx context.Context, req Request, out any) error {
	start := e.clock.Now()

	fields := []zap.Field{
		zap.String("subgraph", req.Endpoint.String()),
		zap.String("operation", req.Query.OperationName),
		zap.String("query", req.Query.Description),
	}
	if req.Block != nil {
		fields = append(fields, zap.Uint64("block", *req.Block))
	}

	if err := e.execute(ctx, req, out); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("subgraph query failed: %w", err), fields...)
		return domain.ErrInternal
	}

	logger.DebugCtx(ctx, "Subgraph query completed", append(fields, zap.Duration("duration", e.clock.Since(start)))...)
	return nil
}

func (e *graphQLExecutor) execute(ctx context.Context, req Request, out any) error {
	if !req.Endpoint.Configured() {
		return fmt.Errorf("%w: %s", domain.ErrSubgraphNotConfigured, req.Endpoint)
	}

	variables, err := buildVariables(req)
	if err != nil {
		return err
	}

	body, err := e.json.Marshal(graphQLRequest{
		Query:         req.Query.Text,
		Variables:     variables,
		OperationName: req.Query.OperationName,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	respBody, err := e.httpClient.PostBytes(ctx, req.Endpoint.URL, map[string]string{"Content-Type": "application/json"}, body)
	if err != nil {
		return fmt.Errorf("failed to call subgraph: %w", err)
	}

	var resp graphQLResponse
	if err := e.json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("failed to unmarshal subgraph response: %w", err)
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, len(resp.Errors))
		for i, gqlErr := range resp.Errors {
			messages[i] = gqlErr.Message
		}
		return fmt.Errorf("subgraph returned errors: %s", strings.Join(messages, "; "))
	}

	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return errors.New("subgraph returned no data")
	}

	if err := e.json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode subgraph data: %w", err)
	}

	return nil
}

// buildVariables copies request variables, adds the pinned block and rejects undeclared names
func buildVariables(req Request) (map[string]any, error) {
	variables := make(map[string]any, len(req.Variables)+1)
	for name, value := range req.Variables {
		if !req.Query.Declares(name) {
			return nil, fmt.Errorf("variable %q is not declared by %s", name, req.Query.OperationName)
		}
		variables[name] = value
	}

	if req.Block != nil {
		if !req.Query.Declares(BLOCK_VARIABLE) {
			return nil, fmt.Errorf("%s does not accept a block height", req.Query.OperationName)
		}
		variables[BLOCK_VARIABLE] = map[string]uint64{"number": *req.Block}
	}

	return variables, nil
}
