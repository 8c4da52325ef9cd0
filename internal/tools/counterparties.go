package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type getCounterpartiesArgs struct{}

// getCounterparties returns the counterparties listing exactly as the API
// sent it. Mercury does not pin down the response shape, so no typed mapping
// is applied.
func (tb *Toolbox) getCounterparties(ctx context.Context, _ *mcp.CallToolRequest, _ getCounterpartiesArgs) (*mcp.CallToolResult, map[string]any, error) {
	start := time.Now()
	out, err := tb.client.Counterparties(ctx)
	tb.record(ctx, "get_counterparties", start, err)
	if err != nil {
		return nil, nil, err
	}
	return nil, out, nil
}
