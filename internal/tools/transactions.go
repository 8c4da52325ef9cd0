package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/merctools/mercury-mcp/pkg/mercury"
)

type getTransactionsArgs struct {
	AccountID string `json:"account_id" jsonschema:"the unique identifier of the account"`
	Limit     *int   `json:"limit,omitempty" jsonschema:"maximum number of transactions to return"`
	Offset    *int   `json:"offset,omitempty" jsonschema:"number of transactions to skip from the start of the listing"`
}

// getTransactions lists transactions for one account. Limit and offset reach
// the API only when the caller provided them, so the API's own paging
// defaults apply otherwise. An explicit zero still counts as provided.
func (tb *Toolbox) getTransactions(ctx context.Context, _ *mcp.CallToolRequest, args getTransactionsArgs) (*mcp.CallToolResult, mercury.TransactionsResult, error) {
	start := time.Now()
	if args.AccountID == "" {
		tb.record(ctx, "get_transactions", start, errEmptyAccountID)
		return nil, mercury.TransactionsResult{}, errEmptyAccountID
	}
	res, err := tb.client.Transactions(ctx, args.AccountID, mercury.ListOptions{
		Limit:  args.Limit,
		Offset: args.Offset,
	})
	tb.record(ctx, "get_transactions", start, err)
	if err != nil {
		return nil, mercury.TransactionsResult{}, err
	}
	return nil, *res, nil
}
