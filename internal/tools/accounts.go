package tools

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/merctools/mercury-mcp/pkg/mercury"
)

// errEmptyAccountID rejects calls whose account_id argument is blank before
// any request goes upstream.
var errEmptyAccountID = errors.New("account_id must not be empty")

// getAccountsArgs is intentionally empty; the tool takes no arguments.
type getAccountsArgs struct{}

func (tb *Toolbox) getAccounts(ctx context.Context, _ *mcp.CallToolRequest, _ getAccountsArgs) (*mcp.CallToolResult, mercury.AccountsResult, error) {
	start := time.Now()
	res, err := tb.client.Accounts(ctx)
	tb.record(ctx, "get_accounts", start, err)
	if err != nil {
		return nil, mercury.AccountsResult{}, err
	}
	return nil, *res, nil
}

type getAccountArgs struct {
	AccountID string `json:"account_id" jsonschema:"the unique identifier of the account"`
}

func (tb *Toolbox) getAccount(ctx context.Context, _ *mcp.CallToolRequest, args getAccountArgs) (*mcp.CallToolResult, mercury.Account, error) {
	start := time.Now()
	if args.AccountID == "" {
		tb.record(ctx, "get_account", start, errEmptyAccountID)
		return nil, mercury.Account{}, errEmptyAccountID
	}
	acct, err := tb.client.Account(ctx, args.AccountID)
	tb.record(ctx, "get_account", start, err)
	if err != nil {
		return nil, mercury.Account{}, err
	}
	return nil, *acct, nil
}
