package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/merctools/mercury-mcp/pkg/mercury"
)

type createPaymentEntryArgs struct {
	AccountID        string  `json:"account_id" jsonschema:"the account to draw the payment from"`
	Amount           float64 `json:"amount" jsonschema:"the payment amount in dollars"`
	CounterpartyID   string  `json:"counterparty_id,omitempty" jsonschema:"the identifier of an existing counterparty to pay"`
	CounterpartyName string  `json:"counterparty_name,omitempty" jsonschema:"the counterparty name used when counterparty_id is not given"`
	Memo             string  `json:"memo,omitempty" jsonschema:"a memo to attach to the payment"`
	ExternalID       string  `json:"external_id,omitempty" jsonschema:"an external identifier for reconciliation"`
}

// createPaymentEntry submits a payment entry template. Every entry is created
// pending admin approval; nothing this server creates can move money on its
// own.
func (tb *Toolbox) createPaymentEntry(ctx context.Context, _ *mcp.CallToolRequest, args createPaymentEntryArgs) (*mcp.CallToolResult, mercury.PaymentEntryResult, error) {
	start := time.Now()
	if args.AccountID == "" {
		tb.record(ctx, "create_payment_entry_template", start, errEmptyAccountID)
		return nil, mercury.PaymentEntryResult{}, errEmptyAccountID
	}
	res, err := tb.client.CreatePaymentEntry(ctx, mercury.PaymentEntryInput{
		AccountID:        args.AccountID,
		Amount:           args.Amount,
		CounterpartyID:   args.CounterpartyID,
		CounterpartyName: args.CounterpartyName,
		Memo:             args.Memo,
		ExternalID:       args.ExternalID,
	})
	tb.record(ctx, "create_payment_entry_template", start, err)
	if err != nil {
		return nil, mercury.PaymentEntryResult{}, err
	}
	return nil, *res, nil
}
