package mercury

// Account is a single Mercury account as returned by the API. Only the
// identifier is guaranteed to be present; the API may omit any of the
// financial fields, so balances are pointers to keep "absent" and "zero"
// apart.
type Account struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	AccountNumber    string   `json:"account_number,omitempty"`
	RoutingNumber    string   `json:"routing_number,omitempty"`
	AvailableBalance *float64 `json:"available_balance,omitempty"`
	CurrentBalance   *float64 `json:"current_balance,omitempty"`
	Currency         string   `json:"currency,omitempty"`
}

// AccountsResult is an account listing. Count always equals len(Accounts);
// it is computed locally, never taken from the response.
type AccountsResult struct {
	Accounts []Account `json:"accounts"`
	Count    int       `json:"count"`
}

// Transaction is a single transaction on an account. Counterparty is kept as
// the free-form mapping the API sends since its shape varies by transaction
// kind.
type Transaction struct {
	ID           string         `json:"id"`
	AccountID    string         `json:"account_id"`
	Amount       float64        `json:"amount"`
	Counterparty map[string]any `json:"counterparty,omitempty"`
	Category     string         `json:"category,omitempty"`
	Description  string         `json:"description,omitempty"`
	Date         string         `json:"date,omitempty"`
	Status       string         `json:"status,omitempty"`
}

// TransactionsResult is a transaction listing. Count always equals
// len(Transactions), computed locally.
type TransactionsResult struct {
	Transactions []Transaction `json:"transactions"`
	Count        int           `json:"count"`
}

// PaymentEntryTemplate is a payment held for admin approval. ID and Status
// are set by the API once the entry exists. RequiresApproval stays true when
// the response omits the field.
type PaymentEntryTemplate struct {
	ID               string  `json:"id,omitempty"`
	AccountID        string  `json:"account_id"`
	Amount           float64 `json:"amount"`
	CounterpartyID   string  `json:"counterparty_id,omitempty"`
	CounterpartyName string  `json:"counterparty_name,omitempty"`
	Memo             string  `json:"memo,omitempty"`
	ExternalID       string  `json:"external_id,omitempty"`
	Status           string  `json:"status,omitempty"`
	RequiresApproval bool    `json:"requires_approval"`
}

// PaymentEntryResult reports the outcome of creating a payment entry
// template.
type PaymentEntryResult struct {
	Success bool                 `json:"success"`
	Entry   PaymentEntryTemplate `json:"entry"`
	Message string               `json:"message"`
}

// PaymentEntryInput describes the payment entry to create. CounterpartyID
// wins over CounterpartyName when both are set; empty optional fields are
// left out of the request entirely.
type PaymentEntryInput struct {
	AccountID        string
	Amount           float64
	CounterpartyID   string
	CounterpartyName string
	Memo             string
	ExternalID       string
}

// ListOptions narrows a transaction listing. Nil fields are not sent, so the
// API's own defaults apply.
type ListOptions struct {
	Limit  *int
	Offset *int
}
