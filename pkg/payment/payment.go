package payment

import "context"

// TransferRequest moves money to a professional's payout account on the rail.
type TransferRequest struct {
	DestinationAccount string
	AmountCents        int64
	Currency           string
	Reference          string // unique per transfer; used for reconciliation
	Description        string
	Metadata           map[string]string
}

// TransferResponse is the rail's acknowledgement of an accepted transfer.
type TransferResponse struct {
	TransferID  string
	Reference   string
	AmountCents int64
	Status      string
	CreatedAt   string
}

// Client executes payout transfers. A returned error means the rail rejected
// or never acknowledged the transfer; callers decide whether that is fatal.
type Client interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error)
}
