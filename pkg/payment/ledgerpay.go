package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LedgerPayProvider executes payout transfers through the LedgerPay
// merchant API.
type LedgerPayProvider struct {
	BaseURL  string
	Email    string
	Password string
	client   *http.Client
}

func NewLedgerPayProvider(baseURL, email, password string) *LedgerPayProvider {
	return &LedgerPayProvider{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type ledgerPayLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ledgerPayLoginResp struct {
	Token string `json:"token"`
}

// getToken logs in and returns a fresh token per transfer.
func (p *LedgerPayProvider) getToken(ctx context.Context) (string, error) {
	body, _ := json.Marshal(ledgerPayLoginReq{Email: p.Email, Password: p.Password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/v1/merchants/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %d", resp.StatusCode)
	}
	var out ledgerPayLoginResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

type ledgerPayTransferReq struct {
	Destination string            `json:"destination_account"`
	Amount      string            `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type ledgerPayTransferResp struct {
	UUID                string `json:"uuid"`
	Reference           string `json:"reference"`
	AmountCents         int64  `json:"amount_cents"`
	Status              string `json:"status"`
	ResponseCode        string `json:"response_code"`
	ResponseDescription string `json:"response_description"`
	CreatedAt           string `json:"created_at"`
}

// Transfer sends amountCents to a payout account. The reference must be
// unique; an empty one gets generated here.
func (p *LedgerPayProvider) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledgerpay login: %w", err)
	}
	reference := req.Reference
	if reference == "" {
		reference = fmt.Sprintf("tr-%s", uuid.New().String())
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	payload := ledgerPayTransferReq{
		Destination: req.DestinationAccount,
		Amount:      strconv.FormatInt(req.AmountCents, 10),
		Currency:    currency,
		Reference:   reference,
		Description: req.Description,
		Metadata:    req.Metadata,
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+token)
	log.Printf("[LedgerPay] POST %s/api/v1/transfers reference=%s amount=%d dest=%s", p.BaseURL, reference, req.AmountCents, req.DestinationAccount)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("[LedgerPay] response status=%d body=%s", resp.StatusCode, string(respBody))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("ledgerpay transfer: %d %s", resp.StatusCode, string(respBody))
	}
	var out ledgerPayTransferResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &TransferResponse{
		TransferID:  out.UUID,
		Reference:   reference,
		AmountCents: out.AmountCents,
		Status:      out.Status,
		CreatedAt:   out.CreatedAt,
	}, nil
}
