package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLedgerPayTransfer(t *testing.T) {
	var gotTransfer ledgerPayTransferReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/merchants/login":
			json.NewEncoder(w).Encode(ledgerPayLoginResp{Token: "tok"})
		case "/api/v1/transfers":
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("Authorization = %q, want Bearer tok", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotTransfer); err != nil {
				t.Fatalf("decode transfer request: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(ledgerPayTransferResp{
				UUID:        "lp_123",
				Reference:   gotTransfer.Reference,
				AmountCents: 8455,
				Status:      "COMPLETED",
				CreatedAt:   "2026-08-29T10:00:00Z",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewLedgerPayProvider(srv.URL, "merchant@example.com", "secret")
	resp, err := p.Transfer(context.Background(), TransferRequest{
		DestinationAccount: "acct_pro",
		AmountCents:        8455,
		Currency:           "USD",
		Reference:          "session-1-net-x",
		Description:        "Coffee chat payout",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTransfer.Destination != "acct_pro" || gotTransfer.Amount != "8455" {
		t.Errorf("wire request = %+v", gotTransfer)
	}
	if resp.TransferID != "lp_123" || resp.Reference != "session-1-net-x" {
		t.Errorf("response = %+v", resp)
	}
	if resp.AmountCents != 8455 || resp.Status != "COMPLETED" {
		t.Errorf("response = %+v", resp)
	}
	// The rail's timestamp passes through as the wire string.
	if resp.CreatedAt != "2026-08-29T10:00:00Z" {
		t.Errorf("created_at = %q", resp.CreatedAt)
	}
}

func TestLedgerPayTransferRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/merchants/login" {
			json.NewEncoder(w).Encode(ledgerPayLoginResp{Token: "tok"})
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"destination not found"}`))
	}))
	defer srv.Close()

	p := NewLedgerPayProvider(srv.URL, "merchant@example.com", "secret")
	if _, err := p.Transfer(context.Background(), TransferRequest{
		DestinationAccount: "acct_missing",
		AmountCents:        100,
	}); err == nil {
		t.Fatal("expected error for rejected transfer")
	}
}
