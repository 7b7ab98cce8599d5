package paypack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilberthappi/keya-health-be/internal/ledger"
)

func gatewayServer(t *testing.T, transact http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/agents/authorize", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"token-1","refresh":"refresh-1","expires":` + expiresIn(time.Hour) + `}`))
	})
	mux.HandleFunc("/transactions/cashin", transact)
	mux.HandleFunc("/transactions/cashout", transact)
	return httptest.NewServer(mux)
}

func expiresIn(d time.Duration) string {
	return strconv.FormatInt(time.Now().Add(d).Unix(), 10)
}

func TestExecuteSuccess(t *testing.T) {
	srv := gatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ref":"tx-1","status":"successful"}`))
	})
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{ClientID: "id", ClientSecret: "secret"})
	out, err := client.Execute(context.Background(), ledger.KindDeposit, decimal.NewFromInt(1_000), "+250780000001")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Reference != "tx-1" {
		t.Fatalf("expected reference tx-1, got %q", out.Reference)
	}
}

func TestExecuteDeclined(t *testing.T) {
	srv := gatewayServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"amount below minimum"}`, http.StatusBadRequest)
	})
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{})
	_, err := client.Execute(context.Background(), ledger.KindWithdrawal, decimal.NewFromInt(10), "+250780000001")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestExecuteServerErrorIsIndeterminate(t *testing.T) {
	srv := gatewayServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{})
	_, err := client.Execute(context.Background(), ledger.KindDeposit, decimal.NewFromInt(500), "+250780000001")
	if !errors.Is(err, ErrIndeterminate) {
		t.Fatalf("expected ErrIndeterminate, got %v", err)
	}
}

func TestExecuteTimeoutIsIndeterminate(t *testing.T) {
	release := make(chan struct{})
	srv := gatewayServer(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
	})
	defer func() {
		close(release)
		srv.Close()
	}()

	client := NewHTTPClient(srv.URL, Credentials{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Execute(ctx, ledger.KindDeposit, decimal.NewFromInt(300), "+250780000001")
	if !errors.Is(err, ErrIndeterminate) {
		t.Fatalf("expected ErrIndeterminate on timeout, got %v", err)
	}
}

func TestExecuteMissingReferenceIsIndeterminate(t *testing.T) {
	srv := gatewayServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"pending"}`))
	})
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{})
	_, err := client.Execute(context.Background(), ledger.KindDeposit, decimal.NewFromInt(300), "+250780000001")
	if !errors.Is(err, ErrIndeterminate) {
		t.Fatalf("expected ErrIndeterminate, got %v", err)
	}
}

func TestExecuteAuthorizationFailureIsDecline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/agents/authorize", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{ClientID: "bad"})
	_, err := client.Execute(context.Background(), ledger.KindDeposit, decimal.NewFromInt(300), "+250780000001")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined before any movement, got %v", err)
	}
}
