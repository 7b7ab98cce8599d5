package wallet

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gilberthappi/keya-health-be/internal/ledger"
	"github.com/gilberthappi/keya-health-be/internal/paypack"
)

func setupHandlerApp(svc *Service, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	h := NewHandler(svc)
	app.Get("/wallet", h.Get)
	app.Post("/wallet/transact", h.Transact)
	return app
}

func postTransact(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/wallet/transact", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	json.Unmarshal(payload, &decoded)
	return resp.StatusCode, decoded
}

func TestHandlerGetAbsentWallet(t *testing.T) {
	svc := newTestService(ledger.NewInMemory(), &stubGateway{}, nil)
	app := setupHandlerApp(svc, uuid.NewString())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/wallet", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for a user who never transacted, got %d", resp.StatusCode)
	}
	payload, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(payload), "Wallet not found") {
		t.Fatalf("unexpected body: %s", payload)
	}
}

func TestHandlerTransactCreatesLedger(t *testing.T) {
	gw := &stubGateway{outcome: paypack.Outcome{Reference: "tx-1", Status: "successful"}}
	svc := newTestService(ledger.NewInMemory(), gw, nil)
	userID := uuid.NewString()
	app := setupHandlerApp(svc, userID)

	status, body := postTransact(t, app, `{"type":"deposit","amount":1000,"number":"+250780000001"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", status, body)
	}
	if body["user"] != userID {
		t.Fatalf("expected ledger for %s, got %v", userID, body["user"])
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/wallet", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 after first transaction, got %d", resp.StatusCode)
	}
}

func TestHandlerTransactStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		gateway    *stubGateway
		store      ledger.Store
		body       string
		wantStatus int
		wantMarker string
	}{
		{
			name:       "validation",
			gateway:    &stubGateway{},
			store:      ledger.NewInMemory(),
			body:       `{"type":"transfer","amount":10,"number":"n"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "insufficient funds",
			gateway:    &stubGateway{},
			store:      ledger.NewInMemory(),
			body:       `{"type":"withdrawal","amount":500,"number":"+250780000001"}`,
			wantStatus: fiber.StatusBadRequest,
			wantMarker: "Insufficient balance",
		},
		{
			name:       "declined",
			gateway:    &stubGateway{err: fmt.Errorf("%w: gateway returned 400", paypack.ErrDeclined)},
			store:      ledger.NewInMemory(),
			body:       `{"type":"deposit","amount":300,"number":"+250780000001"}`,
			wantStatus: fiber.StatusPaymentRequired,
			wantMarker: "declined",
		},
		{
			name:       "indeterminate",
			gateway:    &stubGateway{err: fmt.Errorf("%w: context deadline exceeded", paypack.ErrIndeterminate)},
			store:      ledger.NewInMemory(),
			body:       `{"type":"deposit","amount":300,"number":"+250780000001"}`,
			wantStatus: fiber.StatusServiceUnavailable,
			wantMarker: "indeterminate",
		},
		{
			name:       "unreconciled",
			gateway:    &stubGateway{outcome: paypack.Outcome{Reference: "tx-9", Status: "successful"}},
			store:      brokenStore{Store: ledger.NewInMemory()},
			body:       `{"type":"deposit","amount":300,"number":"+250780000001"}`,
			wantStatus: fiber.StatusInternalServerError,
			wantMarker: "unreconciled",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.store, tc.gateway, &captureNotifier{})
			app := setupHandlerApp(svc, uuid.NewString())

			status, body := postTransact(t, app, tc.body)
			if status != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %v", tc.wantStatus, status, body)
			}
			if tc.wantMarker != "" {
				encoded, _ := json.Marshal(body)
				if !strings.Contains(string(encoded), tc.wantMarker) {
					t.Fatalf("expected response to carry %q, got %s", tc.wantMarker, encoded)
				}
			}
		})
	}
}
