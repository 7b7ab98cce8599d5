package paypack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilberthappi/keya-health-be/internal/ledger"
)

const tokenRefreshSlack = 30 * time.Second

// Credentials hold the agent keys issued by Paypack. They are injected at
// construction; the client keeps no process-wide state.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// HTTPClient talks to the Paypack cash-in/cash-out API.
type HTTPClient struct {
	baseURL string
	creds   Credentials
	http    *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewHTTPClient builds a gateway client for the given API base URL.
func NewHTTPClient(baseURL string, creds Credentials) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{},
	}
}

type authorizeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type authorizeResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Expires int64  `json:"expires"`
}

type transactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Number string          `json:"number"`
}

type transactionResponse struct {
	Ref    string `json:"ref"`
	Status string `json:"status"`
}

// Execute performs a single cash-in or cash-out call and classifies the result
// into one of three outcomes: definite success (reference returned), definite
// failure (ErrDeclined), or unknown (ErrIndeterminate). A timeout does NOT
// imply the movement did not happen, so transport failures after the request
// is sent are never reported as declines.
func (c *HTTPClient) Execute(ctx context.Context, kind string, amount decimal.Decimal, payerNumber string) (Outcome, error) {
	var path string
	switch kind {
	case ledger.KindDeposit:
		path = "/transactions/cashin"
	case ledger.KindWithdrawal:
		path = "/transactions/cashout"
	default:
		return Outcome{}, fmt.Errorf("unknown transaction kind %q", kind)
	}

	token, err := c.token(ctx)
	if err != nil {
		// Authorization happens before any cash movement, so failing here is a
		// definite no-op on the provider side.
		return Outcome{}, fmt.Errorf("%w: authorize: %v", ErrDeclined, err)
	}

	body, err := json.Marshal(transactionRequest{Amount: amount, Number: payerNumber})
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: encode request: %v", ErrDeclined, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: build request: %v", ErrDeclined, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		// The request may have reached the provider: unknown whether money moved.
		return Outcome{}, fmt.Errorf("%w: %v", ErrIndeterminate, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: read response: %v", ErrIndeterminate, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var tr transactionResponse
		if err := json.Unmarshal(payload, &tr); err != nil || tr.Ref == "" {
			// Accepted but unidentifiable: cannot reconcile without a reference.
			return Outcome{}, fmt.Errorf("%w: response missing transaction reference", ErrIndeterminate)
		}
		return Outcome{Reference: tr.Ref, Status: tr.Status, Raw: payload}, nil
	case resp.StatusCode >= 500:
		// The provider may have moved cash before failing.
		return Outcome{}, fmt.Errorf("%w: gateway returned %d", ErrIndeterminate, resp.StatusCode)
	default:
		return Outcome{}, fmt.Errorf("%w: gateway returned %d: %s", ErrDeclined, resp.StatusCode, strings.TrimSpace(string(payload)))
	}
}

// token returns a cached agent token, fetching a fresh one when expired.
func (c *HTTPClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Add(tokenRefreshSlack).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	body, err := json.Marshal(authorizeRequest{ClientID: c.creds.ClientID, ClientSecret: c.creds.ClientSecret})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/agents/authorize", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("authorize returned %d", resp.StatusCode)
	}

	var ar authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("decode authorize response: %w", err)
	}
	if ar.Access == "" {
		return "", fmt.Errorf("authorize response missing access token")
	}

	c.accessToken = ar.Access
	c.tokenExpiry = time.Unix(ar.Expires, 0)
	if ar.Expires == 0 {
		c.tokenExpiry = time.Now().Add(5 * time.Minute)
	}
	return c.accessToken, nil
}
