package kromer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kromer-flow-plugin/pkg/apierror"
)

// Client talks to the Kromer wallet/ledger backend.
type Client interface {
	// Login resolves a private key to its wallet address.
	Login(ctx context.Context, privateKey string) (string, error)

	// GetAddress fetches one wallet address record.
	GetAddress(ctx context.Context, address string) (*Address, error)

	// AddressTransactions lists a wallet's transactions, newest first.
	// Returns the page and the total count.
	AddressTransactions(ctx context.Context, address string, limit, offset int) ([]Transaction, int, error)

	// AddressNames lists the names owned by a wallet.
	AddressNames(ctx context.Context, address string) ([]Name, error)

	// LatestTransactions lists the newest transactions across all wallets.
	LatestTransactions(ctx context.Context, limit, offset int) ([]Transaction, int, error)

	// GetTransaction fetches one transaction by id.
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)

	// Send transfers funds from the wallet behind privateKey.
	Send(ctx context.Context, privateKey, to string, amount float64, metadata string) (*Transaction, error)
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a wallet backend client.
func New(cfg Config) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

func (c *client) Login(ctx context.Context, privateKey string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/login", map[string]any{"privatekey": privateKey})
	if err != nil {
		return "", err
	}

	var env loginEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if !env.OK || !env.Authed {
		return "", apierror.BadRequest("private key could not be authenticated")
	}
	return env.Address, nil
}

func (c *client) GetAddress(ctx context.Context, address string) (*Address, error) {
	env, err := c.get(ctx, "/addresses/"+url.PathEscape(address))
	if err != nil {
		return nil, err
	}
	if env.Address == nil {
		return nil, apierror.NotFound("address not found")
	}
	return env.Address, nil
}

func (c *client) AddressTransactions(ctx context.Context, address string, limit, offset int) ([]Transaction, int, error) {
	route := fmt.Sprintf("/addresses/%s/transactions?limit=%d&offset=%d", url.PathEscape(address), clampLimit(limit), offset)
	env, err := c.get(ctx, route)
	if err != nil {
		return nil, 0, err
	}
	return env.Transactions, env.Total, nil
}

func (c *client) AddressNames(ctx context.Context, address string) ([]Name, error) {
	env, err := c.get(ctx, "/addresses/"+url.PathEscape(address)+"/names")
	if err != nil {
		return nil, err
	}
	return env.Names, nil
}

func (c *client) LatestTransactions(ctx context.Context, limit, offset int) ([]Transaction, int, error) {
	route := fmt.Sprintf("/transactions/latest?limit=%d&offset=%d", clampLimit(limit), offset)
	env, err := c.get(ctx, route)
	if err != nil {
		return nil, 0, err
	}
	return env.Transactions, env.Total, nil
}

func (c *client) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	env, err := c.get(ctx, fmt.Sprintf("/transactions/%d", id))
	if err != nil {
		return nil, err
	}
	if env.Transaction == nil {
		return nil, apierror.NotFound("transaction not found")
	}
	return env.Transaction, nil
}

func (c *client) Send(ctx context.Context, privateKey, to string, amount float64, metadata string) (*Transaction, error) {
	payload := map[string]any{
		"privatekey": privateKey,
		"to":         to,
		"amount":     amount,
	}
	if metadata != "" {
		payload["metadata"] = metadata
	}

	body, err := c.do(ctx, http.MethodPost, "/transactions", payload)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode send response: %w", err)
	}
	if env.Transaction == nil {
		return nil, apierror.BadResponse("send response missing transaction")
	}
	return env.Transaction, nil
}

func (c *client) get(ctx context.Context, route string) (*envelope, error) {
	body, err := c.do(ctx, http.MethodGet, route, nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", route, err)
	}
	return &env, nil
}

// do performs a request and returns the raw body. Failures surface the API's
// error code and message when the body carries one, the HTTP status
// otherwise. Never retried.
func (c *client) do(ctx context.Context, method, route string, payload any) ([]byte, error) {
	endpoint := c.baseURL + route

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var probe struct {
		OK      bool   `json:"ok"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && !probe.OK && probe.Error != "" {
		message := probe.Message
		if message == "" {
			message = probe.Error
		}
		return nil, &apierror.Error{
			StatusCode: resp.StatusCode,
			Code:       strings.ToUpper(probe.Error),
			Message:    message,
			URL:        endpoint,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierror.FromStatus(resp.StatusCode, endpoint)
	}
	return body, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}
