package shopapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kromer-flow-plugin/internal/cache"
	"kromer-flow-plugin/pkg/apierror"
)

// Client fetches shop and listing records from the shop backend.
type Client interface {
	Shops(ctx context.Context, force bool) ([]ShopRecord, error)
	Shop(ctx context.Context, uid string, force bool) (*ShopRecord, error)
	AllListings(ctx context.Context, force bool) ([]ListingRecord, error)
	ShopListings(ctx context.Context, uid string, force bool) ([]ListingRecord, error)
	ShopListing(ctx context.Context, uid string, itemID int64, force bool) (*ListingRecord, error)
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// PayloadTTL bounds how long cached pages are reused. Ignored when
	// Payloads is nil.
	PayloadTTL time.Duration
}

type client struct {
	httpClient *http.Client
	baseURL    string
	payloads   cache.PayloadCache
	payloadTTL time.Duration
}

// New creates a shop backend client. payloads may be nil to disable the
// page cache; force-fetches always bypass it and refresh the stored copy.
func New(cfg Config, payloads cache.PayloadCache) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	payloadTTL := cfg.PayloadTTL
	if payloadTTL <= 0 {
		payloadTTL = cache.DefaultTTL
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		payloads:   payloads,
		payloadTTL: payloadTTL,
	}
}

func (c *client) Shops(ctx context.Context, force bool) ([]ShopRecord, error) {
	var records []ShopRecord
	if err := c.getJSON(ctx, "api/Shop/Shops", force, &records); err != nil {
		return nil, err
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (c *client) Shop(ctx context.Context, uid string, force bool) (*ShopRecord, error) {
	var record ShopRecord
	if err := c.getJSON(ctx, fmt.Sprintf("api/Shop/Shops/%s", uid), force, &record); err != nil {
		return nil, err
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *client) AllListings(ctx context.Context, force bool) ([]ListingRecord, error) {
	var records []ListingRecord
	if err := c.getJSON(ctx, "api/Shop/Shops/Items", force, &records); err != nil {
		return nil, err
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (c *client) ShopListings(ctx context.Context, uid string, force bool) ([]ListingRecord, error) {
	var records []ListingRecord
	if err := c.getJSON(ctx, fmt.Sprintf("api/Shop/Shops/%s/Items", uid), force, &records); err != nil {
		return nil, err
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (c *client) ShopListing(ctx context.Context, uid string, itemID int64, force bool) (*ListingRecord, error) {
	var record ListingRecord
	if err := c.getJSON(ctx, fmt.Sprintf("api/Shop/Shops/%s/Items/%d", uid, itemID), force, &record); err != nil {
		return nil, err
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &record, nil
}

// getJSON fetches a route and decodes its JSON body into out, consulting the
// payload cache unless forced.
func (c *client) getJSON(ctx context.Context, route string, force bool, out any) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, route)

	body, err := c.fetch(ctx, url, force)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func (c *client) fetch(ctx context.Context, url string, force bool) ([]byte, error) {
	if c.payloads == nil {
		return c.fetchRemote(ctx, url)
	}

	if force {
		body, err := c.fetchRemote(ctx, url)
		if err != nil {
			return nil, err
		}
		_ = c.payloads.Set(ctx, url, body, c.payloadTTL)
		return body, nil
	}

	return c.payloads.GetOrSet(ctx, url, c.payloadTTL, func() ([]byte, error) {
		return c.fetchRemote(ctx, url)
	})
}

func (c *client) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierror.FromStatus(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func errMissingField(kind, field string) error {
	return apierror.BadResponse(fmt.Sprintf("%s record missing required field %q", kind, field))
}
