package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCatalogBadStatus   = errors.New("catalog bad status")
)

const (
	defaultTimeout    = 3 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
	maxErrorBody      = 4 << 10
)

// Lister is what Query needs from the catalog.
type Lister interface {
	List(ctx context.Context, search string) ([]Listing, error)
}

type CatalogClient struct {
	BaseURL string
	Client  *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CatalogClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// List calls GET /list. An empty search omits the query parameter.
func (c *CatalogClient) List(ctx context.Context, search string) ([]Listing, error) {
	u := c.BaseURL + "/list"
	if search != "" {
		u += "?" + url.Values{"search": {search}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(chimw.RequestIDHeader, uuid.NewString())

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, badStatus(resp)
	}

	var out []Listing
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	if out == nil {
		out = []Listing{}
	}
	return out, nil
}

// Ready probes GET /readyz, which fails while the catalog store is down.
func (c *CatalogClient) Ready(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, c.BaseURL+"/readyz", nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return badStatus(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func badStatus(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return fmt.Errorf("%w: status=%d: %s", ErrCatalogBadStatus, resp.StatusCode, body.Error)
	}
	return fmt.Errorf("%w: status=%d", ErrCatalogBadStatus, resp.StatusCode)
}
