//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"GameShop/internal/storefront"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:5000")

type listing struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"old_price"`
	DiscountPct int      `json:"discount_pct"`
	Platform    string   `json:"platform"`
	Region      string   `json:"region"`
}

func TestSystem_E2E_Catalog(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	all := list(t, "")
	assertSeedIDs(t, all)

	fifa := list(t, "fifa")
	if len(fifa) != 2 || fifa[0].ID != 4 || fifa[1].ID != 5 {
		t.Fatalf("search fifa: got %+v", fifa)
	}

	europe := list(t, "  EUROPE ")
	for _, l := range europe {
		if l.Region != "EUROPE" {
			t.Fatalf("search EUROPE returned %+v", l)
		}
	}
	if len(europe) != 3 {
		t.Fatalf("search EUROPE: got %d rows, want 3", len(europe))
	}

	if none := list(t, "zelda"); len(none) != 0 {
		t.Fatalf("search zelda: got %+v", none)
	}

	if os.Getenv("E2E_RESTART_CATALOG") == "1" {
		restartCatalogContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")
		assertSeedIDs(t, list(t, ""))
	}
}

func TestSystem_E2E_StorefrontClient(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	c := storefront.NewCatalogClient(baseURL, 5*time.Second)
	got, err := c.List(ctx, "red dead")
	if err != nil {
		t.Fatalf("client list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 6 {
		t.Fatalf("search red dead: got %+v", got)
	}
}

func assertSeedIDs(t *testing.T, got []listing) {
	t.Helper()
	if len(got) != 6 {
		t.Fatalf("expected 6 seeded listings, got %d", len(got))
	}
	for i, l := range got {
		if l.ID != int64(i+1) {
			t.Fatalf("row %d: id=%d want %d", i, l.ID, i+1)
		}
	}
}

func list(t *testing.T, search string) []listing {
	t.Helper()

	u := baseURL + "/list"
	if search != "" {
		u += "?search=" + url.QueryEscape(search)
	}

	var out []listing
	getJSON(t, u, &out, http.StatusOK)
	if out == nil {
		t.Fatalf("GET %s: body is null, want an array", u)
	}
	return out
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getJSON(t *testing.T, url string, out any, want int) {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("GET %s: status=%d want=%d", url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
