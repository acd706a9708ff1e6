package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var _ MetalPriceSource = (*GoldAPISource)(nil)

// GoldAPISource fetches per-gram prices from the goldapi.io API, one request per metal.
type GoldAPISource struct {
	baseURL  string
	apiKey   string
	currency string
	client   *http.Client
}

// NewGoldAPISource creates a new GoldAPISource.
func NewGoldAPISource(baseURL, apiKey, currency string, timeoutSec int) *GoldAPISource {
	if baseURL == "" {
		baseURL = "https://www.goldapi.io/api"
	}
	if currency == "" {
		currency = "INR"
	}
	return &GoldAPISource{
		baseURL:  baseURL,
		apiKey:   apiKey,
		currency: currency,
		client:   &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Name returns the source identifier stored alongside fetched rates.
func (p *GoldAPISource) Name() string { return "goldapi" }

type goldAPIResponse struct {
	Metal        string           `json:"metal"`
	Currency     string           `json:"currency"`
	Price        decimal.Decimal  `json:"price"`
	PriceGram24k *decimal.Decimal `json:"price_gram_24k"`
	Timestamp    int64            `json:"timestamp"`
}

// FetchRates retrieves the gold and silver per-gram prices.
func (p *GoldAPISource) FetchRates(ctx context.Context) (MetalQuote, error) {
	gold, err := p.fetchMetal(ctx, SymbolGold)
	if err != nil {
		return MetalQuote{}, err
	}
	silver, err := p.fetchMetal(ctx, SymbolSilver)
	if err != nil {
		return MetalQuote{}, err
	}
	return MetalQuote{
		Gold:      gold,
		Silver:    silver,
		Source:    p.Name(),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *GoldAPISource) fetchMetal(ctx context.Context, symbol string) (decimal.Decimal, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", p.baseURL, symbol, p.currency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return decimal.Zero, fmt.Errorf("goldapi request creation failed: %w", err)
	}
	req.Header.Set("x-access-token", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("goldapi request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("goldapi returned status %d: %s: %w", resp.StatusCode, string(body), ErrBadStatus)
	}

	var result goldAPIResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode goldapi response: %v: %w", err, ErrParse)
	}

	if result.PriceGram24k == nil {
		return decimal.Zero, fmt.Errorf("no price_gram_24k for %s in goldapi response: %w", symbol, ErrBadPayload)
	}
	if !result.PriceGram24k.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive goldapi price for %s: %w", symbol, ErrBadPayload)
	}
	return *result.PriceGram24k, nil
}
