package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"apartments-cleaner/utils"
)

// DefaultNBGURL is the National Bank of Georgia official rates endpoint.
const DefaultNBGURL = "https://nbg.gov.ge/gw/api/ct/monetarypolicy/currencies/en/json/?currencies=USD"

type nbgDay struct {
	Date       string        `json:"date"`
	Currencies []nbgCurrency `json:"currencies"`
}

type nbgCurrency struct {
	Code     string  `json:"code"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// NBG fetches the official GEL per USD rate and inverts it.
type NBG struct {
	url    string
	client *http.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewNBG creates an NBG provider. An empty url selects DefaultNBGURL.
func NewNBG(url string, timeout time.Duration, maxRetries int, logger *utils.Logger) *NBG {
	if url == "" {
		url = DefaultNBGURL
	}
	return &NBG{
		url:    url,
		client: &http.Client{Timeout: timeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

func (n *NBG) Rate(ctx context.Context) (float64, error) {
	var rate float64
	err := n.retry.Do(ctx, "nbg rate fetch", func(ctx context.Context) error {
		r, err := n.fetch(ctx)
		if err != nil {
			return err
		}
		rate = r
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rates: %w", err)
	}

	n.logger.Info("[rates] NBG: 1 GEL = %.6f USD", rate)
	return validate(rate)
}

func (n *NBG) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var days []nbgDay
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	return usdMultiplier(days)
}

// usdMultiplier turns "quantity USD = rate GEL" into a GEL to USD multiplier.
func usdMultiplier(days []nbgDay) (float64, error) {
	for _, d := range days {
		for _, c := range d.Currencies {
			if !strings.EqualFold(c.Code, "USD") {
				continue
			}
			if c.Rate <= 0 || c.Quantity <= 0 {
				return 0, fmt.Errorf("invalid USD quote %v per %v", c.Rate, c.Quantity)
			}
			return c.Quantity / c.Rate, nil
		}
	}
	return 0, fmt.Errorf("no USD quote in response")
}
