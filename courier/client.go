package courier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CostOption is one courier/service/price tuple returned by the cost API.
type CostOption struct {
	Courier     string `json:"courier"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	ETD         string `json:"etd"`
}

type costResponse struct {
	Meta struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"meta"`
	Data []struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Service     string `json:"service"`
		Description string `json:"description"`
		Cost        int64  `json:"cost"`
		ETD         string `json:"etd"`
	} `json:"data"`
}

// Client talks to the third-party courier cost API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// DomesticCost asks the provider for every courier's price between two
// district ids, cheapest first.
func (c *Client) DomesticCost(ctx context.Context, originID, destinationID, weightGrams int, couriers []string) ([]CostOption, error) {
	form := url.Values{}
	form.Set("origin", strconv.Itoa(originID))
	form.Set("destination", strconv.Itoa(destinationID))
	form.Set("weight", strconv.Itoa(weightGrams))
	form.Set("courier", strings.Join(couriers, ":"))
	form.Set("price", "lowest")

	endpoint := c.baseURL + "/calculate/district/domestic-cost"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach courier API: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courier API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed costResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse courier response: %w", err)
	}

	options := make([]CostOption, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		options = append(options, CostOption{
			Courier:     strings.ToLower(d.Code),
			Service:     d.Service,
			Description: d.Description,
			Cost:        d.Cost,
			ETD:         d.ETD,
		})
	}
	return options, nil
}
