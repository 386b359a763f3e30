// Package aggregator fetches raw transaction batches from the backend that
// proxies the bank-data aggregator.
package aggregator

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

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

const (
	DefaultMinTransactions = 100
	DefaultMaxTransactions = 500
)

type Config struct {
	BaseURL         string
	Token           string
	MinTransactions int
	MaxTransactions int
	Timeout         time.Duration
}

// Client implements transaction.Source over HTTP.
type Client struct {
	baseURL string
	token   string
	min     int
	max     int
	client  *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	minTx, maxTx := cfg.MinTransactions, cfg.MaxTransactions
	if minTx <= 0 {
		minTx = DefaultMinTransactions
	}

	if maxTx < minTx {
		maxTx = max(DefaultMaxTransactions, minTx)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		min:     minTx,
		max:     maxTx,
		client:  &http.Client{Timeout: timeout},
	}
}

type fetchRequest struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MinTransactions int    `json:"min_transactions"`
	MaxTransactions int    `json:"max_transactions"`
}

type fetchResponse struct {
	Transactions []transaction.Record `json:"transactions"`
}

// Fetch queries every linked item concurrently and returns their records
// merged in item order. One failed item fails the batch.
func (c *Client) Fetch(ctx context.Context, params transaction.FetchParams) ([]transaction.Record, error) {
	if len(params.ItemIDs) == 0 {
		return nil, fmt.Errorf("no item ids to fetch")
	}

	results := make([][]transaction.Record, len(params.ItemIDs))

	g, ctx := errgroup.WithContext(ctx)

	for i, itemID := range params.ItemIDs {
		g.Go(func() error {
			records, err := c.fetchItem(ctx, itemID, params)
			if err != nil {
				return fmt.Errorf("item %s: %w", itemID, err)
			}

			results[i] = records

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []transaction.Record
	for _, records := range results {
		out = append(out, records...)
	}

	return out, nil
}

func (c *Client) fetchItem(ctx context.Context, itemID string, params transaction.FetchParams) ([]transaction.Record, error) {
	body, err := json.Marshal(fetchRequest{
		StartDate:       params.StartDate.Format(time.DateOnly),
		EndDate:         params.EndDate.Format(time.DateOnly),
		MinTransactions: c.min,
		MaxTransactions: c.max,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/plaid/items/%s/transactions", c.baseURL, url.PathEscape(itemID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var out fetchResponse
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return out.Transactions, nil
}
