// Package netfile pulls campaign disclosure data from the NetFile Connect2
// public API and hands it to ingestion.
package netfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://netfile.com/Connect2/api/public"

// ErrVendorRequired is returned when the API is called without a vendor id.
// NetFile requires one for production access; without it the client refuses
// outright instead of inventing placeholder data.
var ErrVendorRequired = errors.New("netfile vendor id required")

// Filing is one disclosure filing as reported by the agency feed.
type Filing struct {
	ID          string `json:"id"`
	FilerName   string `json:"filerName"`
	FormType    string `json:"formType"`
	FilingDate  string `json:"filingDate"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	AgencyID    string `json:"agencyId"`
}

// Transaction is one schedule line item on a filing.
type Transaction struct {
	ID         string  `json:"id"`
	FilingID   string  `json:"filingId"`
	TranType   string  `json:"tranType"`
	EntityName string  `json:"entityName"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Zip        string  `json:"zip"`
}

// Client talks to the Connect2 public API.
type Client struct {
	baseURL  string
	vendorID string
	client   *http.Client
}

func NewClient(vendorID string) *Client {
	return &Client{
		baseURL:  defaultBaseURL,
		vendorID: vendorID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(vendorID, baseURL string) *Client {
	c := NewClient(vendorID)
	c.baseURL = baseURL
	return c
}

// Filings fetches the filings an agency received in a given year.
func (c *Client) Filings(ctx context.Context, agencyID string, year int) ([]Filing, error) {
	params := url.Values{}
	params.Set("AgencyID", agencyID)
	params.Set("Year", strconv.Itoa(year))

	var filings []Filing
	if err := c.get(ctx, "/filings", params, &filings); err != nil {
		return nil, fmt.Errorf("fetching filings for agency %s: %w", agencyID, err)
	}

	return filings, nil
}

// Transactions fetches the schedule line items of one filing.
func (c *Client) Transactions(ctx context.Context, filingID string) ([]Transaction, error) {
	params := url.Values{}
	params.Set("FilingID", filingID)

	var txs []Transaction
	if err := c.get(ctx, "/transactions", params, &txs); err != nil {
		return nil, fmt.Errorf("fetching transactions for filing %s: %w", filingID, err)
	}

	return txs, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.vendorID == "" {
		return ErrVendorRequired
	}

	params.Set("VendorID", c.vendorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
