package posabit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/pos"
)

const DefaultBaseURL = "https://app.posabit.com/api/v2/venue"

// queryTimeLayout is ISO-8601 with milliseconds; UTC renders as Z.
const queryTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Caller interface {
	Get(ctx context.Context, url, bearerToken string, simulatorResponseID *string) ([]byte, error)
}

type Client struct {
	baseURL string
	caller  Caller
}

var _ pos.Client = (*Client)(nil)

func NewClient(baseURL string, caller Caller) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), caller: caller}
}

func (c *Client) FetchInventory(ctx context.Context, integrationKey string, simulatorResponseID *string) ([]pos.GenericInventoryRecord, error) {
	var records []pos.GenericInventoryRecord
	err := paginate(simulatorResponseID, func(n int) (page, error) {
		var resp inventoryResponse
		if err := c.get(ctx, fmt.Sprintf("%s/inventories?page=%d", c.baseURL, n), integrationKey, simulatorResponseID, &resp); err != nil {
			return page{}, err
		}
		for _, item := range resp.Inventory {
			records = append(records, toGenericInventoryRecord(item))
		}
		return resp.page, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) FetchHistoricalSales(ctx context.Context, integrationKey string, startTime time.Time, endTime *time.Time, simulatorResponseID *string) ([]pos.GenericHistoricalSale, error) {
	var sales []pos.GenericHistoricalSale
	err := paginate(simulatorResponseID, func(n int) (page, error) {
		var resp salesHistoriesResponse
		url := dateRangeURL(c.baseURL+"/sales_histories", &startTime, endTime, n)
		if err := c.get(ctx, url, integrationKey, simulatorResponseID, &resp); err != nil {
			return page{}, err
		}
		for _, sale := range resp.SalesHistories {
			sales = append(sales, toGenericHistoricalSale(sale))
		}
		return resp.page, nil
	})
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *Client) get(ctx context.Context, url, key string, simulatorResponseID *string, out interface{}) error {
	body, err := c.caller.Get(ctx, url, key, simulatorResponseID)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode posabit response from %s: %w", url, err)
	}
	return nil
}

// paginate calls fetch from page 1 until current_page passes total_pages. A simulator override stops after one call.
func paginate(simulatorResponseID *string, fetch func(n int) (page, error)) error {
	n := 1
	for {
		p, err := fetch(n)
		if err != nil {
			return err
		}
		if simulatorResponseID != nil {
			return nil
		}

		total := p.TotalPages
		if total < 1 {
			total = 1
		}
		next := p.CurrentPage + 1
		if next <= n {
			next = n + 1
		}
		if next > total {
			return nil
		}
		n = next
	}
}

// dateRangeURL appends each non-nil parameter, opening with ? and joining with &.
func dateRangeURL(base string, start, end *time.Time, page int) string {
	var params []string
	if start != nil {
		params = append(params, "q[updated_at_gt]="+start.UTC().Format(queryTimeLayout))
	}
	if end != nil {
		params = append(params, "q[updated_at_lt]="+end.UTC().Format(queryTimeLayout))
	}
	if page > 0 {
		params = append(params, fmt.Sprintf("page=%d", page))
	}
	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}
