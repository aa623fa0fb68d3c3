package posabit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/internal/pos"
)

type stubSimulatorStore struct {
	mu    sync.Mutex
	calls int
	resp  *model.PosSimulatorResponse
}

func (s *stubSimulatorStore) GetPosSimulatorResponseByID(_ context.Context, id string) (*model.PosSimulatorResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.resp == nil || s.resp.ID != id {
		return nil, nil
	}
	return s.resp, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, store pos.SimulatorResponseStore) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, pos.NewServiceCaller(5*time.Second, store))
}

func TestFetchInventoryFollowsPages(t *testing.T) {
	var mu sync.Mutex
	var pages []int

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventories" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("unexpected auth header %q", got)
		}
		n, _ := strconv.Atoi(r.URL.Query().Get("page"))
		mu.Lock()
		pages = append(pages, n)
		mu.Unlock()

		fmt.Fprintf(w, `{"total_records":3,"current_page":%d,"total_pages":3,"per_page":1,
			"inventory":[{"id":%d,"product_id":7,"name":"Item %d","price":1250,"quantity_on_hand":"4.5",
			"vendor":"Acme","brand":"Brand","category":"Flower","sku":"SKU-%d"}]}`, n, n, n, n)
	}, nil)

	records, err := client.FetchInventory(context.Background(), "key-1", nil)
	if err != nil {
		t.Fatalf("FetchInventory: %v", err)
	}
	if fmt.Sprint(pages) != "[1 2 3]" {
		t.Fatalf("expected pages [1 2 3], got %v", pages)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	r := records[1]
	if r.SKU != "SKU-2" || r.ProductName != "Item 2" || r.Price != 1250 {
		t.Fatalf("unexpected record %+v", r)
	}
	if r.StockOnHand.String() != "4.5" {
		t.Fatalf("unexpected stock on hand %s", r.StockOnHand)
	}
	if r.ListedVendor != "Acme" || r.ListedBrand != "Brand" || r.ListedCategory != "Flower" {
		t.Fatalf("listed fields not mapped: %+v", r)
	}
}

func TestFetchInventorySinglePageWhenTotalPagesMissing(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"inventory":[{"sku":"A","quantity_on_hand":"1"}]}`)
	}, nil)

	records, err := client.FetchInventory(context.Background(), "k", nil)
	if err != nil {
		t.Fatalf("FetchInventory: %v", err)
	}
	if calls != 1 || len(records) != 1 {
		t.Fatalf("expected one call and one record, got %d calls %d records", calls, len(records))
	}
}

func TestFetchInventorySimulatorOverrideSkipsNetworkAndPaging(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"total_records": 10, "current_page": 1, "total_pages": 5, "per_page": 2,
		"inventory": []map[string]interface{}{
			{"sku": "SIM-1", "quantity_on_hand": "2", "price": 100, "name": "Sim One"},
			{"sku": "SIM-2", "quantity_on_hand": "3", "price": 200, "name": "Sim Two"},
		},
	})
	store := &stubSimulatorStore{resp: &model.PosSimulatorResponse{
		BaseModel:          model.BaseModel{ID: "sim-1"},
		ResponseStatusCode: http.StatusOK,
		ActionType:         model.PosSimulatorActionGetInventorySnapshots,
		ResponseBody:       body,
	}}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("simulated fetch must not reach the network: %s", r.URL)
	}, store)

	id := "sim-1"
	records, err := client.FetchInventory(context.Background(), "k", &id)
	if err != nil {
		t.Fatalf("FetchInventory: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected exactly one simulator read, got %d", store.calls)
	}
	if len(records) != 2 || records[0].SKU != "SIM-1" || records[1].Price != 200 {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestFetchInventoryUnknownSimulatorResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, &stubSimulatorStore{})

	id := "missing"
	_, err := client.FetchInventory(context.Background(), "k", &id)
	if !errors.Is(err, pos.ErrSimulatorResponseNotFound) {
		t.Fatalf("expected ErrSimulatorResponseNotFound, got %v", err)
	}
}

func TestFetchInventoryNon2xxPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}, nil)

	_, err := client.FetchInventory(context.Background(), "k", nil)
	var statusErr *pos.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}

func TestFetchInventoryBadJSONPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"inventory": [`)
	}, nil)

	if _, err := client.FetchInventory(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFetchHistoricalSalesMapsItems(t *testing.T) {
	var gotStart, gotEnd string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sales_histories" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotStart, gotEnd = q.Get("q[updated_at_gt]"), q.Get("q[updated_at_lt]")
		fmt.Fprint(w, `{"total_records":1,"current_page":1,"total_pages":1,"per_page":50,
			"sales_histories":[{"id":9001,"ordered_at":"2024-03-01T12:30:00Z","sub_total":900,"discount":0,
			"tax":100,"total":1000,"cost":400,"items":[{"item_id":1,"sales_history_id":9001,"product_id":55,
			"lot_number":"LOT-7","quantity":2,"weight":3.5,"unit_of_weight":"g","cost":200,"sub_total":450,
			"tax":50,"discount":0,"sku":"SKU-9","product_name":"Blue Dream","total":500}]}]}`)
	}, nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	sales, err := client.FetchHistoricalSales(context.Background(), "k", start, &end, nil)
	if err != nil {
		t.Fatalf("FetchHistoricalSales: %v", err)
	}
	if gotStart != "2024-03-01T00:00:00.000Z" || gotEnd != "2024-03-02T00:00:00.000Z" {
		t.Fatalf("unexpected range params %q %q", gotStart, gotEnd)
	}
	if len(sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(sales))
	}
	sale := sales[0]
	if sale.PosSaleID != "9001" || sale.Total != 1000 || sale.Tax == nil || *sale.Tax != 100 {
		t.Fatalf("unexpected sale header %+v", sale)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(sale.Items))
	}
	item := sale.Items[0]
	if !item.SaleTimestamp.Equal(sale.SaleTimestamp) {
		t.Fatalf("item timestamp %s should copy sale timestamp %s", item.SaleTimestamp, sale.SaleTimestamp)
	}
	if item.PosProductID == nil || *item.PosProductID != "55" || item.PosSaleID == nil || *item.PosSaleID != "9001" {
		t.Fatalf("unexpected pos ids %+v", item)
	}
	if item.LotIdentifier == nil || *item.LotIdentifier != "LOT-7" {
		t.Fatalf("lot number not mapped")
	}
	if item.ProductName == nil || item.SaleProductName == nil || *item.SaleProductName != "Blue Dream" {
		t.Fatalf("product name not mapped to both fields")
	}
	if item.UnitOfWeight == nil || *item.UnitOfWeight != model.UnitGrams {
		t.Fatalf("unexpected unit %v", item.UnitOfWeight)
	}
	if item.WeightInUnits == nil || item.WeightInUnits.String() != "3.5" || item.Quantity.String() != "2" {
		t.Fatalf("unexpected quantities %+v", item)
	}
}

func TestDateRangeURL(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.FixedZone("PST", -8*3600))

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		page  int
		want  string
	}{
		{"all params", &start, &end, 2, "b?q[updated_at_gt]=2024-01-02T03:04:05.006Z&q[updated_at_lt]=2024-01-03T08:00:00.000Z&page=2"},
		{"start only", &start, nil, 1, "b?q[updated_at_gt]=2024-01-02T03:04:05.006Z&page=1"},
		{"end only", nil, &end, 1, "b?q[updated_at_lt]=2024-01-03T08:00:00.000Z&page=1"},
		{"page only", nil, nil, 3, "b?page=3"},
		{"nothing", nil, nil, 0, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dateRangeURL("b", tt.start, tt.end, tt.page); got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestParseUnitOfWeight(t *testing.T) {
	for raw, want := range map[string]model.UnitOfWeight{"g": model.UnitGrams, " MG ": model.UnitMilligrams, "fl oz": model.UnitFluidOunces} {
		raw := raw
		got := parseUnitOfWeight(&raw)
		if got == nil || *got != want {
			t.Fatalf("%q: got %v want %s", raw, got, want)
		}
	}
	unknown := "each"
	if parseUnitOfWeight(&unknown) != nil || parseUnitOfWeight(nil) != nil {
		t.Fatalf("unknown units should map to nil")
	}
}
