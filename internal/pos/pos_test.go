package pos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/model"
)

type nopClient struct{}

func (nopClient) FetchInventory(context.Context, string, *string) ([]GenericInventoryRecord, error) {
	return nil, nil
}

func (nopClient) FetchHistoricalSales(context.Context, string, time.Time, *time.Time, *string) ([]GenericHistoricalSale, error) {
	return nil, nil
}

func TestRegistryClient(t *testing.T) {
	reg := NewRegistry(map[model.PosPlatform]Client{
		model.PosPlatformPosabit: nopClient{},
		model.PosPlatformFlowhub: nil,
	})

	if _, err := reg.Client(model.PosPlatformPosabit); err != nil {
		t.Fatalf("posabit should resolve: %v", err)
	}
	for _, p := range []model.PosPlatform{model.PosPlatformFlowhub, model.PosPlatformUnknown, "Bogus"} {
		if _, err := reg.Client(p); !errors.Is(err, ErrUnsupportedPlatform) {
			t.Fatalf("%s: expected ErrUnsupportedPlatform, got %v", p, err)
		}
	}
}

type memStore map[string]*model.PosSimulatorResponse

func (m memStore) GetPosSimulatorResponseByID(_ context.Context, id string) (*model.PosSimulatorResponse, error) {
	return m[id], nil
}

func TestServiceCallerReplaysStoredResponse(t *testing.T) {
	caller := NewServiceCaller(time.Second, memStore{
		"ok":  {ResponseStatusCode: 200, ResponseBody: []byte(`{"a":1}`)},
		"bad": {ResponseStatusCode: 503, ResponseBody: []byte(`{"error":"down"}`)},
	})

	id := "ok"
	body, err := caller.Get(context.Background(), "http://unused.invalid", "k", &id)
	if err != nil || string(body) != `{"a":1}` {
		t.Fatalf("unexpected replay result %q %v", body, err)
	}

	id = "bad"
	_, err = caller.Get(context.Background(), "http://unused.invalid", "k", &id)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 503 {
		t.Fatalf("expected replayed 503, got %v", err)
	}

	id = "nope"
	if _, err := caller.Get(context.Background(), "http://unused.invalid", "k", &id); !errors.Is(err, ErrSimulatorResponseNotFound) {
		t.Fatalf("expected ErrSimulatorResponseNotFound, got %v", err)
	}
}
