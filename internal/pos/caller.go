package pos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/model"
)

var ErrSimulatorResponseNotFound = errors.New("pos simulator response not found")

// SimulatorResponseStore loads canned responses. Returns nil, nil when the id is unknown.
type SimulatorResponseStore interface {
	GetPosSimulatorResponseByID(ctx context.Context, id string) (*model.PosSimulatorResponse, error)
}

// StatusError is a non-2xx answer from a provider or a replayed simulator response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pos api error %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// ServiceCaller issues authenticated GETs against a provider, or replays a stored response.
type ServiceCaller struct {
	http      *http.Client
	simulator SimulatorResponseStore
}

func NewServiceCaller(timeout time.Duration, simulator SimulatorResponseStore) *ServiceCaller {
	return &ServiceCaller{
		http:      &http.Client{Timeout: timeout},
		simulator: simulator,
	}
}

// Get returns the response body of url. With a simulatorResponseID no request is made.
func (c *ServiceCaller) Get(ctx context.Context, url, bearerToken string, simulatorResponseID *string) ([]byte, error) {
	if simulatorResponseID != nil {
		return c.replay(ctx, url, *simulatorResponseID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func (c *ServiceCaller) replay(ctx context.Context, url, id string) ([]byte, error) {
	if c.simulator == nil {
		return nil, fmt.Errorf("%w: %s (no simulator store configured)", ErrSimulatorResponseNotFound, id)
	}
	stored, err := c.simulator.GetPosSimulatorResponseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: %s", ErrSimulatorResponseNotFound, id)
	}
	if stored.ResponseStatusCode < 200 || stored.ResponseStatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: stored.ResponseStatusCode, Body: string(stored.ResponseBody)}
	}
	return stored.ResponseBody, nil
}
