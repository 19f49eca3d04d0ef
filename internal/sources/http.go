package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxPayloadBytes caps how much of a remote price list we read. Real
// price sheets are a few hundred KB at most.
const maxPayloadBytes = 8 << 20

// httpLimiter throttles outbound fetches so a reload burst cannot hammer
// a price list host. Shared across every HTTP source.
var httpLimiter = rate.NewLimiter(rate.Limit(4), 4)

// HTTPSource fetches a price list document from a remote endpoint.
type HTTPSource struct {
	id     string
	name   string
	url    string
	client *http.Client
}

func NewHTTPSource(id, name, url string) *HTTPSource {
	if name == "" {
		name = url
	}
	return &HTTPSource{
		id:     id,
		name:   name,
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSource) ID() string { return s.id }

func (s *HTTPSource) Describe() Info {
	return Info{Name: s.name, Kind: KindHTTP, Origin: s.url}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := httpLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching price list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching price list: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading price list: %w", err)
	}
	if len(data) > maxPayloadBytes {
		return nil, fmt.Errorf("reading price list: payload exceeds %d bytes", maxPayloadBytes)
	}
	return data, nil
}
