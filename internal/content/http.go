package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched bundle is served from memory.
const DefaultCacheTTL = 5 * time.Minute

const dataEndpoint = "/portfolio/data"

// HTTPSource reads the bundle from a portfolio API.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	TTL     time.Duration

	now     func() time.Time
	mu      sync.Mutex
	cached  *Bundle
	fetched time.Time
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
		TTL:     DefaultCacheTTL,
		now:     time.Now,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (*Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetched) < s.TTL {
		return s.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+dataEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var b Bundle
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	s.cached = b.normalize()
	s.fetched = s.now()
	return s.cached, nil
}

// ClearCache drops the cached bundle.
func (s *HTTPSource) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
