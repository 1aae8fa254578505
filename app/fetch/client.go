// Package fetch is the outbound HTTP layer. It enforces a per-domain
// concurrency cap and a politeness delay between requests to the same
// domain, decodes responses to UTF-8, and carries an opaque
// correlation token from request to response so callers can match
// completions to the entity that triggered them.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"investorinfo/app/cfg"
)

// Response is one completed fetch. Token and Priority come back
// exactly as given to Fetch.
type Response struct {
	Token    string
	URL      string
	Priority int
	Body     []byte
	Status   int
}

type Client struct {
	httpClient  *http.Client
	userAgent   string
	delay       time.Duration
	concurrency int

	mu      sync.Mutex
	domains map[string]*domainState
}

type domainState struct {
	sem    chan struct{}
	mu     sync.Mutex
	nextAt time.Time
}

func NewClient(httpClient *http.Client) *Client {
	c := cfg.Get()
	return newClient(httpClient, c.UserAgent,
		time.Duration(c.DomainDelay)*time.Millisecond, c.DomainConcurrency)
}

func newClient(httpClient *http.Client, userAgent string, delay time.Duration, concurrency int) *Client {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Client{
		httpClient:  httpClient,
		userAgent:   userAgent,
		delay:       delay,
		concurrency: concurrency,
		domains:     make(map[string]*domainState),
	}
}

// Fetch retrieves rawURL, honoring the domain limits. The token
// identifies the originating entity (article link or stock symbol)
// and is returned untouched on the response.
func (c *Client) Fetch(ctx context.Context, rawURL, token string, priority int) (*Response, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	state := c.domainFor(parsed.Hostname())

	select {
	case state.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-state.sem }()

	if err := state.waitTurn(ctx, c.delay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Token:    token,
		URL:      rawURL,
		Priority: priority,
		Body:     body,
		Status:   resp.StatusCode,
	}, nil
}

func (c *Client) domainFor(host string) *domainState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.domains[host]
	if !ok {
		state = &domainState{sem: make(chan struct{}, c.concurrency)}
		c.domains[host] = state
	}
	return state
}

// waitTurn reserves the domain's next request slot and sleeps until
// it arrives. Slots are spaced by the politeness delay, so concurrent
// callers to the same domain start staggered instead of in a burst.
func (s *domainState) waitTurn(ctx context.Context, delay time.Duration) error {
	s.mu.Lock()
	now := time.Now()
	turn := s.nextAt
	if turn.Before(now) {
		turn = now
	}
	s.nextAt = turn.Add(delay)
	s.mu.Unlock()

	wait := time.Until(turn)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// decodeBody converts the response to UTF-8 when the Content-Type
// declares a different charset. An unknown charset falls back to the
// raw bytes rather than failing the fetch.
func decodeBody(body io.Reader, contentType string) ([]byte, error) {
	charset := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			charset = strings.ToLower(params["charset"])
		}
	}

	if charset != "" && charset != "utf-8" && charset != "utf8" {
		if enc, err := htmlindex.Get(charset); err == nil {
			body = transform.NewReader(body, enc.NewDecoder())
		}
	}

	return io.ReadAll(body)
}
