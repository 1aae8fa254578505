package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"
)

func TestFetch_CarriesTokenAndPriority(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := newClient(server.Client(), "test-agent", 0, 4)

	resp, err := client.Fetch(context.Background(), server.URL, "AAPL", 2)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.Token != "AAPL" {
		t.Errorf("Expected token 'AAPL', got '%s'", resp.Token)
	}
	if resp.Priority != 2 {
		t.Errorf("Expected priority 2, got %d", resp.Priority)
	}
	if string(resp.Body) != "hello" {
		t.Errorf("Expected body 'hello', got '%s'", resp.Body)
	}
}

func TestFetch_SetsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := newClient(server.Client(), "test-agent", 0, 4)

	if _, err := client.Fetch(context.Background(), server.URL, "t", 0); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotAgent != "test-agent" {
		t.Errorf("Expected user agent 'test-agent', got '%s'", gotAgent)
	}
}

func TestFetch_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newClient(server.Client(), "test-agent", 0, 4)

	if _, err := client.Fetch(context.Background(), server.URL, "t", 0); err == nil {
		t.Error("Expected error for 503 response")
	}
}

func TestFetch_PolitenessDelayBetweenSameDomainRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	delay := 60 * time.Millisecond
	client := newClient(server.Client(), "test-agent", delay, 4)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Fetch(context.Background(), server.URL, "t", 0); err != nil {
				t.Errorf("Fetch failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Three requests to one domain must be spaced by at least two
	// full delays.
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("Expected at least %v between three same-domain requests, took %v", 2*delay, elapsed)
	}
}

func TestFetch_DecodesDeclaredCharset(t *testing.T) {
	// "café" in ISO-8859-1
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("café"))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write(encoded)
	}))
	defer server.Close()

	client := newClient(server.Client(), "test-agent", 0, 4)

	resp, err := client.Fetch(context.Background(), server.URL, "t", 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if string(resp.Body) != "café" {
		t.Errorf("Expected decoded body 'café', got %q", resp.Body)
	}
}

func TestFetch_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newClient(server.Client(), "test-agent", time.Minute, 4)

	// First request takes the immediate slot; the second would wait a
	// minute for its turn and must bail out on cancellation instead.
	if _, err := client.Fetch(context.Background(), server.URL, "t", 0); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Fetch(ctx, server.URL, "t", 0); err == nil {
		t.Error("Expected context error for delayed fetch")
	}
}
