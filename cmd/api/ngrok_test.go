package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestTunnelDetector(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tunnels" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// first call: ngrok is up but has no tunnel yet
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"tunnels": []}`))
			return
		}
		w.Write([]byte(`{"tunnels": [
			{"public_url": "http://abc.ngrok.io", "proto": "http"},
			{"public_url": "https://abc.ngrok.io", "proto": "https"}
		]}`))
	}))
	defer ts.Close()

	d := tunnelDetector{client: ts.Client(), attempts: 3, interval: time.Millisecond}
	got, err := d.detect(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://abc.ngrok.io" {
		t.Errorf("got %q, want https tunnel", got)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestTunnelDetectorGivesUp(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	d := tunnelDetector{client: ts.Client(), attempts: 2, interval: time.Millisecond}
	if _, err := d.detect(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.interval = time.Hour
	if _, err := d.detect(ctx, ts.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
