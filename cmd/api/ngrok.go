package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// tunnelDetector polls the ngrok local API until a public tunnel shows up.
type tunnelDetector struct {
	client   *http.Client
	attempts int
	interval time.Duration
}

func newTunnelDetector() tunnelDetector {
	return tunnelDetector{
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: 10,
		interval: 3 * time.Second,
	}
}

// detect returns the first HTTPS tunnel URL, falling back to any tunnel.
// ngrok usually starts after the bot in docker-compose, so failures are retried.
func (d tunnelDetector) detect(ctx context.Context, ngrokAPIBase string) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"

	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		publicURL, err := d.fetch(ctx, url)
		if err == nil && publicURL != "" {
			return publicURL, nil
		}
		lastErr = err

		if attempt < d.attempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(d.interval):
			}
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("ngrok API not usable after %d attempts: %w", d.attempts, lastErr)
	}
	return "", fmt.Errorf("ngrok has no active tunnels after %d attempts", d.attempts)
}

func (d tunnelDetector) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", nil
}
