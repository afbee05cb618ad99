// Package relgraph calls the relationship-graph generation service.
package relgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type request struct {
	Transcript string `json:"transcript"`
}

type response struct {
	GraphData string `json:"graphData"`
}

type Client struct {
	endpoint string
	client   http.Client
}

func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   http.Client{Timeout: timeout},
	}
}

// Generate submits the flattened transcript and returns the raw
// JSON-encoded graph carried in the graphData field. The caller owns
// decoding it; a malformed graph is its problem to absorb.
func (c *Client) Generate(ctx context.Context, transcript string) ([]byte, error) {
	payload, err := json.Marshal(request{Transcript: transcript})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relgraph %s: %s", resp.Status, string(b))
	}

	var r response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("relgraph decode: %w", err)
	}
	if r.GraphData == "" {
		return nil, errors.New("relgraph: empty graphData")
	}
	return []byte(r.GraphData), nil
}
