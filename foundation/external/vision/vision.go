// Package vision calls the frame-analysis service used to describe the
// visible characteristics of each speaker in a video upload. The whole
// vision path is best effort and never blocks an analysis.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Attribute is one detected visual trait with its confidence in [0,1].
type Attribute struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Detection is the per-speaker aggregation of attributes.
type Detection struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

type request struct {
	ImageBase64 string `json:"imageBase64"`
}

type response struct {
	Attributes []Attribute `json:"attributes"`
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

// Analyze submits one frame as a base64 data URI and returns the
// detected attributes.
func (c *Client) Analyze(ctx context.Context, imageBase64 string) ([]Attribute, error) {
	payload, err := json.Marshal(request{ImageBase64: imageBase64})
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
		return nil, fmt.Errorf("vision %s: %s", resp.Status, string(b))
	}

	var r response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("vision decode: %w", err)
	}
	return r.Attributes, nil
}
