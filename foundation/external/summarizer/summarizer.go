// Package summarizer calls the narrative report generation service.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type request struct {
	Transcript          string `json:"transcript"`
	OverallSentiment    string `json:"overallSentiment"`
	RelationshipSummary string `json:"relationshipSummary"`
}

type response struct {
	SummaryReport       string `json:"summaryReport"`
	RelationshipSummary string `json:"relationshipSummary"`
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

// Generate submits the flattened transcript together with the overall
// sentiment and returns the free-text report plus the relationship
// summary, which defaults to empty when the service omits it.
func (c *Client) Generate(ctx context.Context, transcript, overallSentiment, relationshipSummary string) (report string, relSummary string, err error) {
	payload, err := json.Marshal(request{
		Transcript:          transcript,
		OverallSentiment:    overallSentiment,
		RelationshipSummary: relationshipSummary,
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("summarizer %s: %s", resp.Status, string(b))
	}

	var r response
	if err := json.Unmarshal(b, &r); err != nil {
		return "", "", fmt.Errorf("summarizer decode: %w", err)
	}
	return r.SummaryReport, r.RelationshipSummary, nil
}
