// Package diarizer calls the speech-to-text/diarization service. A
// failure here is fatal to the analysis: without utterances there is
// nothing to analyze.
package diarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Utterance is one speaker-tagged segment. Timestamps are optional and
// approximate.
type Utterance struct {
	Speaker  int      `json:"speaker"`
	Text     string   `json:"text"`
	StartSec *float64 `json:"startSec,omitempty"`
	EndSec   *float64 `json:"endSec,omitempty"`
}

type Result struct {
	Utterances []Utterance `json:"utterances"`
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

// Diarize uploads the recording as multipart form data and decodes the
// utterance list.
func (c *Client) Diarize(ctx context.Context, fileName string, audio io.Reader) (Result, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	fw, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return Result{}, err
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return Result{}, err
	}
	if err := form.Close(); err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("diarizer %s: %s", resp.Status, string(b))
	}

	var r Result
	if err := json.Unmarshal(b, &r); err != nil {
		return Result{}, fmt.Errorf("diarizer decode: %w", err)
	}
	return r, nil
}
