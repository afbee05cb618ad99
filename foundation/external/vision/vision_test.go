package vision

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "data:image/png;base64,AAAA", req["imageBase64"])

		json.NewEncoder(w).Encode(map[string][]Attribute{
			"attributes": {
				{Label: "glasses", Confidence: 0.92},
				{Label: "beard", Confidence: 0.81},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	attrs, err := c.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "glasses", attrs[0].Label)
	assert.Equal(t, 0.92, attrs[0].Confidence)
}

func TestAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no gpu", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Analyze(context.Background(), "data:image/png;base64,AAAA")
	assert.Error(t, err)
}
