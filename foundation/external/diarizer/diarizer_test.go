package diarizer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "standup.mp3", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake audio bytes", string(content))

		start := 0.5
		json.NewEncoder(w).Encode(Result{
			Utterances: []Utterance{
				{Speaker: 0, Text: "hello everyone", StartSec: &start},
				{Speaker: 1, Text: "hi"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	result, err := c.Diarize(context.Background(), "standup.mp3", strings.NewReader("fake audio bytes"))
	require.NoError(t, err)
	require.Len(t, result.Utterances, 2)
	assert.Equal(t, "hello everyone", result.Utterances[0].Text)
	require.NotNil(t, result.Utterances[0].StartSec)
	assert.Equal(t, 0.5, *result.Utterances[0].StartSec)
	assert.Nil(t, result.Utterances[1].StartSec)
}

func TestDiarizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Diarize(context.Background(), "a.mp3", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model loading")
}

func TestDiarizeBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Diarize(context.Background(), "a.mp3", strings.NewReader("x"))
	assert.Error(t, err)
}
