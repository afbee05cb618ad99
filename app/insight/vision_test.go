package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightmeet/goInsightMeet/foundation/external/diarizer"
	"github.com/insightmeet/goInsightMeet/foundation/external/vision"
)

func f(v float64) *float64 { return &v }

func TestRepresentativeTimestamps(t *testing.T) {
	utts := []diarizer.Utterance{
		{Speaker: 0, Text: "a", StartSec: f(0), EndSec: f(4)},
		{Speaker: 0, Text: "b", StartSec: f(10), EndSec: f(12)},
		{Speaker: 0, Text: "c", StartSec: f(20), EndSec: f(30)},
		{Speaker: 1, Text: "d", StartSec: f(5)},
	}

	ts := representativeTimestamps(utts)
	require.Len(t, ts, 2)

	// Only the first two utterances per speaker contribute.
	assert.Equal(t, []float64{2, 11}, ts[0])

	// An utterance with no end timestamp is treated as 0.6s long.
	require.Len(t, ts[1], 1)
	assert.InDelta(t, 5.3, ts[1][0], 1e-9)
}

func TestRepresentativeTimestampsMinimumOffset(t *testing.T) {
	// A zero-length utterance still lands slightly past its start.
	utts := []diarizer.Utterance{
		{Speaker: 0, Text: "a", StartSec: f(3), EndSec: f(3)},
	}
	ts := representativeTimestamps(utts)
	require.Len(t, ts[0], 1)
	assert.InDelta(t, 3.1, ts[0][0], 1e-9)
}

func TestRepresentativeTimestampsFallback(t *testing.T) {
	utts := []diarizer.Utterance{
		{Speaker: 0, Text: "a"},
		{Speaker: 1, Text: "b"},
		{Speaker: 0, Text: "c"},
	}

	ts := representativeTimestamps(utts)
	require.Len(t, ts, 2)
	assert.Equal(t, []float64{0.5, 1.5}, ts[0])
	assert.Equal(t, []float64{0.5, 1.5}, ts[1])

	assert.Empty(t, representativeTimestamps(nil))
}

func TestDetectionFromAttributes(t *testing.T) {
	attrs := []vision.Attribute{
		{Label: "hat", Confidence: 0.75},
		{Label: "glasses", Confidence: 0.95},
		{Label: "beard", Confidence: 0.85},
		{Label: "", Confidence: 0.99},
		{Label: "scarf", Confidence: 0.9},
	}

	d, ok := detectionFromAttributes(attrs, 0.8)
	require.True(t, ok)
	assert.Equal(t, "glasses, scarf", d.Description)
	assert.Equal(t, 0.95, d.Confidence)
}

func TestDetectionFromAttributesNoneConfident(t *testing.T) {
	attrs := []vision.Attribute{
		{Label: "hat", Confidence: 0.5},
	}
	_, ok := detectionFromAttributes(attrs, 0.8)
	assert.False(t, ok)

	_, ok = detectionFromAttributes(nil, 0.8)
	assert.False(t, ok)
}
