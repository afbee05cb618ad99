package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/insightmeet/goInsightMeet/foundation/external/diarizer"
	"github.com/insightmeet/goInsightMeet/foundation/external/vision"
	"github.com/insightmeet/goInsightMeet/foundation/state"
)

// detectCharacteristics extracts up to two representative frames per
// speaker from a video upload and asks the vision service to describe
// them. The whole path is best effort: any failure simply leaves a
// speaker undescribed, and a vision service that fails on every frame
// is marked unavailable for later uploads.
func (h *handlers) detectCharacteristics(ctx context.Context, videoPath string, utts []diarizer.Utterance) map[int]vision.Detection {
	detections := map[int]vision.Detection{}
	if !h.visionCfg.Enabled || !h.state.Get(state.Vision) {
		return detections
	}

	timestamps := representativeTimestamps(utts)
	if len(timestamps) == 0 {
		return detections
	}

	tmpDir, err := os.MkdirTemp("", "insightmeet-frames-")
	if err != nil {
		h.logger.Errorw("handlers: vision: tmpdir", "ERROR", err)
		return detections
	}
	defer os.RemoveAll(tmpDir)

	frameCalls, frameFailures := 0, 0
	bySpeaker := map[int][]vision.Detection{}
	for speaker, tsList := range timestamps {
		for _, ts := range tsList {
			outPath := filepath.Join(tmpDir, fmt.Sprintf("speaker-%d-%.2f.png", speaker, ts))
			if err := h.frames.Extract(ctx, videoPath, ts, outPath); err != nil {
				h.logger.Errorw("handlers: vision: extract", "ERROR", err)
				continue
			}

			image, err := os.ReadFile(outPath)
			if err != nil {
				continue
			}

			frameCalls++
			attrs, err := h.vision.Analyze(ctx, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(image))
			if err != nil {
				frameFailures++
				h.logger.Errorw("handlers: vision: analyze", "ERROR", err)
				continue
			}

			if d, ok := detectionFromAttributes(attrs, h.visionCfg.MinConfidence); ok {
				bySpeaker[speaker] = append(bySpeaker[speaker], d)
			}
		}
	}

	if frameCalls > 0 && frameFailures == frameCalls {
		h.logger.Errorw("handlers: vision: disabled after repeated failures")
		h.state.Set(state.Vision, false)
	}

	// Keep the highest-confidence description per speaker.
	for speaker, list := range bySpeaker {
		best := list[0]
		for _, d := range list[1:] {
			if d.Confidence > best.Confidence {
				best = d
			}
		}
		detections[speaker] = best
	}
	return detections
}

// representativeTimestamps picks up to two mid-utterance timestamps per
// speaker. When no utterance carries timing at all, every speaker falls
// back to 0.5s and 1.5s.
func representativeTimestamps(utts []diarizer.Utterance) map[int][]float64 {
	timestamps := map[int][]float64{}
	for _, u := range utts {
		if u.StartSec == nil && u.EndSec == nil {
			continue
		}
		start := 0.0
		if u.StartSec != nil {
			start = *u.StartSec
		}
		// Without an end timestamp, assume a short 0.6s utterance.
		end := start + 0.6
		if u.EndSec != nil {
			end = *u.EndSec
		}
		mid := start + (end-start)/2
		if mid < start+0.1 {
			mid = start + 0.1
		}
		if len(timestamps[u.Speaker]) < 2 {
			timestamps[u.Speaker] = append(timestamps[u.Speaker], mid)
		}
	}

	if len(timestamps) == 0 {
		for _, u := range utts {
			if _, ok := timestamps[u.Speaker]; !ok {
				timestamps[u.Speaker] = []float64{0.5, 1.5}
			}
		}
	}
	return timestamps
}

// detectionFromAttributes keeps the two most confident attributes at or
// above the threshold and joins their labels into one description.
func detectionFromAttributes(attrs []vision.Attribute, minConfidence float64) (vision.Detection, bool) {
	confident := make([]vision.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Label != "" && a.Confidence >= minConfidence {
			confident = append(confident, a)
		}
	}
	if len(confident) == 0 {
		return vision.Detection{}, false
	}

	sort.SliceStable(confident, func(i, j int) bool { return confident[i].Confidence > confident[j].Confidence })
	if len(confident) > 2 {
		confident = confident[:2]
	}

	labels := make([]string, 0, len(confident))
	for _, a := range confident {
		labels = append(labels, a.Label)
	}
	return vision.Detection{
		Description: strings.Join(labels, ", "),
		Confidence:  confident[0].Confidence,
	}, true
}
