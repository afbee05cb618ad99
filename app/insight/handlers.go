package main

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/insightmeet/goInsightMeet/business/analysis"
	"github.com/insightmeet/goInsightMeet/foundation/config"
	"github.com/insightmeet/goInsightMeet/foundation/external/diarizer"
	"github.com/insightmeet/goInsightMeet/foundation/external/vision"
	"github.com/insightmeet/goInsightMeet/foundation/frames"
	"github.com/insightmeet/goInsightMeet/foundation/metrics"
	"github.com/insightmeet/goInsightMeet/foundation/pubsub"
	"github.com/insightmeet/goInsightMeet/foundation/state"
	"github.com/insightmeet/goInsightMeet/foundation/store"
	"go.uber.org/zap"
)

type handlers struct {
	logger         *zap.SugaredLogger
	pipeline       *analysis.Pipeline
	diarizer       *diarizer.Client
	vision         *vision.Client
	visionCfg      config.Vision
	frames         *frames.Extractor
	store          *store.Store
	broker         *pubsub.Broker
	state          *state.State
	maxUploadBytes int64
}

// analysisRecord is the persisted shape: the raw diarization result and
// detected speaker characteristics are kept so a saved analysis can be
// reopened and re-derived, the computed analytics so it can be served
// directly.
type analysisRecord struct {
	ID                     string                   `json:"id"`
	CreatedAt              time.Time                `json:"createdAt"`
	MimeType               string                   `json:"mimeType"`
	FileName               string                   `json:"fileName,omitempty"`
	Hidden                 bool                     `json:"hidden"`
	DiarizationResult      diarizer.Result          `json:"diarizationResult"`
	SpeakerCharacteristics map[int]vision.Detection `json:"speakerCharacteristics"`
	Analysis               analysis.Data            `json:"analysis"`
}

func (h *handlers) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/upload", h.listAnalyses)
	mux.HandleFunc("POST /api/upload", h.upload)
	mux.HandleFunc("POST /api/hide-analysis", h.hideAnalysis)
	mux.HandleFunc("POST /api/delete-analysis", h.deleteAnalysis)
	mux.HandleFunc("POST /api/clear-all", h.clearAll)
	mux.HandleFunc("GET /health", h.health)
	mux.Handle("GET /metrics", metrics.Handler())
}

// upload accepts a recording, diarizes it, runs the analysis pipeline
// and persists the result. Diarization failure aborts the request;
// everything downstream of it degrades instead of failing.
func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contentType := r.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(contentType); err != nil || mt != "multipart/form-data" {
		h.respondError(w, http.StatusBadRequest, "Invalid content type", contentType)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		h.respondError(w, http.StatusRequestEntityTooLarge, "File too large", header.Size)
		return
	}
	metrics.UploadBytes.Observe(float64(header.Size))

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	// The upload is spooled to disk so the vision path can hand it to
	// ffmpeg after diarization has consumed the stream.
	tmp, err := os.CreateTemp("", "insightmeet-*")
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Upload failed", err.Error())
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		h.respondError(w, http.StatusInternalServerError, "Upload failed", err.Error())
		return
	}
	tmp.Close()

	audio, err := os.Open(tmpPath)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Upload failed", err.Error())
		return
	}
	result, err := h.diarizer.Diarize(ctx, header.Filename, audio)
	audio.Close()
	if err != nil {
		metrics.DiarizationFailures.Inc()
		h.logger.Errorw("handlers: upload: diarization", "ERROR", err)
		h.respondError(w, http.StatusInternalServerError, "Diarization failed", err.Error())
		return
	}

	characteristics := map[int]vision.Detection{}
	if strings.HasPrefix(mimeType, "video/") && len(result.Utterances) > 0 {
		characteristics = h.detectCharacteristics(ctx, tmpPath, result.Utterances)
	}

	started := time.Now()
	data := h.pipeline.Run(ctx, toAnalysisUtterances(result.Utterances))
	metrics.AnalysesTotal.Inc()
	metrics.AnalysisDuration.Observe(time.Since(started).Seconds())

	record := analysisRecord{
		ID:                     uuid.New().String(),
		CreatedAt:              time.Now().UTC(),
		MimeType:               mimeType,
		FileName:               header.Filename,
		DiarizationResult:      result,
		SpeakerCharacteristics: characteristics,
		Analysis:               data,
	}

	if err := h.store.Save(record.ID, record); err != nil {
		// Still hand the analysis back even when saving failed.
		h.logger.Errorw("handlers: upload: persist", "ERROR", err)
		h.respond(w, http.StatusOK, map[string]any{
			"diarizationResult":      result,
			"speakerCharacteristics": characteristics,
			"analysis":               data,
		})
		return
	}

	if err := h.broker.Publish(analysisCompletedTopic, analysisEvent{
		ID:               record.ID,
		CreatedAt:        record.CreatedAt,
		FileName:         record.FileName,
		OverallSentiment: string(data.Summary.OverallSentiment),
	}); err != nil {
		h.logger.Errorw("handlers: upload: publish", "ERROR", err)
	}

	h.respond(w, http.StatusOK, map[string]any{
		"id":                     record.ID,
		"diarizationResult":      result,
		"speakerCharacteristics": characteristics,
		"analysis":               data,
	})
}

// listAnalyses serves both the history listing and, with ?id=, one
// stored record verbatim.
func (h *handlers) listAnalyses(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		raw, err := h.store.Get(id)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, "Failed to list analyses", err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
		return
	}

	items, err := h.store.List()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to list analyses", err.Error())
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"items": items})
}

func (h *handlers) hideAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		Unhide bool   `json:"unhide"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		h.respondError(w, http.StatusBadRequest, "Missing id", nil)
		return
	}
	if err := h.store.SetHidden(req.ID, !req.Unhide); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to hide analysis", err.Error())
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handlers) deleteAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		h.respondError(w, http.StatusBadRequest, "Missing id", nil)
		return
	}
	if err := h.store.Delete(req.ID); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to delete analysis", err.Error())
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handlers) clearAll(w http.ResponseWriter, r *http.Request) {
	if errs := h.store.Clear(); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			details = append(details, err.Error())
		}
		h.respondError(w, http.StatusInternalServerError, "Some files could not be deleted", details)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]any{"status": "ok"})
}

func toAnalysisUtterances(in []diarizer.Utterance) []analysis.Utterance {
	out := make([]analysis.Utterance, 0, len(in))
	for _, u := range in {
		out = append(out, analysis.Utterance{
			Speaker:  u.Speaker,
			Text:     u.Text,
			StartSec: u.StartSec,
			EndSec:   u.EndSec,
		})
	}
	return out
}

func (h *handlers) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorw("handlers: respond", "ERROR", err)
	}
}

func (h *handlers) respondError(w http.ResponseWriter, status int, msg string, details any) {
	body := map[string]any{"error": msg}
	if details != nil {
		body["details"] = details
	}
	h.respond(w, status, body)
}
