// Package analysis turns diarized utterances into the analytics object
// consumed by the dashboard: per-utterance sentiment and emotion, speaker
// identity assignment, participation metrics, the emotion timeline and
// the narrative enrichment fetched from the generation services.
package analysis

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/insightmeet/goInsightMeet/foundation/metrics"
	"go.uber.org/zap"
)

const reportTitle = "Dynamic Analysis Report"

// GraphService produces a JSON-encoded relationship graph from a
// flattened transcript. Decoding and the malformed-payload fallback
// belong to the pipeline, not the transport.
type GraphService interface {
	Generate(ctx context.Context, transcript string) ([]byte, error)
}

// SummaryService produces the narrative report from a flattened
// transcript and the overall sentiment.
type SummaryService interface {
	Generate(ctx context.Context, transcript, overallSentiment, relationshipSummary string) (report string, relSummary string, err error)
}

type Settings struct {
	Logger  *zap.SugaredLogger
	Scorer  *Scorer
	Graph   GraphService
	Summary SummaryService
}

// Pipeline runs the four analysis stages in one synchronous pass. It is
// built once at startup and holds no per-request state, so concurrent
// runs need no coordination.
type Pipeline struct {
	logger  *zap.SugaredLogger
	scorer  *Scorer
	graph   GraphService
	summary SummaryService
}

func NewPipeline(s Settings) *Pipeline {
	return &Pipeline{
		logger:  s.Logger,
		scorer:  s.Scorer,
		graph:   s.Graph,
		summary: s.Summary,
	}
}

// Run executes resolver, scorer and aggregator, then the two sequential
// enrichment calls. Enrichment failures are absorbed and replaced by the
// documented fallbacks; Run never fails.
func (p *Pipeline) Run(ctx context.Context, utts []Utterance) Data {
	set := resolveSpeakers(utts)

	scores := make([]float64, len(utts))
	for i, u := range utts {
		scores[i] = p.scorer.Score(u.Text)
	}

	entries, cum, total := buildTranscript(utts, set, scores)
	participation := buildParticipation(set, entries)
	timeline := buildEmotionTimeline(set, entries, scores, cum, total)

	flat := flattenTranscript(entries)

	graph := EmptyGraph()
	if p.graph != nil {
		raw, err := p.graph.Generate(ctx, flat)
		if err == nil {
			var g RelationshipGraph
			err = json.Unmarshal(raw, &g)
			if err == nil {
				graph = normalizeGraph(g)
			}
		}
		if err != nil {
			p.logger.Errorw("analysis: relationship graph", "ERROR", err)
			metrics.EnrichmentFailures.WithLabelValues("graph").Inc()
		}
	}

	overall := overallSentiment(entries)

	summary := Summary{
		Title:            reportTitle,
		OverallSentiment: overall,
		Points:           []string{},
	}
	if p.summary != nil {
		report, relSummary, err := p.summary.Generate(ctx, flat, string(overall), "")
		if err != nil {
			p.logger.Errorw("analysis: summary report", "ERROR", err)
			metrics.EnrichmentFailures.WithLabelValues("summary").Inc()
		} else {
			summary.SummaryReport = report
			summary.RelationshipSummary = relSummary
			summary.Points = keyPoints(report)
		}
	}

	return Data{
		Summary:           summary,
		Transcript:        entries,
		Participation:     participation,
		EmotionTimeline:   timeline,
		RelationshipGraph: graph,
	}
}

// flattenTranscript renders the transcript as the text block submitted
// to the generation services, one "<label>: <text>" line per entry.
func flattenTranscript(entries []TranscriptEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Label)
		b.WriteString(": ")
		b.WriteString(e.Text)
	}
	return b.String()
}

// overallSentiment is the majority label across the transcript. Ties are
// broken by the fixed counting order Positive, Negative, Neutral under a
// stable descending sort, so an empty transcript yields Positive.
func overallSentiment(entries []TranscriptEntry) Sentiment {
	counts := []struct {
		label Sentiment
		n     int
	}{
		{Positive, 0},
		{Negative, 0},
		{Neutral, 0},
	}
	for _, e := range entries {
		for i := range counts {
			if counts[i].label == e.Sentiment {
				counts[i].n++
			}
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].n > counts[j].n })
	return counts[0].label
}

// keyPoints splits the free-text report on newlines and periods,
// discarding whitespace-only fragments.
func keyPoints(report string) []string {
	fragments := strings.FieldsFunc(report, func(r rune) bool {
		return r == '\n' || r == '.'
	})
	points := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f) == "" {
			continue
		}
		points = append(points, f)
	}
	return points
}

// normalizeGraph guards against a syntactically valid payload carrying
// null node or link arrays.
func normalizeGraph(g RelationshipGraph) RelationshipGraph {
	if g.Nodes == nil {
		g.Nodes = []GraphNode{}
	}
	if g.Links == nil {
		g.Links = []GraphLink{}
	}
	return g
}
