package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGraph struct {
	raw        []byte
	err        error
	transcript string
}

func (f *fakeGraph) Generate(_ context.Context, transcript string) ([]byte, error) {
	f.transcript = transcript
	return f.raw, f.err
}

type fakeSummary struct {
	report     string
	relSummary string
	err        error
	overall    string
}

func (f *fakeSummary) Generate(_ context.Context, _ string, overallSentiment, _ string) (string, string, error) {
	f.overall = overallSentiment
	return f.report, f.relSummary, f.err
}

func newTestPipeline(graph GraphService, summary SummaryService) *Pipeline {
	return NewPipeline(Settings{
		Logger:  zap.NewNop().Sugar(),
		Scorer:  NewScorer(),
		Graph:   graph,
		Summary: summary,
	})
}

func TestPipelineRun(t *testing.T) {
	graph := &fakeGraph{raw: []byte(`{"nodes":[{"id":"A","label":"Speaker A","group":1}],"links":[{"source":"A","target":"B","type":"support","value":2}]}`)}
	summary := &fakeSummary{
		report:     "First point. Second point\nThird",
		relSummary: "A supports B",
	}
	p := newTestPipeline(graph, summary)

	data := p.Run(context.Background(), []Utterance{
		{Speaker: 0, Text: "Great job team, thanks!"},
		{Speaker: 1, Text: "I disagree, this is a problem"},
		{Speaker: 0, Text: "see you tomorrow"},
	})

	require.Len(t, data.Transcript, 3)
	assert.Equal(t, Positive, data.Transcript[0].Sentiment)
	assert.Equal(t, Negative, data.Transcript[1].Sentiment)
	assert.Equal(t, Neutral, data.Transcript[2].Sentiment)
	require.Len(t, data.Participation, 2)

	// One of each label: the tie resolves in counting order.
	assert.Equal(t, Positive, data.Summary.OverallSentiment)
	assert.Equal(t, "Positive", summary.overall)

	assert.Equal(t, "Speaker A: Great job team, thanks!\nSpeaker B: I disagree, this is a problem\nSpeaker A: see you tomorrow", graph.transcript)

	require.Len(t, data.RelationshipGraph.Nodes, 1)
	require.Len(t, data.RelationshipGraph.Links, 1)
	assert.Equal(t, "support", data.RelationshipGraph.Links[0].Type)

	assert.Equal(t, "A supports B", data.Summary.RelationshipSummary)
	assert.Equal(t, []string{"First point", " Second point", "Third"}, data.Summary.Points)
	require.Len(t, data.EmotionTimeline, 5)
}

func TestPipelineEnrichmentFailure(t *testing.T) {
	p := newTestPipeline(
		&fakeGraph{err: errors.New("boom")},
		&fakeSummary{err: errors.New("boom")},
	)

	data := p.Run(context.Background(), []Utterance{
		{Speaker: 3, Text: "great"},
	})

	assert.Equal(t, EmptyGraph(), data.RelationshipGraph)
	assert.Equal(t, "", data.Summary.SummaryReport)
	assert.Equal(t, "", data.Summary.RelationshipSummary)
	assert.Empty(t, data.Summary.Points)
}

func TestPipelineMalformedGraph(t *testing.T) {
	p := newTestPipeline(
		&fakeGraph{raw: []byte(`not json at all`)},
		&fakeSummary{},
	)

	data := p.Run(context.Background(), []Utterance{{Speaker: 0, Text: "hello"}})
	assert.Equal(t, EmptyGraph(), data.RelationshipGraph)
}

func TestPipelineNullGraphArrays(t *testing.T) {
	p := newTestPipeline(
		&fakeGraph{raw: []byte(`{}`)},
		&fakeSummary{},
	)

	data := p.Run(context.Background(), []Utterance{{Speaker: 0, Text: "hello"}})
	assert.NotNil(t, data.RelationshipGraph.Nodes)
	assert.NotNil(t, data.RelationshipGraph.Links)
}

func TestPipelineEmptyInput(t *testing.T) {
	p := newTestPipeline(&fakeGraph{err: errors.New("down")}, &fakeSummary{err: errors.New("down")})

	data := p.Run(context.Background(), nil)

	assert.Empty(t, data.Transcript)
	assert.Empty(t, data.Participation)
	require.Len(t, data.EmotionTimeline, 5)
	for _, p := range data.EmotionTimeline {
		assert.Empty(t, p.Values)
	}
	assert.Equal(t, Positive, data.Summary.OverallSentiment)
	assert.Equal(t, EmptyGraph(), data.RelationshipGraph)
	assert.Empty(t, data.Summary.Points)
}

func TestOverallSentimentMajority(t *testing.T) {
	entries := []TranscriptEntry{
		{Sentiment: Negative},
		{Sentiment: Negative},
		{Sentiment: Positive},
	}
	assert.Equal(t, Negative, overallSentiment(entries))
	assert.Equal(t, Positive, overallSentiment(nil))
}

func TestKeyPoints(t *testing.T) {
	assert.Equal(t, []string{"one", " two", "three"}, keyPoints("one. two\nthree"))
	assert.Empty(t, keyPoints("...\n\n.  ."))
	assert.Empty(t, keyPoints(""))
}
