package analysis

// Utterance is one diarized segment as returned by the diarization service.
// Speaker indices are arbitrary non-negative integers and are not guaranteed
// to be contiguous or to start at zero.
type Utterance struct {
	Speaker  int      `json:"speaker"`
	Text     string   `json:"text"`
	StartSec *float64 `json:"startSec,omitempty"`
	EndSec   *float64 `json:"endSec,omitempty"`
}

// Sentiment is the discrete label derived from a continuous score.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
)

// Characteristic carries the display color bound to a speaker and an
// optional visual description supplied by the vision service.
type Characteristic struct {
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ResolvedSpeaker is the stable display identity assigned to one raw
// speaker index for the duration of a single analysis run.
type ResolvedSpeaker struct {
	ID             string         `json:"id"`
	Label          string         `json:"label"`
	Characteristic Characteristic `json:"characteristic"`
}

// TranscriptEntry is one utterance annotated with identity, sentiment and
// a display timestamp. IDs are the 1-based position in the input order.
type TranscriptEntry struct {
	ID             int            `json:"id"`
	Speaker        string         `json:"speaker"`
	Label          string         `json:"label"`
	Characteristic Characteristic `json:"characteristic"`
	Text           string         `json:"text"`
	Sentiment      Sentiment      `json:"sentiment"`
	Emotion        string         `json:"emotion"`
	Timestamp      string         `json:"timestamp"`
}

// ParticipationMetric summarizes one speaker's share of the meeting.
type ParticipationMetric struct {
	Speaker             string         `json:"speaker"`
	Label               string         `json:"label"`
	Characteristic      Characteristic `json:"characteristic"`
	SpeakingTimeSeconds int            `json:"speakingTimeSeconds"`
	Conflict            int            `json:"conflict"`
	Sentiment           Sentiment      `json:"sentiment"`
}

// SpeakerValue is one speaker's sentiment level at a timeline point.
type SpeakerValue struct {
	Speaker string  `json:"speaker"`
	Value   float64 `json:"value"`
}

// EmotionTimelinePoint is one of the five fixed points on the emotion
// timeline. Values holds one entry per resolved speaker, in resolution
// order.
type EmotionTimelinePoint struct {
	Time   string         `json:"time"`
	Values []SpeakerValue `json:"values"`
}

// GraphNode and GraphLink are supplied by the relationship-graph service
// and passed through untouched.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group int    `json:"group"`
}

type GraphLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
}

type RelationshipGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// EmptyGraph is the fallback used when the relationship-graph service
// fails or returns a malformed payload.
func EmptyGraph() RelationshipGraph {
	return RelationshipGraph{Nodes: []GraphNode{}, Links: []GraphLink{}}
}

// Summary is the narrative portion of an analysis.
type Summary struct {
	Title               string    `json:"title"`
	OverallSentiment    Sentiment `json:"overallSentiment"`
	Points              []string  `json:"points"`
	RelationshipSummary string    `json:"relationshipSummary"`
	SummaryReport       string    `json:"summaryReport"`
}

// Data is the complete analytics object produced by one pipeline run.
type Data struct {
	Summary           Summary                `json:"summary"`
	Transcript        []TranscriptEntry      `json:"transcript"`
	Participation     []ParticipationMetric  `json:"participation"`
	EmotionTimeline   []EmotionTimelinePoint `json:"emotionTimeline"`
	RelationshipGraph RelationshipGraph      `json:"relationshipGraph"`
}
