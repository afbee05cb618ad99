package analysis

import "strings"

// The two lexicons are fixed: analysis results must be reproducible
// across runs and across deployments.
var positiveWords = []string{
	"good", "great", "excellent", "agree", "yes", "ok", "thanks", "thank",
	"love", "like", "clear", "awesome", "nice", "happy", "support", "strong",
	"well", "congrats", "congratulations", "cheers", "success", "improve",
	"improved", "improving",
}

var negativeWords = []string{
	"bad", "worse", "worst", "disagree", "no", "not", "confused", "issue",
	"problem", "hate", "angry", "sad", "conflict", "weak", "blocker", "delay",
	"fail", "failed", "failing", "bug", "risk", "concern", "concerns",
}

// Scorer computes a continuous sentiment score in [-1,1] from lexical
// cues. It is constructed once at startup and shared by reference; it
// holds no mutable state.
type Scorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

func NewScorer() *Scorer {
	s := &Scorer{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}
	for _, w := range positiveWords {
		s.positive[w] = struct{}{}
	}
	for _, w := range negativeWords {
		s.negative[w] = struct{}{}
	}
	return s
}

// tokenize lowercases the text and extracts maximal runs of letters and
// apostrophes. Every other character is a separator.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && r != '\''
	})
}

// Score weighs each lexicon hit at ±2 and returns score/weight, or
// exactly 0 when no lexicon word appears. The clamp to [-1,1] is part of
// the contract even though the ±2/±2 weighting cannot exceed it.
func (s *Scorer) Score(text string) float64 {
	var score, weight float64
	for _, tok := range tokenize(text) {
		if _, ok := s.positive[tok]; ok {
			score += 2
			weight += 2
		}
		if _, ok := s.negative[tok]; ok {
			score -= 2
			weight += 2
		}
	}
	if weight == 0 {
		return 0
	}
	return clamp(score/weight, -1, 1)
}

// labelFromScore maps a score to a discrete sentiment. The boundaries
// ±0.3 themselves are Neutral.
func labelFromScore(score float64) Sentiment {
	switch {
	case score > 0.3:
		return Positive
	case score < -0.3:
		return Negative
	default:
		return Neutral
	}
}

// emotionFromScore maps a score to a discrete emotion, first match wins.
func emotionFromScore(score float64) string {
	switch {
	case score > 0.7:
		return "joy"
	case score > 0.4:
		return "calm"
	case score > 0.2:
		return "supportive"
	case score < -0.7:
		return "anger"
	case score < -0.4:
		return "sadness"
	case score < -0.2:
		return "critical"
	default:
		return "neutral"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
