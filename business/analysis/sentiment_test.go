package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	scorer := NewScorer()

	cases := []struct {
		text string
		want float64
	}{
		{"Great job team, thanks!", 1.0},
		{"I disagree, this is a problem", -1.0},
		{"see you tomorrow", 0},
		{"", 0},
		{"good but bad", 0},
		{"good good bad", 1.0 / 3.0},
		{"GREAT, thanks... awesome!!!", 1.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, scorer.Score(tc.text), 1e-9, "Score(%q)", tc.text)
	}
}

func TestScoreStaysInRange(t *testing.T) {
	scorer := NewScorer()
	texts := []string{
		"great great great great great",
		"bad bad bad bad bad bad",
		"good bad good bad conflict support",
		"don't worry it's fine",
	}
	for _, text := range texts {
		s := scorer.Score(text)
		assert.GreaterOrEqual(t, s, -1.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"don't", "delay", "this"}, tokenize("DON'T delay,this!"))
	assert.Empty(t, tokenize("123 !!! ..."))
}

func TestLabelFromScoreBoundaries(t *testing.T) {
	assert.Equal(t, Neutral, labelFromScore(0.3))
	assert.Equal(t, Neutral, labelFromScore(-0.3))
	assert.Equal(t, Positive, labelFromScore(0.31))
	assert.Equal(t, Negative, labelFromScore(-0.31))
	assert.Equal(t, Neutral, labelFromScore(0))
}

func TestEmotionFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.8, "joy"},
		{0.5, "calm"},
		{0.3, "supportive"},
		{0.2, "neutral"},
		{0, "neutral"},
		{-0.2, "neutral"},
		{-0.3, "critical"},
		{-0.5, "sadness"},
		{-0.8, "anger"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, emotionFromScore(tc.score), "emotionFromScore(%v)", tc.score)
	}
}
