package analysis

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// timelinePoints is the fixed cardinality of the emotion timeline.
const timelinePoints = 5

// utteranceDuration is the synthetic duration in seconds of one
// utterance: one second per 15 characters, never less than one.
func utteranceDuration(text string) int {
	return utf8.RuneCountInString(text)/15 + 1
}

// displayTimestamp renders a cumulative total as "00:SS". The displayed
// value saturates at 59; the underlying total keeps growing and feeds
// the emotion-timeline axis.
func displayTimestamp(totalSec int) string {
	if totalSec > 59 {
		totalSec = 59
	}
	return fmt.Sprintf("00:%02d", totalSec)
}

// timeLabel renders a timeline axis value as "M:SS".
func timeLabel(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// buildTranscript annotates the utterances in input order. It returns
// the entries, the cumulative timestamp of each entry and the total
// cumulative duration.
func buildTranscript(utts []Utterance, set *speakerSet, scores []float64) (entries []TranscriptEntry, cum []int, total int) {
	entries = make([]TranscriptEntry, 0, len(utts))
	cum = make([]int, 0, len(utts))
	for i, u := range utts {
		total += utteranceDuration(u.Text)
		cum = append(cum, total)
		sp := set.get(u.Speaker)
		entries = append(entries, TranscriptEntry{
			ID:             i + 1,
			Speaker:        sp.ID,
			Label:          sp.Label,
			Characteristic: sp.Characteristic,
			Text:           u.Text,
			Sentiment:      labelFromScore(scores[i]),
			Emotion:        emotionFromScore(scores[i]),
			Timestamp:      displayTimestamp(total),
		})
	}
	return entries, cum, total
}

// buildParticipation groups the transcript by resolved speaker and
// derives speaking time, average sentiment and a conflict score. The
// conflict formula can reach 20 for a fully negative speaker; values
// are floored at 0 but deliberately not capped at 10.
func buildParticipation(set *speakerSet, entries []TranscriptEntry) []ParticipationMetric {
	bySpeaker := make(map[string][]TranscriptEntry)
	for _, e := range entries {
		bySpeaker[e.Speaker] = append(bySpeaker[e.Speaker], e)
	}

	out := make([]ParticipationMetric, 0, len(set.order))
	for _, sp := range set.resolved() {
		var speaking int
		var sum float64
		members := bySpeaker[sp.ID]
		for _, e := range members {
			speaking += utteranceDuration(e.Text)
			switch e.Sentiment {
			case Positive:
				sum++
			case Negative:
				sum--
			}
		}
		divisor := len(members)
		if divisor < 1 {
			divisor = 1
		}
		avg := sum / float64(divisor)
		conflict := int(math.Round((1 - clamp(avg, -1, 1)) * 10))
		if conflict < 0 {
			conflict = 0
		}
		out = append(out, ParticipationMetric{
			Speaker:             sp.ID,
			Label:               sp.Label,
			Characteristic:      sp.Characteristic,
			SpeakingTimeSeconds: speaking,
			Conflict:            conflict,
			Sentiment:           labelFromScore(avg),
		})
	}
	return out
}

// buildEmotionTimeline produces exactly five points. Point i sits at
// i*total/4 seconds on the axis. Each speaker's value at a point is the
// mean score of that speaker's utterances whose cumulative timestamp
// falls in the matching fifth of the meeting, or 0 with no utterances
// there.
func buildEmotionTimeline(set *speakerSet, entries []TranscriptEntry, scores []float64, cum []int, total int) []EmotionTimelinePoint {
	type bin struct {
		sum float64
		n   int
	}
	bins := make([]map[string]*bin, timelinePoints)
	for i := range bins {
		bins[i] = make(map[string]*bin)
	}
	for i, e := range entries {
		b := 0
		if total > 0 {
			b = (cum[i] - 1) * timelinePoints / total
			if b >= timelinePoints {
				b = timelinePoints - 1
			}
		}
		entry := bins[b][e.Speaker]
		if entry == nil {
			entry = &bin{}
			bins[b][e.Speaker] = entry
		}
		entry.sum += scores[i]
		entry.n++
	}

	points := make([]EmotionTimelinePoint, 0, timelinePoints)
	for i := 0; i < timelinePoints; i++ {
		sec := i * total / (timelinePoints - 1)
		point := EmotionTimelinePoint{Time: timeLabel(sec), Values: []SpeakerValue{}}
		for _, sp := range set.resolved() {
			var v float64
			if b := bins[i][sp.ID]; b != nil {
				v = b.sum / float64(b.n)
			}
			point.Values = append(point.Values, SpeakerValue{Speaker: sp.ID, Value: v})
		}
		points = append(points, point)
	}
	return points
}
