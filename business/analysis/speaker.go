package analysis

import "fmt"

// speakerPalette is cycled by first-appearance order. With more speakers
// than colors the palette wraps and colors repeat.
var speakerPalette = []string{
	"#4f46e5",
	"#0ea5e9",
	"#22c55e",
	"#f59e0b",
	"#ef4444",
}

// speakerID turns a zero-based resolution index into a display ID:
// "A".."Z", then "AA", "AB" and so on.
func speakerID(i int) string {
	id := ""
	for i >= 0 {
		id = string(rune('A'+i%26)) + id
		i = i/26 - 1
	}
	return id
}

// speakerSet maps raw diarization indices to resolved display identities.
// Identities are assigned in strict first-appearance order and are
// immutable for the duration of one analysis run.
type speakerSet struct {
	order   []int
	byIndex map[int]ResolvedSpeaker
}

func resolveSpeakers(utts []Utterance) *speakerSet {
	set := &speakerSet{byIndex: make(map[int]ResolvedSpeaker)}
	for _, u := range utts {
		if _, seen := set.byIndex[u.Speaker]; seen {
			continue
		}
		n := len(set.order)
		id := speakerID(n)
		set.byIndex[u.Speaker] = ResolvedSpeaker{
			ID:    id,
			Label: fmt.Sprintf("Speaker %s", id),
			Characteristic: Characteristic{
				Color: speakerPalette[n%len(speakerPalette)],
			},
		}
		set.order = append(set.order, u.Speaker)
	}
	return set
}

func (s *speakerSet) get(index int) ResolvedSpeaker {
	return s.byIndex[index]
}

// resolved returns the speakers in first-appearance order.
func (s *speakerSet) resolved() []ResolvedSpeaker {
	out := make([]ResolvedSpeaker, 0, len(s.order))
	for _, idx := range s.order {
		out = append(out, s.byIndex[idx])
	}
	return out
}
