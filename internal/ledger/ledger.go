// Package ledger keeps the cross-session record of points earned per topic.
package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/quizdeck/internal/session"
)

// Version is the ledger blob format version.
const Version = 1

// Entry is the latest completed result for one topic.
type Entry struct {
	TopicID        string    `json:"topic_id" validate:"required"`
	Title          string    `json:"title"`
	Mode           string    `json:"mode"`
	PointsEarned   float64   `json:"points_earned" validate:"gte=0"`
	PointsPossible int       `json:"points_possible" validate:"gte=0"`
	Completed      bool      `json:"completed"`
	Attempts       int       `json:"attempts" validate:"gte=0"`
	LastScore      int       `json:"last_score" validate:"gte=0,lte=100"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Percent returns the entry's earned over possible points as a percentage.
func (e Entry) Percent() float64 {
	if e.PointsPossible == 0 {
		return 0
	}
	return e.PointsEarned / float64(e.PointsPossible) * 100
}

// Ledger maps topic IDs to their latest result.
type Ledger struct {
	Version int               `json:"version" validate:"eq=1"`
	Topics  map[string]*Entry `json:"topics" validate:"dive"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{Version: Version, Topics: make(map[string]*Entry)}
}

// Record stores a finished session. The most recent completion replaces any
// earlier result for the topic; only the attempt count carries over.
func (l *Ledger) Record(sum *session.Summary) {
	if l.Topics == nil {
		l.Topics = make(map[string]*Entry)
	}
	attempts := 1
	if prev, ok := l.Topics[sum.TopicID]; ok {
		attempts = prev.Attempts + 1
	}
	l.Topics[sum.TopicID] = &Entry{
		TopicID:        sum.TopicID,
		Title:          sum.TopicTitle,
		Mode:           string(sum.Mode),
		PointsEarned:   sum.PointsEarned,
		PointsPossible: sum.PointsPossible,
		Completed:      true,
		Attempts:       attempts,
		LastScore:      int(math.Round(sum.Percent())),
		CompletedAt:    sum.CompletedAt,
	}
}

// Entries returns the entries sorted by topic ID.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.Topics))
	for _, e := range l.Topics {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })
	return out
}

// Totals is derived from the entries.
type Totals struct {
	PointsEarned   float64
	PointsPossible int
	Completed      int
}

// Percent returns total earned over possible points as a percentage.
func (t Totals) Percent() float64 {
	if t.PointsPossible == 0 {
		return 0
	}
	return t.PointsEarned / float64(t.PointsPossible) * 100
}

// Totals sums every entry.
func (l *Ledger) Totals() Totals {
	var t Totals
	for _, e := range l.Topics {
		t.PointsEarned += e.PointsEarned
		t.PointsPossible += e.PointsPossible
		if e.Completed {
			t.Completed++
		}
	}
	return t
}

func (l *Ledger) clone() *Ledger {
	c := &Ledger{Version: l.Version, Topics: make(map[string]*Entry, len(l.Topics))}
	for id, e := range l.Topics {
		cp := *e
		c.Topics[id] = &cp
	}
	return c
}
