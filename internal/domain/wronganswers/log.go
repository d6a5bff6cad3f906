package wronganswers

import (
	"sort"
	"time"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
)

// Severity buckets wrong answers by how often a question has been missed.
type Severity string

const (
	SeverityLow    Severity = "low"    // missed once
	SeverityMedium Severity = "medium" // missed 2-3 times
	SeverityHigh   Severity = "high"   // missed 4+ times
)

// Entry tracks repeated misses of a single question. The question is stored
// as a snapshot so the log stays renderable even if the bank asset changes
// between runs.
type Entry struct {
	Question     questionbank.Question `json:"question"`
	MissCount    int                   `json:"miss_count"`
	LastMissedAt time.Time             `json:"last_missed_at"`
}

// Severity classifies the entry by miss count.
func (e Entry) Severity() Severity {
	switch {
	case e.MissCount >= 4:
		return SeverityHigh
	case e.MissCount >= 2:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Log is the persisted per-question miss counter, keyed by question number.
type Log struct {
	Entries map[int]Entry `json:"entries"`
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{Entries: make(map[int]Entry)}
}

// RecordMiss creates or bumps the entry for the question and stamps the
// miss time.
func (l *Log) RecordMiss(q questionbank.Question, at time.Time) {
	if l.Entries == nil {
		l.Entries = make(map[int]Entry)
	}
	entry, ok := l.Entries[q.Number]
	if !ok {
		entry = Entry{Question: q}
	}
	entry.MissCount++
	entry.LastMissedAt = at
	l.Entries[q.Number] = entry
}

// SortedByMissCount returns the entries ordered by miss count descending.
// Ties break on question number ascending so the order is deterministic.
func (l *Log) SortedByMissCount() []Entry {
	entries := make([]Entry, 0, len(l.Entries))
	for _, entry := range l.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MissCount != entries[j].MissCount {
			return entries[i].MissCount > entries[j].MissCount
		}
		return entries[i].Question.Number < entries[j].Question.Number
	})
	return entries
}

// Len is the number of distinct missed questions.
func (l *Log) Len() int {
	return len(l.Entries)
}

// Clear irreversibly empties the log.
func (l *Log) Clear() {
	l.Entries = make(map[int]Entry)
}
