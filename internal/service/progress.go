// internal/service/progress.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
	"github.com/maturski-kviz/backend/internal/domain/quizsession"
	"github.com/maturski-kviz/backend/internal/domain/stats"
	"github.com/maturski-kviz/backend/internal/domain/wronganswers"
	"github.com/maturski-kviz/backend/internal/store"
)

// ProgressService consumes session events and owns the persisted records:
// the rolling statistics, the wrong-answer log, and the dark-mode flag.
// Persistence is fire-and-forget from the session's point of view; write
// failures are logged and never surface into the quiz flow.
type ProgressService struct {
	store  store.Store
	logger *slog.Logger

	mu       sync.Mutex
	stats    stats.Record
	wrong    *wronganswers.Log
	darkMode bool

	// applied guards the statistics update per session identity, so a
	// completion event observed twice counts once.
	applied map[string]bool
}

// NewProgressService loads the persisted records from the store. Absent or
// malformed documents fall back to their empty defaults; startup never
// fails on store contents.
func NewProgressService(s store.Store, logger *slog.Logger) *ProgressService {
	ps := &ProgressService{
		store:   s,
		logger:  logger,
		wrong:   wronganswers.NewLog(),
		applied: make(map[string]bool),
	}

	ctx := context.Background()
	loadDocument(ctx, ps, store.KeyStatistics, &ps.stats)
	loadDocument(ctx, ps, store.KeyWrongAnswers, ps.wrong)
	loadDocument(ctx, ps, store.KeyDarkMode, &ps.darkMode)
	return ps
}

// loadDocument decodes one persisted document into v. It unmarshals into a
// zero value first and assigns only on success, so a document that fails
// partway through decoding cannot leave v half-populated.
func loadDocument[T any](ctx context.Context, ps *ProgressService, key string, v *T) {
	data, err := ps.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		ps.logger.Warn("failed to read persisted document, using default", "key", key, "error", err)
		return
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		ps.logger.Warn("persisted document is malformed, using default", "key", key, "error", err)
		return
	}
	*v = decoded
}

// OnQuizCompleted folds a completed session into the statistics record and
// persists it. A session contributes at most once, keyed on its ID.
func (ps *ProgressService) OnQuizCompleted(summary quizsession.Summary) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.applied[summary.SessionID] {
		ps.logger.Warn("duplicate completion event ignored", "session_id", summary.SessionID)
		return
	}
	ps.applied[summary.SessionID] = true

	ps.stats.Apply(summary)
	ps.persist(store.KeyStatistics, &ps.stats)
	ps.logger.Info("quiz completed",
		"session_id", summary.SessionID,
		"score", summary.Score,
		"total_points", summary.TotalPoints,
		"percentage", summary.Percentage(),
	)
}

// OnWrongAnswer records a miss in the wrong-answer log and persists it.
func (ps *ProgressService) OnWrongAnswer(q questionbank.Question, at time.Time) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.wrong.RecordMiss(q, at)
	ps.persist(store.KeyWrongAnswers, ps.wrong)
}

// Statistics returns a copy of the current record.
func (ps *ProgressService) Statistics() stats.Record {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	record := ps.stats
	record.PercentageHistory = make([]int, len(ps.stats.PercentageHistory))
	copy(record.PercentageHistory, ps.stats.PercentageHistory)
	return record
}

// ResetStatistics restores the empty record. Destructive and irreversible.
func (ps *ProgressService) ResetStatistics() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.stats = stats.Record{}
	ps.persist(store.KeyStatistics, &ps.stats)
	ps.logger.Info("statistics reset")
}

// WrongAnswers returns the log entries sorted by miss count descending.
func (ps *ProgressService) WrongAnswers() []wronganswers.Entry {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.wrong.SortedByMissCount()
}

// ClearWrongAnswers empties the wrong-answer log. Irreversible.
func (ps *ProgressService) ClearWrongAnswers() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.wrong.Clear()
	ps.persist(store.KeyWrongAnswers, ps.wrong)
	ps.logger.Info("wrong-answer log cleared")
}

// DarkMode reports the persisted presentation flag.
func (ps *ProgressService) DarkMode() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.darkMode
}

// SetDarkMode stores the presentation flag.
func (ps *ProgressService) SetDarkMode(enabled bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.darkMode = enabled
	ps.persist(store.KeyDarkMode, ps.darkMode)
}

// persist writes one document wholesale. It uses context.Background because
// updates are event-driven and must not be cancelled with an originating
// HTTP request.
func (ps *ProgressService) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ps.logger.Error("failed to marshal document", "key", key, "error", err)
		return
	}
	if err := ps.store.Set(context.Background(), key, data); err != nil {
		ps.logger.Error("failed to persist document", "key", key, "error", err)
	}
}
