package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
	"github.com/maturski-kviz/backend/internal/domain/quizsession"
	"github.com/maturski-kviz/backend/internal/service"
	"github.com/maturski-kviz/backend/internal/store"
)

// fakeStore keeps documents in memory so service tests need no database.
type fakeStore struct {
	docs map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string][]byte)}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := f.docs[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return value, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte) error {
	f.docs[key] = value
	return nil
}

func (f *fakeStore) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func summary(id string, score, total int) quizsession.Summary {
	return quizsession.Summary{
		SessionID:         id,
		Score:             score,
		TotalPoints:       total,
		QuestionsAnswered: 5,
		CorrectCount:      3,
	}
}

func TestOnQuizCompleted_UpdatesAndPersists(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	svc.OnQuizCompleted(summary("s1", 8, 10))

	record := svc.Statistics()
	if record.TotalQuizzes != 1 {
		t.Errorf("expected 1 quiz, got %d", record.TotalQuizzes)
	}
	if len(fs.docs[store.KeyStatistics]) == 0 {
		t.Error("expected statistics to be persisted")
	}
}

func TestOnQuizCompleted_DuplicateSessionIgnored(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	s := summary("s1", 8, 10)
	svc.OnQuizCompleted(s)
	svc.OnQuizCompleted(s)

	record := svc.Statistics()
	if record.TotalQuizzes != 1 {
		t.Errorf("expected duplicate completion to count once, got %d quizzes", record.TotalQuizzes)
	}
}

func TestOnQuizCompleted_ZeroPointSessionSkipped(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	svc.OnQuizCompleted(summary("s1", 0, 0))

	record := svc.Statistics()
	if record.TotalQuizzes != 0 {
		t.Errorf("expected zero-point session to be skipped, got %d quizzes", record.TotalQuizzes)
	}
}

func TestNewProgressService_LoadsPersistedState(t *testing.T) {
	fs := newFakeStore()
	fs.docs[store.KeyStatistics] = []byte(`{"total_quizzes":4,"percentage_history":[50,60,70,80]}`)
	fs.docs[store.KeyDarkMode] = []byte(`true`)

	svc := service.NewProgressService(fs, discardLogger())

	record := svc.Statistics()
	if record.TotalQuizzes != 4 {
		t.Errorf("expected 4 quizzes from persisted state, got %d", record.TotalQuizzes)
	}
	if !svc.DarkMode() {
		t.Error("expected dark mode to be restored")
	}
}

func TestNewProgressService_MalformedDocumentFallsBack(t *testing.T) {
	fs := newFakeStore()
	fs.docs[store.KeyStatistics] = []byte(`{broken`)

	svc := service.NewProgressService(fs, discardLogger())

	record := svc.Statistics()
	if record.TotalQuizzes != 0 {
		t.Errorf("expected empty record for malformed document, got %+v", record)
	}
}

func TestNewProgressService_TypeMismatchedDocumentFallsBack(t *testing.T) {
	fs := newFakeStore()
	// Valid JSON syntax, wrong type on a later field: fields decoded before
	// the failure must not leak into the loaded record.
	fs.docs[store.KeyStatistics] = []byte(`{"total_quizzes":4,"percentage_history":"oops"}`)

	svc := service.NewProgressService(fs, discardLogger())

	record := svc.Statistics()
	if record.TotalQuizzes != 0 {
		t.Errorf("expected empty record for mismatched document, got %d quizzes", record.TotalQuizzes)
	}
	if len(record.PercentageHistory) != record.TotalQuizzes {
		t.Errorf("expected history length to match quiz count, got %d/%d",
			len(record.PercentageHistory), record.TotalQuizzes)
	}
}

func TestResetStatistics(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	svc.OnQuizCompleted(summary("s1", 8, 10))
	svc.ResetStatistics()

	record := svc.Statistics()
	if record.TotalQuizzes != 0 || len(record.PercentageHistory) != 0 {
		t.Errorf("expected empty record after reset, got %+v", record)
	}
	if string(fs.docs[store.KeyStatistics]) == "" {
		t.Error("expected reset record to be persisted")
	}
}

func TestOnWrongAnswer_RecordsAndPersists(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	q := questionbank.Question{
		Number:         7,
		Text:           "Pitanje",
		Points:         2,
		Answers:        map[string]string{"a": "da", "b": "ne"},
		CorrectAnswers: questionbank.KeySet{"a"},
	}
	svc.OnWrongAnswer(q, time.Now())
	svc.OnWrongAnswer(q, time.Now())

	entries := svc.WrongAnswers()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].MissCount != 2 {
		t.Errorf("expected miss count 2, got %d", entries[0].MissCount)
	}
	if len(fs.docs[store.KeyWrongAnswers]) == 0 {
		t.Error("expected wrong-answer log to be persisted")
	}
}

func TestClearWrongAnswers(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	q := questionbank.Question{
		Number:         7,
		Points:         2,
		Answers:        map[string]string{"a": "da"},
		CorrectAnswers: questionbank.KeySet{"a"},
	}
	svc.OnWrongAnswer(q, time.Now())
	svc.ClearWrongAnswers()

	if len(svc.WrongAnswers()) != 0 {
		t.Error("expected empty log after clear")
	}
}

func TestDarkMode_Roundtrip(t *testing.T) {
	fs := newFakeStore()
	svc := service.NewProgressService(fs, discardLogger())

	if svc.DarkMode() {
		t.Error("expected dark mode off by default")
	}

	svc.SetDarkMode(true)
	if !svc.DarkMode() {
		t.Error("expected dark mode on after set")
	}

	// A fresh service over the same store sees the persisted flag.
	restored := service.NewProgressService(fs, discardLogger())
	if !restored.DarkMode() {
		t.Error("expected dark mode to survive a restart")
	}
}
