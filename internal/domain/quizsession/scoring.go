package quizsession

import "github.com/maturski-kviz/backend/internal/domain/questionbank"

// Evaluate scores a selection against a question: correct only when the
// selected keys equal the correct set exactly. Supersets and subsets score
// zero; there is no partial credit for multi-select questions.
func Evaluate(q questionbank.Question, selected map[string]bool) (correct bool, points int) {
	if len(selected) != len(q.CorrectAnswers) {
		return false, 0
	}
	for key := range selected {
		if !q.CorrectAnswers.Contains(key) {
			return false, 0
		}
	}
	return true, q.Points
}
