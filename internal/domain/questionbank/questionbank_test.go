package questionbank_test

import (
	"strings"
	"testing"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
)

const validBankJSON = `{
  "sections": [
    {
      "number": 1,
      "name": "Programiranje",
      "questions": [
        {
          "number": 1,
          "question": "Koji je rezultat izraza 2 + 2?",
          "points": 2,
          "answers": {"a": "3", "b": "4", "c": "5", "d": "22"},
          "correct_answers": ["b"]
        },
        {
          "number": 2,
          "question": "Koje od navedenih su petlje?",
          "points": 3,
          "answers": {"a": "for", "b": "if", "c": "while", "d": "switch"},
          "correct_answers": ["a", "c"],
          "is_hard": true
        }
      ]
    },
    {
      "number": 2,
      "name": "Baze podataka",
      "questions": [
        {
          "number": 3,
          "question": "Sta je primarni kljuc?",
          "has_picture": true,
          "points": 2,
          "answers": {"a": "Jedinstveni identifikator", "b": "Strani kljuc"},
          "correct_answers": ["a"],
          "is_extreme": true
        }
      ]
    }
  ]
}`

func parseValid(t *testing.T) *questionbank.Bank {
	t.Helper()
	bank, err := questionbank.Parse(strings.NewReader(validBankJSON))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return bank
}

func TestParse_ValidBank(t *testing.T) {
	bank := parseValid(t)

	if len(bank.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(bank.Sections))
	}
	if bank.TotalQuestions() != 3 {
		t.Errorf("expected 3 questions, got %d", bank.TotalQuestions())
	}
}

func TestParse_StampsSectionNumbers(t *testing.T) {
	bank := parseValid(t)

	q, ok := bank.QuestionByNumber(3)
	if !ok {
		t.Fatal("expected question 3 to exist")
	}
	if q.SectionNumber != 2 {
		t.Errorf("expected section number 2, got %d", q.SectionNumber)
	}
}

func TestParse_NumericCorrectAnswers(t *testing.T) {
	// Some bank assets store option keys as JSON numbers.
	doc := `{
  "sections": [
    {
      "number": 1,
      "name": "Test",
      "questions": [
        {
          "number": 1,
          "question": "Pitanje?",
          "points": 1,
          "answers": {"1": "prvi", "2": "drugi"},
          "correct_answers": [2]
        }
      ]
    }
  ]
}`
	bank, err := questionbank.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	q, _ := bank.QuestionByNumber(1)
	if !q.CorrectAnswers.Contains("2") {
		t.Errorf("expected numeric key to normalize to %q, got %v", "2", q.CorrectAnswers)
	}
}

func TestParse_RejectsDuplicateQuestionNumbers(t *testing.T) {
	doc := strings.Replace(validBankJSON, `"number": 3,`, `"number": 1,`, 1)
	if _, err := questionbank.Parse(strings.NewReader(doc)); err == nil {
		t.Error("expected error for duplicate question number")
	}
}

func TestParse_RejectsCorrectAnswerNotAnOption(t *testing.T) {
	doc := strings.Replace(validBankJSON, `"correct_answers": ["b"]`, `"correct_answers": ["z"]`, 1)
	if _, err := questionbank.Parse(strings.NewReader(doc)); err == nil {
		t.Error("expected error for correct answer outside the option set")
	}
}

func TestParse_RejectsDuplicateCorrectAnswers(t *testing.T) {
	doc := strings.Replace(validBankJSON, `"correct_answers": ["a", "c"]`, `"correct_answers": ["a", "a"]`, 1)
	if _, err := questionbank.Parse(strings.NewReader(doc)); err == nil {
		t.Error("expected error for duplicate correct answer keys")
	}
}

func TestParse_RejectsNonPositivePoints(t *testing.T) {
	doc := strings.Replace(validBankJSON, `"points": 2,`, `"points": 0,`, 1)
	if _, err := questionbank.Parse(strings.NewReader(doc)); err == nil {
		t.Error("expected error for zero points")
	}
}

func TestParse_RejectsEmptyBank(t *testing.T) {
	if _, err := questionbank.Parse(strings.NewReader(`{"sections": []}`)); err == nil {
		t.Error("expected error for bank without sections")
	}
}

func TestImageFile_ZeroPadded(t *testing.T) {
	q := questionbank.Question{Number: 7}
	if got := q.ImageFile(); got != "007.png" {
		t.Errorf("expected %q, got %q", "007.png", got)
	}

	q.Number = 142
	if got := q.ImageFile(); got != "142.png" {
		t.Errorf("expected %q, got %q", "142.png", got)
	}
}

func TestTierCounts(t *testing.T) {
	bank := parseValid(t)

	hard, extreme := bank.TierCounts()
	if hard != 1 {
		t.Errorf("expected 1 hard question, got %d", hard)
	}
	if extreme != 1 {
		t.Errorf("expected 1 extreme question, got %d", extreme)
	}
}

func TestSectionByNumber_Missing(t *testing.T) {
	bank := parseValid(t)

	if _, ok := bank.SectionByNumber(99); ok {
		t.Error("expected lookup of unknown section to fail")
	}
}
