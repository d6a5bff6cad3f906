package questionbank

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Question is a single multiple-choice exam question. Questions are loaded
// from the static bank asset and never mutated at runtime.
type Question struct {
	Number         int               `json:"number"`
	Text           string            `json:"question"`
	HasPicture     bool              `json:"has_picture"`
	Points         int               `json:"points"`
	Answers        map[string]string `json:"answers"`
	CorrectAnswers KeySet            `json:"correct_answers"`
	IsHard         bool              `json:"is_hard"`
	IsExtreme      bool              `json:"is_extreme"`
	SectionNumber  int               `json:"section_number"`
}

// Section groups the questions of one exam area.
type Section struct {
	Number    int        `json:"number"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Bank is the full read-only question bank.
type Bank struct {
	Sections []Section `json:"sections"`
}

// KeySet holds option keys. The bank asset stores correct answers as either
// JSON numbers or strings; both normalize to strings so they compare equal
// to the keys of the answers map.
type KeySet []string

func (k *KeySet) UnmarshalJSON(data []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var asStrings []string
		if err2 := json.Unmarshal(data, &asStrings); err2 != nil {
			return err
		}
		*k = asStrings
		return nil
	}
	keys := make([]string, len(raw))
	for i, n := range raw {
		keys[i] = n.String()
	}
	*k = keys
	return nil
}

// Contains reports whether key is a member of the set.
func (k KeySet) Contains(key string) bool {
	for _, existing := range k {
		if existing == key {
			return true
		}
	}
	return false
}

// ImageFile returns the asset file name for questions with a picture:
// the question number zero-padded to three digits.
func (q Question) ImageFile() string {
	return fmt.Sprintf("%03d.png", q.Number)
}

// Load reads and validates the bank asset at path.
func Load(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a bank document. Unlike the persisted store
// documents, a broken bank asset is a packaging error and fails startup.
func Parse(r io.Reader) (*Bank, error) {
	var bank Bank
	if err := json.NewDecoder(r).Decode(&bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if err := bank.validate(); err != nil {
		return nil, err
	}
	// Stamp the owning section onto each question so pool filtering and the
	// wrong-answer log can work with questions detached from their section.
	for si := range bank.Sections {
		for qi := range bank.Sections[si].Questions {
			bank.Sections[si].Questions[qi].SectionNumber = bank.Sections[si].Number
		}
	}
	return &bank, nil
}

func (b *Bank) validate() error {
	if len(b.Sections) == 0 {
		return fmt.Errorf("question bank has no sections")
	}
	seenSections := make(map[int]bool)
	seenQuestions := make(map[int]bool)
	for _, section := range b.Sections {
		if seenSections[section.Number] {
			return fmt.Errorf("duplicate section number %d", section.Number)
		}
		seenSections[section.Number] = true

		for _, q := range section.Questions {
			if err := validateQuestion(q); err != nil {
				return fmt.Errorf("section %d: %w", section.Number, err)
			}
			if seenQuestions[q.Number] {
				return fmt.Errorf("duplicate question number %d", q.Number)
			}
			seenQuestions[q.Number] = true
		}
	}
	return nil
}

func validateQuestion(q Question) error {
	if q.Text == "" {
		return fmt.Errorf("question %d has no text", q.Number)
	}
	if q.Points <= 0 {
		return fmt.Errorf("question %d has non-positive points %d", q.Number, q.Points)
	}
	if len(q.Answers) == 0 {
		return fmt.Errorf("question %d has no answer options", q.Number)
	}
	if len(q.CorrectAnswers) == 0 {
		return fmt.Errorf("question %d has no correct answers", q.Number)
	}
	seen := make(map[string]bool)
	for _, key := range q.CorrectAnswers {
		if seen[key] {
			return fmt.Errorf("question %d: duplicate correct answer %q", q.Number, key)
		}
		seen[key] = true
		if _, ok := q.Answers[key]; !ok {
			return fmt.Errorf("question %d: correct answer %q is not an option", q.Number, key)
		}
	}
	return nil
}

// TotalQuestions counts questions across all sections.
func (b *Bank) TotalQuestions() int {
	total := 0
	for _, section := range b.Sections {
		total += len(section.Questions)
	}
	return total
}

// TierCounts returns how many questions are tagged hard and extreme.
func (b *Bank) TierCounts() (hard, extreme int) {
	for _, section := range b.Sections {
		for _, q := range section.Questions {
			if q.IsHard {
				hard++
			}
			if q.IsExtreme {
				extreme++
			}
		}
	}
	return hard, extreme
}

// SectionByNumber returns the section with the given number.
func (b *Bank) SectionByNumber(number int) (Section, bool) {
	for _, section := range b.Sections {
		if section.Number == number {
			return section, true
		}
	}
	return Section{}, false
}

// QuestionByNumber looks a question up across all sections.
func (b *Bank) QuestionByNumber(number int) (Question, bool) {
	for _, section := range b.Sections {
		for _, q := range section.Questions {
			if q.Number == number {
				return q, true
			}
		}
	}
	return Question{}, false
}
