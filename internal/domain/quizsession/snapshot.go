package quizsession

import "sort"

// QuestionView is the presentation-facing slice of the current question.
// Correct answers are deliberately absent until the reveal.
type QuestionView struct {
	Number          int      `json:"number"`
	Text            string   `json:"text"`
	HasPicture      bool     `json:"has_picture"`
	ImageFile       string   `json:"image_file,omitempty"`
	Points          int      `json:"points"`
	ExpectedAnswers int      `json:"expected_answers"`
	Options         []Option `json:"options"`
	SelectedKeys    []string `json:"selected_keys"`
}

// RevealView is shown during the reveal window after a submission.
type RevealView struct {
	Correct     bool     `json:"correct"`
	CorrectKeys []string `json:"correct_keys"`
}

// Snapshot is an immutable view of the active session for one render cycle.
type Snapshot struct {
	SessionID     string        `json:"session_id"`
	State         State         `json:"state"`
	QuestionIndex int           `json:"question_index"`
	QuestionCount int           `json:"question_count"`
	Score         int           `json:"score"`
	TotalPoints   int           `json:"total_points"`
	Question      *QuestionView `json:"question,omitempty"`
	Reveal        *RevealView   `json:"reveal,omitempty"`
	Summary       *Summary      `json:"summary,omitempty"`
}

// Snapshot captures the current session state for the presentation layer.
func (c *Controller) Snapshot() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Snapshot{}, ErrNoActiveSession
	}

	s := c.session
	snap := Snapshot{
		SessionID:     s.ID,
		State:         s.State,
		QuestionIndex: s.CurrentIndex,
		QuestionCount: len(s.Questions),
		Score:         s.Score,
		TotalPoints:   s.TotalPoints,
	}

	if s.State == StateCompleted {
		summary := s.summary()
		snap.Summary = &summary
		return snap, nil
	}

	question := s.Current()
	options := make([]Option, len(s.ShuffledOptions))
	copy(options, s.ShuffledOptions)

	selected := make([]string, 0, len(s.Selected))
	for key := range s.Selected {
		selected = append(selected, key)
	}
	sort.Strings(selected)

	view := QuestionView{
		Number:          question.Number,
		Text:            question.Text,
		HasPicture:      question.HasPicture,
		Points:          question.Points,
		ExpectedAnswers: len(question.CorrectAnswers),
		Options:         options,
		SelectedKeys:    selected,
	}
	if question.HasPicture {
		view.ImageFile = question.ImageFile()
	}
	snap.Question = &view

	if s.State == StateShowingResult {
		last := s.AnswerLog[len(s.AnswerLog)-1]
		correctKeys := make([]string, len(question.CorrectAnswers))
		copy(correctKeys, question.CorrectAnswers)
		sort.Strings(correctKeys)
		snap.Reveal = &RevealView{
			Correct:     last.Correct,
			CorrectKeys: correctKeys,
		}
	}
	return snap, nil
}

// Results returns the summary of a completed session.
func (c *Controller) Results() (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Summary{}, ErrNoActiveSession
	}
	if c.session.State != StateCompleted {
		return Summary{}, ErrNotCompleted
	}
	return c.session.summary(), nil
}
