package models

type QuizStats struct {
	Date    string `json:"date"`
	Time    int64  `json:"time"` // milliseconds
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// QuizRecord is one completed quiz in the permanent history.
type QuizRecord struct {
	Timestamp int64          `json:"ts"` // ms since epoch
	Questions []QuizQuestion `json:"questions"`
	Stats     *QuizStats     `json:"stats"`
}

// SavedQuiz is the content of the temporary slot used to resume a quiz.
type SavedQuiz struct {
	Timestamp    int64          `json:"ts"`
	Questions    []QuizQuestion `json:"questions"`
	Stats        *QuizStats     `json:"stats,omitempty"`
	CurrentIndex int            `json:"current"`
	ElapsedMs    int64          `json:"elapsed_ms"`
}

// SessionView is a read-only snapshot of a quiz session.
type SessionView struct {
	Questions    []QuizQuestion `json:"questions"`
	CurrentIndex int            `json:"current"`
	ReviewMode   bool           `json:"review"`
	ElapsedMs    int64          `json:"time_taken"`
	Formatted    string         `json:"time_formatted"`
	Stats        *QuizStats     `json:"stats,omitempty"`
}

// Readiness is the outcome of checking whether a quiz can be submitted.
type Readiness struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing"`
}

// CloneQuestions deep-copies a slice of session questions.
func CloneQuestions(qs []QuizQuestion) []QuizQuestion {
	if qs == nil {
		return nil
	}
	out := make([]QuizQuestion, len(qs))
	for i, q := range qs {
		out[i] = QuizQuestion{
			Question: q.Question.Clone(),
			Selected: q.Selected,
		}
		if q.Correct != nil {
			c := *q.Correct
			out[i].Correct = &c
		}
	}
	return out
}

// Clone deep-copies the record.
func (r QuizRecord) Clone() QuizRecord {
	r.Questions = CloneQuestions(r.Questions)
	if r.Stats != nil {
		s := *r.Stats
		r.Stats = &s
	}
	return r
}
