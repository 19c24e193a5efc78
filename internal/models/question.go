package models

import "slices"

// QuestionType is the short code used in the question file.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "mc"
	TypeTrueFalse      QuestionType = "tf"
	TypeShortAnswer    QuestionType = "sa"
	TypeNumeric        QuestionType = "n"
	TypeOrdering       QuestionType = "o"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer, TypeNumeric, TypeOrdering:
		return true
	}
	return false
}

// Name returns the display name of the question type.
func (t QuestionType) Name() string {
	switch t {
	case TypeMultipleChoice:
		return "Multiple Choice"
	case TypeShortAnswer:
		return "Short Answer"
	case TypeOrdering:
		return "Ordering"
	case TypeNumeric:
		return "Numerical"
	case TypeTrueFalse:
		return "True/False"
	default:
		return "Unknown"
	}
}

// Selection values for question types whose response is not free text.
const (
	SelectedNone   = ""
	SelectedFalse  = "0"
	SelectedTrue   = "1"
	SelectedLocked = "1"
)

type Question struct {
	Type          QuestionType `json:"type"`
	Text          string       `json:"question"`
	Answer        string       `json:"answer,omitempty"`
	OrderedAnswer []string     `json:"ordered_answer,omitempty"` // ordering questions only
	Explanation   string       `json:"explanation,omitempty"`    // true/false questions only
	Options       []string     `json:"options,omitempty"`        // multiple choice and ordering only
}

// Clone returns a deep copy so session edits never reach the bank.
func (q Question) Clone() Question {
	q.OrderedAnswer = slices.Clone(q.OrderedAnswer)
	q.Options = slices.Clone(q.Options)
	return q
}

// QuizQuestion is a bank question copied into a session.
type QuizQuestion struct {
	Question
	Selected string `json:"selected"`
	Correct  *bool  `json:"correct,omitempty"`
}

// IndexedQuestion pairs a session question with its position.
type IndexedQuestion struct {
	Index    int          `json:"index"`
	Question QuizQuestion `json:"question"`
}
