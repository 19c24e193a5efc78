// Package questionbank loads the question file and holds it in memory.
package questionbank

import "github.com/vytor/quizzical/internal/models"

// Bank is the immutable, loaded set of questions.
type Bank struct {
	questions []models.Question
	skipped   int
}

func NewBank(questions []models.Question, skipped int) *Bank {
	qs := make([]models.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
	}
	return &Bank{questions: qs, skipped: skipped}
}

func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// At returns a deep copy of the question at i.
func (b *Bank) At(i int) models.Question {
	return b.questions[i].Clone()
}

func (b *Bank) Summary() models.BankSummary {
	s := models.BankSummary{ByType: map[models.QuestionType]int{}}
	if b == nil {
		return s
	}
	s.Total = len(b.questions)
	s.Skipped = b.skipped
	for _, q := range b.questions {
		s.ByType[q.Type]++
	}
	return s
}
