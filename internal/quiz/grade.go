package quiz

import (
	"slices"
	"strings"

	"github.com/vytor/quizzical/internal/models"
)

type gradeFunc func(q models.QuizQuestion) bool

func graderFor(t models.QuestionType) gradeFunc {
	switch t {
	case models.TypeMultipleChoice:
		return gradeExact
	case models.TypeShortAnswer, models.TypeNumeric:
		return gradeFold
	case models.TypeTrueFalse:
		return gradeTrueFalse
	case models.TypeOrdering:
		return gradeOrder
	default:
		return func(models.QuizQuestion) bool { return false }
	}
}

// Grade reports whether q's response is correct. It never fails; anything
// unexpected is simply wrong.
func Grade(q models.QuizQuestion) bool {
	return graderFor(q.Type)(q)
}

func gradeExact(q models.QuizQuestion) bool {
	return q.Selected == q.Answer
}

// No trimming: " paris" does not match "Paris".
func gradeFold(q models.QuizQuestion) bool {
	return strings.ToLower(q.Selected) == strings.ToLower(q.Answer)
}

func gradeTrueFalse(q models.QuizQuestion) bool {
	return (q.Selected == models.SelectedTrue && q.Answer == "true") ||
		(q.Selected == models.SelectedFalse && q.Answer == "false")
}

// The displayed order is the response; the lock flag is not consulted.
func gradeOrder(q models.QuizQuestion) bool {
	return slices.Equal(q.Options, q.OrderedAnswer)
}
