package quiz

import (
	"fmt"
	"strconv"

	"github.com/vytor/quizzical/internal/models"
)

// ReadyToSubmit checks every question and lists each one that blocks
// submission, in question order.
func (s *Session) ReadyToSubmit() models.Readiness {
	r := models.Readiness{Ready: true, Missing: []string{}}
	for i, q := range s.questions {
		if msg := missingMessage(i+1, q); msg != "" {
			r.Ready = false
			r.Missing = append(r.Missing, msg)
		}
	}
	return r
}

func missingMessage(pos int, q models.QuizQuestion) string {
	if q.Selected == models.SelectedNone {
		if q.Type == models.TypeOrdering {
			return fmt.Sprintf("Question %d has not been locked in (by selecting \"Done\") yet.", pos)
		}
		return fmt.Sprintf("Question %d has not been answered yet.", pos)
	}
	if q.Type == models.TypeNumeric && !isCanonicalInteger(q.Selected) {
		return fmt.Sprintf("Question %d's response is not an integer.", pos)
	}
	return ""
}

// isCanonicalInteger accepts s only if formatting its integer value gives s
// back, so "007", " 7", "+7" and "7.0" are all rejected.
func isCanonicalInteger(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return strconv.Itoa(n) == s
}
