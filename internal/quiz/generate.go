package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/shuffle"
	"github.com/vytor/quizzical/internal/timer"
)

// Length is the number of questions in every generated quiz.
const Length = 5

type Mode string

const (
	ModeRandom Mode = "random"
	// ModeFixed always picks the same questions, one of each type in the
	// bundled question file.
	ModeFixed Mode = "fixed"
)

// FixedIndices are the bank positions used by ModeFixed.
var FixedIndices = [Length]int{0, 10, 20, 30, 40}

// ParseMode maps "", "random"/"0" and "fixed"/"1" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "random", "0":
		return ModeRandom, nil
	case "fixed", "1":
		return ModeFixed, nil
	}
	return "", errors.NewValidationError("mode", fmt.Sprintf("unknown quiz mode %q", s))
}

// Source is the question bank a quiz samples from.
type Source interface {
	Len() int
	At(i int) models.Question
}

// Generate builds a new session from src and starts tm. rng may be nil.
func Generate(src Source, mode Mode, rng *rand.Rand, tm *timer.Timer) (*Session, error) {
	indices, err := pick(src.Len(), mode, rng)
	if err != nil {
		return nil, err
	}

	questions := make([]models.QuizQuestion, 0, len(indices))
	for _, idx := range indices {
		q := models.QuizQuestion{Question: src.At(idx), Selected: models.SelectedNone}
		if q.Options != nil {
			q.Options = shuffle.Shuffle(rng, q.Options)
		}
		questions = append(questions, q)
	}

	s := &Session{
		questions: questions,
		sources:   indices,
		timer:     tm,
	}
	if tm != nil {
		tm.Start()
	}
	return s, nil
}

func pick(size int, mode Mode, rng *rand.Rand) ([]int, error) {
	switch mode {
	case ModeFixed:
		need := FixedIndices[Length-1] + 1
		if size < need {
			return nil, errors.NewRepositoryTooSmallError(size, need)
		}
		return FixedIndices[:], nil
	case ModeRandom:
		if size < Length {
			return nil, errors.NewRepositoryTooSmallError(size, Length)
		}
		out := make([]int, 0, Length)
		seen := make(map[int]bool, Length)
		for len(out) < Length {
			var n int
			if rng != nil {
				n = rng.IntN(size)
			} else {
				n = rand.IntN(size)
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
		return out, nil
	}
	return nil, errors.NewValidationError("mode", fmt.Sprintf("unknown quiz mode %q", mode))
}
