package quiz_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/questionbank"
	"github.com/vytor/quizzical/internal/quiz"
	"github.com/vytor/quizzical/internal/timer"
)

// newBank returns n questions cycling through the five types, so positions
// 0, 10, 20, 30 and 40 are all multiple choice.
func newBank(n int) *questionbank.Bank {
	types := []models.QuestionType{
		models.TypeMultipleChoice,
		models.TypeTrueFalse,
		models.TypeShortAnswer,
		models.TypeNumeric,
		models.TypeOrdering,
	}
	qs := make([]models.Question, n)
	for i := range qs {
		q := models.Question{Type: types[i%len(types)], Text: fmt.Sprintf("Question %d", i)}
		switch q.Type {
		case models.TypeMultipleChoice:
			q.Answer = "a"
			q.Options = []string{"a", "b", "c", "d"}
		case models.TypeTrueFalse:
			q.Answer = "true"
		case models.TypeShortAnswer:
			q.Answer = "Paris"
		case models.TypeNumeric:
			q.Answer = "42"
		case models.TypeOrdering:
			q.OrderedAnswer = []string{"1", "2", "3"}
			q.Options = []string{"1", "2", "3"}
		}
		qs[i] = q
	}
	return questionbank.NewBank(qs, 0)
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTimer(c *fakeClock) *timer.Timer {
	return timer.New(timer.WithClock(c.Now), timer.WithTick(time.Hour))
}

func TestGenerate_RandomPicksDistinctQuestions(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, err := quiz.Generate(newBank(7), quiz.ModeRandom, nil, nil)
		require.NoError(t, err)

		idx := s.SourceIndices()
		require.Len(t, idx, quiz.Length)
		seen := map[int]bool{}
		for _, n := range idx {
			assert.False(t, seen[n], "duplicate source index %d", n)
			assert.True(t, n >= 0 && n < 7)
			seen[n] = true
		}
	}
}

func TestGenerate_InitialState(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	tm := newTimer(clock)
	s, err := quiz.Generate(newBank(10), quiz.ModeRandom, seeded(), tm)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 0, s.CurrentIndex())
	assert.False(t, s.ReviewMode())
	assert.Equal(t, timer.Running, tm.State())
	for i := 0; i < s.Len(); i++ {
		q, err := s.QuestionAt(i)
		require.NoError(t, err)
		assert.Equal(t, models.SelectedNone, q.Selected)
		assert.Nil(t, q.Correct)
	}
}

func TestGenerate_FixedMode(t *testing.T) {
	s, err := quiz.Generate(newBank(41), quiz.ModeFixed, seeded(), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 10, 20, 30, 40}, s.SourceIndices())
	q, err := s.QuestionAt(4)
	require.NoError(t, err)
	assert.Equal(t, "Question 40", q.Text)
}

func TestGenerate_ShufflesOptions(t *testing.T) {
	s, err := quiz.Generate(newBank(41), quiz.ModeFixed, seeded(), nil)
	require.NoError(t, err)

	for i := 0; i < s.Len(); i++ {
		q, _ := s.QuestionAt(i)
		assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, q.Options)
		assert.False(t, q.Options[0] == "a" && q.Options[1] == "b", "first two options kept their places")
	}
}

func TestGenerate_DoesNotMutateBank(t *testing.T) {
	bank := newBank(41)
	s, err := quiz.Generate(bank, quiz.ModeFixed, seeded(), nil)
	require.NoError(t, err)

	require.NoError(t, s.Select(0, "b"))

	assert.Equal(t, []string{"a", "b", "c", "d"}, bank.At(0).Options)
}

func TestGenerate_BankTooSmall(t *testing.T) {
	_, err := quiz.Generate(newBank(4), quiz.ModeRandom, nil, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRepositoryTooSmall))

	_, err = quiz.Generate(newBank(40), quiz.ModeFixed, nil, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRepositoryTooSmall))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]quiz.Mode{
		"":       quiz.ModeRandom,
		"random": quiz.ModeRandom,
		"0":      quiz.ModeRandom,
		"fixed":  quiz.ModeFixed,
		"1":      quiz.ModeFixed,
	} {
		got, err := quiz.ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := quiz.ParseMode("weekly")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestNavigation(t *testing.T) {
	s, err := quiz.Generate(newBank(10), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)

	_, err = s.Prev()
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	iq, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, iq.Index)

	iq, err = s.GoTo(4)
	require.NoError(t, err)
	assert.Equal(t, 4, iq.Index)
	assert.Equal(t, 4, s.Current().Index)

	_, err = s.Next()
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Equal(t, 4, s.CurrentIndex())

	_, err = s.QuestionAt(5)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	_, err = s.QuestionAt(-1)
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	// A five question bank yields one question of each type.
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)

	for i := 0; i < s.Len(); i++ {
		q, _ := s.QuestionAt(i)
		switch q.Type {
		case models.TypeOrdering:
			err := s.Select(i, "1")
			assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		case models.TypeTrueFalse:
			assert.True(t, errors.HasCode(s.Select(i, "yes"), errors.ErrCodeValidation))
			require.NoError(t, s.Select(i, models.SelectedFalse))
		default:
			require.NoError(t, s.Select(i, "x"))
			got, _ := s.QuestionAt(i)
			assert.Equal(t, "x", got.Selected)
		}
	}
}

func TestSwapAndLock(t *testing.T) {
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)
	o := indexOfType(t, s, models.TypeOrdering)
	mc := indexOfType(t, s, models.TypeMultipleChoice)

	before, _ := s.QuestionAt(o)
	require.NoError(t, s.Swap(o, 0, 2))
	after, _ := s.QuestionAt(o)
	assert.Equal(t, before.Options[0], after.Options[2])
	assert.Equal(t, before.Options[2], after.Options[0])

	assert.True(t, errors.HasCode(s.Swap(o, 0, 3), errors.ErrCodeValidation))
	assert.True(t, errors.HasCode(s.Swap(mc, 0, 1), errors.ErrCodeValidation))
	assert.True(t, errors.HasCode(s.Lock(mc), errors.ErrCodeValidation))

	require.NoError(t, s.Lock(o))
	locked, _ := s.QuestionAt(o)
	assert.Equal(t, models.SelectedLocked, locked.Selected)
	assert.True(t, errors.HasCode(s.Swap(o, 0, 1), errors.ErrCodeConflict))

	require.NoError(t, s.Unlock(o))
	assert.NoError(t, s.Swap(o, 0, 1))
}

func TestReadyToSubmit(t *testing.T) {
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)

	r := s.ReadyToSubmit()
	assert.False(t, r.Ready)
	require.Len(t, r.Missing, 5)

	o := indexOfType(t, s, models.TypeOrdering)
	assert.Equal(t,
		fmt.Sprintf("Question %d has not been locked in (by selecting \"Done\") yet.", o+1),
		r.Missing[o])
	n := indexOfType(t, s, models.TypeNumeric)
	assert.Equal(t, fmt.Sprintf("Question %d has not been answered yet.", n+1), r.Missing[n])

	answerAll(t, s)
	require.NoError(t, s.Select(n, "007"))
	r = s.ReadyToSubmit()
	assert.False(t, r.Ready)
	assert.Equal(t, []string{fmt.Sprintf("Question %d's response is not an integer.", n+1)}, r.Missing)

	for _, bad := range []string{"4.2", " 42", "+42", "forty"} {
		require.NoError(t, s.Select(n, bad))
		assert.False(t, s.ReadyToSubmit().Ready, bad)
	}

	require.NoError(t, s.Select(n, "-3"))
	r = s.ReadyToSubmit()
	assert.True(t, r.Ready)
	assert.Empty(t, r.Missing)
}

func TestSubmit_GradesAndFreezes(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	tm := newTimer(clock)
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), tm)
	require.NoError(t, err)

	answerAll(t, s)
	mc := indexOfType(t, s, models.TypeMultipleChoice)
	require.NoError(t, s.Select(mc, "b"))
	_, err = s.GoTo(3)
	require.NoError(t, err)

	clock.now = clock.now.Add(83 * time.Second)
	submittedAt := time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC)
	stats := s.Submit(submittedAt)

	assert.Equal(t, 4, stats.Correct)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, int64(83000), stats.Time)
	assert.Equal(t, "Mar 1, 2026, 3:04 PM", stats.Date)
	assert.True(t, s.ReviewMode())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, timer.Stopped, tm.State())
	assert.Equal(t, "1:23", s.FormattedTime())

	q, _ := s.QuestionAt(mc)
	require.NotNil(t, q.Correct)
	assert.False(t, *q.Correct)

	assert.True(t, errors.HasCode(s.Select(mc, "a"), errors.ErrCodeConflict))

	clock.now = clock.now.Add(time.Hour)
	again := s.Submit(submittedAt.Add(time.Hour))
	assert.Equal(t, stats, again)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name string
		q    models.QuizQuestion
		want bool
	}{
		{"mc exact", mcq("Blue", "Blue"), true},
		{"mc case sensitive", mcq("Blue", "blue"), false},
		{"sa case insensitive", saq("Paris", "pArIs"), true},
		{"sa not trimmed", saq("Paris", " Paris"), false},
		{"n string compare", nq("42", "42"), true},
		{"n leading zero", nq("42", "042"), false},
		{"tf true", tfq("true", "1"), true},
		{"tf false", tfq("false", "0"), true},
		{"tf wrong", tfq("true", "0"), false},
		{"tf empty", tfq("false", ""), false},
		{"o in order", oq([]string{"a", "b"}, []string{"a", "b"}, models.SelectedNone), true},
		{"o out of order", oq([]string{"b", "a"}, []string{"a", "b"}, models.SelectedLocked), false},
		{"o length mismatch", oq([]string{"a"}, []string{"a", "b"}, models.SelectedLocked), false},
		{"unknown type", models.QuizQuestion{Question: models.Question{Type: "zz", Answer: "x"}, Selected: "x"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, quiz.Grade(tc.q))
		})
	}
}

func TestRestore(t *testing.T) {
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)
	answerAll(t, s)
	_, err = s.GoTo(2)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	saved := s.Saved(now)
	saved.ElapsedMs = 65000

	clock := &fakeClock{now: now}
	tm := newTimer(clock)
	restored := quiz.Restore(saved, tm)

	assert.Equal(t, 2, restored.CurrentIndex())
	assert.False(t, restored.ReviewMode())
	assert.Equal(t, timer.Running, tm.State())
	assert.Equal(t, int64(65000), restored.ElapsedMs())

	clock.now = now.Add(5 * time.Second)
	restored.Close()
	assert.Equal(t, int64(70000), restored.ElapsedMs())
	assert.Equal(t, s.View().Questions, restored.View().Questions)
}

func TestRestore_Submitted(t *testing.T) {
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)
	answerAll(t, s)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	stats := s.Submit(now)

	restored := quiz.Restore(s.Saved(now), nil)

	assert.True(t, restored.ReviewMode())
	assert.Equal(t, &stats, restored.Stats())
}

func TestFromRecord(t *testing.T) {
	s, err := quiz.Generate(newBank(5), quiz.ModeRandom, seeded(), nil)
	require.NoError(t, err)
	answerAll(t, s)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	stats := s.Submit(now)
	rec := s.Record(now)

	r := quiz.FromRecord(rec)
	assert.True(t, r.ReviewMode())
	assert.Equal(t, stats, r.Submit(now.Add(time.Hour)))
	assert.Error(t, r.Select(0, "x"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", quiz.FormatDuration(0))
	assert.Equal(t, "0:59", quiz.FormatDuration(59999))
	assert.Equal(t, "1:00", quiz.FormatDuration(60000))
	assert.Equal(t, "12:05", quiz.FormatDuration(725000))
	assert.Equal(t, "0:00", quiz.FormatDuration(-5))
}

func indexOfType(t *testing.T, s *quiz.Session, typ models.QuestionType) int {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		q, _ := s.QuestionAt(i)
		if q.Type == typ {
			return i
		}
	}
	t.Fatalf("no %s question in session", typ)
	return -1
}

// answerAll gives every question in a newBank quiz its correct response.
func answerAll(t *testing.T, s *quiz.Session) {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		q, _ := s.QuestionAt(i)
		switch q.Type {
		case models.TypeOrdering:
			for j, want := range q.OrderedAnswer {
				cur, _ := s.QuestionAt(i)
				for k := j; k < len(cur.Options); k++ {
					if cur.Options[k] == want {
						require.NoError(t, s.Swap(i, j, k))
						break
					}
				}
			}
			require.NoError(t, s.Lock(i))
		case models.TypeTrueFalse:
			require.NoError(t, s.Select(i, models.SelectedTrue))
		default:
			require.NoError(t, s.Select(i, q.Answer))
		}
	}
}

func mcq(answer, selected string) models.QuizQuestion {
	return models.QuizQuestion{
		Question: models.Question{Type: models.TypeMultipleChoice, Answer: answer, Options: []string{answer, "x"}},
		Selected: selected,
	}
}

func saq(answer, selected string) models.QuizQuestion {
	return models.QuizQuestion{Question: models.Question{Type: models.TypeShortAnswer, Answer: answer}, Selected: selected}
}

func nq(answer, selected string) models.QuizQuestion {
	return models.QuizQuestion{Question: models.Question{Type: models.TypeNumeric, Answer: answer}, Selected: selected}
}

func tfq(answer, selected string) models.QuizQuestion {
	return models.QuizQuestion{Question: models.Question{Type: models.TypeTrueFalse, Answer: answer}, Selected: selected}
}

func oq(options, ordered []string, selected string) models.QuizQuestion {
	return models.QuizQuestion{
		Question: models.Question{Type: models.TypeOrdering, Options: options, OrderedAnswer: ordered},
		Selected: selected,
	}
}
