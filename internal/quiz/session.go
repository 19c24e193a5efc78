// Package quiz holds a single quiz session: question navigation, responses,
// submission readiness and grading.
//
// A Session is not safe for concurrent use; callers serialize access.
package quiz

import (
	"fmt"
	"time"

	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/timer"
)

// DateLayout formats QuizStats.Date.
const DateLayout = "Jan 2, 2006, 3:04 PM"

type Session struct {
	questions []models.QuizQuestion
	sources   []int
	current   int

	review      bool
	stats       *models.QuizStats
	submittedAt time.Time
	elapsedMs   int64

	timer *timer.Timer
}

// Restore rebuilds a session from the temporary slot. A saved quiz that was
// already submitted comes back in review mode; otherwise tm resumes from the
// saved elapsed time.
func Restore(saved models.SavedQuiz, tm *timer.Timer) *Session {
	s := &Session{
		questions: models.CloneQuestions(saved.Questions),
		current:   clamp(saved.CurrentIndex, len(saved.Questions)),
		elapsedMs: saved.ElapsedMs,
		timer:     tm,
	}
	if saved.Stats != nil {
		st := *saved.Stats
		s.stats = &st
		s.review = true
		s.submittedAt = time.UnixMilli(saved.Timestamp)
		s.elapsedMs = st.Time
		return s
	}
	if tm != nil {
		tm.StartFrom(time.Duration(saved.ElapsedMs) * time.Millisecond)
	}
	return s
}

// FromRecord opens a history record in review mode.
func FromRecord(rec models.QuizRecord) *Session {
	s := &Session{
		questions:   models.CloneQuestions(rec.Questions),
		review:      true,
		submittedAt: time.UnixMilli(rec.Timestamp),
	}
	if rec.Stats != nil {
		st := *rec.Stats
		s.stats = &st
		s.elapsedMs = st.Time
	}
	return s
}

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) CurrentIndex() int { return s.current }

func (s *Session) ReviewMode() bool { return s.review }

// SourceIndices returns the bank positions the questions were drawn from.
// It is nil for restored sessions.
func (s *Session) SourceIndices() []int {
	out := make([]int, len(s.sources))
	copy(out, s.sources)
	return out
}

// Stats returns a copy of the last grading result, or nil before submission.
func (s *Session) Stats() *models.QuizStats {
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

// QuestionAt returns a copy of the question at i.
func (s *Session) QuestionAt(i int) (models.QuizQuestion, error) {
	if err := s.checkIndex(i); err != nil {
		return models.QuizQuestion{}, err
	}
	return models.CloneQuestions(s.questions[i : i+1])[0], nil
}

// Current returns the question being displayed.
func (s *Session) Current() models.IndexedQuestion {
	q, _ := s.QuestionAt(s.current)
	return models.IndexedQuestion{Index: s.current, Question: q}
}

func (s *Session) GoTo(i int) (models.IndexedQuestion, error) {
	if err := s.checkIndex(i); err != nil {
		return models.IndexedQuestion{}, err
	}
	s.current = i
	return s.Current(), nil
}

// Next moves forward one question. Moving past the last one is an error.
func (s *Session) Next() (models.IndexedQuestion, error) {
	return s.GoTo(s.current + 1)
}

// Prev moves back one question. Moving before the first one is an error.
func (s *Session) Prev() (models.IndexedQuestion, error) {
	return s.GoTo(s.current - 1)
}

// Select records a free-form or choice response for question i. Ordering
// questions are answered with Swap and Lock instead.
func (s *Session) Select(i int, value string) error {
	q, err := s.editable(i)
	if err != nil {
		return err
	}
	if q.Type == models.TypeOrdering {
		return errors.NewValidationError("selected", "ordering questions are answered by swapping and locking")
	}
	if q.Type == models.TypeTrueFalse && value != models.SelectedNone &&
		value != models.SelectedTrue && value != models.SelectedFalse {
		return errors.NewValidationError("selected", `true/false responses must be "1" or "0"`)
	}
	q.Selected = value
	return nil
}

// Swap exchanges two displayed items of an unlocked ordering question.
func (s *Session) Swap(i, src, dest int) error {
	q, err := s.editable(i)
	if err != nil {
		return err
	}
	if q.Type != models.TypeOrdering {
		return errors.NewValidationError("index", fmt.Sprintf("question %d is not an ordering question", i+1))
	}
	if q.Selected == models.SelectedLocked {
		return errors.NewConflictError(fmt.Sprintf("question %d is locked", i+1))
	}
	n := len(q.Options)
	if src < 0 || src >= n || dest < 0 || dest >= n {
		return errors.NewValidationError("src", fmt.Sprintf("positions must be between 0 and %d", n-1))
	}
	q.Options[src], q.Options[dest] = q.Options[dest], q.Options[src]
	return nil
}

// Lock fixes the current order of an ordering question as its response.
func (s *Session) Lock(i int) error {
	return s.setLock(i, models.SelectedLocked)
}

// Unlock lets the items of an ordering question be rearranged again.
func (s *Session) Unlock(i int) error {
	return s.setLock(i, models.SelectedNone)
}

func (s *Session) setLock(i int, value string) error {
	q, err := s.editable(i)
	if err != nil {
		return err
	}
	if q.Type != models.TypeOrdering {
		return errors.NewValidationError("index", fmt.Sprintf("question %d is not an ordering question", i+1))
	}
	q.Selected = value
	return nil
}

// Submit grades every question, stops the timer and enters review mode.
// Calling it again regrades with the original submission time and duration,
// so the stats do not change.
func (s *Session) Submit(now time.Time) models.QuizStats {
	if !s.review {
		if s.timer != nil {
			s.elapsedMs = s.timer.Stop().Milliseconds()
		}
		s.submittedAt = now
		s.review = true
	}
	s.current = 0

	correct := 0
	for i := range s.questions {
		ok := Grade(s.questions[i])
		s.questions[i].Correct = &ok
		if ok {
			correct++
		}
	}

	date := FormatDate(s.submittedAt)
	if s.stats != nil {
		date = s.stats.Date
	}
	s.stats = &models.QuizStats{
		Date:    date,
		Time:    s.elapsedMs,
		Correct: correct,
		Total:   len(s.questions),
	}
	return *s.stats
}

// ElapsedMs is the running time while answering and the frozen time in
// review mode.
func (s *Session) ElapsedMs() int64 {
	if s.review || s.timer == nil {
		return s.elapsedMs
	}
	return s.timer.ElapsedMs()
}

// Close stops the timer without grading.
func (s *Session) Close() {
	if s.timer != nil {
		s.timer.Stop()
	}
}

// FormattedTime is ElapsedMs as m:ss.
func (s *Session) FormattedTime() string {
	return FormatDuration(s.ElapsedMs())
}

func (s *Session) View() models.SessionView {
	ms := s.ElapsedMs()
	return models.SessionView{
		Questions:    models.CloneQuestions(s.questions),
		CurrentIndex: s.current,
		ReviewMode:   s.review,
		ElapsedMs:    ms,
		Formatted:    FormatDuration(ms),
		Stats:        s.Stats(),
	}
}

// Record is the history entry for a submitted session.
func (s *Session) Record(now time.Time) models.QuizRecord {
	return models.QuizRecord{
		Timestamp: now.UnixMilli(),
		Questions: models.CloneQuestions(s.questions),
		Stats:     s.Stats(),
	}
}

// Saved is the temporary-slot snapshot of the session.
func (s *Session) Saved(now time.Time) models.SavedQuiz {
	return models.SavedQuiz{
		Timestamp:    now.UnixMilli(),
		Questions:    models.CloneQuestions(s.questions),
		Stats:        s.Stats(),
		CurrentIndex: s.current,
		ElapsedMs:    s.ElapsedMs(),
	}
}

func (s *Session) editable(i int) (*models.QuizQuestion, error) {
	if s.review {
		return nil, errors.NewConflictError("quiz has already been submitted")
	}
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	return &s.questions[i], nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.questions) {
		return errors.NewValidationError("index", fmt.Sprintf("question index %d is out of range [0, %d)", i, len(s.questions)))
	}
	return nil
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
