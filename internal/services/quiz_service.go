package services

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/quiz"
	"github.com/vytor/quizzical/internal/repository"
	"github.com/vytor/quizzical/internal/timer"
)

// QuizService owns the single active quiz session.
type QuizService interface {
	Generate(ctx context.Context, mode quiz.Mode) (models.SessionView, error)
	Active(ctx context.Context) (models.SessionView, error)
	Question(ctx context.Context, index int) (models.IndexedQuestion, error)
	// Navigate accepts "next", "prev" or a zero-based index.
	Navigate(ctx context.Context, to string) (models.IndexedQuestion, error)
	Select(ctx context.Context, index int, value string) (models.IndexedQuestion, error)
	Swap(ctx context.Context, index, src, dest int) (models.IndexedQuestion, error)
	Lock(ctx context.Context, index int) (models.IndexedQuestion, error)
	Unlock(ctx context.Context, index int) (models.IndexedQuestion, error)
	Ready(ctx context.Context) (models.Readiness, error)
	Submit(ctx context.Context, temporary bool) (*SubmitResult, error)
	SaveTemporary(ctx context.Context) error
	ResumeTemporary(ctx context.Context) (models.SessionView, error)
	Exit(ctx context.Context) error
	Review(ctx context.Context, historyIndex int) (models.SessionView, error)
	// Close stops the running timer, if any.
	Close()
}

// SubmitResult carries the grade even when it could not be stored.
type SubmitResult struct {
	Stats   models.QuizStats   `json:"stats"`
	View    models.SessionView `json:"quiz"`
	Warning *errors.AppError   `json:"-"`
}

type QuizOption func(*quizService)

func WithClock(now func() time.Time) QuizOption {
	return func(s *quizService) { s.now = now }
}

func WithRand(rng *rand.Rand) QuizOption {
	return func(s *quizService) { s.rng = rng }
}

func WithTimerTick(d time.Duration) QuizOption {
	return func(s *quizService) { s.tick = d }
}

type quizService struct {
	bank      quiz.Source
	history   repository.HistoryRepository
	temporary repository.TemporaryRepository

	now  func() time.Time
	rng  *rand.Rand
	tick time.Duration

	mu      sync.Mutex
	session *quiz.Session
}

// NewQuizService creates a new QuizService
func NewQuizService(bank quiz.Source, history repository.HistoryRepository, temporary repository.TemporaryRepository, opts ...QuizOption) QuizService {
	s := &quizService{
		bank:      bank,
		history:   history,
		temporary: temporary,
		now:       time.Now,
		tick:      time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *quizService) newTimer() *timer.Timer {
	return timer.New(timer.WithClock(s.now), timer.WithTick(s.tick))
}

// replace swaps in a new active session, stopping the old one's timer.
func (s *quizService) replace(next *quiz.Session) {
	if s.session != nil {
		s.session.Close()
	}
	s.session = next
}

func (s *quizService) active() (*quiz.Session, error) {
	if s.session == nil {
		return nil, errors.NewConflictError("no active quiz")
	}
	return s.session, nil
}

func (s *quizService) Generate(ctx context.Context, mode quiz.Mode) (models.SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")
	log.Debug("generating quiz: mode=%s, bank=%d", mode, s.bank.Len())

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := quiz.Generate(s.bank, mode, s.rng, s.newTimer())
	if err != nil {
		log.Warn("failed to generate quiz: %v", err)
		return models.SessionView{}, err
	}
	s.replace(session)
	log.Info("quiz generated: mode=%s, sources=%v", mode, session.SourceIndices())
	return session.View(), nil
}

func (s *quizService) Active(ctx context.Context) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return models.SessionView{}, err
	}
	return session.View(), nil
}

func (s *quizService) Question(ctx context.Context, index int) (models.IndexedQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return models.IndexedQuestion{}, err
	}
	q, err := session.QuestionAt(index)
	if err != nil {
		return models.IndexedQuestion{}, err
	}
	return models.IndexedQuestion{Index: index, Question: q}, nil
}

func (s *quizService) Navigate(ctx context.Context, to string) (models.IndexedQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return models.IndexedQuestion{}, err
	}
	switch to {
	case "next":
		return session.Next()
	case "prev":
		return session.Prev()
	}
	i, err := strconv.Atoi(to)
	if err != nil {
		return models.IndexedQuestion{}, errors.NewValidationError("to", `must be "next", "prev" or a question index`)
	}
	return session.GoTo(i)
}

// mutate runs fn on the active session and returns the touched question.
func (s *quizService) mutate(index int, fn func(*quiz.Session) error) (models.IndexedQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return models.IndexedQuestion{}, err
	}
	if err := fn(session); err != nil {
		return models.IndexedQuestion{}, err
	}
	q, err := session.QuestionAt(index)
	if err != nil {
		return models.IndexedQuestion{}, err
	}
	return models.IndexedQuestion{Index: index, Question: q}, nil
}

func (s *quizService) Select(ctx context.Context, index int, value string) (models.IndexedQuestion, error) {
	logger.FromContext(ctx).WithPrefix("quiz_service").Debug("select: index=%d", index)
	return s.mutate(index, func(session *quiz.Session) error {
		return session.Select(index, value)
	})
}

func (s *quizService) Swap(ctx context.Context, index, src, dest int) (models.IndexedQuestion, error) {
	logger.FromContext(ctx).WithPrefix("quiz_service").Debug("swap: index=%d, src=%d, dest=%d", index, src, dest)
	return s.mutate(index, func(session *quiz.Session) error {
		return session.Swap(index, src, dest)
	})
}

func (s *quizService) Lock(ctx context.Context, index int) (models.IndexedQuestion, error) {
	logger.FromContext(ctx).WithPrefix("quiz_service").Debug("lock: index=%d", index)
	return s.mutate(index, func(session *quiz.Session) error {
		return session.Lock(index)
	})
}

func (s *quizService) Unlock(ctx context.Context, index int) (models.IndexedQuestion, error) {
	logger.FromContext(ctx).WithPrefix("quiz_service").Debug("unlock: index=%d", index)
	return s.mutate(index, func(session *quiz.Session) error {
		return session.Unlock(index)
	})
}

func (s *quizService) Ready(ctx context.Context) (models.Readiness, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return models.Readiness{}, err
	}
	return session.ReadyToSubmit(), nil
}

func (s *quizService) Submit(ctx context.Context, temporary bool) (*SubmitResult, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return nil, err
	}

	alreadyGraded := session.ReviewMode()
	if !alreadyGraded {
		if r := session.ReadyToSubmit(); !r.Ready {
			return nil, errors.NewValidationError("quiz", strings.Join(r.Missing, " "))
		}
	}

	now := s.now()
	stats := session.Submit(now)
	result := &SubmitResult{Stats: stats, View: session.View()}
	log.Info("quiz graded: %d/%d in %s", stats.Correct, stats.Total, quiz.FormatDuration(stats.Time))

	if alreadyGraded {
		log.Debug("quiz was already graded, not storing it again")
		return result, nil
	}

	if temporary {
		err = s.temporary.Put(ctx, session.Saved(now))
	} else {
		err = s.history.Append(ctx, session.Record(now))
	}
	if err != nil {
		log.Error("failed to store graded quiz (temporary=%t): %v", temporary, err)
		result.Warning = errors.NewStorageUnavailableError("submit", err)
	}
	return result, nil
}

func (s *quizService) SaveTemporary(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active()
	if err != nil {
		return err
	}
	if err := s.temporary.Put(ctx, session.Saved(s.now())); err != nil {
		log.Error("failed to save quiz for later: %v", err)
		return errors.NewStorageUnavailableError("save", err)
	}
	log.Info("quiz saved for later at question %d", session.CurrentIndex()+1)
	return nil
}

func (s *quizService) ResumeTemporary(ctx context.Context) (models.SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")

	saved, err := s.temporary.Get(ctx)
	if err != nil {
		log.Error("failed to read saved quiz: %v", err)
		return models.SessionView{}, errors.NewStorageUnavailableError("resume", err)
	}
	if saved == nil || len(saved.Questions) == 0 {
		return models.SessionView{}, errors.NewNotFoundError("saved quiz", repository.KeyTemporary)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := quiz.Restore(*saved, s.newTimer())
	s.replace(session)
	log.Info("resumed saved quiz from %s", time.UnixMilli(saved.Timestamp).Format(quiz.DateLayout))
	return session.View(), nil
}

func (s *quizService) Exit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.active(); err != nil {
		return err
	}
	s.replace(nil)
	logger.FromContext(ctx).WithPrefix("quiz_service").Debug("active quiz discarded")
	return nil
}

func (s *quizService) Review(ctx context.Context, historyIndex int) (models.SessionView, error) {
	records := loadHistory(ctx, s.history)
	if historyIndex < 0 || historyIndex >= len(records) {
		return models.SessionView{}, errors.NewNotFoundError("quiz record", historyIndex)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := quiz.FromRecord(records[historyIndex])
	s.replace(session)
	return session.View(), nil
}

func (s *quizService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.Close()
	}
}

// loadHistory treats an unreadable history as empty.
func loadHistory(ctx context.Context, repo repository.HistoryRepository) []models.QuizRecord {
	records, err := repo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("history").Warn("history unavailable, treating as empty: %v", err)
		return []models.QuizRecord{}
	}
	return records
}
