package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/repository"
)

// KVStoreSuite checks the repository.KVStore contract. Implementations embed
// it and set NewStore.
type KVStoreSuite struct {
	suite.Suite
	NewStore func() repository.KVStore
	store    repository.KVStore
}

func (s *KVStoreSuite) SetupTest() {
	s.store = s.NewStore()
}

func (s *KVStoreSuite) TestGetMissing() {
	v, found, err := s.store.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.False(found)
	s.Nil(v)
}

func (s *KVStoreSuite) TestSetOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, repository.KeyTemporary, []byte(`{"ts":1}`)))
	s.Require().NoError(s.store.Set(ctx, repository.KeyTemporary, []byte(`{"ts":2}`)))

	v, found, err := s.store.Get(ctx, repository.KeyTemporary)
	s.Require().NoError(err)
	s.True(found)
	s.JSONEq(`{"ts":2}`, string(v))
}

func (s *KVStoreSuite) TestAppendPreservesOrder() {
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.store.Append(ctx, repository.KeyHistory, []byte(fmt.Sprintf(`{"ts":%d}`, i))))
	}

	v, _, err := s.store.Get(ctx, repository.KeyHistory)
	s.Require().NoError(err)
	s.JSONEq(`[{"ts":1},{"ts":2},{"ts":3}]`, string(v))
}

func (s *KVStoreSuite) TestAppendRejectsNonArray() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, repository.KeyHistory, []byte(`{"not":"a list"}`)))

	s.Error(s.store.Append(ctx, repository.KeyHistory, []byte(`{"ts":1}`)))

	v, _, err := s.store.Get(ctx, repository.KeyHistory)
	s.Require().NoError(err)
	s.JSONEq(`{"not":"a list"}`, string(v))
}

func (s *KVStoreSuite) TestConcurrentAppendsAreNotLost() {
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.NoError(s.store.Append(ctx, repository.KeyHistory, []byte(fmt.Sprintf(`{"ts":%d}`, i))))
		}(i)
	}
	wg.Wait()

	v, _, err := s.store.Get(ctx, repository.KeyHistory)
	s.Require().NoError(err)
	var records []models.QuizRecord
	s.Require().NoError(json.Unmarshal(v, &records))
	s.Len(records, n)
}

func (s *KVStoreSuite) TestRepositories() {
	ctx := context.Background()
	history := repository.NewHistoryRepository(s.store)
	temporary := repository.NewTemporaryRepository(s.store)

	list, err := history.List(ctx)
	s.Require().NoError(err)
	s.Empty(list)

	saved, err := temporary.Get(ctx)
	s.Require().NoError(err)
	s.Nil(saved)

	rec := models.QuizRecord{
		Timestamp: 1700000000000,
		Questions: []models.QuizQuestion{{
			Question: models.Question{Type: models.TypeOrdering, Text: "Order", OrderedAnswer: []string{"a", "b"}, Options: []string{"b", "a"}},
			Selected: models.SelectedLocked,
		}},
		Stats: &models.QuizStats{Date: "Nov 14, 2023, 10:13 PM", Time: 1234, Correct: 0, Total: 1},
	}
	s.Require().NoError(history.Append(ctx, rec))
	s.Require().NoError(history.Append(ctx, models.QuizRecord{Timestamp: 1700000000001}))

	list, err = history.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(rec, list[0])
	s.Equal(int64(1700000000001), list[1].Timestamp)

	s.Require().NoError(temporary.Put(ctx, models.SavedQuiz{Timestamp: 1, CurrentIndex: 2, ElapsedMs: 500}))
	s.Require().NoError(temporary.Put(ctx, models.SavedQuiz{Timestamp: 2, CurrentIndex: 3, ElapsedMs: 900}))
	saved, err = temporary.Get(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Equal(int64(2), saved.Timestamp)
	s.Equal(3, saved.CurrentIndex)
	s.Equal(int64(900), saved.ElapsedMs)
}
