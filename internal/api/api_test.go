package api_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizzical/internal/api"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/questionbank"
	"github.com/vytor/quizzical/internal/repository"
	"github.com/vytor/quizzical/internal/repository/memory"
	"github.com/vytor/quizzical/internal/services"
	"github.com/vytor/quizzical/internal/testutil/mocks"
)

var now = time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC)

const questionFile = "mc;Sky colour?;Blue;Green;Red\n" +
	"tf;The sun is a star.;true;\n" +
	"sa;Capital of France?;Paris\n" +
	"n;Spider legs?;8\n" +
	"o;Count up;one;two;three\n"

type testServer struct {
	*httptest.Server
	quiz services.QuizService
}

func newTestServer(t *testing.T, questions string, storage repository.KVStore) *testServer {
	t.Helper()
	parsed, problems := questionbank.Parse(strings.NewReader(questions))
	require.Empty(t, problems)
	bank := questionbank.NewBank(parsed, 0)

	history := repository.NewHistoryRepository(storage)
	temporary := repository.NewTemporaryRepository(storage)
	quizSvc := services.NewQuizService(bank, history, temporary,
		services.WithClock(func() time.Time { return now }),
		services.WithRand(rand.New(rand.NewPCG(3, 4))),
		services.WithTimerTick(time.Hour),
	)
	srv := &api.Server{
		QuizService:    quizSvc,
		HistoryService: services.NewHistoryService(history),
		Bank:           bank,
		Storage:        storage,
		Now:            func() time.Time { return now },
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(func() {
		ts.Close()
		quizSvc.Close()
	})
	return &testServer{Server: ts, quiz: quizSvc}
}

func (ts *testServer) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out.Error.Code
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t, questionFile, memory.NewKVStore())

	resp, body := ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, _ = ts.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReady_StorageDown(t *testing.T) {
	kv := new(mocks.MockKVStore)
	kv.On("Ping", mock.Anything).Return(stderrors.New("closed"))
	ts := newTestServer(t, questionFile, kv)

	resp, _ := ts.do(t, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestQuestionsSummary(t *testing.T) {
	ts := newTestServer(t, questionFile, memory.NewKVStore())

	resp, body := ts.do(t, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary models.BankSummary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 1, summary.ByType[models.TypeOrdering])
}

func TestQuiz_NoActiveSession(t *testing.T) {
	ts := newTestServer(t, questionFile, memory.NewKVStore())

	resp, body := ts.do(t, http.MethodGet, "/quiz", "")

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", errorCode(t, body))
}

func TestQuiz_BankTooSmall(t *testing.T) {
	ts := newTestServer(t, questionFile, memory.NewKVStore())

	resp, body := ts.do(t, http.MethodPost, "/quiz?mode=fixed", "")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "REPOSITORY_TOO_SMALL", errorCode(t, body))
}

func TestQuiz_FullFlow(t *testing.T) {
	ts := newTestServer(t, questionFile, memory.NewKVStore())

	resp, body := ts.do(t, http.MethodPost, "/quiz?mode=random", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var view models.SessionView
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Questions, 5)

	resp, body = ts.do(t, http.MethodPost, "/quiz/submit", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))

	for i, q := range view.Questions {
		switch q.Type {
		case models.TypeOrdering:
			opts := append([]string(nil), q.Options...)
			for j, want := range q.OrderedAnswer {
				for k := j; k < len(opts); k++ {
					if opts[k] == want {
						resp, body = ts.do(t, http.MethodPost, fmt.Sprintf("/quiz/questions/%d/swap", i),
							fmt.Sprintf(`{"src":%d,"dest":%d}`, j, k))
						require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
						opts[j], opts[k] = opts[k], opts[j]
						break
					}
				}
			}
			lockPath := fmt.Sprintf("/quiz/questions/%d/lock", i)
			resp, body = ts.do(t, http.MethodPost, lockPath, "")
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			resp, body = ts.do(t, http.MethodPost, fmt.Sprintf("/quiz/questions/%d/swap", i), `{"src":0,"dest":1}`)
			require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))
			resp, body = ts.do(t, http.MethodDelete, lockPath, "")
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			resp, body = ts.do(t, http.MethodPost, lockPath, "")
		case models.TypeTrueFalse:
			resp, body = ts.do(t, http.MethodPost, fmt.Sprintf("/quiz/questions/%d/answer", i), `{"selected":"1"}`)
		case models.TypeMultipleChoice:
			// deliberately wrong
			resp, body = ts.do(t, http.MethodPost, fmt.Sprintf("/quiz/questions/%d/answer", i), `{"selected":"Red"}`)
		default:
			resp, body = ts.do(t, http.MethodPost, fmt.Sprintf("/quiz/questions/%d/answer", i),
				fmt.Sprintf(`{"selected":%q}`, strings.ToUpper(q.Answer)))
		}
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}

	resp, body = ts.do(t, http.MethodGet, "/quiz/ready", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ready models.Readiness
	require.NoError(t, json.Unmarshal(body, &ready))
	assert.True(t, ready.Ready, ready.Missing)

	resp, body = ts.do(t, http.MethodPost, "/quiz/submit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var submitted struct {
		Stats   models.QuizStats `json:"stats"`
		Warning *struct{}        `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(body, &submitted))
	assert.Equal(t, 4, submitted.Stats.Correct)
	assert.Equal(t, 5, submitted.Stats.Total)
	assert.Nil(t, submitted.Warning)

	resp, body = ts.do(t, http.MethodPost, "/quiz/questions/0/answer", `{"selected":"Blue"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	resp, body = ts.do(t, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []models.QuizRecord
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 1)
	assert.Equal(t, now.UnixMilli(), history[0].Timestamp)

	resp, body = ts.do(t, http.MethodGet, "/streak", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info models.StreakInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, models.StreakInfo{Days: 1, DoneToday: true, Mood: models.MoodHappy}, info)

	resp, body = ts.do(t, http.MethodGet, "/history/0/export?color=false", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "Score: 4/5")
	assert.Contains(t, string(body), "(incorrect)")

	resp, _ = ts.do(t, http.MethodGet, "/history/0/export?color=maybe", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = ts.do(t, http.MethodGet, "/history/3", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	resp, body = ts.do(t, http.MethodPost, "/history/0/review", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.True(t, view.ReviewMode)
}

func TestQuiz_NavigateAndQuestion(t *testing.T) {
	ts := newTestServer(t, questionFile, memory.NewKVStore())
	resp, _ := ts.do(t, http.MethodPost, "/quiz", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ts.do(t, http.MethodPost, "/quiz/navigate?to=next", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var iq models.IndexedQuestion
	require.NoError(t, json.Unmarshal(body, &iq))
	assert.Equal(t, 1, iq.Index)

	resp, _ = ts.do(t, http.MethodPost, "/quiz/navigate?to=9", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/quiz/questions/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = ts.do(t, http.MethodGet, "/quiz/questions/4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &iq))
	assert.Equal(t, 4, iq.Index)

	resp, _ = ts.do(t, http.MethodPost, "/quiz/questions/0/answer", `{"selected":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodDelete, "/quiz", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodGet, "/quiz", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestQuiz_SaveAndResume(t *testing.T) {
	kv := memory.NewKVStore()
	ts := newTestServer(t, questionFile, kv)

	resp, _ := ts.do(t, http.MethodPost, "/quiz/resume", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/quiz", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/quiz/navigate?to=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/quiz/save", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	saved, found, err := kv.Get(context.Background(), repository.KeyTemporary)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(saved), `"current":2`)

	resp, _ = ts.do(t, http.MethodDelete, "/quiz", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := ts.do(t, http.MethodPost, "/quiz/resume", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view models.SessionView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, 2, view.CurrentIndex)
}

func TestSubmit_StorageFailureReturnsWarning(t *testing.T) {
	kv := new(mocks.MockKVStore)
	kv.On("Append", mock.Anything, repository.KeyHistory, mock.Anything).Return(stderrors.New("disk full"))
	ts := newTestServer(t, "sa;a;x\nsa;b;x\nsa;c;x\nsa;d;x\nsa;e;x\n", kv)

	resp, _ := ts.do(t, http.MethodPost, "/quiz", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	for i := 0; i < 5; i++ {
		resp, _ = ts.do(t, http.MethodPost, fmt.Sprintf("/quiz/questions/%d/answer", i), `{"selected":"x"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := ts.do(t, http.MethodPost, "/quiz/submit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Stats   models.QuizStats `json:"stats"`
		Warning struct {
			Code string `json:"code"`
		} `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 5, out.Stats.Correct)
	assert.Equal(t, "STORAGE_UNAVAILABLE", out.Warning.Code)
}
