package stats_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmlarsen/workout-tracker-backend/internal/auth"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts/stats"
)

func newTestRouter(t *testing.T) (*mux.Router, *MockstatsRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	r := mux.NewRouter()
	stats.NewHandler(stats.NewAggregator(repoMock)).SetupRoutes(r)
	return r, repoMock
}

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(auth.WithUserID(context.Background(), 7), http.MethodGet, target, nil)
	require.NoError(t, err)
	return req
}

func TestHandler_Stats(t *testing.T) {
	r, repoMock := newTestRouter(t)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	repoMock.EXPECT().
		Totals(gomock.Any(), 7, stats.Range{From: &from, To: &to}).
		Return(&stats.Totals{Workouts: 2, ActiveSeconds: 5400, WeightLifted: 2000}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts/stats?from=2025-01-01&to=2025-01-31"))
	require.Equal(t, http.StatusOK, rec.Code)

	var res stats.WorkoutStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, stats.WorkoutStats{TotalWorkouts: 2, TotalHours: 1.5, TotalWeightLifted: 2000}, res)
}

func TestHandler_Stats_InvalidRange(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts/stats?from=yesterday"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Calendar(t *testing.T) {
	r, repoMock := newTestRouter(t)

	repoMock.EXPECT().
		StartTimes(gomock.Any(), 7, gomock.Any(), gomock.Any()).
		Return([]time.Time{time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts/calendar?year=2024"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"workoutDates":["2024-07-04"],"totalWorkouts":1}`, rec.Body.String())
}

func TestHandler_Calendar_YearRequired(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, target := range []string{"/workouts/calendar", "/workouts/calendar?year=abc"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, target))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandler_Count(t *testing.T) {
	r, repoMock := newTestRouter(t)

	repoMock.EXPECT().CountCompleted(gomock.Any(), 7).Return(4, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts/count"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "4", rec.Body.String())
}

func TestHandler_Completed(t *testing.T) {
	r, repoMock := newTestRouter(t)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := day.Add(24*time.Hour - time.Nanosecond)
	repoMock.EXPECT().
		ListCompleted(gomock.Any(), workouts.ListCompletedParams{
			UserID: 7,
			From:   &day,
			To:     &dayEnd,
			Limit:  stats.PageSize + 1,
		}).
		Return([]workouts.Workout{{ID: 3, Status: workouts.StatusCompleted, StartedAt: day.Add(9 * time.Hour)}}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts?date=2025-03-01"))
	require.Equal(t, http.StatusOK, rec.Code)

	var page stats.CompletedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, 3, page.Results[0].ID)
	assert.Nil(t, page.NextCursor)
}

func TestHandler_Completed_Errors(t *testing.T) {
	r, repoMock := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts?cursor=-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repoMock.EXPECT().
		CompletedPosition(gomock.Any(), 7, 99).
		Return(nil, errors.Join(workouts.ErrNotFound, errors.New("cursor 99")))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts?cursor=99"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	repoMock.EXPECT().
		ListCompleted(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("pool closed"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, "/workouts"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error\n", rec.Body.String())
}

func TestHandler_Unauthenticated(t *testing.T) {
	r, _ := newTestRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/workouts/count", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
