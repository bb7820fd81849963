package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository/memory"
	"athletrack/backend/internal/service"
)

func sharedExerciseID(t *testing.T, srv *testServer, token, name string) int64 {
	t.Helper()
	rec := srv.do(t, http.MethodGet, "/api/Exercises", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ex := range decode[[]domain.Exercise](t, rec) {
		if ex.Name == name {
			return ex.ID
		}
	}
	t.Fatalf("exercise %q not listed", name)
	return 0
}

func TestExerciseHandler(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.signUp(t, "ann@example.com")
	bob := srv.signUp(t, "bob@example.com")

	rec := srv.do(t, http.MethodGet, "/api/Exercises", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Exercise](t, rec), len(domain.SystemExercises))

	rec = srv.do(t, http.MethodPost, "/api/Exercises", ann, gin.H{
		"name": "  Cable Fly ", "muscleGroup": "Chest", "userId": 999,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[domain.Exercise](t, rec)
	assert.Equal(t, "Cable Fly", created.Name)
	require.NotNil(t, created.UserID)
	assert.NotEqual(t, int64(999), *created.UserID)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.CounterExercisesCreated))

	t.Run("duplicate name for the same owner", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/Exercises", ann, gin.H{"name": "cable fly", "muscleGroup": "Chest"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank name", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/Exercises", ann, gin.H{"name": "   ", "muscleGroup": "Chest"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("private exercises are hidden from others", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/Exercises", bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Cable Fly")
	})

	t.Run("delete guards", func(t *testing.T) {
		shared := sharedExerciseID(t, srv, ann, "Deadlift")
		rec := srv.do(t, http.MethodDelete, fmt.Sprintf("/api/Exercises/%d", shared), ann, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/Exercises/%d", created.ID), bob, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/Exercises/%d", created.ID), ann, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/Exercises/%d", created.ID), ann, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = srv.do(t, http.MethodDelete, "/api/Exercises/abc", ann, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWorkoutHandler_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.signUp(t, "ann@example.com")
	bob := srv.signUp(t, "bob@example.com")
	bench := sharedExerciseID(t, srv, ann, "Bench Press")
	run := sharedExerciseID(t, srv, ann, "Treadmill Run")

	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	rec := srv.do(t, http.MethodPost, "/api/Workouts", ann, gin.H{
		"name": "Push",
		"date": day,
		"workoutSets": []gin.H{
			{"exerciseId": bench, "setNumber": 1, "weightKg": 100, "reps": 5},
			{"exerciseId": bench, "setNumber": 2, "weightKg": 120, "reps": 3},
			{"exerciseId": run, "setNumber": 3, "distanceKm": 5, "timeSeconds": 1500},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Workout](t, rec)
	assert.Equal(t, fmt.Sprintf("/api/Workouts/%d", created.ID), rec.Header().Get("Location"))
	require.Len(t, created.Sets, 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.CounterWorkoutsCreated))

	path := fmt.Sprintf("/api/Workouts/%d", created.ID)

	rec = srv.do(t, http.MethodGet, path, ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Workout](t, rec)
	assert.Equal(t, "Push", got.Name)
	require.NotNil(t, got.Sets[0].Exercise)
	assert.Equal(t, "Bench Press", got.Sets[0].Exercise.Name)

	rec = srv.do(t, http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/Workouts", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Workout](t, rec))

	t.Run("records", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/Workouts/records", ann, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		records := decode[[]domain.PersonalRecord](t, rec)
		require.Len(t, records, 2)
		assert.Equal(t, "Bench Press", records[0].ExerciseName)
		assert.Equal(t, 120.0, records[0].MaxWeight)
		require.NotNil(t, records[0].EstimatedOneRepMax)
		assert.InDelta(t, 132.0, *records[0].EstimatedOneRepMax, 1e-9)
		assert.True(t, records[1].IsCardio)
	})

	t.Run("unknown exercise is rejected", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/Workouts", ann, gin.H{
			"name": "Bad", "date": day, "workoutSets": []gin.H{{"exerciseId": 9999, "setNumber": 1}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("replace", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, path, ann, gin.H{"id": created.ID + 1, "name": "X", "date": day})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = srv.do(t, http.MethodPut, path, bob, gin.H{"name": "X", "date": day})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = srv.do(t, http.MethodPut, path, ann, gin.H{
			"id": created.ID, "name": "Push v2", "date": day,
			"workoutSets": []gin.H{{"exerciseId": bench, "setNumber": 7, "weightKg": 90, "reps": 10}},
		})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = srv.do(t, http.MethodGet, path, ann, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[domain.Workout](t, rec)
		assert.Equal(t, "Push v2", got.Name)
		require.Len(t, got.Sets, 1)
		assert.Equal(t, 1, got.Sets[0].SetNumber)
	})

	t.Run("delete", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, path, bob, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = srv.do(t, http.MethodDelete, path, ann, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = srv.do(t, http.MethodGet, path, ann, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = srv.do(t, http.MethodPut, path, ann, gin.H{"name": "Ghost", "date": day})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBodyMetricHandler(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.signUp(t, "ann@example.com")

	rec := srv.do(t, http.MethodGet, "/api/BodyMetrics/last", ann, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/BodyMetrics", ann, gin.H{"weightKg": 80})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i, weight := range []float64{81, 80, 79} {
		rec := srv.do(t, http.MethodPost, "/api/BodyMetrics", ann, gin.H{
			"measurementDate": day.AddDate(0, 0, -7*i), "weightKg": weight,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(srv.metrics.CounterBodyMetrics))

	rec = srv.do(t, http.MethodGet, "/api/BodyMetrics", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.BodyMetric](t, rec)
	require.Len(t, list, 3)
	assert.Equal(t, 79.0, *list[0].WeightKg)

	rec = srv.do(t, http.MethodGet, "/api/BodyMetrics/last", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 81.0, *decode[domain.BodyMetric](t, rec).WeightKg)
}

func TestUserHandler(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.signUp(t, "ann@example.com")
	bob := srv.signUp(t, "bob@example.com")

	me := decode[UserResponse](t, srv.do(t, http.MethodGet, "/api/Auth/me", ann, nil))
	path := fmt.Sprintf("/api/Users/%d", me.ID)

	rec := srv.do(t, http.MethodGet, path, ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@example.com", decode[UserResponse](t, rec).Email)

	rec = srv.do(t, http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPut, path, ann, gin.H{"id": me.ID + 50, "firstName": "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPut, path, ann, gin.H{"id": me.ID, "firstName": "Annie", "lastName": "Lee"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/Auth/me", ann, nil)
	assert.Equal(t, "Annie", decode[UserResponse](t, rec).FirstName)
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return nil
}

func (s *memoryStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://exports.example/" + key, nil
}

func (s *memoryStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func TestExportHandler(t *testing.T) {
	t.Run("not registered without storage", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com")
		rec := srv.do(t, http.MethodPost, "/api/Exports", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("uploads and links", func(t *testing.T) {
		files := &memoryStorage{objects: make(map[string][]byte)}
		srv := newTestServer(t, func(d *RouterDeps, store *memory.Store) {
			d.ExportService = service.NewExportService(store.Exercises(), store.Workouts(), store.BodyMetrics(), files)
		})
		token := srv.signUp(t, "ann@example.com")

		rec := srv.do(t, http.MethodPost, "/api/Exports", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		result := decode[service.ExportResult](t, rec)
		assert.True(t, strings.HasPrefix(result.Key, "exports/"))
		assert.Equal(t, "https://exports.example/"+result.Key, result.URL)
		assert.Len(t, files.objects, 1)
		assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.CounterExports))
	})
}
