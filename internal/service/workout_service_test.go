package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
	"athletrack/backend/internal/repository/memory"
)

type workoutFixture struct {
	store    *memory.Store
	svc      WorkoutService
	bench    domain.Exercise
	run      domain.Exercise
	someDate time.Time
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()
	store := newSeededStore(t)

	f := &workoutFixture{
		store:    store,
		svc:      NewWorkoutService(store.Workouts(), store.Exercises()),
		someDate: time.Date(2024, 4, 1, 18, 0, 0, 0, time.UTC),
	}

	list, err := store.Exercises().ListVisible(context.Background(), 0)
	require.NoError(t, err)
	for _, ex := range list {
		switch ex.Name {
		case "Bench Press":
			f.bench = ex
		case "Treadmill Run":
			f.run = ex
		}
	}
	require.NotZero(t, f.bench.ID)
	require.NotZero(t, f.run.ID)
	return f
}

func TestWorkoutService_CreateKeepsSetNumbersAndForcesOwner(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	w, err := f.svc.CreateWorkout(ctx, 5, WorkoutInput{
		Name: "Push",
		Date: f.someDate,
		Sets: []SetInput{
			{ExerciseID: f.bench.ID, SetNumber: 3, WeightKg: ptr(80.0), Reps: ptr(8)},
			{ExerciseID: f.bench.ID, SetNumber: 7, WeightKg: ptr(85.0), Reps: ptr(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), w.UserID)
	require.Len(t, w.Sets, 2)
	assert.Equal(t, 3, w.Sets[0].SetNumber)
	assert.Equal(t, 7, w.Sets[1].SetNumber)
	assert.NotZero(t, w.Sets[0].ID)
	require.NotNil(t, w.Sets[0].Exercise)
	assert.Equal(t, "Bench Press", w.Sets[0].Exercise.Name)

	got, err := f.svc.GetWorkout(ctx, 5, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push", got.Name)
}

func TestWorkoutService_CreateValidation(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	foreign, err := f.store.Exercises().Create(ctx, &domain.Exercise{UserID: ptr(int64(9)), Name: "Theirs", MuscleGroup: "Back"})
	require.NoError(t, err)

	testCases := []struct {
		name string
		in   WorkoutInput
	}{
		{name: "missing name", in: WorkoutInput{Date: f.someDate}},
		{name: "missing date", in: WorkoutInput{Name: "x"}},
		{name: "unknown exercise", in: WorkoutInput{Name: "x", Date: f.someDate, Sets: []SetInput{{ExerciseID: 12345}}}},
		{name: "foreign private exercise", in: WorkoutInput{Name: "x", Date: f.someDate, Sets: []SetInput{{ExerciseID: foreign}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateWorkout(ctx, 5, tc.in)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestWorkoutService_Guards(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	w, err := f.svc.CreateWorkout(ctx, 1, WorkoutInput{Name: "Mine", Date: f.someDate})
	require.NoError(t, err)

	_, err = f.svc.GetWorkout(ctx, 2, w.ID)
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
	_, err = f.svc.GetWorkout(ctx, 1, w.ID+1000)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	in := WorkoutInput{Name: "Hijack", Date: f.someDate}
	assert.ErrorIs(t, f.svc.ReplaceWorkout(ctx, 2, w.ID, in), ErrWorkoutAccessDenied)
	assert.ErrorIs(t, f.svc.ReplaceWorkout(ctx, 1, w.ID+1000, in), ErrWorkoutNotFound)

	assert.ErrorIs(t, f.svc.DeleteWorkout(ctx, 2, w.ID), ErrWorkoutAccessDenied)
	assert.ErrorIs(t, f.svc.DeleteWorkout(ctx, 1, w.ID+1000), ErrWorkoutNotFound)

	require.NoError(t, f.svc.DeleteWorkout(ctx, 1, w.ID))
	_, err = f.svc.GetWorkout(ctx, 1, w.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutService_ReplaceRenumbersSets(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	w, err := f.svc.CreateWorkout(ctx, 1, WorkoutInput{
		Name: "Old",
		Date: f.someDate,
		Sets: []SetInput{{ExerciseID: f.bench.ID, SetNumber: 1}},
	})
	require.NoError(t, err)

	err = f.svc.ReplaceWorkout(ctx, 1, w.ID, WorkoutInput{
		Name:  "New",
		Date:  f.someDate.Add(time.Hour),
		Notes: "felt strong",
		Sets: []SetInput{
			{ExerciseID: f.run.ID, SetNumber: 9, DistanceKm: ptr(5.0)},
			{ExerciseID: f.bench.ID, SetNumber: 4, WeightKg: ptr(100.0), Reps: ptr(3)},
			{ExerciseID: f.bench.ID, SetNumber: 4, WeightKg: ptr(90.0), Reps: ptr(5)},
		},
	})
	require.NoError(t, err)

	got, err := f.svc.GetWorkout(ctx, 1, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "felt strong", got.Notes)
	require.Len(t, got.Sets, 3)
	for i, set := range got.Sets {
		assert.Equal(t, i+1, set.SetNumber)
	}
	assert.Equal(t, f.run.ID, got.Sets[0].ExerciseID)
	assert.Equal(t, 90.0, *got.Sets[2].WeightKg)
}

// vanishingRepo simulates a workout deleted between the guard and the write.
type vanishingRepo struct {
	repository.WorkoutRepository
}

func (r vanishingRepo) Replace(ctx context.Context, w *domain.Workout) error {
	if err := r.WorkoutRepository.Delete(ctx, w.ID); err != nil {
		return err
	}
	return r.WorkoutRepository.Replace(ctx, w)
}

func TestWorkoutService_ReplaceConcurrentDelete(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	svc := NewWorkoutService(vanishingRepo{f.store.Workouts()}, f.store.Exercises())

	w, err := svc.CreateWorkout(ctx, 1, WorkoutInput{Name: "A", Date: f.someDate})
	require.NoError(t, err)

	err = svc.ReplaceWorkout(ctx, 1, w.ID, WorkoutInput{Name: "B", Date: f.someDate})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutService_ListNewestFirst(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	// Inserted out of date order on purpose.
	for _, w := range []struct {
		name   string
		offset int
	}{{"first", 0}, {"third", 2}, {"second", 1}} {
		_, err := f.svc.CreateWorkout(ctx, 1, WorkoutInput{Name: w.name, Date: f.someDate.AddDate(0, 0, w.offset)})
		require.NoError(t, err)
	}
	_, err := f.svc.CreateWorkout(ctx, 2, WorkoutInput{Name: "other", Date: f.someDate})
	require.NoError(t, err)

	list, err := f.svc.ListWorkouts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "first", list[2].Name)
}

func TestWorkoutService_PersonalRecords(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	for i, set := range []struct {
		w float64
		r int
	}{{100, 5}, {120, 3}, {110, 8}} {
		_, err := f.svc.CreateWorkout(ctx, 1, WorkoutInput{
			Name: "Bench day",
			Date: f.someDate.AddDate(0, 0, i),
			Sets: []SetInput{{ExerciseID: f.bench.ID, SetNumber: 1, WeightKg: ptr(set.w), Reps: ptr(set.r)}},
		})
		require.NoError(t, err)
	}
	_, err := f.svc.CreateWorkout(ctx, 1, WorkoutInput{
		Name: "Run",
		Date: f.someDate,
		Sets: []SetInput{{ExerciseID: f.run.ID, SetNumber: 1, DistanceKm: ptr(7.5), TimeSeconds: ptr(2400)}},
	})
	require.NoError(t, err)

	// Someone else's heavier bench must not leak into the caller's records.
	_, err = f.svc.CreateWorkout(ctx, 2, WorkoutInput{
		Name: "Other", Date: f.someDate,
		Sets: []SetInput{{ExerciseID: f.bench.ID, SetNumber: 1, WeightKg: ptr(200.0), Reps: ptr(1)}},
	})
	require.NoError(t, err)

	records, err := f.svc.PersonalRecords(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)

	bench := records[0]
	assert.Equal(t, "Bench Press", bench.ExerciseName)
	assert.Equal(t, 120.0, bench.MaxWeight)
	assert.Equal(t, 3, bench.MaxReps)
	require.NotNil(t, bench.EstimatedOneRepMax)
	assert.InDelta(t, 132.0, *bench.EstimatedOneRepMax, 1e-9)
	assert.Equal(t, f.someDate.AddDate(0, 0, 1), bench.Date)

	run := records[1]
	assert.True(t, run.IsCardio)
	assert.Equal(t, 7.5, run.MaxDistanceKm)
	assert.Nil(t, run.EstimatedOneRepMax)
}
