package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func strengthSet(ex *Exercise, weight float64, reps int) WorkoutSet {
	return WorkoutSet{ExerciseID: ex.ID, Exercise: ex, WeightKg: fptr(weight), Reps: iptr(reps)}
}

func TestEstimateOneRepMax(t *testing.T) {
	testCases := []struct {
		name   string
		weight float64
		reps   int
		want   *float64
	}{
		{name: "ten reps", weight: 100, reps: 10, want: fptr(133.3)},
		{name: "three reps", weight: 120, reps: 3, want: fptr(132.0)},
		{name: "zero reps", weight: 100, reps: 0, want: fptr(100)},
		{name: "no weight", weight: 0, reps: 12, want: nil},
		{name: "negative weight", weight: -5, reps: 1, want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateOneRepMax(tc.weight, tc.reps)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tc.want, *got, 1e-9)
		})
	}
}

func TestComputePersonalRecords_HeaviestSetWins(t *testing.T) {
	bench := &Exercise{ID: 1, Name: "Bench Press"}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	workouts := []Workout{
		{Date: day, Sets: []WorkoutSet{strengthSet(bench, 100, 5)}},
		{Date: day.AddDate(0, 0, 2), Sets: []WorkoutSet{strengthSet(bench, 120, 3)}},
		{Date: day.AddDate(0, 0, 4), Sets: []WorkoutSet{strengthSet(bench, 110, 8)}},
	}

	records := ComputePersonalRecords(workouts)
	require.Len(t, records, 1)

	pr := records[0]
	assert.Equal(t, "Bench Press", pr.ExerciseName)
	assert.Equal(t, 120.0, pr.MaxWeight)
	assert.Equal(t, 3, pr.MaxReps)
	assert.Equal(t, day.AddDate(0, 0, 2), pr.Date)
	assert.False(t, pr.IsCardio)
	require.NotNil(t, pr.EstimatedOneRepMax)
	assert.InDelta(t, 132.0, *pr.EstimatedOneRepMax, 1e-9)
}

func TestComputePersonalRecords_TieBreaks(t *testing.T) {
	squat := &Exercise{ID: 2, Name: "Squat"}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Same weight: more reps wins; same weight and reps: earliest date wins.
	workouts := []Workout{
		{Date: day.AddDate(0, 0, 5), Sets: []WorkoutSet{strengthSet(squat, 140, 4)}},
		{Date: day.AddDate(0, 0, 1), Sets: []WorkoutSet{strengthSet(squat, 140, 4)}},
		{Date: day, Sets: []WorkoutSet{strengthSet(squat, 140, 2)}},
	}

	records := ComputePersonalRecords(workouts)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].MaxReps)
	assert.Equal(t, day.AddDate(0, 0, 1), records[0].Date)
}

func TestComputePersonalRecords_CardioAndOrdering(t *testing.T) {
	run := &Exercise{ID: 3, Name: "Treadmill Run", IsCardio: true}
	row := &Exercise{ID: 4, Name: "Rowing", IsCardio: true}
	curl := &Exercise{ID: 5, Name: "Barbell Curl"}
	deadlift := &Exercise{ID: 6, Name: "Deadlift"}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	workouts := []Workout{
		{Date: day, Sets: []WorkoutSet{
			{ExerciseID: run.ID, Exercise: run, DistanceKm: fptr(5), TimeSeconds: iptr(1500)},
			{ExerciseID: row.ID, Exercise: row, DistanceKm: fptr(2)},
			strengthSet(deadlift, 180, 1),
		}},
		{Date: day.AddDate(0, 0, 1), Sets: []WorkoutSet{
			{ExerciseID: run.ID, Exercise: run, DistanceKm: fptr(10)},
			strengthSet(curl, 40, 10),
			{ExerciseID: 99},
		}},
	}

	records := ComputePersonalRecords(workouts)
	require.Len(t, records, 4)

	var names []string
	for _, r := range records {
		names = append(names, r.ExerciseName)
	}
	assert.Equal(t, []string{"Barbell Curl", "Deadlift", "Rowing", "Treadmill Run"}, names)

	runPR := records[3]
	assert.True(t, runPR.IsCardio)
	assert.Equal(t, 10.0, runPR.MaxDistanceKm)
	assert.Equal(t, 0.0, runPR.MaxWeight)
	assert.Nil(t, runPR.EstimatedOneRepMax)
	assert.Equal(t, day.AddDate(0, 0, 1), runPR.Date)
}

func TestComputePersonalRecords_GroupsByName(t *testing.T) {
	shared := &Exercise{ID: 1, Name: "Bench Press"}
	mine := &Exercise{ID: 10, Name: "Bench Press", UserID: new(int64)}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	records := ComputePersonalRecords([]Workout{{Date: day, Sets: []WorkoutSet{
		strengthSet(shared, 80, 5),
		strengthSet(mine, 90, 2),
	}}})

	require.Len(t, records, 1)
	assert.Equal(t, 90.0, records[0].MaxWeight)
}

func TestComputePersonalRecords_Empty(t *testing.T) {
	records := ComputePersonalRecords(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
