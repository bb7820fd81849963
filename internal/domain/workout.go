package domain

import (
	"time"
)

// Workout is a named training session on a date, composed of ordered sets.
type Workout struct {
	ID              int64        `bson:"_id" json:"id"`
	UserID          int64        `bson:"userId" json:"userId"`
	Name            string       `bson:"name" json:"name"`
	Date            time.Time    `bson:"date" json:"date"`
	DurationMinutes *int         `bson:"durationMinutes,omitempty" json:"durationMinutes"`
	Notes           string       `bson:"notes,omitempty" json:"notes"`
	Sets            []WorkoutSet `bson:"sets" json:"workoutSets"`
}

// WorkoutSet is one set inside a workout. Strength sets carry WeightKg/Reps,
// cardio sets carry DistanceKm/TimeSeconds; nothing enforces the split on write.
type WorkoutSet struct {
	ID          int64    `bson:"id" json:"id"`
	WorkoutID   *int64   `bson:"-" json:"workoutId"`
	ExerciseID  int64    `bson:"exerciseId" json:"exerciseId"`
	SetNumber   int      `bson:"setNumber" json:"setNumber"`
	WeightKg    *float64 `bson:"weightKg,omitempty" json:"weightKg"`
	Reps        *int     `bson:"reps,omitempty" json:"reps"`
	DistanceKm  *float64 `bson:"distanceKm,omitempty" json:"distanceKm"`
	TimeSeconds *int     `bson:"timeSeconds,omitempty" json:"timeSeconds"`

	// Exercise is populated on reads only.
	Exercise *Exercise `bson:"-" json:"exercise,omitempty"`
}

// OwnedBy reports whether the workout belongs to the given user.
func (w *Workout) OwnedBy(userID int64) bool {
	return w.UserID == userID
}

// Renumber assigns set numbers 1..n in slice order.
func (w *Workout) Renumber() {
	for i := range w.Sets {
		w.Sets[i].SetNumber = i + 1
	}
}

// IsCardio classifies the set using its exercise flag, the single source of
// truth. A set without a loaded exercise is treated as strength.
func (s *WorkoutSet) IsCardio() bool {
	return s.Exercise != nil && s.Exercise.IsCardio
}
