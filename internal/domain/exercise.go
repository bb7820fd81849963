// internal/domain/exercise.go
package domain

// Exercise is a single exercise definition in the library.
// A nil UserID marks a shared (system) exercise visible to everyone and
// immutable for end users; otherwise the exercise is private to its owner.
type Exercise struct {
	ID          int64  `bson:"_id" json:"id"`
	UserID      *int64 `bson:"userId,omitempty" json:"userId"`
	Name        string `bson:"name" json:"name"`
	MuscleGroup string `bson:"muscleGroup" json:"muscleGroup"`
	IsCardio    bool   `bson:"isCardio" json:"isCardio"`
}

// IsShared reports whether the exercise belongs to the system library.
func (e *Exercise) IsShared() bool {
	return e.UserID == nil
}

// OwnedBy reports whether the exercise is private to the given user.
func (e *Exercise) OwnedBy(userID int64) bool {
	return e.UserID != nil && *e.UserID == userID
}

// VisibleTo reports whether the given user may see (and reference) the exercise.
func (e *Exercise) VisibleTo(userID int64) bool {
	return e.IsShared() || e.OwnedBy(userID)
}

// SystemExercises is the seed library installed by the migrate command.
var SystemExercises = []Exercise{
	{Name: "Bench Press", MuscleGroup: "Chest"},
	{Name: "Barbell Squat", MuscleGroup: "Legs"},
	{Name: "Deadlift", MuscleGroup: "Back"},
	{Name: "Treadmill Run", MuscleGroup: "Cardio", IsCardio: true},
	{Name: "Barbell Curl", MuscleGroup: "Biceps"},
}
