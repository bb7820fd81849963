package domain

import (
	"math"
	"sort"
	"time"
)

// epleyCoefficient is the per-rep factor of the one-rep-max estimate.
const epleyCoefficient = 0.0333

// PersonalRecord is the best-ever result for one exercise name. It is derived
// on every request and never persisted.
type PersonalRecord struct {
	ExerciseName       string    `json:"exerciseName"`
	MaxWeight          float64   `json:"maxWeight"`
	MaxReps            int       `json:"maxReps"`
	MaxDistanceKm      float64   `json:"maxDistanceKm"`
	IsCardio           bool      `json:"isCardio"`
	Date               time.Time `json:"date"`
	EstimatedOneRepMax *float64  `json:"estimatedOneRepMax"`
}

// EstimateOneRepMax applies the Epley variant weight*(1+0.0333*reps), rounded
// to one decimal. It returns nil when weight is not positive.
func EstimateOneRepMax(weight float64, reps int) *float64 {
	if weight <= 0 {
		return nil
	}
	v := math.Round(weight*(1+epleyCoefficient*float64(reps))*10) / 10
	return &v
}

type recordCandidate struct {
	set  *WorkoutSet
	date time.Time
}

func (c recordCandidate) weight() float64 {
	if c.set.WeightKg == nil {
		return 0
	}
	return *c.set.WeightKg
}

func (c recordCandidate) reps() int {
	if c.set.Reps == nil {
		return 0
	}
	return *c.set.Reps
}

func (c recordCandidate) distance() float64 {
	if c.set.DistanceKm == nil {
		return 0
	}
	return *c.set.DistanceKm
}

// beats orders candidates by weight, reps and distance (all descending), then
// by the earliest workout date so the first time a record was set wins.
func (c recordCandidate) beats(o recordCandidate) bool {
	if c.weight() != o.weight() {
		return c.weight() > o.weight()
	}
	if c.reps() != o.reps() {
		return c.reps() > o.reps()
	}
	if c.distance() != o.distance() {
		return c.distance() > o.distance()
	}
	return c.date.Before(o.date)
}

// ComputePersonalRecords folds every set of the given workouts into one record
// per exercise name. Sets must have their Exercise populated; sets without one
// are skipped since they cannot be named.
//
// MaxReps and Date come from the record-setting set, i.e. the heaviest set
// (ties broken by reps, then distance). Strength records come first, then
// cardio, each ordered by name.
func ComputePersonalRecords(workouts []Workout) []PersonalRecord {
	type group struct {
		best        recordCandidate
		maxDistance float64
	}
	groups := make(map[string]*group)
	var order []string

	for wi := range workouts {
		w := &workouts[wi]
		for si := range w.Sets {
			set := &w.Sets[si]
			if set.Exercise == nil {
				continue
			}
			cand := recordCandidate{set: set, date: w.Date}
			name := set.Exercise.Name

			g, ok := groups[name]
			if !ok {
				groups[name] = &group{best: cand, maxDistance: cand.distance()}
				order = append(order, name)
				continue
			}
			if cand.beats(g.best) {
				g.best = cand
			}
			if d := cand.distance(); d > g.maxDistance {
				g.maxDistance = d
			}
		}
	}

	records := make([]PersonalRecord, 0, len(order))
	for _, name := range order {
		g := groups[name]
		maxWeight := g.best.weight()
		maxReps := g.best.reps()
		records = append(records, PersonalRecord{
			ExerciseName:       name,
			MaxWeight:          maxWeight,
			MaxReps:            maxReps,
			MaxDistanceKm:      g.maxDistance,
			IsCardio:           g.best.set.IsCardio(),
			Date:               g.best.date,
			EstimatedOneRepMax: EstimateOneRepMax(maxWeight, maxReps),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].IsCardio != records[j].IsCardio {
			return !records[i].IsCardio
		}
		return records[i].ExerciseName < records[j].ExerciseName
	})
	return records
}
