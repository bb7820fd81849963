package domain

import (
	"time"
)

// BodyMetric is one append-only body measurement. All numeric fields are optional.
type BodyMetric struct {
	ID              int64     `bson:"_id" json:"id"`
	UserID          int64     `bson:"userId" json:"userId"`
	MeasurementDate time.Time `bson:"measurementDate" json:"measurementDate"`
	WeightKg        *float64  `bson:"weightKg,omitempty" json:"weightKg"`
	BodyFatPercent  *float64  `bson:"bodyFatPercent,omitempty" json:"bodyFatPercent"`
	WaistCm         *float64  `bson:"waistCm,omitempty" json:"waistCm"`
	ChestCm         *float64  `bson:"chestCm,omitempty" json:"chestCm"`
	BicepsCm        *float64  `bson:"bicepsCm,omitempty" json:"bicepsCm"`
}
