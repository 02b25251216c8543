package fitcalc

import "time"

type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// Validate returns an error if the sex is not recognized
func (s Sex) Validate() error {
	switch s {
	case Male, Female:
		return nil
	}
	return &InvalidEnumError{Kind: "sex", Value: string(s)}
}

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly-active"
	ModeratelyActive ActivityLevel = "moderately-active"
	VeryActive       ActivityLevel = "very-active"
	ExtremelyActive  ActivityLevel = "extremely-active"
)

var activityFactors = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtremelyActive:  1.9,
}

// Factor returns the TDEE multiplier for the activity level
func (a ActivityLevel) Factor() (float64, error) {
	f, ok := activityFactors[a]
	if !ok {
		return 0, &UnknownActivityLevelError{Level: string(a)}
	}
	return f, nil
}

// WeightGoal is the body-composition objective used to scale TDEE into target calories
type WeightGoal string

const (
	LoseWeight WeightGoal = "lose-weight"
	Maintain   WeightGoal = "maintain"
	GainWeight WeightGoal = "gain-weight"
	MuscleGain WeightGoal = "muscle-gain"
)

var goalFactors = map[WeightGoal]float64{
	LoseWeight: 0.8,
	Maintain:   1.0,
	GainWeight: 1.2,
	MuscleGain: 1.15,
}

// Factor returns the calorie multiplier for the goal
func (g WeightGoal) Factor() (float64, error) {
	f, ok := goalFactors[g]
	if !ok {
		return 0, &InvalidEnumError{Kind: "goal", Value: string(g)}
	}
	return f, nil
}

type Direction string

const (
	HigherIsBetter Direction = "higher-is-better"
	LowerIsBetter  Direction = "lower-is-better"
)

// Validate returns an error if the direction is not recognized
func (d Direction) Validate() error {
	switch d {
	case HigherIsBetter, LowerIsBetter:
		return nil
	}
	return &InvalidEnumError{Kind: "direction", Value: string(d)}
}

// better returns true if a is strictly more favorable than b
func (d Direction) better(a, b float64) bool {
	if d == LowerIsBetter {
		return a < b
	}
	return a > b
}

// reached returns true if value has met or passed target
func (d Direction) reached(value, target float64) bool {
	if d == LowerIsBetter {
		return value <= target
	}
	return value >= target
}

type Trend string

const (
	Improving Trend = "improving"
	Declining Trend = "declining"
	Stable    Trend = "stable"
)

// MeasurementSnapshot is one point-in-time set of body measurements.
// Lengths are in cm and masses in kg for metric snapshots, in and lb for imperial ones.
type MeasurementSnapshot struct {
	Timestamp  time.Time  `json:"timestamp" yaml:"timestamp"`
	Units      UnitSystem `json:"units" yaml:"units"`
	Height     *float64   `json:"height,omitempty" yaml:"height,omitempty"`
	Weight     *float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
	BodyFat    *float64   `json:"bodyFat,omitempty" yaml:"bodyFat,omitempty"`
	MuscleMass *float64   `json:"muscleMass,omitempty" yaml:"muscleMass,omitempty"`
	Waist      *float64   `json:"waist,omitempty" yaml:"waist,omitempty"`
	Chest      *float64   `json:"chest,omitempty" yaml:"chest,omitempty"`
	Hips       *float64   `json:"hips,omitempty" yaml:"hips,omitempty"`
	Neck       *float64   `json:"neck,omitempty" yaml:"neck,omitempty"`
	BoneMass   *float64   `json:"boneMass,omitempty" yaml:"boneMass,omitempty"`
	BMR        *float64   `json:"bmr,omitempty" yaml:"bmr,omitempty"`
}

// Person carries the caller-owned context the formulas need
type Person struct {
	Sex Sex `json:"sex" yaml:"sex"`
	Age int `json:"age" yaml:"age"`
}

type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// CalculationResult bundles every metric derived from a snapshot; nil fields lacked input data.
// Masses are in kg and lengths in cm regardless of the snapshot's unit system.
type CalculationResult struct {
	Timestamp      time.Time   `json:"timestamp"`
	BMI            *float64    `json:"bmi"`
	BMICategory    BMICategory `json:"bmiCategory,omitempty"`
	BodyFat        *float64    `json:"bodyFat"`
	FatMass        *float64    `json:"fatMass"`
	LeanMass       *float64    `json:"leanMass"`
	WaistToHip     *float64    `json:"waistToHip"`
	IdealWeight    *float64    `json:"idealWeight"`
	BMR            *float64    `json:"bmr"`
	TDEE           *float64    `json:"tdee"`
	TargetCalories *float64    `json:"targetCalories"`
	Macros         *Macros     `json:"macros"`
}

// CalculationParams selects the activity factor and goal used for the calorie chain
type CalculationParams struct {
	Activity ActivityLevel `json:"activity" yaml:"activity"`
	Goal     WeightGoal    `json:"goal" yaml:"goal"`
}

// PersonalRecordEntry is one logged result for a named exercise or metric
type PersonalRecordEntry struct {
	Name         string    `json:"name" yaml:"name"`
	Value        float64   `json:"value" yaml:"value"`
	Unit         string    `json:"unit" yaml:"unit"`
	Direction    Direction `json:"direction" yaml:"direction"`
	Date         time.Time `json:"date" yaml:"date"`
	PreviousBest *float64  `json:"previousBest,omitempty" yaml:"previousBest,omitempty"`
}

// Goal is a tracked target; History holds prior values, oldest first, for trend classification
type Goal struct {
	Name         string    `json:"name" yaml:"name"`
	Category     string    `json:"category" yaml:"category"`
	CurrentValue float64   `json:"currentValue" yaml:"currentValue"`
	TargetValue  float64   `json:"targetValue" yaml:"targetValue"`
	Direction    Direction `json:"direction" yaml:"direction"`
	Milestones   []float64 `json:"milestones,omitempty" yaml:"milestones,omitempty"`
	History      []float64 `json:"history,omitempty" yaml:"history,omitempty"`
}
