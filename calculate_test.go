package fitcalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzimmer/fitcalc"
)

var (
	male30   = fitcalc.Person{Sex: fitcalc.Male, Age: 30}
	maintain = fitcalc.CalculationParams{Activity: fitcalc.ModeratelyActive, Goal: fitcalc.Maintain}
	day      = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
)

func TestCalculate_EndToEnd(t *testing.T) {
	a := assert.New(t)
	res, err := fitcalc.Calculate(fitcalc.MeasurementSnapshot{
		Timestamp: day,
		Units:     fitcalc.Metric,
		Height:    f64(180),
		Weight:    f64(80),
		Waist:     f64(85),
		Neck:      f64(38),
		Hips:      f64(100),
	}, male30, maintain)
	require.NoError(t, err)
	require.NotNil(t, res)

	a.Equal(day, res.Timestamp)
	require.NotNil(t, res.BMI)
	a.Equal(24.7, *res.BMI)
	a.Equal(fitcalc.Normal, res.BMICategory)
	require.NotNil(t, res.BodyFat)
	a.InDelta(16.1066, *res.BodyFat, 1e-4)
	require.NotNil(t, res.FatMass)
	require.NotNil(t, res.LeanMass)
	a.InDelta(12.8853, *res.FatMass, 1e-4)
	a.InDelta(80-12.8853, *res.LeanMass, 1e-4)
	require.NotNil(t, res.WaistToHip)
	a.InDelta(0.85, *res.WaistToHip, 1e-9)
	require.NotNil(t, res.IdealWeight)
	a.InDelta(72.6457, *res.IdealWeight, 1e-4)

	require.NotNil(t, res.BMR)
	a.Equal(1780.0, *res.BMR)
	require.NotNil(t, res.TDEE)
	a.InDelta(2759, *res.TDEE, 1e-9)
	require.NotNil(t, res.TargetCalories)
	a.InDelta(2759, *res.TargetCalories, 1e-9)
	require.NotNil(t, res.Macros)
	a.Equal(fitcalc.Macros{Protein: 207, Carbs: 276, Fat: 92}, *res.Macros)
}

func TestCalculate_Imperial(t *testing.T) {
	a := assert.New(t)
	metric, err := fitcalc.Calculate(fitcalc.MeasurementSnapshot{
		Timestamp: day,
		Units:     fitcalc.Metric,
		Height:    f64(180),
		Weight:    f64(80),
	}, male30, maintain)
	require.NoError(t, err)

	imperial, err := fitcalc.Calculate(fitcalc.MeasurementSnapshot{
		Timestamp: day,
		Units:     fitcalc.Imperial,
		Height:    f64(180 / 2.54),
		Weight:    f64(80 * 2.20462),
	}, male30, maintain)
	require.NoError(t, err)

	a.Equal(*metric.BMI, *imperial.BMI)
	a.InDelta(*metric.BMR, *imperial.BMR, 1e-6)
	a.InDelta(*metric.IdealWeight, *imperial.IdealWeight, 1e-6)
	a.Equal(*metric.Macros, *imperial.Macros)
}

func TestCalculate_InsufficientData(t *testing.T) {
	a := assert.New(t)
	res, err := fitcalc.Calculate(fitcalc.MeasurementSnapshot{
		Timestamp: day,
		Units:     fitcalc.Metric,
		Height:    f64(165),
		Waist:     f64(70),
		Neck:      f64(32),
	}, fitcalc.Person{Sex: fitcalc.Female, Age: 28}, maintain)
	require.NoError(t, err)
	a.Nil(res.BMI)
	a.Empty(res.BMICategory)
	a.Nil(res.BodyFat)
	a.Nil(res.FatMass)
	a.Nil(res.WaistToHip)
	a.NotNil(res.IdealWeight)
	a.Nil(res.BMR)
	a.Nil(res.TDEE)
	a.Nil(res.TargetCalories)
	a.Nil(res.Macros)
}

func TestCalculate_SuppliedValues(t *testing.T) {
	a := assert.New(t)
	res, err := fitcalc.Calculate(fitcalc.MeasurementSnapshot{
		Timestamp: day,
		Units:     fitcalc.Metric,
		Weight:    f64(70),
		BodyFat:   f64(20),
		BMR:       f64(2000),
	}, fitcalc.Person{Sex: fitcalc.Female}, fitcalc.CalculationParams{
		Activity: fitcalc.Sedentary,
		Goal:     fitcalc.LoseWeight,
	})
	require.NoError(t, err)
	a.Equal(20.0, *res.BodyFat)
	a.InDelta(14, *res.FatMass, 1e-9)
	a.InDelta(56, *res.LeanMass, 1e-9)
	a.Equal(2000.0, *res.BMR)
	a.InDelta(2400, *res.TDEE, 1e-9)
	a.InDelta(1920, *res.TargetCalories, 1e-9)
}

func TestCalculate_Errors(t *testing.T) {
	good := fitcalc.MeasurementSnapshot{Timestamp: day, Units: fitcalc.Metric, Weight: f64(80)}
	tests := []struct {
		name     string
		snapshot fitcalc.MeasurementSnapshot
		person   fitcalc.Person
		params   fitcalc.CalculationParams
		err      error
	}{
		{
			name:     "negative weight",
			snapshot: fitcalc.MeasurementSnapshot{Timestamp: day, Units: fitcalc.Metric, Weight: f64(-1)},
			person:   male30,
			params:   maintain,
			err:      fitcalc.ErrInvalidValue,
		},
		{
			name:     "missing timestamp",
			snapshot: fitcalc.MeasurementSnapshot{Units: fitcalc.Metric},
			person:   male30,
			params:   maintain,
			err:      fitcalc.ErrInvalidValue,
		},
		{
			name:     "unknown unit system",
			snapshot: fitcalc.MeasurementSnapshot{Timestamp: day, Units: "nautical"},
			person:   male30,
			params:   maintain,
			err:      fitcalc.ErrInvalidEnum,
		},
		{
			name:     "unknown sex",
			snapshot: good,
			person:   fitcalc.Person{Sex: "x", Age: 30},
			params:   maintain,
			err:      fitcalc.ErrInvalidEnum,
		},
		{
			name:     "negative age",
			snapshot: good,
			person:   fitcalc.Person{Sex: fitcalc.Male, Age: -3},
			params:   maintain,
			err:      fitcalc.ErrInvalidValue,
		},
		{
			name:     "unknown activity",
			snapshot: good,
			person:   male30,
			params:   fitcalc.CalculationParams{Activity: "lazy", Goal: fitcalc.Maintain},
			err:      fitcalc.ErrUnknownActivityLevel,
		},
		{
			name:     "unknown goal",
			snapshot: good,
			person:   male30,
			params:   fitcalc.CalculationParams{Activity: fitcalc.Sedentary, Goal: "shred"},
			err:      fitcalc.ErrInvalidEnum,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, err := fitcalc.Calculate(tt.snapshot, tt.person, tt.params)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCalculationResult_Rounded(t *testing.T) {
	a := assert.New(t)
	res, err := fitcalc.Calculate(fitcalc.MeasurementSnapshot{
		Timestamp: day,
		Units:     fitcalc.Metric,
		Height:    f64(180),
		Weight:    f64(80),
		Waist:     f64(85),
		Neck:      f64(38),
		Hips:      f64(97),
	}, male30, maintain)
	require.NoError(t, err)

	r := res.Rounded()
	a.Equal(16.1, *r.BodyFat)
	a.Equal(0.88, *r.WaistToHip)
	a.Equal(72.6, *r.IdealWeight)
	a.Equal(2759.0, *r.TDEE)
	// the original is untouched
	a.InDelta(16.1066, *res.BodyFat, 1e-4)
}
