package fitcalc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzimmer/fitcalc"
)

func TestBMI(t *testing.T) {
	a := assert.New(t)
	bmi, err := fitcalc.BMI(80, 180)
	a.NoError(err)
	a.NotNil(bmi)
	a.Equal(24.7, *bmi)

	bmi, err = fitcalc.BMI(0, 180)
	a.NoError(err)
	a.Nil(bmi)

	bmi, err = fitcalc.BMI(80, 0)
	a.NoError(err)
	a.Nil(bmi)

	_, err = fitcalc.BMI(-80, 180)
	a.ErrorIs(err, fitcalc.ErrInvalidValue)

	_, err = fitcalc.BMI(80, math.NaN())
	a.ErrorIs(err, fitcalc.ErrInvalidValue)
}

func TestBMIUnitRoundTrip(t *testing.T) {
	for _, in := range []struct{ kg, cm float64 }{{80, 180}, {55.3, 162.5}, {120, 195}, {45, 150}} {
		metric, err := fitcalc.BMI(in.kg, in.cm)
		require.NoError(t, err)

		lb, err := fitcalc.ConvertMass(in.kg, fitcalc.Kilograms, fitcalc.Pounds)
		require.NoError(t, err)
		inches, err := fitcalc.ConvertLength(in.cm, fitcalc.Centimeters, fitcalc.Inches)
		require.NoError(t, err)
		kg, err := fitcalc.ConvertMass(lb, fitcalc.Pounds, fitcalc.Kilograms)
		require.NoError(t, err)
		cm, err := fitcalc.ConvertLength(inches, fitcalc.Inches, fitcalc.Centimeters)
		require.NoError(t, err)

		back, err := fitcalc.BMI(kg, cm)
		require.NoError(t, err)
		assert.InDelta(t, *metric, *back, 0.1)
	}
}

func TestClassifyBMI(t *testing.T) {
	tests := []struct {
		bmi float64
		cat fitcalc.BMICategory
	}{
		{10, fitcalc.Underweight},
		{18.49, fitcalc.Underweight},
		{18.5, fitcalc.Normal},
		{24.99, fitcalc.Normal},
		{25.0, fitcalc.Overweight},
		{29.99, fitcalc.Overweight},
		{30.0, fitcalc.Obese},
		{45, fitcalc.Obese},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.cat, fitcalc.ClassifyBMI(tt.bmi), "bmi %v", tt.bmi)
	}
}

func TestBodyFatPercent(t *testing.T) {
	a := assert.New(t)

	bf, err := fitcalc.BodyFatPercent(fitcalc.Male, 180, 85, 38, nil)
	a.NoError(err)
	require.NotNil(t, bf)
	a.Greater(*bf, 0.0)
	a.InDelta(16.1066, *bf, 1e-4)

	bf, err = fitcalc.BodyFatPercent(fitcalc.Female, 165, 70, 32, nil)
	a.NoError(err)
	a.Nil(bf)

	bf, err = fitcalc.BodyFatPercent(fitcalc.Female, 165, 70, 32, f64(95))
	a.NoError(err)
	require.NotNil(t, bf)
	a.InDelta(24.8562, *bf, 1e-4)

	// waist not larger than neck leaves the logarithm undefined
	bf, err = fitcalc.BodyFatPercent(fitcalc.Male, 180, 38, 38, nil)
	a.NoError(err)
	a.Nil(bf)

	// the raw formula goes negative here
	bf, err = fitcalc.BodyFatPercent(fitcalc.Female, 150, 60, 50, f64(70))
	a.NoError(err)
	require.NotNil(t, bf)
	a.Equal(0.0, *bf)

	_, err = fitcalc.BodyFatPercent("other", 180, 85, 38, nil)
	a.ErrorIs(err, fitcalc.ErrInvalidEnum)

	_, err = fitcalc.BodyFatPercent(fitcalc.Male, 180, -85, 38, nil)
	a.ErrorIs(err, fitcalc.ErrInvalidValue)

	_, err = fitcalc.BodyFatPercent(fitcalc.Female, 165, 70, 32, f64(math.Inf(1)))
	a.ErrorIs(err, fitcalc.ErrInvalidValue)
}

func TestWaistToHipRatio(t *testing.T) {
	a := assert.New(t)
	r, err := fitcalc.WaistToHipRatio(70, f64(95))
	a.NoError(err)
	require.NotNil(t, r)
	a.InDelta(0.7368, *r, 1e-4)

	r, err = fitcalc.WaistToHipRatio(70, nil)
	a.NoError(err)
	a.Nil(r)

	r, err = fitcalc.WaistToHipRatio(70, f64(0))
	a.NoError(err)
	a.Nil(r)
}

func TestIdealWeight(t *testing.T) {
	a := assert.New(t)
	w, err := fitcalc.IdealWeight(fitcalc.Male, 180)
	a.NoError(err)
	require.NotNil(t, w)
	a.InDelta(72.6457, *w, 1e-4)

	w, err = fitcalc.IdealWeight(fitcalc.Female, 165)
	a.NoError(err)
	require.NotNil(t, w)
	a.InDelta(57.4331, *w, 1e-4)

	w, err = fitcalc.IdealWeight(fitcalc.Female, 0)
	a.NoError(err)
	a.Nil(w)
}

func TestBMR(t *testing.T) {
	a := assert.New(t)
	bmr, err := fitcalc.BMR(fitcalc.Male, 80, 180, 30)
	a.NoError(err)
	a.Equal(1780.0, bmr)

	bmr, err = fitcalc.BMR(fitcalc.Female, 60, 165, 25)
	a.NoError(err)
	a.InDelta(600+1031.25-125-161, bmr, 1e-9)

	for _, in := range [][3]float64{{0, 180, 30}, {80, -1, 30}, {80, 180, 0}, {math.NaN(), 180, 30}} {
		_, err = fitcalc.BMR(fitcalc.Male, in[0], in[1], in[2])
		a.ErrorIs(err, fitcalc.ErrInvalidValue, "inputs %v", in)
	}
}

func TestTDEE(t *testing.T) {
	a := assert.New(t)
	tdee, err := fitcalc.TDEE(1780, fitcalc.ModeratelyActive)
	a.NoError(err)
	a.InDelta(2759, tdee, 1e-9)

	tdee, err = fitcalc.TDEE(1000, fitcalc.Sedentary)
	a.NoError(err)
	a.InDelta(1200, tdee, 1e-9)

	_, err = fitcalc.TDEE(1780, "couch")
	a.ErrorIs(err, fitcalc.ErrUnknownActivityLevel)
	var target *fitcalc.UnknownActivityLevelError
	a.ErrorAs(err, &target)
}

func TestTargetCalories(t *testing.T) {
	tests := []struct {
		goal   fitcalc.WeightGoal
		target float64
	}{
		{fitcalc.LoseWeight, 1600},
		{fitcalc.Maintain, 2000},
		{fitcalc.GainWeight, 2400},
		{fitcalc.MuscleGain, 2300},
	}
	for _, tt := range tests {
		v, err := fitcalc.TargetCalories(2000, tt.goal)
		assert.NoError(t, err)
		assert.InDelta(t, tt.target, v, 1e-9, string(tt.goal))
	}
	_, err := fitcalc.TargetCalories(2000, "bulk")
	assert.ErrorIs(t, err, fitcalc.ErrInvalidEnum)
}

func TestMacroSplit(t *testing.T) {
	a := assert.New(t)
	m, err := fitcalc.MacroSplit(2000)
	a.NoError(err)
	a.Equal(fitcalc.Macros{Protein: 150, Carbs: 200, Fat: 67}, m)

	m, err = fitcalc.MacroSplit(2759)
	a.NoError(err)
	a.Equal(fitcalc.Macros{Protein: 207, Carbs: 276, Fat: 92}, m)

	_, err = fitcalc.MacroSplit(-1)
	a.ErrorIs(err, fitcalc.ErrInvalidValue)
}

func TestMetricsDeterministic(t *testing.T) {
	first, err := fitcalc.BodyFatPercent(fitcalc.Male, 181.3, 91.7, 39.2, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := fitcalc.BodyFatPercent(fitcalc.Male, 181.3, 91.7, 39.2, nil)
		require.NoError(t, err)
		assert.Equal(t, *first, *again)
	}
}

func TestRoundTo(t *testing.T) {
	a := assert.New(t)
	a.Equal(66.7, fitcalc.RoundTo(66.666, 1))
	a.Equal(0.74, fitcalc.RoundTo(0.7368, 2))
	a.Equal(2759.0, fitcalc.RoundTo(2758.5, 0))
}
