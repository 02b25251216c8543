package fitcalc

import "math"

type BMICategory string

const (
	Underweight BMICategory = "underweight"
	Normal      BMICategory = "normal"
	Overweight  BMICategory = "overweight"
	Obese       BMICategory = "obese"
)

const (
	proteinShare = 0.30
	carbsShare   = 0.40
	fatShare     = 0.30

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

func ptr(v float64) *float64 {
	return &v
}

// RoundTo rounds x half away from zero to the given number of decimal places
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// BMI returns weight / height(m)^2 rounded to one decimal, or nil if either input is zero
func BMI(weightKg, heightCm float64) (*float64, error) {
	if err := checkValue("weight", weightKg); err != nil {
		return nil, err
	}
	if err := checkValue("height", heightCm); err != nil {
		return nil, err
	}
	if weightKg == 0 || heightCm == 0 {
		return nil, nil
	}
	m := heightCm / 100
	return ptr(RoundTo(weightKg/(m*m), 1)), nil
}

// ClassifyBMI maps a BMI onto its category; each band includes its lower bound
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// BodyFatPercent estimates body fat with the U.S. Navy circumference method.
// The result is clamped at zero and left unrounded. It is nil when the
// logarithms are undefined or, for women, when the hip circumference is missing.
func BodyFatPercent(sex Sex, heightCm, waistCm, neckCm float64, hipsCm *float64) (*float64, error) {
	if err := sex.Validate(); err != nil {
		return nil, err
	}
	if err := checkValues(field{"height", heightCm}, field{"waist", waistCm}, field{"neck", neckCm}); err != nil {
		return nil, err
	}
	if err := checkOptional("hips", hipsCm); err != nil {
		return nil, err
	}
	if heightCm == 0 || waistCm-neckCm <= 0 {
		return nil, nil
	}

	var density float64
	switch sex {
	case Male:
		density = 1.0324 - 0.19077*math.Log10(waistCm-neckCm) + 0.15456*math.Log10(heightCm)
	case Female:
		if hipsCm == nil {
			return nil, nil
		}
		density = 1.29579 - 0.35004*math.Log10(waistCm+*hipsCm-neckCm) + 0.22100*math.Log10(heightCm)
	}
	if density <= 0 {
		return nil, nil
	}
	return ptr(math.Max(0, 495/density-450)), nil
}

// WaistToHipRatio returns waist / hips, or nil if hips is missing or zero
func WaistToHipRatio(waistCm float64, hipsCm *float64) (*float64, error) {
	if err := checkValue("waist", waistCm); err != nil {
		return nil, err
	}
	if err := checkOptional("hips", hipsCm); err != nil {
		return nil, err
	}
	if hipsCm == nil || *hipsCm == 0 {
		return nil, nil
	}
	return ptr(waistCm / *hipsCm), nil
}

// IdealWeight returns the Robinson ideal weight in kg, or nil if height is zero
func IdealWeight(sex Sex, heightCm float64) (*float64, error) {
	if err := sex.Validate(); err != nil {
		return nil, err
	}
	heightIn, err := ConvertLength(heightCm, Centimeters, Inches)
	if err != nil {
		return nil, err
	}
	if heightIn == 0 {
		return nil, nil
	}
	if sex == Male {
		return ptr(52 + 1.9*(heightIn-60)), nil
	}
	return ptr(49 + 1.7*(heightIn-60)), nil
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day
func BMR(sex Sex, weightKg, heightCm, ageYears float64) (float64, error) {
	if err := sex.Validate(); err != nil {
		return 0, err
	}
	for _, f := range []field{{"weight", weightKg}, {"height", heightCm}, {"age", ageYears}} {
		if err := checkValue(f.name, f.value); err != nil {
			return 0, err
		}
		if f.value == 0 {
			return 0, &InvalidValueError{Field: f.name, Value: f.value}
		}
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*ageYears
	if sex == Male {
		return bmr + 5, nil
	}
	return bmr - 161, nil
}

// TDEE scales a BMR by the activity level's factor
func TDEE(bmr float64, level ActivityLevel) (float64, error) {
	f, err := level.Factor()
	if err != nil {
		return 0, err
	}
	if err := checkValue("bmr", bmr); err != nil {
		return 0, err
	}
	return bmr * f, nil
}

// TargetCalories scales a TDEE by the goal's factor
func TargetCalories(tdee float64, goal WeightGoal) (float64, error) {
	f, err := goal.Factor()
	if err != nil {
		return 0, err
	}
	if err := checkValue("tdee", tdee); err != nil {
		return 0, err
	}
	return tdee * f, nil
}

// MacroSplit divides target calories 30/40/30 into protein, carbs and fat grams.
// Each value is rounded on its own so the grams need not add back up to the target exactly.
func MacroSplit(targetCalories float64) (Macros, error) {
	if err := checkValue("target calories", targetCalories); err != nil {
		return Macros{}, err
	}
	return Macros{
		Protein: int(math.Round(targetCalories * proteinShare / kcalPerGramProtein)),
		Carbs:   int(math.Round(targetCalories * carbsShare / kcalPerGramCarbs)),
		Fat:     int(math.Round(targetCalories * fatShare / kcalPerGramFat)),
	}, nil
}
