package fitcalc

import "math"

// ValidateSnapshot checks the unit system, the timestamp and that every
// present measurement is finite and non-negative
func ValidateSnapshot(s MeasurementSnapshot) error {
	if err := s.Units.Validate(); err != nil {
		return err
	}
	if s.Timestamp.IsZero() {
		return &InvalidValueError{Field: "timestamp"}
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"height", s.Height},
		{"weight", s.Weight},
		{"bodyFat", s.BodyFat},
		{"muscleMass", s.MuscleMass},
		{"waist", s.Waist},
		{"chest", s.Chest},
		{"hips", s.Hips},
		{"neck", s.Neck},
		{"boneMass", s.BoneMass},
		{"bmr", s.BMR},
	} {
		if err := checkOptional(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the activity level and goal tags
func (p CalculationParams) Validate() error {
	if _, err := p.Activity.Factor(); err != nil {
		return err
	}
	if _, err := p.Goal.Factor(); err != nil {
		return err
	}
	return nil
}

// metric returns the snapshot with every length in cm and every mass in kg
func (s MeasurementSnapshot) metric() (MeasurementSnapshot, error) {
	if s.Units == Metric {
		return s, nil
	}
	length := func(v *float64) (*float64, error) {
		if v == nil {
			return nil, nil
		}
		cm, err := ConvertLength(*v, s.Units.length(), Centimeters)
		if err != nil {
			return nil, err
		}
		return &cm, nil
	}
	mass := func(v *float64) (*float64, error) {
		if v == nil {
			return nil, nil
		}
		kg, err := ConvertMass(*v, s.Units.mass(), Kilograms)
		if err != nil {
			return nil, err
		}
		return &kg, nil
	}

	var err error
	m := s
	m.Units = Metric
	for _, l := range []**float64{&m.Height, &m.Waist, &m.Chest, &m.Hips, &m.Neck} {
		if *l, err = length(*l); err != nil {
			return MeasurementSnapshot{}, err
		}
	}
	for _, w := range []**float64{&m.Weight, &m.MuscleMass, &m.BoneMass} {
		if *w, err = mass(*w); err != nil {
			return MeasurementSnapshot{}, err
		}
	}
	return m, nil
}

// Calculate derives every metric the snapshot has data for.
// A snapshot-supplied body fat or BMR takes precedence over the computed value.
func Calculate(snapshot MeasurementSnapshot, person Person, params CalculationParams) (*CalculationResult, error) {
	if err := ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}
	if err := person.Sex.Validate(); err != nil {
		return nil, err
	}
	if person.Age < 0 {
		return nil, &InvalidValueError{Field: "age", Value: float64(person.Age)}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s, err := snapshot.metric()
	if err != nil {
		return nil, err
	}

	res := &CalculationResult{Timestamp: s.Timestamp}
	if s.Weight != nil && s.Height != nil {
		if res.BMI, err = BMI(*s.Weight, *s.Height); err != nil {
			return nil, err
		}
		if res.BMI != nil {
			res.BMICategory = ClassifyBMI(*res.BMI)
		}
	}

	res.BodyFat = s.BodyFat
	if res.BodyFat == nil && s.Height != nil && s.Waist != nil && s.Neck != nil {
		if res.BodyFat, err = BodyFatPercent(person.Sex, *s.Height, *s.Waist, *s.Neck, s.Hips); err != nil {
			return nil, err
		}
	}
	if res.BodyFat != nil && s.Weight != nil {
		fat := *s.Weight * math.Min(*res.BodyFat, 100) / 100
		res.FatMass = ptr(fat)
		res.LeanMass = ptr(*s.Weight - fat)
	}

	if s.Waist != nil {
		if res.WaistToHip, err = WaistToHipRatio(*s.Waist, s.Hips); err != nil {
			return nil, err
		}
	}
	if s.Height != nil {
		if res.IdealWeight, err = IdealWeight(person.Sex, *s.Height); err != nil {
			return nil, err
		}
	}

	switch {
	case s.BMR != nil:
		res.BMR = s.BMR
	case s.Weight != nil && s.Height != nil && *s.Weight > 0 && *s.Height > 0 && person.Age > 0:
		bmr, err := BMR(person.Sex, *s.Weight, *s.Height, float64(person.Age))
		if err != nil {
			return nil, err
		}
		res.BMR = &bmr
	}
	if res.BMR == nil {
		return res, nil
	}

	// a negative Mifflin-St Jeor result only happens for implausible inputs
	tdee, err := TDEE(math.Max(0, *res.BMR), params.Activity)
	if err != nil {
		return nil, err
	}
	target, err := TargetCalories(tdee, params.Goal)
	if err != nil {
		return nil, err
	}
	macros, err := MacroSplit(target)
	if err != nil {
		return nil, err
	}
	res.TDEE = &tdee
	res.TargetCalories = &target
	res.Macros = &macros
	return res, nil
}

func roundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	return ptr(RoundTo(*v, places))
}

// Rounded returns a copy rounded for display: one decimal for BMI, masses and
// percentages, two for the waist-to-hip ratio, and whole kilocalories
func (r CalculationResult) Rounded() CalculationResult {
	r.BMI = roundPtr(r.BMI, 1)
	r.BodyFat = roundPtr(r.BodyFat, 1)
	r.FatMass = roundPtr(r.FatMass, 1)
	r.LeanMass = roundPtr(r.LeanMass, 1)
	r.WaistToHip = roundPtr(r.WaistToHip, 2)
	r.IdealWeight = roundPtr(r.IdealWeight, 1)
	r.BMR = roundPtr(r.BMR, 0)
	r.TDEE = roundPtr(r.TDEE, 0)
	r.TargetCalories = roundPtr(r.TargetCalories, 0)
	return r
}
