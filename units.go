package fitcalc

const (
	cmPerInch = 2.54
	lbPerKg   = 2.20462
)

type LengthUnit string

const (
	Centimeters LengthUnit = "cm"
	Inches      LengthUnit = "in"
)

type MassUnit string

const (
	Kilograms MassUnit = "kg"
	Pounds    MassUnit = "lb"
)

type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Validate returns an error if the unit system is not recognized
func (u UnitSystem) Validate() error {
	switch u {
	case Metric, Imperial:
		return nil
	}
	return &InvalidEnumError{Kind: "unit system", Value: string(u)}
}

func (u UnitSystem) length() LengthUnit {
	if u == Imperial {
		return Inches
	}
	return Centimeters
}

func (u UnitSystem) mass() MassUnit {
	if u == Imperial {
		return Pounds
	}
	return Kilograms
}

// ConvertLength converts a length between centimeters and inches at full precision
func ConvertLength(value float64, from, to LengthUnit) (float64, error) {
	for _, u := range []LengthUnit{from, to} {
		if u != Centimeters && u != Inches {
			return 0, &InvalidUnitError{Unit: string(u)}
		}
	}
	if err := checkValue("length", value); err != nil {
		return 0, err
	}
	switch {
	case from == to:
		return value, nil
	case from == Centimeters:
		return value / cmPerInch, nil
	default:
		return value * cmPerInch, nil
	}
}

// ConvertMass converts a mass between kilograms and pounds at full precision
func ConvertMass(value float64, from, to MassUnit) (float64, error) {
	for _, u := range []MassUnit{from, to} {
		if u != Kilograms && u != Pounds {
			return 0, &InvalidUnitError{Unit: string(u)}
		}
	}
	if err := checkValue("mass", value); err != nil {
		return 0, err
	}
	switch {
	case from == to:
		return value, nil
	case from == Kilograms:
		return value * lbPerKg, nil
	default:
		return value / lbPerKg, nil
	}
}
