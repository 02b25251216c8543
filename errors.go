package fitcalc

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidValue         = errors.New("invalid value")
	ErrInvalidUnit          = errors.New("invalid unit")
	ErrInvalidEnum          = errors.New("invalid enum")
	ErrUnknownActivityLevel = errors.New("unknown activity level")
)

// InvalidValueError reports a numeric input that is negative, non-finite, or otherwise malformed
type InvalidValueError struct {
	Field string
	Value float64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Value)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// InvalidUnitError reports an unrecognized length or mass unit tag
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid unit %q", e.Unit)
}

func (e *InvalidUnitError) Is(target error) bool {
	return target == ErrInvalidUnit
}

// InvalidEnumError reports an unrecognized sex, direction, goal or unit system tag
type InvalidEnumError struct {
	Kind  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

func (e *InvalidEnumError) Is(target error) bool {
	return target == ErrInvalidEnum
}

type UnknownActivityLevelError struct {
	Level string
}

func (e *UnknownActivityLevelError) Error() string {
	return fmt.Sprintf("unknown activity level %q", e.Level)
}

func (e *UnknownActivityLevelError) Is(target error) bool {
	return target == ErrUnknownActivityLevel
}

// IsInvalidInput returns true if err is one of the caller-input errors raised by the engine
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidUnit) ||
		errors.Is(err, ErrInvalidEnum) ||
		errors.Is(err, ErrUnknownActivityLevel)
}

// checkValue fails for NaN, infinities and negative numbers
func checkValue(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &InvalidValueError{Field: field, Value: v}
	}
	return nil
}

func checkOptional(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return checkValue(field, *v)
}

type field struct {
	name  string
	value float64
}

func checkValues(fields ...field) error {
	for _, f := range fields {
		if err := checkValue(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
