package errors

import (
	"math"
)

// Epsilon is the small positive constant used to guard divisions whose
// denominator can legitimately collapse to zero (e.g. the total variance of
// a constant dataset).
const Epsilon = 1e-8

// CheckScalar checks a single scalar value for NaN or Inf and returns a
// ValueError if numerical instability is detected.
func CheckScalar(op string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValueError(op, "numerical instability: value is NaN or Inf")
	}
	return nil
}

// CheckValues checks a slice of values for NaN or Inf.
func CheckValues(op string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(op, "numerical instability: values contain NaN or Inf")
		}
	}
	return nil
}

// SafeDivide performs division with protection against a zero denominator.
// When the denominator is exactly zero, Epsilon is substituted so callers
// never observe NaN or Inf from this path.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return numerator / Epsilon
	}
	return numerator / denominator
}
