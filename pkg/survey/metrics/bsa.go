package metrics

import "math"

// BSA status tokens
const (
	BSA_STATUS_SMALL  = "small"
	BSA_STATUS_NORMAL = "normal"
	BSA_STATUS_LARGE  = "large"
)

// BSAMosteller computes the body surface area with the Mosteller
// formula, rounded to two decimals. Returns nil for missing or
// non-positive inputs.
func BSAMosteller(heightCm float64, weightKg float64) *float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return nil
	}
	val := roundTo(math.Sqrt(heightCm*weightKg/3600), 2)
	return &val
}

// BSADuBois is the Du Bois variant, kept for the legacy per-section
// persistence shape.
func BSADuBois(heightCm float64, weightKg float64) *float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return nil
	}
	val := roundTo(0.007184*math.Pow(weightKg, 0.425)*math.Pow(heightCm, 0.725), 2)
	return &val
}

// BSAStatus bands a BSA value: small < 1.4, normal 1.4-1.9 inclusive,
// large above. Empty status for a nil value.
func BSAStatus(value *float64) string {
	if value == nil {
		return ""
	}
	switch {
	case *value < 1.4:
		return BSA_STATUS_SMALL
	case *value <= 1.9:
		return BSA_STATUS_NORMAL
	default:
		return BSA_STATUS_LARGE
	}
}
