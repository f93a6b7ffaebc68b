package metrics

import "math"

// BMI status tokens (display localization is a host concern)
const (
	BMI_STATUS_UNDERWEIGHT = "underweight"
	BMI_STATUS_NORMAL      = "normal"
	BMI_STATUS_OVERWEIGHT  = "overweight"
	BMI_STATUS_OBESE       = "obese"
)

type BMIResult struct {
	Value  *float64 `json:"value"`
	Status string   `json:"status"`
}

// BMIBand is one banding threshold: the status applies from Min
// (inclusive) up to the next band's Min.
type BMIBand struct {
	Min    float64 `bson:"min" json:"min"`
	Status string  `bson:"status" json:"status"`
}

// DefaultBMIBands is the deployed banding scheme: underweight < 18.5,
// normal 18.5-24.9, overweight 25-29.9, obese >= 30. Alternative
// granularities are supported by passing a different band list to
// BMIWithBands.
func DefaultBMIBands() []BMIBand {
	return []BMIBand{
		{Min: 0, Status: BMI_STATUS_UNDERWEIGHT},
		{Min: 18.5, Status: BMI_STATUS_NORMAL},
		{Min: 25, Status: BMI_STATUS_OVERWEIGHT},
		{Min: 30, Status: BMI_STATUS_OBESE},
	}
}

// BMI computes the body mass index from height in cm and weight in kg,
// rounded to one decimal, banded with the default scheme. Missing or
// non-positive inputs yield a nil value and empty status.
func BMI(heightCm float64, weightKg float64) BMIResult {
	return BMIWithBands(heightCm, weightKg, DefaultBMIBands())
}

func BMIWithBands(heightCm float64, weightKg float64, bands []BMIBand) BMIResult {
	if heightCm <= 0 || weightKg <= 0 {
		return BMIResult{}
	}
	m := heightCm / 100
	val := roundTo(weightKg/(m*m), 1)
	return BMIResult{Value: &val, Status: bmiStatus(val, bands)}
}

// bmiStatus bands the already rounded value.
func bmiStatus(value float64, bands []BMIBand) string {
	status := ""
	for _, b := range bands {
		if value >= b.Min {
			status = b.Status
		}
	}
	return status
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
