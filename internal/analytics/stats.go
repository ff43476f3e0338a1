// ABOUTME: Per-nutrient trend direction and consistency score over a period.
// ABOUTME: Fewer than two points yields fallback values, never an error.
package analytics

import (
	"math"

	"github.com/harperreed/nutri/internal/models"
)

const (
	stableChangePct  = 5.0
	consistencyFloor = 10.0
)

// CalculateTrend compares the mean of the first half of values with the
// mean of the second half. Odd-length series put the extra point in the
// second half.
func CalculateTrend(values []float64) string {
	if len(values) < 2 {
		return models.TrendInsufficientData
	}

	half := len(values) / 2
	firstMean := mean(values[:half])
	secondMean := mean(values[half:])
	if firstMean == 0 {
		return models.TrendInsufficientData
	}

	changePct := math.Abs(secondMean-firstMean) * 100 / firstMean
	if changePct < stableChangePct {
		return models.TrendStable
	}
	if secondMean > firstMean {
		return models.TrendImproving
	}
	return models.TrendDeclining
}

// CalculateConsistency scores day-to-day stability from 10 to 100 using the
// coefficient of variation. Short or all-zero series score 100.
func CalculateConsistency(values []float64) float64 {
	if len(values) < 2 {
		return 100
	}
	m := mean(values)
	if m == 0 {
		return 100
	}

	cov := populationStdDev(values, m) / m
	raw := math.Max(0, 100-cov*100)
	return models.Round1(math.Max(consistencyFloor, raw))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64, m float64) float64 {
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
