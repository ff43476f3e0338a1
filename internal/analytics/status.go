// ABOUTME: Maps the share of goals met to a qualitative day status.
// ABOUTME: Bands are 90/75/60/40 percent; no goals yields "No goals set".
package analytics

import "github.com/harperreed/nutri/internal/models"

// ClassifyStatus labels a day from goals met out of goals configured.
func ClassifyStatus(met, configured int) string {
	if configured <= 0 {
		return models.StatusNoGoals
	}
	pct := float64(met) / float64(configured) * 100
	switch {
	case pct >= 90:
		return models.StatusExcellent
	case pct >= 75:
		return models.StatusGood
	case pct >= 60:
		return models.StatusFair
	case pct >= 40:
		return models.StatusNeedsImprovement
	default:
		return models.StatusPoor
	}
}
