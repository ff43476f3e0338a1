// ABOUTME: Builds ordered daily analyses over a window clamped to account creation.
// ABOUTME: Goals and meals are fetched in full before any day is computed.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

// Window is a run of whole calendar days starting at Start.
type Window struct {
	Start time.Time
	Days  int
}

// End returns the last day of the window. For an empty window it returns
// the day before Start.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, 0, w.Days-1)
}

// ClampWindow moves start forward to the account creation day when it is
// earlier, shrinking days by the same amount. Days never goes below zero.
func ClampWindow(start time.Time, days int, accountCreated time.Time) Window {
	loc := start.Location()
	start = dayStart(start, loc)
	created := dayStart(accountCreated, loc)

	w := Window{Start: start, Days: days}
	if start.Before(created) {
		shift := daysBetween(start, created)
		w.Start = created
		w.Days = days - shift
	}
	if w.Days < 0 {
		w.Days = 0
	}
	return w
}

// period is the raw material every multi-day view is computed from.
type period struct {
	userID   uuid.UUID
	goals    *models.UserGoals
	window   Window
	meals    []*models.MealRecord
	analyses []*models.DailyNutritionalAnalysis
	loc      *time.Location
}

// buildPeriod fetches goals and meals for the clamped window and produces
// one analysis per day, oldest first.
func (e *Engine) buildPeriod(ctx context.Context, userID uuid.UUID, start time.Time, days int) (*period, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d days", ErrInvalidWindow, days)
	}

	goals, err := e.fetchGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := start.Location()
	w := ClampWindow(start, days, goals.AccountCreatedAtUTC)
	if w.Days != days {
		e.logger.Debug("window clamped to account creation",
			"user", userID, "requested_days", days, "days", w.Days, "start", w.Start.Format("2006-01-02"))
	}

	p := &period{userID: userID, goals: goals, window: w, loc: loc}
	if w.Days == 0 {
		return p, nil
	}

	meals, err := e.meals.GetMealsForPeriod(ctx, userID, w.Start, w.End())
	if err != nil {
		return nil, fmt.Errorf("get meals for period: %w", err)
	}

	byDay := groupByDay(meals, loc)
	p.analyses = make([]*models.DailyNutritionalAnalysis, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		day := w.Start.AddDate(0, 0, i)
		dayMeals := byDay[dayKey(day, loc)]
		p.meals = append(p.meals, dayMeals...)
		p.analyses = append(p.analyses, BuildDailyAnalysis(userID, day, AggregateDay(dayMeals), goals.Goals))
	}
	return p, nil
}

// series returns one nutrient's daily totals in window order.
func (p *period) series(n models.Nutrient) []float64 {
	out := make([]float64, len(p.analyses))
	for i, a := range p.analyses {
		out[i] = a.Totals.Get(n)
	}
	return out
}
