// ABOUTME: Analytics engine entry points over the meal and goal readers.
// ABOUTME: Every call recomputes from fetched data; nothing is cached.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

const (
	weekDays  = 7
	monthDays = 30
)

var (
	// ErrUserNotFound is returned when the user has no goals record.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidWindow is returned for a non-positive day count.
	ErrInvalidWindow = errors.New("invalid analysis window")
)

// MealReader provides a user's meal records with resolved nutrient data.
type MealReader interface {
	// GetMealsForDate returns meals on the calendar day of date, in date's location.
	GetMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.MealRecord, error)
	// GetMealsForPeriod returns meals from the start day through the end day inclusive.
	GetMealsForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.MealRecord, error)
}

// GoalReader provides a user's goals and account creation date.
type GoalReader interface {
	GetUserGoalsAndCreationDate(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error)
}

// Engine computes analyses, trends and recommendations.
type Engine struct {
	meals    MealReader
	goals    GoalReader
	logger   *log.Logger
	now      func() time.Time
	families []RuleFamily
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for degraded computations.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the source of "today" for trailing windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRuleFamilies replaces the recommendation rule families.
func WithRuleFamilies(f ...RuleFamily) Option {
	return func(e *Engine) { e.families = f }
}

// NewEngine creates an engine over the two data capabilities.
func NewEngine(meals MealReader, goals GoalReader, opts ...Option) *Engine {
	e := &Engine{
		meals:    meals,
		goals:    goals,
		logger:   log.New(io.Discard),
		now:      time.Now,
		families: DefaultFamilies,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) fetchGoals(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error) {
	g, err := e.goals.GetUserGoalsAndCreationDate(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUserNotFound, userID, err)
		}
		return nil, fmt.Errorf("get user goals: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return g, nil
}

// GenerateDailyAnalysis analyses one calendar day in date's location.
func (e *Engine) GenerateDailyAnalysis(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailyNutritionalAnalysis, error) {
	goals, err := e.fetchGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	meals, err := e.meals.GetMealsForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get meals for date: %w", err)
	}

	day := dayStart(date, date.Location())
	dayMeals := groupByDay(meals, date.Location())[dayKey(day, date.Location())]
	return BuildDailyAnalysis(userID, day, AggregateDay(dayMeals), goals.Goals), nil
}

// GenerateAnalysis analyses days consecutive days from start, clamped to
// the account creation date.
func (e *Engine) GenerateAnalysis(ctx context.Context, userID uuid.UUID, start time.Time, days int) ([]*models.DailyNutritionalAnalysis, error) {
	p, err := e.buildPeriod(ctx, userID, start, days)
	if err != nil {
		return nil, err
	}
	return p.analyses, nil
}

// GenerateWeeklyAnalysis returns at most seven daily analyses from start.
func (e *Engine) GenerateWeeklyAnalysis(ctx context.Context, userID uuid.UUID, start time.Time) ([]*models.DailyNutritionalAnalysis, error) {
	return e.GenerateAnalysis(ctx, userID, start, weekDays)
}

// GenerateMonthlyAnalysis returns at most thirty daily analyses from start.
func (e *Engine) GenerateMonthlyAnalysis(ctx context.Context, userID uuid.UUID, start time.Time) ([]*models.DailyNutritionalAnalysis, error) {
	return e.GenerateAnalysis(ctx, userID, start, monthDays)
}

// report is one trailing-window computation shared by the narrower views.
type report struct {
	period    *period
	trends    *models.NutritionalTrends
	adherence Adherence
}

// trailingReport computes trends over the days ending today.
func (e *Engine) trailingReport(ctx context.Context, userID uuid.UUID, days int) (*report, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d days", ErrInvalidWindow, days)
	}
	now := e.now()
	today := dayStart(now, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	p, err := e.buildPeriod(ctx, userID, start, days)
	if err != nil {
		return nil, err
	}
	t, adh, err := buildTrends(ctx, p)
	if err != nil {
		return nil, err
	}
	return &report{period: p, trends: t, adherence: adh}, nil
}

// GenerateTrends computes the trends record for the trailing days.
func (e *Engine) GenerateTrends(ctx context.Context, userID uuid.UUID, days int) (*models.NutritionalTrends, error) {
	r, err := e.trailingReport(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return r.trends, nil
}

// GetPersonalizedRecommendations returns de-duplicated advice for the
// trailing days. Only missing user data makes it fail.
func (e *Engine) GetPersonalizedRecommendations(ctx context.Context, userID uuid.UUID, days int) ([]string, error) {
	r, err := e.trailingReport(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return GenerateRecommendations(e.logger, RecommendationInput{
		Goals:     r.period.goals,
		Trends:    r.trends,
		Adherence: r.adherence,
	}, e.families), nil
}

// GetTrendInsights returns only the insight sentences.
func (e *Engine) GetTrendInsights(ctx context.Context, userID uuid.UUID, days int) ([]string, error) {
	r, err := e.trailingReport(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return r.trends.Insights, nil
}

// TrendMetrics is the numeric part of a trends record.
type TrendMetrics struct {
	Days         int                   `json:"days" yaml:"days"`
	Averages     models.NutrientValues `json:"averages" yaml:"averages"`
	Trends       models.NutrientLabels `json:"trends" yaml:"trends"`
	Consistency  models.NutrientValues `json:"consistency" yaml:"consistency"`
	OverallTrend string                `json:"overall_trend" yaml:"overall_trend"`
	IsImproving  bool                  `json:"is_improving" yaml:"is_improving"`
}

// GetTrendMetrics returns averages, trend labels and consistency scores.
func (e *Engine) GetTrendMetrics(ctx context.Context, userID uuid.UUID, days int) (*TrendMetrics, error) {
	r, err := e.trailingReport(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	t := r.trends
	return &TrendMetrics{
		Days:         t.Days,
		Averages:     t.Averages,
		Trends:       t.Trends,
		Consistency:  t.Consistency,
		OverallTrend: t.OverallTrend,
		IsImproving:  t.IsImproving,
	}, nil
}

// ConsistencyAnalysis pairs consistency scores with strict adherence.
type ConsistencyAnalysis struct {
	Days         int                   `json:"days" yaml:"days"`
	Consistency  models.NutrientValues `json:"consistency" yaml:"consistency"`
	IsConsistent bool                  `json:"is_consistent" yaml:"is_consistent"`
	Strict       StrictAdherence       `json:"strict_adherence" yaml:"strict_adherence"`
}

// GetConsistencyAnalysis is the only view that reports strict adherence.
func (e *Engine) GetConsistencyAnalysis(ctx context.Context, userID uuid.UUID, days int) (*ConsistencyAnalysis, error) {
	r, err := e.trailingReport(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return &ConsistencyAnalysis{
		Days:         r.trends.Days,
		Consistency:  r.trends.Consistency,
		IsConsistent: r.trends.IsConsistent,
		Strict:       CalculateStrictAdherence(r.period.analyses, r.period.goals.Goals),
	}, nil
}

// DailyAdherence is one day of the adherence series.
type DailyAdherence struct {
	Date            time.Time `json:"date" yaml:"date"`
	GoalsMet        int       `json:"goals_met" yaml:"goals_met"`
	GoalsConfigured int       `json:"goals_configured" yaml:"goals_configured"`
	Status          string    `json:"status" yaml:"status"`
}

// GoalAdherenceTrend is the flexible adherence summary plus its daily series.
type GoalAdherenceTrend struct {
	Days               int                   `json:"days" yaml:"days"`
	AdherenceRate      float64               `json:"adherence_rate" yaml:"adherence_rate"`
	DaysWithAnyGoalMet int                   `json:"days_with_any_goal_met" yaml:"days_with_any_goal_met"`
	NutrientAdherence  models.NutrientValues `json:"nutrient_adherence" yaml:"nutrient_adherence"`
	Daily              []DailyAdherence      `json:"daily" yaml:"daily"`
}

// GetGoalAdherenceTrend returns adherence and the per-day goals-met series.
func (e *Engine) GetGoalAdherenceTrend(ctx context.Context, userID uuid.UUID, days int) (*GoalAdherenceTrend, error) {
	r, err := e.trailingReport(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	configured := r.period.goals.Goals.Configured()
	out := &GoalAdherenceTrend{
		Days:               r.adherence.Days,
		AdherenceRate:      r.adherence.Rate,
		DaysWithAnyGoalMet: r.adherence.DaysWithAnyGoalMet,
		NutrientAdherence:  r.adherence.Nutrient,
		Daily:              make([]DailyAdherence, 0, len(r.period.analyses)),
	}
	for _, a := range r.period.analyses {
		out.Daily = append(out.Daily, DailyAdherence{
			Date:            a.Date,
			GoalsMet:        a.GoalsMet(),
			GoalsConfigured: configured,
			Status:          a.OverallStatus,
		})
	}
	return out, nil
}
