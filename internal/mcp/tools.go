// ABOUTME: MCP tool implementations for meal logging and nutrition analytics.
// ABOUTME: Each analytics tool is a thin adapter over one Engine entry point.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Log a meal, either from a saved food or with an inline per-100g profile",
	}, s.handleLogMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List recent meals for a user, most recent first",
	}, s.handleListMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_analysis",
		Description: "Compare one day's intake with the user's goals",
	}, s.handleDailyAnalysis)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_analysis",
		Description: "Daily analyses for up to seven days from a start date",
	}, s.handleWeeklyAnalysis)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "monthly_analysis",
		Description: "Daily analyses for up to thirty days from a start date",
	}, s.handleMonthlyAnalysis)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "trends",
		Description: "Averages, trends, consistency, adherence and insights over the trailing days",
	}, s.handleTrends)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommendations",
		Description: "Personalized recommendations from the trailing days",
	}, s.handleRecommendations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "trend_insights",
		Description: "Insight sentences from the trailing days",
	}, s.handleTrendInsights)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "trend_metrics",
		Description: "Numeric trend metrics: averages, trend labels and consistency",
	}, s.handleTrendMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "consistency_analysis",
		Description: "Consistency scores with strict all-goals adherence",
	}, s.handleConsistencyAnalysis)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "goal_adherence",
		Description: "Goal adherence rate with the per-day goals-met series",
	}, s.handleGoalAdherence)
}

// Tool input/output types

type logMealInput struct {
	User         string   `json:"user,omitempty" jsonschema:"User name or ID; defaults to the configured user"`
	Food         string   `json:"food,omitempty" jsonschema:"Saved food name or ID; its profile is used"`
	FoodName     string   `json:"food_name,omitempty" jsonschema:"Name for a meal without a saved food"`
	Slot         string   `json:"slot" jsonschema:"Meal slot: breakfast, lunch, dinner or snack"`
	Grams        float64  `json:"grams" jsonschema:"Portion size in grams"`
	Calories     *float64 `json:"calories,omitempty" jsonschema:"kcal per 100 g for an inline profile"`
	Protein      *float64 `json:"protein,omitempty" jsonschema:"Protein grams per 100 g"`
	Fat          *float64 `json:"fat,omitempty" jsonschema:"Fat grams per 100 g"`
	Carbohydrate *float64 `json:"carbohydrate,omitempty" jsonschema:"Carbohydrate grams per 100 g"`
	ConsumedAt   string   `json:"consumed_at,omitempty" jsonschema:"Timestamp (RFC 3339 or YYYY-MM-DD HH:MM); defaults to now"`
}

type mealOutput struct {
	ID       string  `json:"id"`
	FoodName string  `json:"food_name"`
	Slot     string  `json:"slot"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Message  string  `json:"message"`
}

type listMealsInput struct {
	User  string `json:"user,omitempty" jsonschema:"User name or ID; defaults to the configured user"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listMealsOutput struct {
	Meals   []*models.MealRecord `json:"meals"`
	Message string               `json:"message,omitempty"`
}

type dayInput struct {
	User string `json:"user,omitempty" jsonschema:"User name or ID; defaults to the configured user"`
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD; defaults to today"`
}

type periodInput struct {
	User  string `json:"user,omitempty" jsonschema:"User name or ID; defaults to the configured user"`
	Start string `json:"start,omitempty" jsonschema:"First day as YYYY-MM-DD; defaults so the period ends today"`
}

type windowInput struct {
	User string `json:"user,omitempty" jsonschema:"User name or ID; defaults to the configured user"`
	Days int    `json:"days,omitempty" jsonschema:"Trailing window length in days; defaults to the configured window"`
}

type analysesOutput struct {
	Days    []*models.DailyNutritionalAnalysis `json:"days"`
	Count   int                                `json:"count"`
	Message string                             `json:"message,omitempty"`
}

type textListOutput struct {
	Items   []string `json:"items"`
	Message string   `json:"message,omitempty"`
}

// Tool handlers

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, mealOutput, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, mealOutput{}, err
	}
	slot, err := models.ParseMealSlot(input.Slot)
	if err != nil {
		return nil, mealOutput{}, err
	}

	m := models.NewMealRecord(u.ID, input.FoodName, slot, input.Grams)
	switch {
	case input.Food != "":
		f, err := s.repo.GetFood(input.Food)
		if err != nil {
			return nil, mealOutput{}, fmt.Errorf("food %q: %w", input.Food, err)
		}
		m.WithFood(f)
	case input.FoodName == "":
		return nil, mealOutput{}, fmt.Errorf("either food or food_name is required")
	case input.Calories != nil || input.Protein != nil || input.Fat != nil || input.Carbohydrate != nil:
		m.WithProfile(models.NutrientProfile{
			Calories:     deref(input.Calories),
			Protein:      deref(input.Protein),
			Fat:          deref(input.Fat),
			Carbohydrate: deref(input.Carbohydrate),
		})
	}

	if input.ConsumedAt != "" {
		t, err := parseTimestamp(input.ConsumedAt, s.now().Location())
		if err != nil {
			return nil, mealOutput{}, err
		}
		m.WithConsumedAt(t)
	} else {
		m.WithConsumedAt(s.now())
	}

	if err := s.repo.CreateMeal(m); err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to log meal: %w", err)
	}

	v, _ := m.Nutrients()
	short := m.ID.String()[:8]
	return nil, mealOutput{
		ID:       short,
		FoodName: m.FoodName,
		Slot:     string(m.Slot),
		Grams:    m.Grams,
		Calories: models.Round1(v.Calories),
		Message:  fmt.Sprintf("Logged %s: %.0f g %s, %.0f kcal (ID: %s)", m.Slot, m.Grams, m.FoodName, v.Calories, short),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}

	meals, err := s.repo.ListMeals(&u.ID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if len(meals) == 0 {
		return nil, listMealsOutput{Meals: []*models.MealRecord{}, Message: "No meals found."}, nil
	}
	return nil, listMealsOutput{Meals: meals}, nil
}

func (s *Server) handleDailyAnalysis(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	day, err := s.parseDate(input.Date, s.today())
	if err != nil {
		return nil, nil, err
	}
	a, err := s.engine.GenerateDailyAnalysis(ctx, u.ID, day)
	if err != nil {
		return nil, nil, fmt.Errorf("daily analysis: %w", err)
	}
	return nil, a, nil
}

func (s *Server) handleWeeklyAnalysis(ctx context.Context, req *mcp.CallToolRequest, input periodInput) (*mcp.CallToolResult, any, error) {
	return s.periodAnalyses(ctx, input, 7, s.engine.GenerateWeeklyAnalysis)
}

func (s *Server) handleMonthlyAnalysis(ctx context.Context, req *mcp.CallToolRequest, input periodInput) (*mcp.CallToolResult, any, error) {
	return s.periodAnalyses(ctx, input, 30, s.engine.GenerateMonthlyAnalysis)
}

type periodFunc func(ctx context.Context, userID uuid.UUID, start time.Time) ([]*models.DailyNutritionalAnalysis, error)

func (s *Server) periodAnalyses(ctx context.Context, input periodInput, span int, gen periodFunc) (*mcp.CallToolResult, any, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	start, err := s.parseDate(input.Start, s.today().AddDate(0, 0, -(span-1)))
	if err != nil {
		return nil, nil, err
	}
	days, err := gen(ctx, u.ID, start)
	if err != nil {
		return nil, nil, fmt.Errorf("period analysis: %w", err)
	}
	out := analysesOutput{Days: days, Count: len(days)}
	if len(days) == 0 {
		out.Days = []*models.DailyNutritionalAnalysis{}
		out.Message = "No days in range since the account was created."
	}
	return nil, out, nil
}

func (s *Server) handleTrends(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.engine.GenerateTrends(ctx, u.ID, s.days(input.Days))
	if err != nil {
		return nil, nil, fmt.Errorf("trends: %w", err)
	}
	return nil, t, nil
}

func (s *Server) handleRecommendations(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, textListOutput, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, textListOutput{}, err
	}
	recs, err := s.engine.GetPersonalizedRecommendations(ctx, u.ID, s.days(input.Days))
	if err != nil {
		return nil, textListOutput{}, fmt.Errorf("recommendations: %w", err)
	}
	return nil, textList(recs, "No recommendations right now."), nil
}

func (s *Server) handleTrendInsights(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, textListOutput, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, textListOutput{}, err
	}
	insights, err := s.engine.GetTrendInsights(ctx, u.ID, s.days(input.Days))
	if err != nil {
		return nil, textListOutput{}, fmt.Errorf("trend insights: %w", err)
	}
	return nil, textList(insights, "No insights yet."), nil
}

func (s *Server) handleTrendMetrics(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	m, err := s.engine.GetTrendMetrics(ctx, u.ID, s.days(input.Days))
	if err != nil {
		return nil, nil, fmt.Errorf("trend metrics: %w", err)
	}
	return nil, m, nil
}

func (s *Server) handleConsistencyAnalysis(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.engine.GetConsistencyAnalysis(ctx, u.ID, s.days(input.Days))
	if err != nil {
		return nil, nil, fmt.Errorf("consistency analysis: %w", err)
	}
	return nil, c, nil
}

func (s *Server) handleGoalAdherence(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	u, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.engine.GetGoalAdherenceTrend(ctx, u.ID, s.days(input.Days))
	if err != nil {
		return nil, nil, fmt.Errorf("goal adherence: %w", err)
	}
	return nil, g, nil
}

func textList(items []string, empty string) textListOutput {
	if len(items) == 0 {
		return textListOutput{Items: []string{}, Message: empty}
	}
	return textListOutput{Items: items}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// parseTimestamp accepts RFC 3339 or "YYYY-MM-DD HH:MM" in loc.
func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", raw, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (use RFC 3339 or YYYY-MM-DD HH:MM)", raw)
}
