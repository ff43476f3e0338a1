// ABOUTME: MCP resource implementations for nutrition data.
// ABOUTME: Provides nutri://today and nutri://trends for the default user.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI  = "nutri://today"
	trendsURI = "nutri://trends"
)

func (s *Server) registerResources() {
	// nutri://today - today's analysis plus the meals behind it
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Nutrition",
		Description: "Today's daily analysis and logged meals for the default user",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// nutri://trends - trailing-window trends and recommendations
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         trendsURI,
		Name:        "Nutrition Trends",
		Description: "Trends and recommendations over the configured trailing window",
		MIMEType:    "application/json",
	}, s.handleTrendsResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	u, err := s.resolveUser("")
	if err != nil {
		return nil, err
	}
	today := s.today()

	analysis, err := s.engine.GenerateDailyAnalysis(ctx, u.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to analyse today: %w", err)
	}
	meals, err := s.repo.GetMealsForDate(ctx, u.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	result := map[string]any{
		"user":     u.Name,
		"date":     today.Format("2006-01-02"),
		"analysis": analysis,
		"meals":    meals,
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleTrendsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	u, err := s.resolveUser("")
	if err != nil {
		return nil, err
	}

	trends, err := s.engine.GenerateTrends(ctx, u.ID, s.trendDays)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trends: %w", err)
	}
	recs, err := s.engine.GetPersonalizedRecommendations(ctx, u.ID, s.trendDays)
	if err != nil {
		return nil, fmt.Errorf("failed to compute recommendations: %w", err)
	}

	result := map[string]any{
		"user":            u.Name,
		"days":            s.trendDays,
		"trends":          trends,
		"recommendations": recs,
	}
	return jsonResource(trendsURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
