// ABOUTME: MCP server setup for the nutrition tracker.
// ABOUTME: Wraps MCP server with storage Repository and analytics Engine.
package mcp

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/analytics"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultTrendDays = 7

// Server wraps the MCP server with storage and analytics access.
type Server struct {
	mcpServer   *mcp.Server
	repo        storage.Repository
	engine      *analytics.Engine
	logger      *log.Logger
	now         func() time.Time
	defaultUser string
	trendDays   int
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultUser sets the user reference used when a call names none.
func WithDefaultUser(ref string) Option {
	return func(s *Server) { s.defaultUser = ref }
}

// WithTrendDays sets the trailing window used when a call gives no days.
func WithTrendDays(days int) Option {
	return func(s *Server) {
		if days > 0 {
			s.trendDays = days
		}
	}
}

// WithLogger sets the logger shared with the analytics engine.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("nil repository")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutri",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		logger:    log.New(io.Discard),
		now:       time.Now,
		trendDays: defaultTrendDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = analytics.NewEngine(repo, repo,
		analytics.WithLogger(s.logger),
		analytics.WithClock(s.now),
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// resolveUser finds the user named by ref, falling back to the default user
// and then to the only user when exactly one exists.
func (s *Server) resolveUser(ref string) (*models.User, error) {
	if ref == "" {
		ref = s.defaultUser
	}
	if ref != "" {
		u, err := s.repo.GetUser(ref)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", ref, err)
		}
		return u, nil
	}

	users, err := s.repo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	switch len(users) {
	case 0:
		return nil, fmt.Errorf("no users yet: create one with `nutri user add`")
	case 1:
		return users[0], nil
	default:
		return nil, fmt.Errorf("%d users exist: pass a user name or ID", len(users))
	}
}

// today returns local midnight of the current day.
func (s *Server) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// parseDate reads YYYY-MM-DD in the clock's location, or returns def.
func (s *Server) parseDate(raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return def, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, s.now().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", raw)
	}
	return t, nil
}

func (s *Server) days(n int) int {
	if n <= 0 {
		return s.trendDays
	}
	return n
}
