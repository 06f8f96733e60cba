// Package mcp implements the Model Context Protocol server for zodiac-roster.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/internal/roster"
	"github.com/ajitpratap0/zodiac-roster/internal/zodiac"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

// Server wraps an MCPServer around a roster. Tool calls may arrive
// concurrently; they are serialized so the roster sees one command at a time.
type Server struct {
	mcp    *mcpserver.MCPServer
	mu     sync.Mutex
	roster *roster.Roster
	logger *slog.Logger
}

// PersonView is the tool representation of a person.
type PersonView struct {
	ID string `json:"id"`
	models.Record
}

// NewServer creates a new MCP server. If r is nil every tool call returns an
// error response instead of panicking.
func NewServer(r *roster.Roster, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		roster: r,
		logger: logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"zodiac-roster",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListTool(), s.handleList)
	mcpSrv.AddTool(buildAddTool(), s.handleAdd)
	mcpSrv.AddTool(buildDeleteTool(), s.handleDelete)
	mcpSrv.AddTool(buildSetFieldTool(), s.handleSetField)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)
	mcpSrv.AddTool(buildZodiacTool(), s.handleZodiac)
	mcpSrv.AddTool(buildRefreshTool(), s.handleRefresh)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleList is the exported handler for the "list_people" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleList(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleList(ctx, req)
}

// HandleAdd is the exported handler for the "add_person" tool.
func (s *Server) HandleAdd(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAdd(ctx, req)
}

// HandleDelete is the exported handler for the "delete_person" tool.
func (s *Server) HandleDelete(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleDelete(ctx, req)
}

// HandleSetField is the exported handler for the "set_field" tool.
func (s *Server) HandleSetField(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSetField(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// HandleZodiac is the exported handler for the "zodiac" tool.
func (s *Server) HandleZodiac(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleZodiac(ctx, req)
}

// HandleRefresh is the exported handler for the "refresh" tool.
func (s *Server) HandleRefresh(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleRefresh(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

func viewOf(p *models.Person) PersonView {
	return PersonView{ID: p.ID(), Record: p.Record()}
}

func viewsOf(people []*models.Person) []PersonView {
	out := make([]PersonView, len(people))
	for i, p := range people {
		out[i] = viewOf(p)
	}
	return out
}

// lookup resolves the required "id" argument to a roster member.
func (s *Server) lookup(req mcpgo.CallToolRequest) (*models.Person, *mcpgo.CallToolResult) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return nil, mcpgo.NewToolResultError("id is required and must not be empty")
	}
	p, err := s.roster.Find(id)
	if err != nil {
		return nil, mcpgo.NewToolResultErrorf("person %q not found", id)
	}
	return p, nil
}

// --- tool definitions ---

func buildListTool() mcpgo.Tool {
	return mcpgo.NewTool("list_people",
		mcpgo.WithDescription("List people in the roster. Filter and sort persist for later list calls."),
		mcpgo.WithString("filter",
			mcpgo.Description("Case-insensitive text matched against names, email and signs; empty shows everyone"),
		),
		mcpgo.WithString("sort",
			mcpgo.Description("Field to sort by ascending, e.g. last_name, birth_date, is_adult; empty keeps insertion order"),
		),
	)
}

func buildAddTool() mcpgo.Tool {
	return mcpgo.NewTool("add_person",
		mcpgo.WithDescription("Add a person. With no arguments adds the default New User born 20 years ago today."),
		mcpgo.WithString("first_name", mcpgo.Description("First name")),
		mcpgo.WithString("last_name", mcpgo.Description("Last name")),
		mcpgo.WithString("email", mcpgo.Description("Optional email address")),
		mcpgo.WithString("birth_date", mcpgo.Description("Birth date as YYYY-MM-DD")),
	)
}

func buildDeleteTool() mcpgo.Tool {
	return mcpgo.NewTool("delete_person",
		mcpgo.WithDescription("Delete a person by ID."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The ID returned by list_people or add_person"),
		),
	)
}

func buildSetFieldTool() mcpgo.Tool {
	return mcpgo.NewTool("set_field",
		mcpgo.WithDescription("Edit one field of a person. Invalid values are rejected and the old value kept."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The person ID"),
		),
		mcpgo.WithString("field",
			mcpgo.Required(),
			mcpgo.Description("first_name, last_name, email or birth_date"),
		),
		mcpgo.WithString("value",
			mcpgo.Description("New value; empty clears the email"),
		),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Roster statistics: totals, adults, birthdays today, counts by sign."),
	)
}

func buildZodiacTool() mcpgo.Tool {
	return mcpgo.NewTool("zodiac",
		mcpgo.WithDescription("Compute age, adulthood, sun sign, chinese sign and birthday flag for a birth date."),
		mcpgo.WithString("date",
			mcpgo.Required(),
			mcpgo.Description("Birth date as YYYY-MM-DD"),
		),
	)
}

func buildRefreshTool() mcpgo.Tool {
	return mcpgo.NewTool("refresh",
		mcpgo.WithDescription("Recompute every person's derived fields as of today and save."),
	)
}

// --- tool handlers ---

// handleList applies the optional filter and sort and returns the view.
func (s *Server) handleList(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	args := req.GetArguments()
	if _, ok := args["filter"]; ok {
		s.roster.SetFilter(req.GetString("filter", ""))
	}
	if _, ok := args["sort"]; ok {
		if err := s.roster.SortBy(req.GetString("sort", "")); err != nil {
			return mcpgo.NewToolResultErrorf("invalid sort: %s", err.Error()), nil
		}
	}

	result := map[string]any{
		"filter": s.roster.FilterText(),
		"sort":   string(s.roster.SortKey()),
		"total":  s.roster.Len(),
		"people": viewsOf(s.roster.View()),
	}
	return toolResultJSON(result)
}

// handleAdd adds the default person or one built from the arguments.
func (s *Server) handleAdd(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	first := req.GetString("first_name", "")
	last := req.GetString("last_name", "")
	email := req.GetString("email", "")
	birth := req.GetString("birth_date", "")

	var (
		p   *models.Person
		err error
	)
	if first == "" && last == "" && email == "" && birth == "" {
		p, err = s.roster.AddPerson()
	} else {
		p, err = s.addPerson(first, last, email, birth)
	}
	if err != nil {
		return mcpgo.NewToolResultErrorf("add failed: %s", err.Error()), nil
	}

	s.logger.Info("mcp: added person", "id", p.ID())
	return toolResultJSON(viewOf(p))
}

func (s *Server) addPerson(first, last, email, birth string) (*models.Person, error) {
	var birthDate *civil.Date
	if strings.TrimSpace(birth) != "" {
		d, err := civil.Parse(birth)
		if err != nil {
			return nil, &models.ValidationError{Field: models.FieldBirthDate, Value: birth, Err: models.ErrInvalidDate}
		}
		birthDate = &d
	}
	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}
	p, err := s.roster.NewPerson(first, last, emailPtr, birthDate)
	if err != nil {
		return nil, err
	}
	if err := s.roster.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// handleDelete removes a person by ID.
func (s *Server) handleDelete(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, errResult := s.lookup(req)
	if errResult != nil {
		return errResult, nil
	}
	if err := s.roster.Delete(p); err != nil {
		return mcpgo.NewToolResultErrorf("delete failed: %s", err.Error()), nil
	}

	s.logger.Info("mcp: deleted person", "id", p.ID())
	return toolResultJSON(map[string]any{"deleted": true})
}

// handleSetField edits one field through the validating setter.
func (s *Server) handleSetField(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, errResult := s.lookup(req)
	if errResult != nil {
		return errResult, nil
	}
	field := req.GetString("field", "")
	if strings.TrimSpace(field) == "" {
		return mcpgo.NewToolResultError("field is required and must not be empty"), nil
	}

	if err := s.roster.SetField(p, field, req.GetString("value", "")); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.logger.Debug("mcp: rejected edit", "field", string(verr.Field), "error", err)
		}
		return mcpgo.NewToolResultErrorf("set_field failed: %s", err.Error()), nil
	}
	return toolResultJSON(viewOf(p))
}

// handleStats returns roster statistics.
func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return toolResultJSON(s.roster.Stats())
}

// handleZodiac runs the calculator for one date as of the roster's today.
func (s *Server) handleZodiac(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := civil.Parse(req.GetString("date", ""))
	if err != nil {
		return mcpgo.NewToolResultErrorf("invalid date: %s", err.Error()), nil
	}
	today := s.roster.Today()
	if zodiac.IsFutureDate(d, today) {
		return mcpgo.NewToolResultErrorf("date %s is in the future", d), nil
	}

	result := map[string]any{
		"date":    d.String(),
		"today":   today.String(),
		"profile": zodiac.Derive(d, today),
	}
	return toolResultJSON(result)
}

// handleRefresh re-derives every member.
func (s *Server) handleRefresh(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.roster == nil {
		return mcpgo.NewToolResultError("roster is unavailable"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Refresh(); err != nil {
		return mcpgo.NewToolResultErrorf("refresh failed: %s", err.Error()), nil
	}
	return toolResultJSON(map[string]any{"refreshed": s.roster.Len()})
}
