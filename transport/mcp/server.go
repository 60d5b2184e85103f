package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/karelgrid/karel/service"
	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/command"
)

// Server exposes the world service as a set of MCP tools so AI agents
// can drive robot sessions directly.
type Server struct {
	service   service.WorldService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server bound to the given world service.
func NewServer(svc service.WorldService) *Server {
	s := &Server{service: svc}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Karel Grid World",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Karel Grid World - MCP Interface

Write Starlark programs that steer a robot through a grid of avenues
(columns, west to east) and streets (rows, south to north). The robot
moves one cell at a time, picks up and puts down balls, and senses
walls and its own facing.

AVAILABLE TOOLS:
- create_session: Start a session from a named world document
- run_program: Execute a Starlark program against a session's world
- get_session: Get session details with a rendered world
- reset_session: Restore a session's world to its document state
- list_sessions: List all active sessions
- delete_session: Remove a session
- list_worlds: List available world documents
- command_reference: List the robot commands a tier exposes

Each world document fixes a command tier (normal, super, or ultra);
programs may only call the commands that tier exposes. Use
command_reference before writing a program.`),
	)

	// Register all tools
	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Session management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new session from a world document",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"world_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the world document to start from",
				},
			},
			Required: []string{"world_id"},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session, including a rendered view of its world",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	// Program execution
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "run_program",
		Description: "Execute a Starlark program against a session's world. Commands that complete before a failure keep their effect.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Starlark program source",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what this program is meant to accomplish (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "source"},
		},
	}, s.handleRunProgram)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_session",
		Description: "Restore a session's world to its document's initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleResetSession)

	// World documents
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_worlds",
		Description: "List available world documents",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListWorlds)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "command_reference",
		Description: "List the robot commands available at a command tier. Programs may only call what their session's tier exposes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tier": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"normal", "super", "ultra"},
					"description": "Command tier to describe (defaults to all three)",
				},
			},
		},
	}, s.handleCommandReference)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server over stdio, blocking until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool handlers

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	worldID, _ := args["world_id"].(string)

	info, err := s.service.CreateSession(ctx, worldID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nWorld: %s\nTier: %s\n\n%s",
		info.ID, info.WorldID, info.Tier, info.Rendered)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		result += fmt.Sprintf("- %s (World: %s, Tier: %s, Created: %s)\n",
			info.ID, info.WorldID, info.Tier, info.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	info, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	if err := s.service.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleRunProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	source, _ := args["source"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	result, err := s.service.RunProgram(ctx, sessionID, source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunResult(result)), nil
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	info, err := s.service.ResetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session %s restored to world %s\n\n%s",
		info.ID, info.WorldID, info.Rendered)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListWorlds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	worlds, err := s.service.ListWorlds(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Worlds:\n\n"
	for _, info := range worlds {
		result += fmt.Sprintf("• %s\n  %s\n  Size: %d avenues x %d streets, Tier: %s\n\n",
			info.WorldID, info.Description, info.Size.Avenue, info.Size.Street, info.Tier)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleCommandReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	tierArg, _ := args["tier"].(string)

	tiers := []command.Tier{command.TierNormal, command.TierSuper, command.TierUltra}
	if tierArg != "" {
		tier, err := command.ParseTier(tierArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tiers = []command.Tier{tier}
	}

	var b strings.Builder
	for _, tier := range tiers {
		names, err := tierCommandNames(tier)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		b.WriteString(fmt.Sprintf("Tier %s (%d commands):\n", tier, len(names)))
		for _, name := range names {
			b.WriteString("  " + name + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(programReference)

	return mcp.NewToolResultText(b.String()), nil
}

// tierCommandNames builds a throwaway table to enumerate a tier's names.
func tierCommandNames(tier command.Tier) ([]string, error) {
	w, err := world.NewEmpty(world.Position{Avenue: 1, Street: 1})
	if err != nil {
		return nil, err
	}
	table, err := command.NewTable(w, tier)
	if err != nil {
		return nil, err
	}
	return table.Names(), nil
}

const programReference = `PROGRAM NOTES:
- Programs are Starlark: def, if/elif/else, for, while, and top-level
  statements are all allowed.
- Commands take no keyword arguments. paint and color_is take a single
  color: an entry of the color table (color["red"]), a name ("red"), or
  a CSS form ("#ff0000", "rgb(255,0,0)").
- A program that fails partway keeps the effects of the commands that
  completed before the failure.
- move into a wall or boundary fails the program; check front_is_clear
  first.`

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nWorld: %s\nTier: %s\nCreated: %s\n\n%s",
		info.ID, info.WorldID, info.Tier,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		info.Rendered)
}

func formatRunResult(result *service.RunResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Program completed\n")
	} else {
		b.WriteString(fmt.Sprintf("✗ Program failed (%s): %s\n", result.ErrorKind, result.Error))
	}

	if result.World != nil {
		robot := result.World.Robot
		b.WriteString(fmt.Sprintf("Robot: avenue %d, street %d, facing %s\n",
			robot.Avenue, robot.Street, robot.Direction))
	}

	b.WriteString("\n")
	b.WriteString(result.Rendered)
	return b.String()
}
