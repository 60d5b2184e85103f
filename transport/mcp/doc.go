// Package mcp provides the Model Context Protocol server for the Karel
// grid world.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for session and program operations
//   - Direct binding to the world service (no HTTP round trip)
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Start a session from a named world document
//   - run_program: Execute a Starlark program against a session's world
//   - get_session: Get session details with a rendered world
//   - reset_session: Restore a session to its document's initial state
//   - list_sessions: List all active sessions
//   - delete_session: Remove a session
//   - list_worlds: List available world documents
//   - command_reference: List the commands a tier exposes
//
// Tier Awareness:
//
// Each world document fixes a command tier, and run_program rejects
// calls to commands outside the session's tier. Agents should call
// command_reference before writing programs so they only use what the
// tier exposes.
//
// Usage:
//
//	srv := mcp.NewServer(worldService)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
