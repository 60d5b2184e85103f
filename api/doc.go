// Package api provides the HTTP REST surface over Karel world sessions.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session over a world document
//   - GET /api/sessions - List sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get one session with its world state
//   - DELETE /api/sessions/{id} - Delete a session
//
// Program Execution:
//   - POST /api/sessions/{id}/run - Run program source against the session
//   - POST /api/sessions/{id}/reset - Rebuild the world from its document
//   - GET /api/sessions/{id}/state - Current world state and rendering
//
// World Documents:
//   - GET /api/worlds - List available world documents
//
// WebSocket:
//   - GET /ws?session={id} - Watch a session for world updates
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Session creation takes
// {"world_id": "..."}; program runs take {"source": "..."} and answer with
// a RunResult: success flag, error message and kind on failure, and the
// world state after the run. A failing program is a 200 with success=false
// (the world keeps the prefix that ran); only unknown sessions and
// malformed requests produce error statuses.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{"error": "error message"}
package api
