// Package websocket pushes live world updates to watching clients.
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine pair that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Connections are watch-only: clients never send commands over the socket
// (programs run through the REST or MCP transports). Every message is a
// JSON Message; "world_update" messages carry the full world state and an
// ASCII rendering after each program run or reset.
//
// Session Integration:
//
// Clients specify the session to watch via query parameter (?session=ab12)
// when establishing the connection. Updates are broadcast only to clients
// watching that session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a program run:
//	hub.BroadcastWorld(sessionID, result.World, result.Rendered)
package websocket
