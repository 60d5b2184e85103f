// Package service defines the application-level API over Karel worlds:
// session lifecycle, program execution, and world listings. It is the
// layer the HTTP, WebSocket, and MCP transports all talk to.
//
// A session pairs a live World with the document it was built from and
// the command tier its programs run at. Transports address sessions by
// short IDs handed out at creation.
package service
