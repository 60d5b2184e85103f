// Package session manages the lifecycle of live world sessions: creation
// with generated short IDs, case-insensitive lookup, expiry cleanup, and
// optional persistence to disk so sessions survive restarts.
package session
