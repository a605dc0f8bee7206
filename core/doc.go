// Package core defines the conversation data model shared by every other
// package: turns, tool call / result payloads and the append-only History log.
// It has no dependencies on providers or tools so that both can build on it
// without cycles.
package core
