// Package cli provides the meuponto terminal client.
//
// It wires configuration, logging, the local SQLite store and the state
// store into an App, and exposes it both as cobra subcommands (init, clock,
// status, history, edit, delete, profile, reset, demo, version) and as an
// interactive REPL (shell, or no subcommand at all).
//
// Key features:
//   - Onboarding and profile editing with validation
//   - Clock-in now or at a given day and time, up to 8 events per day
//   - Today's progress against the daily goal and the running hour bank
//   - History, editing and deletion of past days
//   - Demo data and full reset
//
// Every command that touches storage runs under the configured command
// timeout. See NewRootCommand, App and runREPL for details.
package cli
