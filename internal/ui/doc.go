// Package ui provides semantic text formatting and interactive prompts for
// CLI output.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("envsync init")          // Commands
//	ui.Path.Sprint(".envsync.json")          // File paths
//	ui.Success.Sprint("✓")                   // Success indicators
//	ui.Error.Sprint("✗")                     // Error indicators
//	ui.Info.Sprint("→")                      // Informational hints
//	ui.Highlight.Sprint("dev")               // User values (profiles, projects)
//	ui.Muted.Sprint("optional")              // De-emphasized text
//
// Colors are disabled when NO_COLOR is set or the terminal doesn't support
// them; formatters fall back to text decorations (backticks, quotes).
//
// # Prompts
//
// The Prompter interface abstracts confirm/input/select questions so the
// reconciliation engine and sync flows stay testable. StdinPrompter is the
// terminal-backed implementation.
package ui
