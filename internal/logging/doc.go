// Package logger provides leveled logging for envsync CLI commands.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions. Secrets never reach the logger: passphrases, session
// tokens, and project tokens must not appear in log arguments at any level.
package logger
