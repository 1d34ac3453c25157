// Package utils provides shared helpers for the envsync application.
//
// # Terminal Utilities
//
//   - ReadPassphrase / ReadPassphraseFromTTY: masked secret input
//   - IsTerminal: stdin terminal detection
//
// # Git Utilities
//
//   - GitRemoteURL: the working directory's origin remote, if any
//
// # Filesystem Utilities
//
//   - FindEnvFiles: discovers .env* files beneath a directory
//   - FormatPaths: formats path lists for CLI output
package utils
