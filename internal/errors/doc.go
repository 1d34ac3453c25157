// Package errors provides typed error values for the envsync application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Auth errors: no usable session (ErrNotLoggedIn, ErrLoginTimeout)
//   - Config errors: local link record issues (ErrProjectNotLinked, ErrConfigInvalid)
//   - Remote errors: backend failures (ErrRemoteStatus, ErrNoProjectData)
//   - Crypto errors: envelope failures (ErrDecryptFailed)
//   - Validation errors: bad interactive or file input (ErrEmptyEnvFile)
//
// # Usage
//
// Return errors from internal packages:
//
//	if session == nil {
//	    return errors.ErrNotLoggedIn
//	}
//
// Handle errors in the CLI layer:
//
//	err := sync.Push(ctx, opts)
//	if errors.Is(err, eserrors.ErrNotLoggedIn) {
//	    // Suggest `envsync login`
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading profile %s: %w", name, errors.ErrProfileNotFound)
//
// ErrDecryptFailed is special: it covers every decryption failure cause
// without distinguishing them, so a caller (or attacker) cannot tell a wrong
// passphrase from a tampered envelope.
package errors
