package errors

import "errors"

// Auth errors indicate the user has no usable session.
var (
	// ErrNotLoggedIn indicates no session credential is stored locally.
	// Authenticated operations must fail with this before any network call.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrLoginTimeout indicates the login poll expired before the browser
	// flow completed.
	ErrLoginTimeout = errors.New("login timed out")
)

// Config errors indicate issues with the local project link record.
var (
	// ErrProjectNotLinked indicates no project link record exists in the
	// working directory.
	ErrProjectNotLinked = errors.New("project is not linked")

	// ErrConfigInvalid indicates a local config file exists but could not
	// be parsed or fails validation.
	ErrConfigInvalid = errors.New("local configuration is invalid")

	// ErrProfileNotFound indicates the requested profile name is not part
	// of the linked project.
	ErrProfileNotFound = errors.New("profile not found in project")
)

// Remote errors indicate the backend rejected or never received a call.
var (
	// ErrRemoteStatus indicates the backend answered with a non-success status.
	ErrRemoteStatus = errors.New("remote service returned an error status")

	// ErrNoProjectData indicates a pull response carried no envelope for
	// the requested profile.
	ErrNoProjectData = errors.New("no environment data found for profile")

	// ErrNoProjects indicates the session owns no remote projects.
	ErrNoProjects = errors.New("no projects found for this account")
)

// Crypto errors indicate envelope failures.
var (
	// ErrDecryptFailed is returned for every decryption failure: wrong
	// passphrase, corrupted ciphertext, tampered tag, or malformed
	// encoding. The causes are deliberately indistinguishable.
	ErrDecryptFailed = errors.New("failed to decrypt environment data")

	// ErrEncryptFailed indicates envelope creation failed.
	ErrEncryptFailed = errors.New("failed to encrypt environment data")
)

// Validation errors indicate bad interactive or file input.
var (
	// ErrEmptyEnvFile indicates the profile's environment file has no content.
	ErrEmptyEnvFile = errors.New("environment file is empty")

	// ErrEmptyProfileName indicates a profile label was blank.
	ErrEmptyProfileName = errors.New("profile name cannot be empty")

	// ErrDuplicateProfile indicates a profile label was used twice during
	// configuration.
	ErrDuplicateProfile = errors.New("profile name already in use")

	// ErrEmptyProjectName indicates the project display name was blank.
	ErrEmptyProjectName = errors.New("project name cannot be empty")

	// ErrFileNotFound indicates a profile's mapped file does not exist.
	ErrFileNotFound = errors.New("environment file not found")

	// ErrNoEnvFiles indicates discovery found nothing to configure.
	ErrNoEnvFiles = errors.New("no environment files found")
)
