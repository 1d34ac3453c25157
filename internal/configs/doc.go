// Package configs manages envsync's persisted local state.
//
// Three files exist:
//
//   - .envsync.json in the working directory: the project link record
//     binding the directory to a remote project and its profiles. Always
//     listed in the directory's .gitignore.
//   - session.json in the user config directory: the cached session
//     credential written on login and removed on logout.
//   - settings.toml in the user config directory: API base URL, login
//     polling intervals, and a generated device ID.
//
// All files are plain structured text; none hold key material.
package configs
