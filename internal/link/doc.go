// Package link implements the project-linkage reconciliation engine.
//
// An init invocation walks an explicit state machine: an existing record
// asks for re-init confirmation; a missing record attempts recovery first
// by git remote URL, then by project recovery token, before falling back to
// creating a fresh cloud project. Re-link reuses the remote-assigned
// project ID and token with a freshly configured profile map; it never
// adopts the remote project's stale profiles. No path that stops short of
// persisting touches a pre-existing record.
package link
