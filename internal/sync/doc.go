// Package sync moves one profile's environment content between disk and
// the cloud, encrypting on the way out and decrypting on the way in.
//
// Both operations fail fast without network calls when no session is
// cached. Push never mutates local state. Pull without a local link record
// runs a recovery path over the session's remote project list and offers
// to persist a fresh record afterwards.
package sync
