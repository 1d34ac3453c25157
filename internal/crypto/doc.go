// Package crypto implements the authenticated-encryption envelope used to
// protect environment-file content in transit and at rest.
//
// Keys are derived per operation from a user-supplied passphrase with
// scrypt over a random 16-byte salt. Content is sealed with AES-256-GCM
// under a fresh 12-byte nonce. Neither the passphrase, the derived key,
// nor any intermediate material is ever written to disk: losing the
// passphrase makes the data unrecoverable, and that is the point.
package crypto
