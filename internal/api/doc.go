// Package api is the typed request/response boundary to the envsync cloud
// service. Every authenticated call carries the session token in the
// X-Auth-Token header, supplied by a CredentialsFunc injected at
// construction. Lookup misses (unknown git URL, unknown recovery token,
// profile without data) are nil results, not errors; only transport
// failures and unexpected statuses are errors.
package api
