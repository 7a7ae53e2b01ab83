// Package client talks to the external authentication service and bootstraps
// the local session database.
//
// # Overview
//
//  1. Client is the transport-agnostic contract: Login, Register and
//     FetchIdentity. FetchIdentity calls the protected endpoint and doubles as
//     the token validation check.
//  2. HTTPClient implements Client over HTTP/JSON. Each call is a single
//     request/response exchange; there is no retry at this layer.
//  3. InitDatabase and RunMigrations open the SQLite file and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// Failures are *ServiceError values that unwrap to one of the sentinel kinds
// ErrInvalidCredentials, ErrRegistrationFailed, ErrUnauthorized or
// ErrRequestFailed, so callers match them with errors.Is. Detail returns the
// human-readable message reported by the service, if any.
package client
