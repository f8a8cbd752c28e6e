// Package client talks to the memorial content backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Gateway interface) for listing,
//     reading, creating, updating and deleting records of any registered
//     entity, plus reference data lookups.
//  2. A concrete REST implementation (see HTTPGateway) that attaches the
//     bearer token read from a TokenSource on every call, tags each request
//     with an X-Request-ID and maps HTTP statuses to sentinel errors.
//     Failed calls are never retried.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Reads fail with *FetchError and writes with *MutationError. Both wrap one
// of ErrUnavailable, ErrUnauthorized or ErrNotFound where the status allows,
// so callers can match with errors.Is.
package client
