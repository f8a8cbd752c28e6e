// Package common contains shared constants and sentinel errors used across
// the admin client.
package common

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// AuthTokenKey is the metadata key under which the session token is stored.
const AuthTokenKey = "auth_token"
