// Package common contains shared constants and sentinel errors used across
// the gophauth server, its transports and the terminal client.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the bearer token.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName is accepted as an alternative metadata key and is
// the HTTP header read by the REST transport.
const AuthorizationHeaderName = "authorization"

// BearerScheme prefixes the token in Authorization values.
const BearerScheme = "Bearer"

// RequestIDHeaderName carries a caller-chosen request id in gRPC metadata.
const RequestIDHeaderName = "x-request-id"
