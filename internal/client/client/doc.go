// Package client talks to the favfood backend on behalf of the CLI.
//
// Client is the transport-agnostic contract; GRPCClient implements it over
// the Accounts gRPC service. GRPCClient keeps the access/refresh token pair,
// injects the access token into every call and transparently refreshes it
// once when the server reports it as expired. gRPC statuses are mapped to
// sentinel errors (ErrUnavailable, ErrInvalidCredentials, ErrUserNotFound,
// ErrEmailTaken, ...) that callers match with errors.Is.
//
// InitDatabase and RunMigrations bootstrap the local SQLite database that
// keeps the session between runs.
package client
