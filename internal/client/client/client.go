package client

import (
	"context"
	"encoding/json"
)

// Tokens is the access/refresh pair issued by the server.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Client is the transport-agnostic contract of the favfood backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, Tokens, error)
	SignOut(ctx context.Context) error

	ReadDocument(ctx context.Context, collection, id string) (json.RawMessage, error)
	WriteDocument(ctx context.Context, collection, id string, body json.RawMessage) error

	Tokens() Tokens
	SetTokens(t Tokens)
	OnTokensRefreshed(fn func(Tokens))
}
