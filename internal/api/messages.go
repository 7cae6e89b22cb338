// Package api describes the favfood.v1.Accounts gRPC service shared by the
// server and the CLI: request/response messages, the wire codec and the
// service descriptor.
package api

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ReadDocumentRequest struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

type ReadDocumentResponse struct {
	Body json.RawMessage `json:"body"`
}

type WriteDocumentRequest struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Body       json.RawMessage `json:"body"`
}
