package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/favfood/internal/api"
	"github.com/dmitrijs2005/favfood/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.AccountsClient
	health      healthpb.HealthClient

	mu        sync.Mutex
	tokens    Tokens
	onRefresh func(Tokens)
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the access token to every call. When the
// server answers "token expired" it rotates the pair once and retries the
// original call with the new access token.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	tokens := s.Tokens()

	err := invoker(withAccessToken(ctx, tokens.AccessToken), method, req, reply, cc, opts...)
	if err == nil || method == api.MethodRefreshToken {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if tokens.RefreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if rerr != nil {
		return rerr
	}

	fresh := Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(fresh)

	s.mu.Lock()
	notify := s.onRefresh
	s.mu.Unlock()
	if notify != nil {
		notify(fresh)
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAccountsClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *GRPCClient) SetTokens(t Tokens) {
	s.mu.Lock()
	s.tokens = t
	s.mu.Unlock()
}

// OnTokensRefreshed registers fn to be called after every transparent token
// rotation, so the caller can persist the new pair.
func (s *GRPCClient) OnTokensRefreshed(fn func(Tokens)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

// Ping asks the standard health service whether the Accounts service is
// serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (string, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.UserID, nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (string, Tokens, error) {
	resp, err := s.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return "", Tokens{}, s.mapError(err)
	}

	t := Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(t)
	return resp.UserID, t, nil
}

// SignOut revokes the refresh token and forgets both tokens. The tokens are
// kept when the call fails so it can be retried.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	t := s.Tokens()
	if t.AccessToken == "" {
		return ErrUnauthorized
	}

	if _, err := s.client.SignOut(ctx, &api.SignOutRequest{RefreshToken: t.RefreshToken}); err != nil {
		return s.mapError(err)
	}

	s.SetTokens(Tokens{})
	return nil
}

func (s *GRPCClient) ReadDocument(ctx context.Context, collection, id string) (json.RawMessage, error) {
	resp, err := s.client.ReadDocument(ctx, &api.ReadDocumentRequest{Collection: collection, ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Body, nil
}

func (s *GRPCClient) WriteDocument(ctx context.Context, collection, id string, body json.RawMessage) error {
	_, err := s.client.WriteDocument(ctx, &api.WriteDocumentRequest{Collection: collection, ID: id, Body: body})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// mapError turns gRPC statuses into the package's sentinel errors.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		if st.Message() == ErrInvalidCredentials.Error() {
			return ErrInvalidCredentials
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrUnauthorized
	case codes.NotFound:
		if st.Message() == ErrUserNotFound.Error() {
			return ErrUserNotFound
		}
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrEmailTaken
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
