package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "favfood.v1.Accounts"

// Full method names, as seen by interceptors.
const (
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodSignIn        = "/" + ServiceName + "/SignIn"
	MethodRefreshToken  = "/" + ServiceName + "/RefreshToken"
	MethodSignOut       = "/" + ServiceName + "/SignOut"
	MethodReadDocument  = "/" + ServiceName + "/ReadDocument"
	MethodWriteDocument = "/" + ServiceName + "/WriteDocument"
)

// AccountsServer is the server API of favfood.v1.Accounts.
type AccountsServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SignOut(context.Context, *SignOutRequest) (*emptypb.Empty, error)
	ReadDocument(context.Context, *ReadDocumentRequest) (*ReadDocumentResponse, error)
	WriteDocument(context.Context, *WriteDocumentRequest) (*emptypb.Empty, error)
}

// UnimplementedAccountsServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedAccountsServer struct{}

func (UnimplementedAccountsServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAccountsServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedAccountsServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedAccountsServer) SignOut(context.Context, *SignOutRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedAccountsServer) ReadDocument(context.Context, *ReadDocumentRequest) (*ReadDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadDocument not implemented")
}
func (UnimplementedAccountsServer) WriteDocument(context.Context, *WriteDocumentRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method WriteDocument not implemented")
}

func unaryHandler[Req, Resp any](fullMethod string, call func(AccountsServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AccountsServiceDesc is registered with grpc.Server.RegisterService.
var AccountsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, AccountsServer.Register)},
		{MethodName: "SignIn", Handler: unaryHandler(MethodSignIn, AccountsServer.SignIn)},
		{MethodName: "RefreshToken", Handler: unaryHandler(MethodRefreshToken, AccountsServer.RefreshToken)},
		{MethodName: "SignOut", Handler: unaryHandler(MethodSignOut, AccountsServer.SignOut)},
		{MethodName: "ReadDocument", Handler: unaryHandler(MethodReadDocument, AccountsServer.ReadDocument)},
		{MethodName: "WriteDocument", Handler: unaryHandler(MethodWriteDocument, AccountsServer.WriteDocument)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "favfood/v1/accounts",
}

// RegisterAccountsServer attaches srv to s.
func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&AccountsServiceDesc, srv)
}

// AccountsClient is the client API of favfood.v1.Accounts.
type AccountsClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ReadDocument(ctx context.Context, in *ReadDocumentRequest, opts ...grpc.CallOption) (*ReadDocumentResponse, error)
	WriteDocument(ctx context.Context, in *WriteDocumentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type accountsClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountsClient(cc grpc.ClientConnInterface) AccountsClient {
	return &accountsClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountsClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *accountsClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *accountsClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *accountsClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodSignOut, in, opts)
}

func (c *accountsClient) ReadDocument(ctx context.Context, in *ReadDocumentRequest, opts ...grpc.CallOption) (*ReadDocumentResponse, error) {
	return invoke[ReadDocumentResponse](ctx, c.cc, MethodReadDocument, in, opts)
}

func (c *accountsClient) WriteDocument(ctx context.Context, in *WriteDocumentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodWriteDocument, in, opts)
}
