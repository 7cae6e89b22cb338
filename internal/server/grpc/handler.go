package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/favfood/internal/api"
	"github.com/dmitrijs2005/favfood/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return nil, status.Error(codes.InvalidArgument, validationMessage(err))
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, "email already registered")
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &api.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SignInResponse, error) {

	session, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return nil, status.Error(codes.InvalidArgument, validationMessage(err))
		case errors.Is(err, common.ErrorNotFound):
			return nil, status.Error(codes.NotFound, "user not found")
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &api.SignInResponse{
		UserID:       session.UserID,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {

	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			return nil, status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &api.RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*emptypb.Empty, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if err := s.users.SignOut(ctx, userID, req.RefreshToken); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.PermissionDenied, "refresh token belongs to another user")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ReadDocument(ctx context.Context, req *api.ReadDocumentRequest) (*api.ReadDocumentResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	body, err := s.documents.Read(ctx, userID, req.Collection, req.ID)
	if err != nil {
		return nil, documentStatus(err)
	}
	return &api.ReadDocumentResponse{Body: body}, nil
}

func (s *GRPCServer) WriteDocument(ctx context.Context, req *api.WriteDocumentRequest) (*emptypb.Empty, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if err := s.documents.Write(ctx, userID, req.Collection, req.ID, req.Body); err != nil {
		return nil, documentStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func documentStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "document not found")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "document belongs to another user")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, validationMessage(err))
	}
	return status.Error(codes.Internal, "internal error")
}

// validationMessage strips the sentinel prefix, keeping the field details.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	if msg == "" || msg == common.ErrorValidation.Error() {
		return "invalid request"
	}
	return msg
}
