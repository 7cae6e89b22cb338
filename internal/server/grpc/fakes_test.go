package grpc

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/favfood/internal/server/models"
	"github.com/dmitrijs2005/favfood/internal/server/services"
)

type fakeUsers struct {
	user    *models.User
	session *services.Session
	pair    *services.TokenPair
	err     error

	signedOut []string
}

func (f *fakeUsers) Register(context.Context, string, string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUsers) SignIn(context.Context, string, string) (*services.Session, error) {
	return f.session, f.err
}

func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.pair, f.err
}

func (f *fakeUsers) SignOut(_ context.Context, userID, token string) error {
	if f.err != nil {
		return f.err
	}
	f.signedOut = append(f.signedOut, userID+":"+token)
	return nil
}

type fakeDocuments struct {
	body json.RawMessage
	err  error

	owner, collection, id string
	written               json.RawMessage
}

func (f *fakeDocuments) Read(_ context.Context, ownerID, collection, id string) (json.RawMessage, error) {
	f.owner, f.collection, f.id = ownerID, collection, id
	return f.body, f.err
}

func (f *fakeDocuments) Write(_ context.Context, ownerID, collection, id string, body json.RawMessage) error {
	f.owner, f.collection, f.id = ownerID, collection, id
	f.written = body
	return f.err
}
