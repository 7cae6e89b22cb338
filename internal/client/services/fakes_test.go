package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/favfood/internal/client/client"
	"github.com/dmitrijs2005/favfood/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var errBoom = errors.New("boom")

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, client.RunMigrations(context.Background(), db, logging.Nop{}))
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) string {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return string(v)
}

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	tokens    client.Tokens
	onRefresh func(client.Tokens)

	registerID  string
	registerErr error
	signInID    string
	signInTok   client.Tokens
	signInErr   error
	signOutErr  error
	pingErr     error
	closeErr    error
	readBody    json.RawMessage
	readErr     error
	writeErr    error

	lastEmail      string
	lastPassword   string
	lastCollection string
	lastID         string
	lastBody       json.RawMessage
	signOutCalls   int
	closed         bool
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error {
	f.closed = true
	return f.closeErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Tokens() client.Tokens { return f.tokens }

func (f *fakeClient) SetTokens(t client.Tokens) { f.tokens = t }

func (f *fakeClient) OnTokensRefreshed(fn func(client.Tokens)) { f.onRefresh = fn }

func (f *fakeClient) Register(_ context.Context, email, password string) (string, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.registerID, f.registerErr
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (string, client.Tokens, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.signInErr != nil {
		return "", client.Tokens{}, f.signInErr
	}
	f.tokens = f.signInTok
	return f.signInID, f.signInTok, nil
}

func (f *fakeClient) SignOut(context.Context) error {
	f.signOutCalls++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.tokens = client.Tokens{}
	return nil
}

func (f *fakeClient) ReadDocument(_ context.Context, collection, id string) (json.RawMessage, error) {
	f.lastCollection, f.lastID = collection, id
	return f.readBody, f.readErr
}

func (f *fakeClient) WriteDocument(_ context.Context, collection, id string, body json.RawMessage) error {
	f.lastCollection, f.lastID, f.lastBody = collection, id, body
	return f.writeErr
}

func newAuth(t *testing.T, c *fakeClient) (AuthService, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	return NewAuthService(c, db, logging.Nop{}), db
}
