package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/favfood/internal/common"
	"github.com/dmitrijs2005/favfood/internal/dbx"
	"github.com/dmitrijs2005/favfood/internal/server/config"
	"github.com/dmitrijs2005/favfood/internal/server/models"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/documents"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.RefreshTokenValidityDuration = 2 * time.Hour
	return cfg
}

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	err     error
	nextID  string
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTokens struct {
	tokens    map[string]*models.RefreshToken
	findErr   error
	deleteErr error
	createErr error
	purged    time.Time
}

func (f *fakeTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTokens) Delete(_ context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.purged = now
	var n int64
	for k, t := range f.tokens {
		if t.Expires.Before(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

type fakeDocuments struct {
	docs      map[string]*models.Document
	getErr    error
	upsertErr error
	gets      int
}

func docKey(collection, id string) string { return collection + "/" + id }

func (f *fakeDocuments) Get(_ context.Context, collection, id string) (*models.Document, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	d, ok := f.docs[docKey(collection, id)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocuments) Upsert(_ context.Context, doc *models.Document) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if cur, ok := f.docs[docKey(doc.Collection, doc.ID)]; ok {
		if cur.OwnerID != doc.OwnerID {
			return common.ErrorForbidden
		}
		doc.Version = cur.Version + 1
	} else {
		doc.Version = 1
	}
	cp := *doc
	f.docs[docKey(doc.Collection, doc.ID)] = &cp
	return nil
}

type fakeRepoManager struct {
	users     *fakeUsers
	tokens    *fakeTokens
	documents *fakeDocuments
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     &fakeUsers{byEmail: map[string]*models.User{}, nextID: "u-1"},
		tokens:    &fakeTokens{tokens: map[string]*models.RefreshToken{}},
		documents: &fakeDocuments{docs: map[string]*models.Document{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }
func (m *fakeRepoManager) Documents(dbx.DBTX) documents.Repository         { return m.documents }
