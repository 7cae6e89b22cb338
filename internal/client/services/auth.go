// Package services contains the application services of the favfood CLI:
// authentication with a persisted session, and the profile document.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/favfood/internal/client/client"
	"github.com/dmitrijs2005/favfood/internal/client/models"
	"github.com/dmitrijs2005/favfood/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/favfood/internal/dbx"
	"github.com/dmitrijs2005/favfood/internal/logging"
)

// Metadata keys of the persisted session.
const (
	keyUserID       = "user_id"
	keyEmail        = "email"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// AuthService defines authentication operations for the CLI.
//
// SignIn persists the session so CurrentUserID survives a restart;
// RestoreSession loads it back. Register never signs the user in. Forget
// drops the session locally, for one the server no longer accepts.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	Forget(ctx context.Context)
	CurrentUserID() string
	CurrentEmail() string
	RestoreSession(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger

	mu      sync.RWMutex
	session models.Session
}

// NewAuthService constructs an AuthService bound to the given API client and
// local database. Token rotations done by the client are written back to the
// database.
func NewAuthService(c client.Client, db *sql.DB, logger logging.Logger) AuthService {
	a := &authService{client: c, db: db, logger: logger.With("module", "auth")}
	c.OnTokensRefreshed(a.tokensRefreshed)
	return a
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) SignIn(ctx context.Context, email, password string) error {
	userID, tokens, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	s := models.Session{
		UserID:       userID,
		Email:        email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	a.setSession(s)

	// The session still works for this run if it cannot be remembered.
	if err := a.saveSession(ctx, s); err != nil {
		a.logger.Warn(ctx, "session not persisted", "error", err)
	}

	a.logger.Info(ctx, "signed in", "user_id", userID)
	return nil
}

func (a *authService) Register(ctx context.Context, email, password string) error {
	userID, err := a.client.Register(ctx, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	a.logger.Info(ctx, "registered", "user_id", userID)
	return nil
}

// SignOut revokes the session on the server, then forgets it locally. A
// session the server rejects is already revoked and is forgotten too. On
// any other failure the session is kept so the call can be retried.
func (a *authService) SignOut(ctx context.Context) error {
	if err := a.client.SignOut(ctx); err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("sign out: %w", err)
		}
		a.logger.Warn(ctx, "session rejected by server", "error", err)
	}

	userID := a.CurrentUserID()
	a.Forget(ctx)
	a.logger.Info(ctx, "signed out", "user_id", userID)
	return nil
}

func (a *authService) Forget(ctx context.Context) {
	a.setSession(models.Session{})
	a.client.SetTokens(client.Tokens{})

	if err := a.getMetadataRepo(a.db).DeleteKeys(ctx, keyUserID, keyEmail, keyAccessToken, keyRefreshToken); err != nil {
		a.logger.Warn(ctx, "stored session not cleared", "error", err)
	}
}

func (a *authService) CurrentUserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.UserID
}

func (a *authService) CurrentEmail() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Email
}

// RestoreSession loads a session remembered by a previous run and hands its
// tokens to the client. It reports whether a session was found.
func (a *authService) RestoreSession(ctx context.Context) (bool, error) {
	values, err := a.getMetadataRepo(a.db).List(ctx)
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}

	s := models.Session{
		UserID:       string(values[keyUserID]),
		Email:        string(values[keyEmail]),
		AccessToken:  string(values[keyAccessToken]),
		RefreshToken: string(values[keyRefreshToken]),
	}
	if !s.SignedIn() {
		return false, nil
	}

	a.setSession(s)
	a.client.SetTokens(client.Tokens{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken})
	return true, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) setSession(s models.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

func (a *authService) saveSession(ctx context.Context, s models.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return a.getMetadataRepo(tx).SetAll(ctx, map[string][]byte{
			keyUserID:       []byte(s.UserID),
			keyEmail:        []byte(s.Email),
			keyAccessToken:  []byte(s.AccessToken),
			keyRefreshToken: []byte(s.RefreshToken),
		})
	})
}

func (a *authService) tokensRefreshed(t client.Tokens) {
	a.mu.Lock()
	if a.session.UserID == "" {
		a.mu.Unlock()
		return
	}
	a.session.AccessToken = t.AccessToken
	a.session.RefreshToken = t.RefreshToken
	s := a.session
	a.mu.Unlock()

	ctx := context.Background()
	if err := a.saveSession(ctx, s); err != nil {
		a.logger.Warn(ctx, "refreshed tokens not persisted", "error", err)
	}
}
