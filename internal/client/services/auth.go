package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/auth"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/dbx"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

const (
	credentialsScope = "credentials"
	keyToken         = "token"
	keyUsername      = "username"
)

// AuthService creates and ends sessions.
//
// Contract:
//   - Signup/Login: authenticate remotely, start a session and persist its
//     credentials. A failure returns no session and changes nothing.
//   - Restore: resume the session whose credentials were persisted. Remote
//     failures yield (nil, nil); only local storage errors are returned.
//   - RestoreWith: the same for credentials supplied by the caller.
//   - Logout: forget persisted credentials and invalidate the session.
//   - Close: release the local store.
type AuthService interface {
	Signup(ctx context.Context, username string, password []byte, name string) (*Session, error)
	Login(ctx context.Context, username string, password []byte) (*Session, error)
	Restore(ctx context.Context) (*Session, error)
	RestoreWith(ctx context.Context, token, username string) (*Session, error)
	Logout(ctx context.Context, s *Session) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	cache  *StoryCache
	db     *sql.DB
	logger logging.Logger
}

// NewAuthService builds an AuthService. Sessions it creates resolve their
// stories through cache; credentials are kept in db.
func NewAuthService(c client.Client, cache *StoryCache, db *sql.DB, logger logging.Logger) AuthService {
	return &authService{client: c, cache: cache, db: db, logger: logger.With("component", "auth")}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db, credentialsScope)
}

func (a *authService) Signup(ctx context.Context, username string, password []byte, name string) (*Session, error) {
	username, name = strings.TrimSpace(username), strings.TrimSpace(name)
	if username == "" || len(password) == 0 || name == "" {
		return nil, &client.Error{Kind: client.KindInvalidInput, Op: "signup", Message: "username, password and name are required"}
	}

	res, err := a.client.Signup(ctx, username, string(password), name)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	return a.start(ctx, res, true)
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, &client.Error{Kind: client.KindInvalidInput, Op: "login", Message: "username and password are required"}
	}

	res, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.start(ctx, res, true)
}

func (a *authService) Restore(ctx context.Context) (*Session, error) {
	repo := a.getMetadataRepo(a.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	username, err := repo.Get(ctx, keyUsername)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if token == "" || username == "" {
		a.logger.Debug(ctx, "no stored credentials")
		return nil, nil
	}

	return a.restore(ctx, token, username, false)
}

func (a *authService) RestoreWith(ctx context.Context, token, username string) (*Session, error) {
	if token == "" || username == "" {
		return nil, nil
	}
	return a.restore(ctx, token, username, true)
}

func (a *authService) restore(ctx context.Context, token, username string, persist bool) (*Session, error) {
	log := a.logger.With("username", username, "token", common.MaskToken(token))

	if !auth.BelongsTo(token, username) {
		log.Warn(ctx, "stored token was issued to another user, ignoring it")
		return nil, nil
	}

	profile, err := a.client.GetUser(ctx, token, username)
	if err != nil {
		log.Warn(ctx, "could not restore session", "error", err, "kind", client.KindOf(err).String())
		return nil, nil
	}

	return a.start(ctx, client.AuthResult{Token: token, Profile: profile}, persist)
}

// start turns an authenticated result into a live session. Credentials are
// stored before the cache is touched, so a storage failure leaves no trace.
func (a *authService) start(ctx context.Context, res client.AuthResult, persist bool) (*Session, error) {
	if persist {
		if err := a.saveCredentials(ctx, res.Token, res.Profile.Username); err != nil {
			return nil, fmt.Errorf("credentials saving error: %w", err)
		}
	}

	s := newSession(a.client, a.cache, a.logger, res.Token, res.Profile)
	a.cache.attach(s, res.Profile.Stories, res.Profile.Favorites)

	a.logger.Info(ctx, "session started", "username", res.Profile.Username)
	return s, nil
}

// saveCredentials stores token and username in a single transaction.
func (a *authService) saveCredentials(ctx context.Context, token, username string) error {
	return dbx.WithTx(ctx, a.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, keyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, keyUsername, username)
	})
}

// Logout forgets the persisted credentials and invalidates s. Cached story
// content is kept. A nil s only clears the credentials.
func (a *authService) Logout(ctx context.Context, s *Session) error {
	if err := a.getMetadataRepo(a.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	if s == nil {
		return nil
	}

	a.cache.detach(s)
	s.close()
	a.logger.Info(ctx, "session ended", "username", s.User().Username)
	return nil
}

func (a *authService) Close(ctx context.Context) error {
	if err := a.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
