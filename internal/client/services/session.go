package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/auth"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

// Session is the authenticated user of the client. It is created by
// AuthService and stays valid until it is passed to AuthService.Logout.
//
// A Session holds only story ids; the stories themselves live in the
// StoryCache it was created with.
type Session struct {
	client client.Client
	cache  *StoryCache
	logger logging.Logger

	mu        sync.RWMutex
	user      models.User
	token     string
	own       map[string]struct{}
	favorites map[string]struct{}
	closed    bool
}

func newSession(c client.Client, cache *StoryCache, logger logging.Logger, token string, profile models.UserProfile) *Session {
	s := &Session{
		client:    c,
		cache:     cache,
		logger:    logger.With("username", profile.Username),
		user:      profile.User,
		token:     token,
		own:       make(map[string]struct{}, len(profile.Stories)),
		favorites: make(map[string]struct{}, len(profile.Favorites)),
	}
	for _, st := range profile.Stories {
		s.own[st.ID] = struct{}{}
	}
	for _, st := range profile.Favorites {
		s.favorites[st.ID] = struct{}{}
	}
	return s
}

// Active reports whether s can still be used. A nil Session is inactive.
func (s *Session) Active() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenInfo decodes the session token. The claims are informational only.
func (s *Session) TokenInfo() (auth.Claims, error) {
	return auth.InspectToken(s.Token())
}

// OwnStories returns the stories the user submitted, newest first.
func (s *Session) OwnStories() []models.Story {
	return s.cache.resolve(s.ids(s.own))
}

// Favorites returns the user's favorite stories, newest first.
func (s *Session) Favorites() []models.Story {
	return s.cache.resolve(s.ids(s.favorites))
}

func (s *Session) IsOwn(storyID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.own[storyID]
	return ok
}

func (s *Session) IsFavorite(storyID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[storyID]
	return ok
}

// AddFavorite marks story as a favorite on the server and then locally.
// Repeating the call is harmless.
func (s *Session) AddFavorite(ctx context.Context, story models.Story) error {
	const op = "add favorite"
	if !s.Active() {
		return noSession(op)
	}

	user := s.User()
	if _, err := s.client.AddFavorite(ctx, s.Token(), user.Username, story.ID); err != nil {
		return fmt.Errorf("%s %s: %w", op, story.ID, err)
	}

	s.cache.adopt(story)

	s.mu.Lock()
	s.favorites[story.ID] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug(ctx, "favorite added", "story_id", story.ID)
	return nil
}

// RemoveFavorite unmarks story on the server and then locally. Repeating the
// call is harmless.
func (s *Session) RemoveFavorite(ctx context.Context, story models.Story) error {
	const op = "remove favorite"
	if !s.Active() {
		return noSession(op)
	}

	user := s.User()
	if _, err := s.client.RemoveFavorite(ctx, s.Token(), user.Username, story.ID); err != nil {
		return fmt.Errorf("%s %s: %w", op, story.ID, err)
	}

	s.mu.Lock()
	delete(s.favorites, story.ID)
	s.mu.Unlock()

	s.logger.Debug(ctx, "favorite removed", "story_id", story.ID)
	return nil
}

// ChangeDisplayName renames the user.
func (s *Session) ChangeDisplayName(ctx context.Context, name string) error {
	const op = "change name"
	if !s.Active() {
		return noSession(op)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return &client.Error{Kind: client.KindInvalidInput, Op: op, Message: "name must not be empty"}
	}

	user := s.User()
	profile, err := s.client.UpdateUser(ctx, s.Token(), user.Username, models.UserUpdate{Name: name})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	updated := user.WithName(name)
	if profile.Username == user.Username {
		updated = profile.User
	}

	s.mu.Lock()
	s.user = updated
	s.mu.Unlock()

	s.logger.Debug(ctx, "display name changed")
	return nil
}

// ChangePassword sets a new password. The slice is not retained; wiping it
// is up to the caller.
func (s *Session) ChangePassword(ctx context.Context, password []byte) error {
	const op = "change password"
	if !s.Active() {
		return noSession(op)
	}
	if len(password) == 0 {
		return &client.Error{Kind: client.KindInvalidInput, Op: op, Message: "password must not be empty"}
	}

	user := s.User()
	if _, err := s.client.UpdateUser(ctx, s.Token(), user.Username, models.UserUpdate{Password: string(password)}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Debug(ctx, "password changed")
	return nil
}

// pinned returns every id the session holds.
func (s *Session) pinned() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.own)+len(s.favorites))
	for id := range s.own {
		out = append(out, id)
	}
	for id := range s.favorites {
		out = append(out, id)
	}
	return out
}

func (s *Session) ids(set map[string]struct{}) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func (s *Session) addOwn(storyID string) {
	s.mu.Lock()
	s.own[storyID] = struct{}{}
	s.mu.Unlock()
}

func (s *Session) forget(storyID string) {
	s.mu.Lock()
	delete(s.own, storyID)
	delete(s.favorites, storyID)
	s.mu.Unlock()
}

func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.token = ""
	s.mu.Unlock()
}
