// Package services holds the client-side application services: the story
// cache and the authentication service with its sessions.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

// ErrNoSession is wrapped by the error returned when a mutation is attempted
// without a live session. The wrapping error has kind KindUnauthorized.
var ErrNoSession = errors.New("no active session")

func noSession(op string) error {
	return &client.Error{Kind: client.KindUnauthorized, Op: op, Err: ErrNoSession}
}

// StoryService is the story side of the application: one cached copy of
// every known story and the mutations that keep it in step with the server.
type StoryService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, s *Session, fields models.StoryFields) (models.Story, error)
	Update(ctx context.Context, s *Session, storyID string, fields models.StoryFields) (models.Story, error)
	Remove(ctx context.Context, s *Session, storyID string) error

	Get(storyID string) (models.Story, bool)
	List() []models.Story
	Len() int
}

// StoryCache maps story ids to the single copy of each story known to the
// client. Sessions only hold ids and resolve them here.
//
// Lock order is cache before session: the cache may call into an attached
// session while holding mu, a session never calls the cache while holding
// its own lock.
type StoryCache struct {
	client client.Client
	logger logging.Logger

	mu       sync.RWMutex
	stories  map[string]models.Story
	sessions map[*Session]struct{}
}

var _ StoryService = (*StoryCache)(nil)

func NewStoryCache(c client.Client, logger logging.Logger) *StoryCache {
	return &StoryCache{
		client:   c,
		logger:   logger.With("component", "stories"),
		stories:  make(map[string]models.Story),
		sessions: make(map[*Session]struct{}),
	}
}

// Load replaces the cache with the server's story list. Stories held by an
// attached session survive even when the list no longer contains them.
func (c *StoryCache) Load(ctx context.Context) error {
	fetched, err := c.client.ListStories(ctx)
	if err != nil {
		return fmt.Errorf("load stories: %w", err)
	}

	next := make(map[string]models.Story, len(fetched))
	for _, s := range fetched {
		next[s.ID] = s
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := 0
	for s := range c.sessions {
		for _, id := range s.pinned() {
			if _, ok := next[id]; ok {
				continue
			}
			if old, ok := c.stories[id]; ok {
				next[id] = old
				kept++
			}
		}
	}
	c.stories = next

	c.logger.Debug(ctx, "stories loaded", "fetched", len(fetched), "kept", kept)
	return nil
}

func (c *StoryCache) Create(ctx context.Context, s *Session, fields models.StoryFields) (models.Story, error) {
	const op = "create story"
	if !s.Active() {
		return models.Story{}, noSession(op)
	}

	fields = fields.Normalize()
	if err := fields.Validate(true); err != nil {
		return models.Story{}, &client.Error{Kind: client.KindInvalidInput, Op: op, Err: err}
	}

	story, err := c.client.CreateStory(ctx, s.Token(), fields)
	if err != nil {
		return models.Story{}, fmt.Errorf("create story: %w", err)
	}

	c.mu.Lock()
	c.stories[story.ID] = story
	s.addOwn(story.ID)
	c.mu.Unlock()

	c.logger.Debug(ctx, "story created", "story_id", story.ID)
	return story, nil
}

// Update edits a story. Ownership is left for the server to enforce.
func (c *StoryCache) Update(ctx context.Context, s *Session, storyID string, fields models.StoryFields) (models.Story, error) {
	const op = "update story"
	if !s.Active() {
		return models.Story{}, noSession(op)
	}

	fields = fields.Normalize()
	if err := fields.Validate(false); err != nil {
		return models.Story{}, &client.Error{Kind: client.KindInvalidInput, Op: op, Err: err}
	}

	story, err := c.client.UpdateStory(ctx, s.Token(), storyID, fields)
	if err != nil {
		return models.Story{}, fmt.Errorf("update story %s: %w", storyID, err)
	}

	c.mu.Lock()
	c.stories[story.ID] = story
	c.mu.Unlock()

	c.logger.Debug(ctx, "story updated", "story_id", story.ID)
	return story, nil
}

// Remove deletes a story on the server and then drops its id from the cache
// and from the own and favorite sets of every attached session.
func (c *StoryCache) Remove(ctx context.Context, s *Session, storyID string) error {
	if !s.Active() {
		return noSession("delete story")
	}

	if err := c.client.DeleteStory(ctx, s.Token(), storyID); err != nil {
		return fmt.Errorf("delete story %s: %w", storyID, err)
	}

	c.mu.Lock()
	delete(c.stories, storyID)
	s.forget(storyID)
	for other := range c.sessions {
		other.forget(storyID)
	}
	c.mu.Unlock()

	c.logger.Debug(ctx, "story removed", "story_id", storyID)
	return nil
}

func (c *StoryCache) Get(storyID string) (models.Story, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stories[storyID]
	return s, ok
}

// List returns every cached story, newest first.
func (c *StoryCache) List() []models.Story {
	c.mu.RLock()
	out := make([]models.Story, 0, len(c.stories))
	for _, s := range c.stories {
		out = append(out, s)
	}
	c.mu.RUnlock()

	sortNewestFirst(out)
	return out
}

func (c *StoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stories)
}

// resolve looks ids up in the cache. Unknown ids are skipped.
func (c *StoryCache) resolve(ids []string) []models.Story {
	c.mu.RLock()
	out := make([]models.Story, 0, len(ids))
	for _, id := range ids {
		if s, ok := c.stories[id]; ok {
			out = append(out, s)
		}
	}
	c.mu.RUnlock()

	sortNewestFirst(out)
	return out
}

// attach stores the stories of a freshly authenticated user and starts
// pinning the session's ids.
func (c *StoryCache) attach(s *Session, stories ...[]models.Story) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, list := range stories {
		for _, story := range list {
			c.stories[story.ID] = story
		}
	}
	c.sessions[s] = struct{}{}
}

func (c *StoryCache) detach(s *Session) {
	c.mu.Lock()
	delete(c.sessions, s)
	c.mu.Unlock()
}

// adopt inserts story unless a copy is already cached.
func (c *StoryCache) adopt(story models.Story) {
	c.mu.Lock()
	if _, ok := c.stories[story.ID]; !ok {
		c.stories[story.ID] = story
	}
	c.mu.Unlock()
}

func sortNewestFirst(stories []models.Story) {
	sort.Slice(stories, func(i, j int) bool {
		a, b := stories[i], stories[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
