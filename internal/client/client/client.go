//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks

package client

import (
	"context"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

// AuthResult is what signup and login return: a fresh token and the user's
// profile.
type AuthResult struct {
	Token   string
	Profile models.UserProfile
}

// Client is the transport-agnostic contract of the stories API.
type Client interface {
	ListStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, token string, fields models.StoryFields) (models.Story, error)
	UpdateStory(ctx context.Context, token, storyID string, fields models.StoryFields) (models.Story, error)
	DeleteStory(ctx context.Context, token, storyID string) error

	Signup(ctx context.Context, username, password, name string) (AuthResult, error)
	Login(ctx context.Context, username, password string) (AuthResult, error)
	GetUser(ctx context.Context, token, username string) (models.UserProfile, error)
	UpdateUser(ctx context.Context, token, username string, update models.UserUpdate) (models.UserProfile, error)

	AddFavorite(ctx context.Context, token, username, storyID string) (models.UserProfile, error)
	RemoveFavorite(ctx context.Context, token, username, storyID string) (models.UserProfile, error)
}
