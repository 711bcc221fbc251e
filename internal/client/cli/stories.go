package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
)

var errNotLoggedIn = errors.New("not logged in")

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(dateLayout)
}

// printStories writes one line per story. Favorites are marked with ★ and
// the user's own stories with *.
func (a *App) printStories(stories []models.Story, empty string) {
	if len(stories) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}

	for _, s := range stories {
		fav, own := " ", " "
		if a.isLoggedIn() {
			if a.session.IsFavorite(s.ID) {
				fav = "★"
			}
			if a.session.IsOwn(s.ID) {
				own = "*"
			}
		}
		fmt.Fprintf(a.out, "%s%s %s  %s  posted by %s on %s\n", fav, own, s.ID, s, s.Username, formatDate(s.CreatedAt))
	}
}

// List prints every cached story.
func (a *App) List(ctx context.Context) error {
	a.printStories(a.storyService.List(), "No stories yet.")
	return nil
}

// Favorites prints the current user's favorite stories.
func (a *App) Favorites(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.printStories(a.session.Favorites(), "No favorites added!")
	return nil
}

// Mine prints the stories the current user submitted.
func (a *App) Mine(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.printStories(a.session.OwnStories(), "No stories added by user yet!")
	return nil
}

// Refresh reloads the story list from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.storyService.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d stories loaded.\n", a.storyService.Len())
	return nil
}

// Submit prompts for a title and URL and posts a story authored by the
// current user.
func (a *App) Submit(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	url, err := getSimpleText(a.reader, "URL", a.out)
	if err != nil {
		return err
	}

	fields := models.StoryFields{Title: title, Author: a.session.User().Name, URL: url}
	s, err := a.storyService.Create(ctx, a.session, fields)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Posted %s (%s).\n", s.Title, s.ID)
	return nil
}

// Edit changes one of the user's stories. Empty answers keep the current
// value.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	id, err := a.storyID(id, "Story id to edit")
	if err != nil {
		return err
	}

	if current, ok := a.storyService.Get(id); ok {
		fmt.Fprintf(a.out, "Editing: %s\n", current)
	}

	var fields models.StoryFields
	if fields.Title, err = getSimpleText(a.reader, "New title (empty to keep)", a.out); err != nil {
		return err
	}
	if fields.Author, err = getSimpleText(a.reader, "New author (empty to keep)", a.out); err != nil {
		return err
	}
	if fields.URL, err = getSimpleText(a.reader, "New URL (empty to keep)", a.out); err != nil {
		return err
	}

	s, err := a.storyService.Update(ctx, a.session, id, fields)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated: %s\n", s)
	return nil
}

// Delete removes a story.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	id, err := a.storyID(id, "Story id to delete")
	if err != nil {
		return err
	}
	if err := a.storyService.Remove(ctx, a.session, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s.\n", id)
	return nil
}

// Favorite adds a story to the user's favorites.
func (a *App) Favorite(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	id, err := a.storyID(id, "Story id to favorite")
	if err != nil {
		return err
	}
	s, ok := a.storyService.Get(id)
	if !ok {
		fmt.Fprintf(a.out, "No story with id %s. Try 'refresh'.\n", id)
		return nil
	}
	if err := a.session.AddFavorite(ctx, s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "★ %s\n", s.Title)
	return nil
}

// Unfavorite removes a story from the user's favorites.
func (a *App) Unfavorite(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	id, err := a.storyID(id, "Story id to unfavorite")
	if err != nil {
		return err
	}
	s, ok := a.storyService.Get(id)
	if !ok {
		s = models.Story{ID: id}
	}
	if err := a.session.RemoveFavorite(ctx, s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Removed %s from favorites.\n", id)
	return nil
}

// storyID returns id, or prompts for one when it is empty.
func (a *App) storyID(id, prompt string) (string, error) {
	if id != "" {
		return id, nil
	}
	id, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("story id is required")
	}
	return id, nil
}
