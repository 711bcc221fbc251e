// Package models defines the client-side records mirrored from the stories
// API. Records are values: an edit produces a new Story that replaces the
// old one wherever its ID is held.
package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrInvalidStory = errors.New("invalid story")

// Story is one submitted link.
type Story struct {
	ID        string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Hostname returns the host part of the story URL, or "" when the URL does
// not parse.
func (s Story) Hostname() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

func (s Story) String() string {
	host := s.Hostname()
	if host == "" {
		return fmt.Sprintf("%s by %s", s.Title, s.Author)
	}
	return fmt.Sprintf("%s (%s) by %s", s.Title, host, s.Author)
}

// StoryFields is the payload of a submission or an edit. On edits empty
// fields are left unchanged by the server.
type StoryFields struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url,omitempty"`
}

func (f StoryFields) IsEmpty() bool {
	return f.Title == "" && f.Author == "" && f.URL == ""
}

// Normalize trims surrounding whitespace from every field.
func (f StoryFields) Normalize() StoryFields {
	return StoryFields{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
		URL:    strings.TrimSpace(f.URL),
	}
}

// Validate checks the fields for a submission (create == true, every field
// required) or an edit (at least one field). A set URL must be an absolute
// http(s) URL.
func (f StoryFields) Validate(create bool) error {
	if create {
		switch {
		case f.Title == "":
			return fmt.Errorf("%w: title is required", ErrInvalidStory)
		case f.Author == "":
			return fmt.Errorf("%w: author is required", ErrInvalidStory)
		case f.URL == "":
			return fmt.Errorf("%w: url is required", ErrInvalidStory)
		}
	} else if f.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidStory)
	}

	if f.URL != "" {
		u, err := url.Parse(f.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: url %q must be an absolute http(s) url", ErrInvalidStory, f.URL)
		}
	}
	return nil
}
