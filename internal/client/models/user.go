package models

import "time"

// User is the authenticated actor of the current session. Other users are
// never modelled beyond the username on a Story.
type User struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WithName returns a copy of u carrying a new display name.
func (u User) WithName(name string) User {
	u.Name = name
	return u
}

// UserProfile is the user record as returned by the API, including the
// user's own stories and favorites.
type UserProfile struct {
	User
	Stories   []Story `json:"stories"`
	Favorites []Story `json:"favorites"`
}

// UserUpdate carries the user fields that can be changed. Empty fields are
// not sent.
type UserUpdate struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}
