package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hackorsnooze/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAlreadyLoggedIn = errors.New("already logged in, log out first")

// Signup prompts for a username, password and display name and creates the
// account. The new session becomes the current one.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Signup(ctx, username, password, name)
	if err != nil {
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", s.User().Name)
	return nil
}

// Login prompts for credentials and authenticates. A failed attempt leaves
// the application logged out.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, username, password)
	if err != nil {
		a.logger.Info(ctx, "login failed", "username", username, "error", err)
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.User().Name)
	return nil
}

// Logout forgets the stored credentials and drops the session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if err := a.authService.Logout(ctx, a.session); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile prints the current user's account details.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	u := a.session.User()
	fmt.Fprintf(a.out, "Username:       %s\n", u.Username)
	fmt.Fprintf(a.out, "Name:           %s\n", u.Name)
	fmt.Fprintf(a.out, "Account since:  %s\n", formatDate(u.CreatedAt))

	issued := "unknown"
	if claims, err := a.session.TokenInfo(); err == nil && !claims.IssuedAt().IsZero() {
		issued = formatDate(claims.IssuedAt())
	}
	fmt.Fprintf(a.out, "Logged in on:   %s\n", issued)
	fmt.Fprintf(a.out, "Stories:        %d\n", len(a.session.OwnStories()))
	fmt.Fprintf(a.out, "Favorites:      %d\n", len(a.session.Favorites()))
	return nil
}

// Rename changes the display name.
func (a *App) Rename(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	name, err := getSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	if err := a.session.ChangeDisplayName(ctx, name); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "You are now known as %s.\n", a.session.User().Name)
	return nil
}

// Passwd asks for the new password twice and changes it.
func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprint(a.out, "Again. ")
	again, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if string(password) != string(again) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	if err := a.session.ChangePassword(ctx, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
