package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	return f.record("signup")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(ctx context.Context) error      { return f.record("list") }
func (f *fakeExec) Favorites(ctx context.Context) error { return f.record("favorites") }
func (f *fakeExec) Mine(ctx context.Context) error      { return f.record("mine") }
func (f *fakeExec) Refresh(ctx context.Context) error   { return f.record("refresh") }
func (f *fakeExec) Submit(ctx context.Context) error    { return f.record("submit") }
func (f *fakeExec) Edit(ctx context.Context, id string) error {
	return f.record("edit:" + id)
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	return f.record("delete:" + id)
}
func (f *fakeExec) Favorite(ctx context.Context, id string) error {
	return f.record("fav:" + id)
}
func (f *fakeExec) Unfavorite(ctx context.Context, id string) error {
	return f.record("unfav:" + id)
}
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile") }
func (f *fakeExec) Rename(ctx context.Context) error  { return f.record("rename") }
func (f *fakeExec) Passwd(ctx context.Context) error  { return f.record("passwd") }

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"l",
		"favs",
		"mine",
		"refresh",
		"submit",
		"edit s1",
		"delete",
		"fav s2",
		"unfav s2",
		"profile",
		"rename",
		"passwd",
		"logout",
		"signup",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input), &out)

	assert.Equal(t, []string{
		"login", "list", "favorites", "mine", "refresh", "submit", "edit:s1", "delete:",
		"fav:s2", "unfav:s2", "profile", "rename", "passwd", "logout", "signup",
	}, exec.calls)

	text := out.String()
	assert.Contains(t, text, helpLoggedOut)
	assert.Contains(t, text, helpLoggedIn)
	assert.Contains(t, text, "Unknown command: foobar")
	assert.Contains(t, text, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "ann" }, rdr("list"), &out)

	assert.Equal(t, []string{"list"}, exec.calls)
	assert.True(t, strings.HasPrefix(out.String(), "hos (ann)> "))
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	exec := &fakeExec{err: &client.Error{Kind: client.KindRemoteUnavailable}}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("refresh\nquit\n"), &out)

	assert.Contains(t, out.String(), "The service is unavailable")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errNotLoggedIn, "You need to log in first."},
		{fmt.Errorf("create: %w", &client.Error{Kind: client.KindUnauthorized, Err: services.ErrNoSession}), "You need to log in first."},
		{errAlreadyLoggedIn, "You are already logged in. Log out first."},
		{&client.Error{Kind: client.KindInvalidCredentials, Status: 401}, "Incorrect username or password."},
		{&client.Error{Kind: client.KindUsernameTaken, Message: "There is already a user with username 'ann'."}, "There is already a user with username 'ann'."},
		{&client.Error{Kind: client.KindUsernameTaken}, "That username is taken."},
		{&client.Error{Kind: client.KindUnauthorized, Status: 403}, "You are not allowed to do that."},
		{&client.Error{Kind: client.KindNotFound}, "Not found."},
		{&client.Error{Kind: client.KindInvalidInput, Message: "title required"}, "Invalid input: title required"},
		{&client.Error{Kind: client.KindInvalidInput, Err: models.ErrInvalidStory}, "Invalid input: invalid story"},
		{&client.Error{Kind: client.KindInvalidInput}, "Invalid input."},
		{fmt.Errorf("load: %w", &client.Error{Kind: client.KindRemoteUnavailable}), "The service is unavailable, try again later."},
		{fmt.Errorf("prompt: %w", io.EOF), "Input ended."},
		{errors.New("disk full"), "Error: disk full"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describeError(tt.err))
	}
}

func TestRunREPL_EOFFromCommandEndsLoop(t *testing.T) {
	exec := &fakeExec{err: io.EOF}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("submit\nlist\n"), &out)

	assert.Equal(t, []string{"submit"}, exec.calls)
	assert.NotContains(t, out.String(), "Error:")
}
