package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/services"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Favorites(ctx context.Context) error
	Mine(ctx context.Context) error
	Refresh(ctx context.Context) error
	Submit(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context) error
	Passwd(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: (l)ist, refresh, signup, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, favorites, mine, refresh, submit, edit [id], delete [id], " +
		"fav [id], unfav [id], profile, rename, passwd, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the stories CLI.
//
// It reads a line from r, parses the first token as the command and the
// optional second token as a story id, and dispatches to methods on a.
// Errors returned by handlers are shown to the user through describeError
// and do not end the loop. The loop exits on EOF, including EOF inside a
// command's prompt, or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help            - show available commands
//	  - list | l        - all stories
//	  - refresh         - reload stories from the server
//	  - signup          - create an account
//	  - login           - authenticate
//	  - exit | quit     - leave the program
//
//	Logged in, additionally:
//	  - favorites|favs  - favorite stories
//	  - mine            - own stories
//	  - submit          - post a story
//	  - edit [id]       - edit an own story
//	  - delete [id]     - delete an own story
//	  - fav [id]        - add a favorite
//	  - unfav [id]      - remove a favorite
//	  - profile         - account details
//	  - rename          - change display name
//	  - passwd          - change password
//	  - logout          - log out
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		if status := statusFn(); status != "" {
			fmt.Fprintf(w, "hos (%s)> ", status)
		} else {
			fmt.Fprint(w, "hos> ")
		}

		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)
		case "favorites", "favs":
			cmdErr = a.Favorites(ctx)
		case "mine":
			cmdErr = a.Mine(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "submit":
			cmdErr = a.Submit(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, arg)
		case "delete":
			cmdErr = a.Delete(ctx, arg)
		case "fav":
			cmdErr = a.Favorite(ctx, arg)
		case "unfav":
			cmdErr = a.Unfavorite(ctx, arg)

		case "profile":
			cmdErr = a.Profile(ctx)
		case "rename":
			cmdErr = a.Rename(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if errors.Is(cmdErr, io.EOF) {
			fmt.Fprintln(w)
			return
		}
		if cmdErr != nil {
			fmt.Fprintln(w, describeError(cmdErr))
		}
	}
}

// describeError turns a command error into a message for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, errNotLoggedIn), errors.Is(err, services.ErrNoSession):
		return "You need to log in first."
	case errors.Is(err, errAlreadyLoggedIn):
		return "You are already logged in. Log out first."
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "Input ended."
	}

	var apiErr *client.Error
	errors.As(err, &apiErr)

	switch client.KindOf(err) {
	case client.KindInvalidCredentials:
		return "Incorrect username or password."
	case client.KindUsernameTaken:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "That username is taken."
	case client.KindUnauthorized:
		return "You are not allowed to do that."
	case client.KindNotFound:
		return "Not found."
	case client.KindInvalidInput:
		switch {
		case apiErr.Message != "":
			return "Invalid input: " + apiErr.Message
		case apiErr.Err != nil:
			return "Invalid input: " + apiErr.Err.Error()
		}
		return "Invalid input."
	case client.KindRemoteUnavailable:
		return "The service is unavailable, try again later."
	}
	return "Error: " + err.Error()
}
