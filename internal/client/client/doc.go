// Package client contains the client-side building blocks that talk to the
// Hack or Snooze stories API and keep local state.
//
// # Overview
//
//  1. A transport-agnostic API contract (Client) covering stories, users,
//     authentication and favorites.
//  2. A net/http implementation (HTTPClient) that encodes the JSON bodies the
//     API expects, tags every request with an X-Request-ID, throttles
//     outbound calls with a token bucket and turns failed responses into
//     *Error values.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns an *Error whose Kind is chosen by the call site:
// a 401 from /login is KindInvalidCredentials, a 409 from /signup is
// KindUsernameTaken, a 401 on a story mutation is KindUnauthorized, and
// transport failures or 5xx are KindRemoteUnavailable. Match with errors.Is
// against ErrUnavailable, ErrInvalidCredentials, ErrUsernameTaken,
// ErrUnauthorized, ErrNotFound or ErrInvalidInput, or use KindOf.
//
// No call is retried.
package client
