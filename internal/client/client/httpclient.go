package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "hackorsnooze-cli/1.0"

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// HTTPConfig holds transport settings for HTTPClient.
type HTTPConfig struct {
	BaseURL string
	// Timeout bounds every request; zero means wait indefinitely.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls; zero disables throttling.
	RequestsPerSecond float64
	// StoriesLimit is sent as ?limit= on GET /stories when positive.
	StoriesLimit int
	UserAgent    string
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	storiesLimit int
	limiter      *rate.Limiter
	logger       logging.Logger

	newRequestID func() string
}

// NewHTTPClient validates cfg and builds a client. Passing a nil httpClient
// uses a fresh http.Client with cfg.Timeout.
func NewHTTPClient(cfg HTTPConfig, httpClient *http.Client, logger logging.Logger) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &HTTPClient{
		httpClient:   httpClient,
		baseURL:      base,
		userAgent:    userAgent,
		storiesLimit: cfg.StoriesLimit,
		logger:       logger.With("component", "api"),
		newRequestID: uuid.NewString,
	}

	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

// wire shapes

type storyEnvelope struct {
	Story models.Story `json:"story"`
}

type storiesEnvelope struct {
	Stories []models.Story `json:"stories"`
}

type userEnvelope struct {
	User models.UserProfile `json:"user"`
}

type authEnvelope struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type storyRequest struct {
	Token string             `json:"token"`
	Story models.StoryFields `json:"story"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type credentialsRequest struct {
	User credentials `json:"user"`
}

type userUpdateRequest struct {
	Token string            `json:"token"`
	User  models.UserUpdate `json:"user"`
}

type apiErrorBody struct {
	Error struct {
		Status  int             `json:"status"`
		Title   string          `json:"title"`
		Message json.RawMessage `json:"message"`
	} `json:"error"`
}

// request describes one API call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	kinds  statusKinds
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindRemoteUnavailable, Op: r.op, Err: err}
		}
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return &Error{Kind: KindInvalidInput, Op: r.op, Err: fmt.Errorf("marshal request body: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return &Error{Kind: KindRemoteUnavailable, Op: r.op, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("op", r.op, "method", r.method, "path", r.path, "request_id", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &Error{Kind: KindRemoteUnavailable, Op: r.op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	log = log.With("status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			Kind:    r.kinds.kind(resp.StatusCode),
			Op:      r.op,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
		log.Debug(ctx, "request rejected", "kind", apiErr.Kind.String(), "message", apiErr.Message)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Warn(ctx, "undecodable response", "error", err)
			return &Error{Kind: KindRemoteUnavailable, Op: r.op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	log.Debug(ctx, "request done")
	return nil
}

// readErrorMessage extracts error.message (a string or a list of strings)
// from an API error body, falling back to error.title or the raw text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}

	var msg string
	if err := json.Unmarshal(body.Error.Message, &msg); err == nil && msg != "" {
		return msg
	}
	var msgs []string
	if err := json.Unmarshal(body.Error.Message, &msgs); err == nil && len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return body.Error.Title
}

func storyPath(storyID string) string {
	return "/stories/" + url.PathEscape(storyID)
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

func favoritePath(username, storyID string) string {
	return userPath(username) + "/favorites/" + url.PathEscape(storyID)
}

func (c *HTTPClient) ListStories(ctx context.Context) ([]models.Story, error) {
	var query url.Values
	if c.storiesLimit > 0 {
		query = url.Values{"limit": {strconv.Itoa(c.storiesLimit)}}
	}

	var out storiesEnvelope
	err := c.do(ctx, request{op: "list stories", method: http.MethodGet, path: "/stories", query: query, kinds: readKinds}, &out)
	if err != nil {
		return nil, err
	}
	return out.Stories, nil
}

func (c *HTTPClient) CreateStory(ctx context.Context, token string, fields models.StoryFields) (models.Story, error) {
	var out storyEnvelope
	err := c.do(ctx, request{
		op:     "create story",
		method: http.MethodPost,
		path:   "/stories",
		body:   storyRequest{Token: token, Story: fields},
		kinds:  mutationKinds,
	}, &out)
	if err != nil {
		return models.Story{}, err
	}
	return out.Story, nil
}

func (c *HTTPClient) UpdateStory(ctx context.Context, token, storyID string, fields models.StoryFields) (models.Story, error) {
	var out storyEnvelope
	err := c.do(ctx, request{
		op:     "update story",
		method: http.MethodPatch,
		path:   storyPath(storyID),
		body:   storyRequest{Token: token, Story: fields},
		kinds:  mutationKinds,
	}, &out)
	if err != nil {
		return models.Story{}, err
	}
	return out.Story, nil
}

func (c *HTTPClient) DeleteStory(ctx context.Context, token, storyID string) error {
	return c.do(ctx, request{
		op:     "delete story",
		method: http.MethodDelete,
		path:   storyPath(storyID),
		body:   tokenRequest{Token: token},
		kinds:  mutationKinds,
	}, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, username, password, name string) (AuthResult, error) {
	var out authEnvelope
	err := c.do(ctx, request{
		op:     "signup",
		method: http.MethodPost,
		path:   "/signup",
		body:   credentialsRequest{User: credentials{Username: username, Password: password, Name: name}},
		kinds:  signupKinds,
	}, &out)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: out.Token, Profile: out.User}, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (AuthResult, error) {
	var out authEnvelope
	err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/login",
		body:   credentialsRequest{User: credentials{Username: username, Password: password}},
		kinds:  loginKinds,
	}, &out)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: out.Token, Profile: out.User}, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, token, username string) (models.UserProfile, error) {
	var out userEnvelope
	err := c.do(ctx, request{
		op:     "get user",
		method: http.MethodGet,
		path:   userPath(username),
		query:  url.Values{"token": {token}},
		kinds:  restoreKinds,
	}, &out)
	if err != nil {
		return models.UserProfile{}, err
	}
	return out.User, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, token, username string, update models.UserUpdate) (models.UserProfile, error) {
	var out userEnvelope
	err := c.do(ctx, request{
		op:     "update user",
		method: http.MethodPatch,
		path:   userPath(username),
		body:   userUpdateRequest{Token: token, User: update},
		kinds:  mutationKinds,
	}, &out)
	if err != nil {
		return models.UserProfile{}, err
	}
	return out.User, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token, username, storyID string) (models.UserProfile, error) {
	return c.favorite(ctx, "add favorite", http.MethodPost, token, username, storyID)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token, username, storyID string) (models.UserProfile, error) {
	return c.favorite(ctx, "remove favorite", http.MethodDelete, token, username, storyID)
}

func (c *HTTPClient) favorite(ctx context.Context, op, method, token, username, storyID string) (models.UserProfile, error) {
	var out userEnvelope
	err := c.do(ctx, request{
		op:     op,
		method: method,
		path:   favoritePath(username, storyID),
		body:   tokenRequest{Token: token},
		kinds:  mutationKinds,
	}, &out)
	if err != nil {
		return models.UserProfile{}, err
	}
	return out.User, nil
}
