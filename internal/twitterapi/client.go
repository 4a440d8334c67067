// Package twitterapi is a read-only client for the twitterapi.io API.
// Every operation is one authenticated GET that decodes the JSON body
// of a successful response. Failures are typed: *APIError for non-2xx
// responses, *TransportError for network-level problems. The client
// never retries.
package twitterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/birdwatch/twitterapi-mcp/internal/httpkit"
)

// DefaultBaseURL is the production twitterapi.io endpoint.
const DefaultBaseURL = "https://api.twitterapi.io"

// apiKeyHeader carries the API key. The key goes only in this header,
// never in the query string and never into logs.
const apiKeyHeader = "x-api-key"

// maxResponseBytes caps decoded response bodies (10 MiB).
const maxResponseBytes int64 = 10 << 20

// Client issues requests against twitterapi.io. Construct one per
// process and share it; the underlying http.Client pools connections.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client built by New.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL. Used by tests to point
// the client at a stub server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client. The default comes from
// httpkit with shared pool limits and timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a structured logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		c.httpClient = httpkit.NewClient()
	}
	return c
}

// get performs one authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("twitterapi request", "path", path, "params", params.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       httpkit.ReadErrorBody(resp.Body, 512),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// pageParams builds the common userName/tweetId + count parameter set.
// count is serialized only when positive; an omitted optional parameter
// must not appear in the query at all.
func pageParams(key, value string, count int) url.Values {
	params := url.Values{key: {value}}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	return params
}

// GetTweets fetches a single tweet by ID. The upstream endpoint filters
// a batch lookup by the tweet_ids parameter.
func (c *Client) GetTweets(ctx context.Context, tweetID string) (*TweetsPage, error) {
	var page TweetsPage
	params := url.Values{"tweet_ids": {tweetID}}
	if err := c.get(ctx, "/twitter/tweets", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser fetches a user profile by username.
func (c *Client) GetUser(ctx context.Context, username string) (*UserResponse, error) {
	var resp UserResponse
	params := url.Values{"userName": {username}}
	if err := c.get(ctx, "/twitter/user/info", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUsersByIDs fetches multiple user profiles in one call. IDs are
// joined by comma into a single query parameter.
func (c *Client) GetUsersByIDs(ctx context.Context, userIDs []string) (*UsersPage, error) {
	var page UsersPage
	params := url.Values{"userIds": {strings.Join(userIDs, ",")}}
	if err := c.get(ctx, "/twitter/user/user_by_ids", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUserTweets fetches a user's recent tweets.
func (c *Client) GetUserTweets(ctx context.Context, username string, count int) (*TweetsPage, error) {
	var page TweetsPage
	if err := c.get(ctx, "/twitter/user/tweets", pageParams("userName", username, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUserFollowers fetches users who follow the given user.
func (c *Client) GetUserFollowers(ctx context.Context, username string, count int) (*UsersPage, error) {
	var page UsersPage
	if err := c.get(ctx, "/twitter/user/followers", pageParams("userName", username, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUserFollowings fetches users the given user follows.
func (c *Client) GetUserFollowings(ctx context.Context, username string, count int) (*UsersPage, error) {
	var page UsersPage
	if err := c.get(ctx, "/twitter/user/followings", pageParams("userName", username, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUserMentions fetches tweets mentioning the given user. cursor,
// sinceTime, and untilTime are optional; zero values are omitted from
// the query entirely.
func (c *Client) GetUserMentions(ctx context.Context, username string, count int, cursor string, sinceTime, untilTime int64) (*TweetsPage, error) {
	params := pageParams("userName", username, count)
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	if sinceTime > 0 {
		params.Set("sinceTime", strconv.FormatInt(sinceTime, 10))
	}
	if untilTime > 0 {
		params.Set("untilTime", strconv.FormatInt(untilTime, 10))
	}

	var page TweetsPage
	if err := c.get(ctx, "/twitter/user/mentions", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchTweets runs an advanced search. queryType is "Latest" or "Top";
// callers are expected to have coerced it already. cursor is optional.
func (c *Client) SearchTweets(ctx context.Context, query, queryType string, count int, cursor string) (*TweetsPage, error) {
	params := url.Values{
		"query":     {query},
		"queryType": {queryType},
	}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var page TweetsPage
	if err := c.get(ctx, "/twitter/tweet/advanced_search", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTweetReplies fetches replies to a tweet.
func (c *Client) GetTweetReplies(ctx context.Context, tweetID string, count int) (*TweetsPage, error) {
	var page TweetsPage
	if err := c.get(ctx, "/twitter/tweet/replies", pageParams("tweetId", tweetID, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTweetQuotes fetches quote tweets of a tweet.
func (c *Client) GetTweetQuotes(ctx context.Context, tweetID string, count int) (*TweetsPage, error) {
	var page TweetsPage
	if err := c.get(ctx, "/twitter/tweet/quotes", pageParams("tweetId", tweetID, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTweetRetweeters fetches users who retweeted a tweet.
func (c *Client) GetTweetRetweeters(ctx context.Context, tweetID string, count int) (*UsersPage, error) {
	var page UsersPage
	if err := c.get(ctx, "/twitter/tweet/retweeters", pageParams("tweetId", tweetID, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetThreadContext fetches the conversation around a tweet.
func (c *Client) GetThreadContext(ctx context.Context, tweetID string) (*ThreadContext, error) {
	var tc ThreadContext
	params := url.Values{"tweetId": {tweetID}}
	if err := c.get(ctx, "/twitter/tweet/thread_context", params, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

// GetListTweets fetches tweets from a list.
func (c *Client) GetListTweets(ctx context.Context, listID string, count int) (*TweetsPage, error) {
	var page TweetsPage
	if err := c.get(ctx, "/twitter/list/tweets", pageParams("listId", listID, count), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTrends fetches current trending topics.
func (c *Client) GetTrends(ctx context.Context) (*TrendsResponse, error) {
	var resp TrendsResponse
	if err := c.get(ctx, "/twitter/trends", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// verifyUsername is a known stable account used for the startup self-test.
const verifyUsername = "twitterapi"

// Verify performs the one-shot startup liveness check: a single user
// lookup against a known account. It is called exactly once before any
// tool traffic is served; failure is fatal to startup.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.GetUser(ctx, verifyUsername); err != nil {
		return fmt.Errorf("twitterapi connection test: %w", err)
	}
	return nil
}
