// Package reddit is the OAuth2 script-app client for the watched subreddit.
// It implements both the comment source and the reply delivery surface
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"rinkbot/internal/core/version"
	perr "rinkbot/internal/platform/errors"
	"rinkbot/internal/platform/logger"
	"rinkbot/internal/services/watch/domain"
)

const (
	authURLDefault  = "https://www.reddit.com/api/v1/access_token"
	baseURLDefault  = "https://oauth.reddit.com"
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 100

	// refresh this long before the token actually expires
	tokenSlack = time.Minute
)

// Options configures the client. ClientID through Password are the reddit
// script-app credentials; all four are required
type Options struct {
	AuthURL   string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	Subreddit string
	PageSize  int
}

// Client talks to reddit with a cached password-grant token
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// New creates a client with sane defaults
func New(o Options) *Client {
	if o.AuthURL == "" {
		o.AuthURL = authURLDefault
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = version.UserAgent()
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("reddit"),
		now:  time.Now,
	}
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// bearer returns a live token, fetching a new one when the cached one is
// missing or about to lapse
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Add(tokenSlack).Before(c.expires) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.opts.Username},
		"password":   {c.opts.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "reddit auth request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.SetBasicAuth(c.opts.ClientID, c.opts.ClientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeTransientFetch, "reddit auth")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", perr.TransientFetchf("reddit auth: status %d", resp.StatusCode)
	}

	var tok tokenPayload
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeMalformedPayload, "reddit auth decode")
	}
	if tok.AccessToken == "" {
		return "", perr.MalformedPayloadf("reddit auth: empty token")
	}

	c.token = tok.AccessToken
	c.expires = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.log.Debug().Time("expires", c.expires).Msg("token refreshed")
	return c.token, nil
}

// invalidate drops the cached token so the next call re-authenticates
func (c *Client) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// do issues an authenticated request, re-authenticating once on a 401.
// The caller owns the response body
func (c *Client) do(ctx context.Context, method, path string, body url.Values) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		tok, err := c.bearer(ctx)
		if err != nil {
			return nil, err
		}

		var rd io.Reader
		if body != nil {
			rd = strings.NewReader(body.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, rd)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "reddit new request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Authorization", "bearer "+tok)
		if body != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeTransientFetch, "reddit %s %s", method, path)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			_ = resp.Body.Close()
			c.invalidate()
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, perr.TransientFetchf("reddit %s %s: status %d", method, path, resp.StatusCode)
		}
		return resp, nil
	}
}

type listingPayload struct {
	Data struct {
		Children []struct {
			Data struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				LinkID string `json:"link_id"`
				Author string `json:"author"`
				Body   string `json:"body"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Latest returns the newest comments on the watched subreddit
func (c *Client) Latest(ctx context.Context) ([]domain.Comment, error) {
	path := fmt.Sprintf("/r/%s/comments.json?limit=%d", c.opts.Subreddit, c.opts.PageSize)
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var listing listingPayload
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeMalformedPayload, "reddit listing decode")
	}

	out := make([]domain.Comment, 0, len(listing.Data.Children))
	for _, ch := range listing.Data.Children {
		d := ch.Data
		out = append(out, domain.Comment{
			ID:           d.ID,
			Fullname:     d.Name,
			SubmissionID: strings.TrimPrefix(d.LinkID, "t3_"),
			Author:       d.Author,
			Body:         d.Body,
		})
	}
	return out, nil
}

// Reply posts body as a comment under parentFullname
func (c *Client) Reply(ctx context.Context, parentFullname, body string) error {
	form := url.Values{
		"api_type": {"json"},
		"thing_id": {parentFullname},
		"text":     {body},
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/comment", form)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// reddit reports field errors inside a 200 body
	var ack struct {
		JSON struct {
			Errors [][]any `json:"errors"`
		} `json:"json"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeMalformedPayload, "reddit comment decode")
	}
	if len(ack.JSON.Errors) > 0 {
		return perr.TransientFetchf("reddit comment refused: %v", ack.JSON.Errors)
	}
	return nil
}
