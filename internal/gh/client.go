// Package gh wraps the GitHub API for star management: authenticated,
// rate-limited, paginated calls with a typed error taxonomy. It is the only
// package that talks to the platform; everything above it works with
// internal/model records and the classification helpers in errors.go.
package gh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/inovacc/starkeep/internal/application"
	"github.com/inovacc/starkeep/internal/model"
	"github.com/inovacc/starkeep/internal/ratelimit"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100

	defaultMaxRetries = 3
	defaultRetryDelay = 30 * time.Second

	// resetSlack pads the wait past the advertised reset so a retry does not
	// land a moment before the window actually opens.
	resetSlack = time.Second
)

// ListOptions are the pagination and sort parameters for starred listings.
type ListOptions struct {
	Page      int    // 1-based, defaults to 1
	PerPage   int    // defaults to 30, platform maximum 100
	Sort      string // created, updated
	Direction string // asc, desc
}

// Options configures a Client. The zero value is usable with defaults.
type Options struct {
	// BaseURL overrides the public API root, e.g. for GitHub Enterprise or
	// tests. Must end in a slash or one is appended.
	BaseURL string

	Limiter    *ratelimit.Bucket
	Logger     *slog.Logger
	MaxRetries int
	RetryDelay time.Duration

	// HTTPClient is the transport the oauth2 client wraps. Mainly for tests.
	HTTPClient *http.Client
}

// Client performs the authenticated API calls. Every operation takes a
// limiter token before dispatch and classifies failures into the package
// error taxonomy; rate-limited responses are retried with a bounded number
// of attempts.
type Client struct {
	gh         *github.Client
	limiter    *ratelimit.Bucket
	logger     *slog.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an authenticated client using the provided token, the
// standard way API clients are built throughout the codebase.
func NewClient(ctx context.Context, token string, opts Options) (*Client, error) {
	base := opts.HTTPClient

	if token != "" {
		if base != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		}

		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		base = oauth2.NewClient(ctx, ts)
	}

	ghc := github.NewClient(base)
	ghc.UserAgent = application.UserAgent()

	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, err
		}

		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}

		ghc.BaseURL = u
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.New(10, 10, time.Second)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	return &Client{
		gh:         ghc,
		limiter:    limiter,
		logger:     logger,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}, nil
}

// ListStarred fetches one page of the authenticated user's starred
// repositories, in the order the server returns them.
func (c *Client) ListStarred(ctx context.Context, opts ListOptions) ([]model.Repository, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}

	var repos []model.Repository

	err := c.call(ctx, "list starred", func() (*github.Response, error) {
		ghOpts := &github.ActivityListStarredOptions{
			Sort:      opts.Sort,
			Direction: opts.Direction,
			ListOptions: github.ListOptions{
				Page:    page,
				PerPage: clampPerPage(opts.PerPage),
			},
		}

		starred, resp, err := c.gh.Activity.ListStarred(ctx, "", ghOpts)
		if err != nil {
			return resp, err
		}

		repos = make([]model.Repository, 0, len(starred))
		for _, sr := range starred {
			repos = append(repos, toRepository(sr.GetRepository()))
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return repos, nil
}

// ListAllStarred walks every page of the star list sequentially and
// concatenates the results in page order. The walk ends at the first page
// that comes back empty or short; Link headers are not consulted. Cost is
// one round-trip per page, so expect O(totalStars / PerPage) latency.
func (c *Client) ListAllStarred(ctx context.Context, opts ListOptions) ([]model.Repository, error) {
	perPage := clampPerPage(opts.PerPage)
	opts.PerPage = perPage

	var all []model.Repository

	for page := 1; ; page++ {
		opts.Page = page

		repos, err := c.ListStarred(ctx, opts)
		if err != nil {
			return nil, err
		}

		all = append(all, repos...)

		if len(repos) < perPage {
			break
		}
	}

	return all, nil
}

// Star stars a repository. The server treats re-starring as success, so the
// call is idempotent from the caller's perspective.
func (c *Client) Star(ctx context.Context, owner, name string) error {
	return c.call(ctx, "star", func() (*github.Response, error) {
		return c.gh.Activity.Star(ctx, owner, name)
	})
}

// Unstar removes a star. Idempotence is delegated to the server.
func (c *Client) Unstar(ctx context.Context, owner, name string) error {
	return c.call(ctx, "unstar", func() (*github.Response, error) {
		return c.gh.Activity.Unstar(ctx, owner, name)
	})
}

// IsStarred reports whether the authenticated user has starred owner/name.
// A not-found answer from the membership endpoint means false; any other
// failure propagates.
func (c *Client) IsStarred(ctx context.Context, owner, name string) (bool, error) {
	var starred bool

	err := c.call(ctx, "check star", func() (*github.Response, error) {
		s, resp, err := c.gh.Activity.IsStarred(ctx, owner, name)
		starred = s

		return resp, err
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}

		return false, err
	}

	return starred, nil
}

// GetRepo fetches repository details. A 404 is a legitimate outcome and is
// returned as (nil, nil); other failures propagate.
func (c *Client) GetRepo(ctx context.Context, owner, name string) (*model.Repository, error) {
	var repo *model.Repository

	err := c.call(ctx, "get repo", func() (*github.Response, error) {
		r, resp, err := c.gh.Repositories.Get(ctx, owner, name)
		if err != nil {
			return resp, err
		}

		mapped := toRepository(r)
		repo = &mapped

		return resp, nil
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return repo, nil
}

// CurrentUser fetches the authenticated principal's profile.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user *model.User

	err := c.call(ctx, "get user", func() (*github.Response, error) {
		u, resp, err := c.gh.Users.Get(ctx, "")
		if err != nil {
			return resp, err
		}

		mapped := toUser(u)
		user = &mapped

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// call runs one request through the shared pipeline: limiter token, dispatch,
// classification, and bounded retry when the platform reports the quota
// exhausted. Everything else propagates unchanged.
func (c *Client) call(ctx context.Context, op string, fn func() (*github.Response, error)) error {
	var attempts int

	for {
		if err := c.limiter.Take(ctx, 1); err != nil {
			return err
		}

		resp, err := fn()

		cerr := classify(op, resp, err)
		if cerr == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(cerr, &apiErr) || !apiErr.RateLimited() {
			return cerr
		}

		attempts++
		if attempts > c.maxRetries {
			return &RetryExhaustedError{Attempts: attempts, Err: apiErr}
		}

		wait := c.retryDelay
		if reset, ok := apiErr.RateLimitReset(); ok {
			if d := time.Until(reset) + resetSlack; d > 0 {
				wait = d
			}
		}

		c.logger.Warn("rate limited, waiting before retry",
			slog.String("op", op),
			slog.Duration("wait", wait),
			slog.Int("attempt", attempts),
		)

		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func clampPerPage(n int) int {
	switch {
	case n <= 0:
		return defaultPerPage
	case n > maxPerPage:
		return maxPerPage
	default:
		return n
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
