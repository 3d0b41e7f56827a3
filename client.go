package plaidster

import (
	"strings"
	"sync"
	"time"

	"github.com/dhsu210/Plaidster/httpwrap"
)

// Client talks to the aggregation API on behalf of one client_id/secret
// pair. Configuration is fixed at construction time; the builder methods
// below are meant to be chained off New before the first request. A Client
// is safe for concurrent use once configured.
type Client struct {
	clientID           string
	secret             string
	env                Environment
	baseURL            string
	client             *httpwrap.Client
	delay              int64
	logTraffic         bool
	maxChallengeRounds int
	userAgent          string

	mu   sync.Mutex // guards next
	next time.Time  // earliest moment the next request may start
}

// New creates a Client for the given credentials and environment.
func New(clientID, secret string, env Environment) *Client {
	client := &Client{
		clientID:  clientID,
		secret:    secret,
		env:       env,
		baseURL:   env.baseURL(),
		userAgent: GetUserAgent(),
	}
	client.client = httpwrap.NewClient().WithTimeout(DefaultTimeout).WithUserAgent(client.userAgent)
	return client
}

// WithBaseURL overrides the environment's host. Intended for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// WithClientTimeout overrides the per-request timeout.
func (c *Client) WithClientTimeout(timeout time.Duration) *Client {
	c.client.SetTimeout(timeout)
	return c
}

// WithDelay spaces successive requests by the given number of seconds.
func (c *Client) WithDelay(seconds int64) *Client {
	c.delay = seconds
	return c
}

// WithRawTrafficLogging logs every response body at Debug level.
func (c *Client) WithRawTrafficLogging(enabled bool) *Client {
	c.logTraffic = enabled
	return c
}

// WithMaxChallengeRounds caps how many challenge responses a Session will
// submit before failing with ErrChallengeRoundsExceeded. Zero, the default,
// means unbounded.
func (c *Client) WithMaxChallengeRounds(rounds int) *Client {
	c.maxChallengeRounds = rounds
	return c
}

// SetUserAgent sets the User-Agent sent on every request.
func (c *Client) SetUserAgent(userAgent string) *Client {
	c.userAgent = userAgent
	c.client.WithUserAgent(userAgent)
	return c
}

// SetProxy
// set http proxy in the format `http://HOST:PORT`
// set socks proxy in the format `socks5://HOST:PORT`
func (c *Client) SetProxy(proxyAddr string) error {
	return c.client.SetProxy(proxyAddr)
}
