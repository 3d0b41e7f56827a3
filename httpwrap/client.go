package httpwrap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

const DefaultClientTimeout = 60 * time.Second

// Client is a wrapper around http.Client that provides simplified HTTP methods.
type Client struct {
	httpClient *http.Client
	proxy      string
	userAgent  string
}

// NewClient creates a new Client with the default timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultClientTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoRequest sends an HTTP request and returns the response body and status
// code. A completed exchange is never an error here, whatever the status
// code: the API reports its failures inside the body, so callers classify
// the body rather than the status. Errors are reserved for exchanges that
// never completed (DNS, timeout, cancellation, connection reset).
func (c *Client) DoRequest(ctx context.Context, method, rawURL string, bodyReader io.Reader, headers Header) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, -1, err
	}

	// Set headers
	for key, value := range headers {
		req.Header.Add(key, value)
	}
	if req.Header.Get("Content-Type") == "" && bodyReader != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, -1, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logrus.Errorf("error closing response body: %v\n", err)
		}
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		httpErr := HTTPError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		httpErr.Log()
	}
	return respBody, resp.StatusCode, nil
}

// DoForm form-encodes the given values and sends them as the request body.
func (c *Client) DoForm(ctx context.Context, method, rawURL string, form url.Values, headers Header) ([]byte, int, error) {
	return c.DoRequest(ctx, method, rawURL, strings.NewReader(form.Encode()), headers)
}

// Get sends an HTTP GET request with the given query parameters.
func (c *Client) Get(ctx context.Context, baseURL string, urlParams url.Values, headers Header) ([]byte, int, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, -1, fmt.Errorf("invalid base URL: %w", err)
	}

	parsedURL.RawQuery = urlParams.Encode()

	return c.DoRequest(ctx, http.MethodGet, parsedURL.String(), nil, headers)
}

// SetTimeout sets the timeout for the underlying http.Client.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithUserAgent stamps every request with the given User-Agent, wrapping
// whatever transport is currently installed.
func (c *Client) WithUserAgent(userAgent string) *Client {
	c.userAgent = userAgent
	c.httpClient.Transport = &UserAgentTransport{
		Transport: c.httpClient.Transport,
		UserAgent: userAgent,
	}
	return c
}

// SetProxy sets the proxy for the underlying http.Client.
// set http proxy in the format `http://HOST:PORT`
// set socks proxy in the format `socks5://HOST:PORT`
func (c *Client) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		c.httpClient.Transport = &http.Transport{
			TLSNextProto: make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			DialContext: (&net.Dialer{
				Timeout: c.httpClient.Timeout,
			}).DialContext,
		}
	} else if strings.HasPrefix(proxyAddr, "http") {
		urlproxy, err := url.Parse(proxyAddr)
		if err != nil {
			return err
		}
		c.httpClient.Transport = &http.Transport{
			Proxy:        http.ProxyURL(urlproxy),
			TLSNextProto: make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			DialContext: (&net.Dialer{
				Timeout: c.httpClient.Timeout,
			}).DialContext,
		}
		c.proxy = proxyAddr
	} else if strings.HasPrefix(proxyAddr, "socks5") {
		baseDialer := &net.Dialer{
			Timeout:   c.httpClient.Timeout,
			KeepAlive: c.httpClient.Timeout,
		}
		proxyURL, err := url.Parse(proxyAddr)
		if err != nil {
			return err
		}

		// username password
		username := proxyURL.User.Username()
		password, _ := proxyURL.User.Password()

		// ip and port
		host := proxyURL.Hostname()
		port := proxyURL.Port()

		dialSocksProxy, err := proxy.SOCKS5("tcp", host+":"+port, &proxy.Auth{User: username, Password: password}, baseDialer)
		if err != nil {
			return errors.New("error creating socks5 proxy :" + err.Error())
		}
		if contextDialer, ok := dialSocksProxy.(proxy.ContextDialer); ok {
			dialContext := contextDialer.DialContext
			c.httpClient.Transport = &http.Transport{
				DialContext: dialContext,
			}
		} else {
			return errors.New("failed type assertion to DialContext")
		}
		c.proxy = proxyAddr
	} else {
		return errors.New("only support http(s) or socks5 protocol")
	}
	// Proxy replacement installs a fresh transport, so the User-Agent
	// wrapper has to be reapplied on top of it.
	if c.userAgent != "" {
		c.httpClient.Transport = &UserAgentTransport{
			Transport: c.httpClient.Transport,
			UserAgent: c.userAgent,
		}
	}
	return nil
}
