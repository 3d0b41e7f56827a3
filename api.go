package plaidster

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/dhsu210/Plaidster/httpwrap"
)

// authForm returns the form fields common to every mutating request.
func (c *Client) authForm() url.Values {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("secret", c.secret)
	return form
}

// setOptions serializes the options object to JSON and form-encodes it as a
// single field, which is how the API expects it.
func setOptions(form url.Values, options map[string]interface{}) error {
	if len(options) == 0 {
		return nil
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return err
	}
	form.Set("options", string(encoded))
	return nil
}

// executeForm performs one mutating round trip. The raw body and transport
// error are both handed back so the caller can classify them together; a
// transport error here means the exchange never completed.
func (c *Client) executeForm(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	c.waitTurn()

	headers := httpwrap.NewHeader()
	headers.AddContentType("application/x-www-form-urlencoded")

	body, statusCode, err := c.client.DoForm(ctx, method, c.baseURL+path, form, headers)
	if err != nil {
		logrus.WithError(err).Error("Failed to execute request")
		return nil, err
	}
	if c.logTraffic {
		logrus.WithFields(logrus.Fields{
			"status_code": statusCode,
			"body":        string(body),
		}).Debug("Received response")
	}
	return body, nil
}

// executeGet performs one read-only round trip against the reference
// endpoints, which take no credentials.
func (c *Client) executeGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	c.waitTurn()

	body, statusCode, err := c.client.Get(ctx, c.baseURL+path, params, httpwrap.NewHeader())
	if err != nil {
		logrus.WithError(err).Error("Failed to execute request")
		return nil, err
	}
	if c.logTraffic {
		logrus.WithFields(logrus.Fields{
			"status_code": statusCode,
			"body":        string(body),
		}).Debug("Received response")
	}
	return body, nil
}

// waitTurn spaces successive requests by the configured delay plus a little
// jitter. The bookkeeping is held under the client's mutex so concurrent
// callers queue up one after another.
func (c *Client) waitTurn() {
	if c.delay <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	time.Sleep(time.Until(c.next))
	jitter := time.Duration(rand.Intn(500)) * time.Millisecond
	c.next = time.Now().Add(time.Second*time.Duration(c.delay) + jitter)
}
