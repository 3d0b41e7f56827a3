package httpwrap

import "net/http"

// UserAgentTransport is a custom RoundTripper that stamps a User-Agent
// header on every request.
type UserAgentTransport struct {
	Transport http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction with the User-Agent set.
func (u *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("User-Agent", u.UserAgent)

	// Use the provided Transport or the default one
	if u.Transport == nil {
		u.Transport = http.DefaultTransport
	}

	return u.Transport.RoundTrip(reqClone)
}
