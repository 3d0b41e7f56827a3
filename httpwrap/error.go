package httpwrap

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// HTTPError records a completed exchange that came back with a non-success
// status. The API carries its diagnosis in the body, so this is logged for
// visibility rather than returned as a failure.
type HTTPError struct {
	Status     string
	StatusCode int
	Body       []byte
	Err        error
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
}

func (e HTTPError) Log() {
	logrus.WithFields(logrus.Fields{
		"status":  e.Status,
		"content": string(e.Body),
	}).Warn("Non-success response status")
}
