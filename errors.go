package plaidster

import (
	"errors"
	"fmt"
)

// Server-declared error codes. The first three map to dedicated sentinel
// errors; every other non-null code is surfaced as a generic *APIError that
// preserves the raw code and message.
const (
	CodeBadAccessToken     = 1105
	CodeItemNotFound       = 1401
	CodeInstitutionDown    = 1601
	CodeInvalidCredentials = 1200
	CodeProductNotFound    = 1104
)

var (
	// ErrInstitutionDown means the institution is not currently reachable
	// by the aggregator. Retrying later is the only remedy.
	ErrInstitutionDown = errors.New("institution is currently down")
	// ErrBadAccessToken means the access token is unknown or revoked.
	ErrBadAccessToken = errors.New("bad access token")
	// ErrItemNotFound means the linked item no longer exists server-side.
	ErrItemNotFound = errors.New("item not found")
	// ErrJSONDecodingFailed means the response envelope was not valid
	// JSON. Fatal for the round trip, never retried.
	ErrJSONDecodingFailed = errors.New("failed to decode response body")
	// ErrInconsistentMFAPayload means exactly one of the type/mfa fields
	// was present. A well-formed response carries both or neither, so this
	// signals a server/client contract mismatch.
	ErrInconsistentMFAPayload = errors.New("inconsistent mfa payload")
	// ErrNoData means the response carried no body on an endpoint where an
	// empty body is not a valid success.
	ErrNoData = errors.New("no data in response")
	// ErrInvalidSessionState means a session operation was called from a
	// state it is not valid in. This is a caller contract violation, not a
	// protocol state.
	ErrInvalidSessionState = errors.New("invalid session state")
	// ErrChallengeRoundsExceeded means the caller-configured challenge
	// round cap was reached. Rounds are unbounded unless a cap is set.
	ErrChallengeRoundsExceeded = errors.New("challenge round limit exceeded")
)

// APIError is a non-null error code returned inside a response envelope.
// Codes with dedicated mappings unwrap to their sentinel so callers can use
// errors.Is; every code keeps its raw message for inspection.
type APIError struct {
	Code    int
	Message string
	err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %v", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

func newAPIError(code int, message string) *APIError {
	apiErr := &APIError{Code: code, Message: message}
	switch code {
	case CodeInstitutionDown:
		apiErr.err = ErrInstitutionDown
	case CodeBadAccessToken:
		apiErr.err = ErrBadAccessToken
	case CodeItemNotFound:
		apiErr.err = ErrItemNotFound
	}
	return apiErr
}
