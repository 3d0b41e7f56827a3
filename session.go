package plaidster

import (
	"context"
	"fmt"

	"github.com/dhsu210/Plaidster/types"
)

// SessionState is where a login flow currently stands.
type SessionState int

const (
	// StateIdle is the initial state; credentials have not been submitted.
	StateIdle SessionState = iota
	// StateAwaitingCredentials means a round trip is in flight.
	StateAwaitingCredentials
	// StateAwaitingChallenge means a challenge has been surfaced to the
	// caller and exactly one response is pending.
	StateAwaitingChallenge
	// StateAuthenticated is the terminal success state.
	StateAuthenticated
	// StateFailed is the terminal failure state. The session keeps the
	// error; it never retries on its own.
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingCredentials:
		return "awaiting credentials"
	case StateAwaitingChallenge:
		return "awaiting challenge response"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Session drives one login through zero or more challenge rounds until it
// reaches a terminal state. The server issues the access token alongside
// the first challenge, and that same token is reused on every subsequent
// challenge-response call; Session tracks it so callers don't have to.
//
// A Session owns at most one in-flight request and is not safe for
// concurrent use. Challenge rounds are unbounded unless the client was
// configured with WithMaxChallengeRounds.
type Session struct {
	client      *Client
	product     Product
	state       SessionState
	accessToken string
	challenge   *types.Challenge
	rounds      int
	err         error
}

// NewSession creates an idle login session.
func (c *Client) NewSession() *Session {
	return &Session{client: c, state: StateIdle}
}

// State reports where the flow currently stands.
func (s *Session) State() SessionState {
	return s.state
}

// AccessToken returns the token issued so far, if any. It is valid for data
// fetches only once the session is authenticated.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// Challenge returns the pending challenge, or nil when none is outstanding.
func (s *Session) Challenge() *types.Challenge {
	return s.challenge
}

// Err returns the error that moved the session to StateFailed, if any.
func (s *Session) Err() error {
	return s.err
}

// Submit sends the initial credentials. Valid only from StateIdle.
func (s *Session) Submit(ctx context.Context, credentials Credentials, options LoginOptions) (*Outcome, error) {
	if s.state != StateIdle {
		return nil, fmt.Errorf("%w: submit from %v", ErrInvalidSessionState, s.state)
	}
	s.product = credentials.Product
	if s.product == "" {
		s.product = ProductConnect
	}
	s.state = StateAwaitingCredentials
	return s.apply(s.client.Login(ctx, credentials, options))
}

// SubmitChallengeResponse answers the pending challenge. Valid only from
// StateAwaitingChallenge; the server, not the client, validates that the
// response shape matches the pending challenge's kind, so whatever the
// caller supplies is passed through.
func (s *Session) SubmitChallengeResponse(ctx context.Context, response ChallengeResponse) (*Outcome, error) {
	if s.state != StateAwaitingChallenge {
		return nil, fmt.Errorf("%w: challenge response from %v", ErrInvalidSessionState, s.state)
	}
	if max := s.client.maxChallengeRounds; max > 0 && s.rounds >= max {
		s.state = StateFailed
		s.err = ErrChallengeRoundsExceeded
		return nil, s.err
	}
	s.rounds++
	s.challenge = nil
	s.state = StateAwaitingCredentials
	return s.apply(s.client.SubmitChallengeResponse(ctx, s.product, s.accessToken, response))
}

// apply moves the session according to one round trip's outcome.
func (s *Session) apply(outcome *Outcome, err error) (*Outcome, error) {
	if err != nil {
		s.state = StateFailed
		s.err = err
		return nil, err
	}
	if outcome.AccessToken != "" {
		s.accessToken = outcome.AccessToken
	}
	if outcome.Challenge != nil {
		s.challenge = outcome.Challenge
		s.state = StateAwaitingChallenge
	} else {
		s.state = StateAuthenticated
	}
	return outcome, nil
}
