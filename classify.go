package plaidster

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dhsu210/Plaidster/types"
)

// envelope is the JSON shape shared by every mutating endpoint. Error
// responses carry code/message, MFA responses carry type/mfa, and completed
// responses carry the access token plus whichever entity batches the
// endpoint returns. Pointer and RawMessage fields keep "absent" and "empty"
// distinguishable, which the MFA consistency check depends on.
type envelope struct {
	Code         *int              `json:"code"`
	Message      string            `json:"message"`
	Resolve      string            `json:"resolve"`
	AccessToken  string            `json:"access_token"`
	MFAType      *string           `json:"type"`
	MFA          json.RawMessage   `json:"mfa"`
	Accounts     []json.RawMessage `json:"accounts"`
	Transactions []json.RawMessage `json:"transactions"`
}

// Outcome is the result of one completed round trip. Exactly one of two
// shapes is populated: a non-nil Challenge means the server wants another
// MFA round before the login completes, otherwise the call is done and the
// token plus whichever entity batches the endpoint returns are filled in.
// Failures never produce an Outcome; they are returned as errors.
type Outcome struct {
	AccessToken  string
	Challenge    *types.Challenge
	Accounts     []types.Account
	Transactions []types.Transaction
}

// ChallengeRequired reports whether the server answered with an MFA
// challenge instead of completed data.
func (o *Outcome) ChallengeRequired() bool {
	return o != nil && o.Challenge != nil
}

// Wire values of the envelope's type field.
const (
	mfaTypeQuestions = "questions"
	mfaTypeList      = "list"
	mfaTypeDevice    = "device"
)

// classify turns one raw response into exactly one of: a transport failure,
// an API error, a challenge-required outcome, or an authenticated outcome.
// It is a pure function of its inputs. allowEmpty marks endpoints where an
// empty body is a valid "no results" success rather than a failure.
func classify(body []byte, transportErr error, allowEmpty bool) (*Outcome, error) {
	if transportErr != nil && len(body) == 0 {
		return nil, fmt.Errorf("executing request: %w", transportErr)
	}
	if emptyBody(body) {
		if allowEmpty {
			return &Outcome{}, nil
		}
		return nil, ErrNoData
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONDecodingFailed, err)
	}

	if env.Code != nil {
		return nil, newAPIError(*env.Code, env.Message)
	}

	hasType := env.MFAType != nil
	hasMFA := !emptyBody(env.MFA)
	if hasType != hasMFA {
		return nil, ErrInconsistentMFAPayload
	}
	if hasType {
		challenge, err := buildChallenge(*env.MFAType, env.MFA)
		if err != nil {
			return nil, err
		}
		return &Outcome{AccessToken: env.AccessToken, Challenge: challenge}, nil
	}

	outcome := &Outcome{AccessToken: env.AccessToken}
	if env.Accounts != nil {
		outcome.Accounts = decodeAccounts(env.Accounts)
	}
	if env.Transactions != nil {
		outcome.Transactions = decodeTransactions(env.Transactions)
	}
	return outcome, nil
}

// classifyRecords handles the reference endpoints, whose successful
// responses are bare JSON arrays rather than envelopes. Error responses
// still use the envelope shape.
func classifyRecords(body []byte, transportErr error, allowEmpty bool) ([]json.RawMessage, error) {
	if transportErr != nil && len(body) == 0 {
		return nil, fmt.Errorf("executing request: %w", transportErr)
	}
	if emptyBody(body) {
		if allowEmpty {
			return nil, nil
		}
		return nil, ErrNoData
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONDecodingFailed, err)
	}
	if env.Code != nil {
		return nil, newAPIError(*env.Code, env.Message)
	}
	return nil, fmt.Errorf("%w: expected a record list", ErrJSONDecodingFailed)
}

// buildChallenge interprets the mfa payload according to its declared type.
func buildChallenge(mfaType string, payload json.RawMessage) (*types.Challenge, error) {
	payload = normalizeMFAPayload(payload)
	switch mfaType {
	case mfaTypeQuestions:
		var questions []types.Question
		if err := json.Unmarshal(payload, &questions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJSONDecodingFailed, err)
		}
		return &types.Challenge{Kind: types.ChallengeQuestions, Questions: questions}, nil
	case mfaTypeList:
		var devices []types.Device
		if err := json.Unmarshal(payload, &devices); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJSONDecodingFailed, err)
		}
		return &types.Challenge{Kind: types.ChallengeDeviceList, Devices: devices}, nil
	case mfaTypeDevice:
		// The device type carries either mask-bearing destination
		// records (a list to pick from) or a message that a code was
		// already sent; the payload shape is the only discriminator.
		var entries []struct {
			types.Device
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJSONDecodingFailed, err)
		}
		devices := make([]types.Device, 0, len(entries))
		var message string
		for _, entry := range entries {
			if entry.Mask != "" {
				devices = append(devices, entry.Device)
			} else if message == "" {
				message = entry.Message
			}
		}
		if len(devices) > 0 {
			return &types.Challenge{Kind: types.ChallengeDeviceList, Devices: devices}, nil
		}
		return &types.Challenge{Kind: types.ChallengeDeviceConfirm, Message: message}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mfa type %q", ErrInconsistentMFAPayload, mfaType)
	}
}

// emptyBody reports whether a response carried no usable payload. A body of
// literal null decodes as an absent value everywhere downstream, so it is
// treated the same as no body at all.
func emptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// normalizeMFAPayload wraps a bare object into a one-element list. The step
// endpoint answers with a bare object where the login endpoint answers with
// a list; the server-side cause is unknown, so the shape is normalized here
// exactly as observed rather than special-cased by callers.
func normalizeMFAPayload(payload json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	wrapped := make([]byte, 0, len(trimmed)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, ']')
	return wrapped
}

// decodeAccounts decodes each record independently so one malformed record
// cannot discard the rest of the batch.
func decodeAccounts(raw []json.RawMessage) []types.Account {
	accounts := make([]types.Account, 0, len(raw))
	for _, record := range raw {
		account, err := types.DecodeAccount(record)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed account record")
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts
}

func decodeTransactions(raw []json.RawMessage) []types.Transaction {
	transactions := make([]types.Transaction, 0, len(raw))
	for _, record := range raw {
		transaction, err := types.DecodeTransaction(record)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed transaction record")
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions
}
