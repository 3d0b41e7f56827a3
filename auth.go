package plaidster

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Credentials is one end user's login for one institution. Consumed once
// per login attempt.
type Credentials struct {
	Username        string
	Password        string
	PIN             string // optional; some institutions require it
	InstitutionType string // institution identifier, e.g. "wells"
	Product         Product
}

// LoginOptions tune the initial credential submission.
type LoginOptions struct {
	// LoginOnly asks the server to skip the initial transaction pull.
	LoginOnly bool
	// List asks the server to answer device-based MFA with a list of
	// destinations to choose from instead of picking one itself.
	List bool
}

// ChallengeResponse is the caller's answer to a pending challenge. Build it
// with AnswerResponse, DeviceTypeResponse or DeviceMaskResponse; the zero
// value submits an empty answer.
type ChallengeResponse struct {
	answer     string
	deviceType string
	deviceMask string
}

// AnswerResponse answers a security question or submits a device
// confirmation code.
func AnswerResponse(text string) ChallengeResponse {
	return ChallengeResponse{answer: text}
}

// DeviceTypeResponse picks the destination device by its type, e.g.
// "phone" or "email".
func DeviceTypeResponse(deviceType string) ChallengeResponse {
	return ChallengeResponse{deviceType: deviceType}
}

// DeviceMaskResponse picks the destination device by its mask, e.g.
// "xxx-xxx-5309".
func DeviceMaskResponse(mask string) ChallengeResponse {
	return ChallengeResponse{deviceMask: mask}
}

// Login submits credentials against the credentials' product (connect by
// default). A non-nil Challenge on the outcome means the login is not done:
// keep the access token and answer with SubmitChallengeResponse. Cancel via
// ctx; cancellation surfaces as a transport failure.
func (c *Client) Login(ctx context.Context, credentials Credentials, options LoginOptions) (*Outcome, error) {
	product := credentials.Product
	if product == "" {
		product = ProductConnect
	}

	form := c.authForm()
	form.Set("username", credentials.Username)
	form.Set("password", credentials.Password)
	if credentials.PIN != "" {
		form.Set("pin", credentials.PIN)
	}
	form.Set("type", credentials.InstitutionType)

	opts := map[string]interface{}{}
	if options.LoginOnly {
		opts["login_only"] = true
	}
	if options.List {
		opts["list"] = true
	}
	if err := setOptions(form, opts); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"institution": credentials.InstitutionType,
		"product":     string(product),
	}).Info("Submitting credentials")

	body, err := c.executeForm(ctx, http.MethodPost, "/"+string(product), form)
	return classify(body, err, false)
}

// SubmitChallengeResponse answers an outstanding MFA challenge using the
// access token issued alongside it. The server may answer with yet another
// challenge; there is no protocol cap on rounds.
func (c *Client) SubmitChallengeResponse(ctx context.Context, product Product, accessToken string, response ChallengeResponse) (*Outcome, error) {
	if product == "" {
		product = ProductConnect
	}

	form := c.authForm()
	form.Set("access_token", accessToken)
	switch {
	case response.deviceType != "":
		sendMethod := map[string]interface{}{"send_method": map[string]interface{}{"type": response.deviceType}}
		if err := setOptions(form, sendMethod); err != nil {
			return nil, err
		}
	case response.deviceMask != "":
		sendMethod := map[string]interface{}{"send_method": map[string]interface{}{"mask": response.deviceMask}}
		if err := setOptions(form, sendMethod); err != nil {
			return nil, err
		}
	default:
		form.Set("mfa", response.answer)
	}

	logrus.WithField("product", string(product)).Info("Submitting challenge response")

	body, err := c.executeForm(ctx, http.MethodPost, "/"+string(product)+stepPath, form)
	return classify(body, err, false)
}

// RemoveUser unlinks the institution behind the token and invalidates the
// token. The caller owns no server-side state afterwards.
func (c *Client) RemoveUser(ctx context.Context, product Product, accessToken string) error {
	if product == "" {
		product = ProductConnect
	}

	form := c.authForm()
	form.Set("access_token", accessToken)

	body, err := c.executeForm(ctx, http.MethodDelete, "/"+string(product), form)
	_, classifyErr := classify(body, err, false)
	return classifyErr
}
