package plaidster

import (
	"context"
	"net/http"

	"github.com/dhsu210/Plaidster/types"
)

// FetchBalances returns real-time balances for every account linked by the
// token.
func (c *Client) FetchBalances(ctx context.Context, accessToken string) ([]types.Account, error) {
	form := c.authForm()
	form.Set("access_token", accessToken)

	body, err := c.executeForm(ctx, http.MethodPost, balancePath, form)
	outcome, classifyErr := classify(body, err, false)
	if classifyErr != nil {
		return nil, classifyErr
	}
	return outcome.Accounts, nil
}
