package plaidster

import (
	"context"
	"net/http"
	"time"
)

// DateRange bounds a transaction fetch. A zero end leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// formatDate renders a time the way the API expects dates inside options.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FetchTransactions pulls accounts and transactions for the token. The
// outcome always carries both batches on success. Pass a nil dates to fetch
// the server's default window.
func (c *Client) FetchTransactions(ctx context.Context, accessToken string, includePending bool, dates *DateRange) (*Outcome, error) {
	form := c.authForm()
	form.Set("access_token", accessToken)

	opts := map[string]interface{}{}
	if includePending {
		opts["pending"] = true
	}
	if dates != nil {
		if !dates.Start.IsZero() {
			opts["gte"] = formatDate(dates.Start)
		}
		if !dates.End.IsZero() {
			opts["lte"] = formatDate(dates.End)
		}
	}
	if err := setOptions(form, opts); err != nil {
		return nil, err
	}

	body, err := c.executeForm(ctx, http.MethodPost, transactionsPath, form)
	return classify(body, err, false)
}
