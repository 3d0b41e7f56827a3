package plaidster

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/dhsu210/Plaidster/types"
)

// SearchInstitutions queries the institution directory by name, optionally
// narrowed to institutions supporting the given product. An empty response
// body means no matches, not a failure; an empty slice is returned. Cancel
// an in-flight search via ctx.
func (c *Client) SearchInstitutions(ctx context.Context, query string, product Product) ([]types.SearchInstitution, error) {
	params := url.Values{}
	params.Set("q", query)
	if product != "" {
		params.Set("p", string(product))
	}
	return c.searchInstitutions(ctx, params)
}

// SearchInstitutionsByID looks a single institution up by its identifier.
func (c *Client) SearchInstitutionsByID(ctx context.Context, id string) ([]types.SearchInstitution, error) {
	params := url.Values{}
	params.Set("id", id)
	return c.searchInstitutions(ctx, params)
}

func (c *Client) searchInstitutions(ctx context.Context, params url.Values) ([]types.SearchInstitution, error) {
	body, err := c.executeGet(ctx, searchPath, params)
	records, classifyErr := classifyRecords(body, err, true)
	if classifyErr != nil {
		return nil, classifyErr
	}

	institutions := make([]types.SearchInstitution, 0, len(records))
	for _, record := range records {
		institution, err := types.DecodeSearchInstitution(record)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed search result")
			continue
		}
		institutions = append(institutions, institution)
	}
	return institutions, nil
}
