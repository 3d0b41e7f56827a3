package plaidster

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dhsu210/Plaidster/types"
)

// FetchCategories returns the full transaction category taxonomy. No
// credentials required.
func (c *Client) FetchCategories(ctx context.Context) ([]types.Category, error) {
	body, err := c.executeGet(ctx, categoriesPath, nil)
	records, classifyErr := classifyRecords(body, err, false)
	if classifyErr != nil {
		return nil, classifyErr
	}

	categories := make([]types.Category, 0, len(records))
	for _, record := range records {
		category, err := types.DecodeCategory(record)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed category record")
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}
