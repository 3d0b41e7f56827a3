package plaidster

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/dhsu210/Plaidster/types"
)

// FetchInstitutions returns the curated institution directory. No
// credentials required.
func (c *Client) FetchInstitutions(ctx context.Context) ([]types.Institution, error) {
	body, err := c.executeGet(ctx, institutionsPath, nil)
	records, classifyErr := classifyRecords(body, err, false)
	if classifyErr != nil {
		return nil, classifyErr
	}
	return decodeInstitutions(records), nil
}

// FetchLongtailInstitutions pages through the much larger longtail
// directory, count records at a time starting at offset.
func (c *Client) FetchLongtailInstitutions(ctx context.Context, count, offset int) ([]types.Institution, error) {
	form := c.authForm()
	form.Set("count", strconv.Itoa(count))
	form.Set("offset", strconv.Itoa(offset))

	body, err := c.executeForm(ctx, http.MethodPost, longtailPath, form)
	records, classifyErr := classifyRecords(body, err, false)
	if classifyErr != nil {
		return nil, classifyErr
	}
	return decodeInstitutions(records), nil
}

func decodeInstitutions(records []json.RawMessage) []types.Institution {
	institutions := make([]types.Institution, 0, len(records))
	for _, record := range records {
		institution, err := types.DecodeInstitution(record)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed institution record")
			continue
		}
		institutions = append(institutions, institution)
	}
	return institutions
}
