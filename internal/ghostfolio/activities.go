package ghostfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/tidwall/pretty"

	"github.com/rickgao/ghostsync/internal/model"
)

type activitiesResponse struct {
	Activities []model.ExistingActivity `json:"activities"`
}

type importRequest struct {
	Activities []model.ImportActivity `json:"activities"`
}

// ImportResult summarizes an import response.
type ImportResult struct {
	Accepted int    // activities echoed back by Ghostfolio
	Raw      []byte // response body
}

// Info is the public instance information.
type Info struct {
	BaseCurrency string   `json:"baseCurrency"`
	Currencies   []string `json:"currencies"`
	IsReadOnly   bool     `json:"isReadOnlyMode"`
}

func unmarshal(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func accountsQuery(accountIDs []string) url.Values {
	q := url.Values{}
	if len(accountIDs) > 0 {
		q.Set("accounts", strings.Join(accountIDs, ","))
	}
	return q
}

// ListActivities fetches the activities of the given accounts, or of all
// accounts when none are given.
func (c *Client) ListActivities(ctx context.Context, accountIDs ...string) ([]model.ExistingActivity, error) {
	var resp activitiesResponse
	if err := c.get(ctx, "/api/v1/order", accountsQuery(accountIDs), &resp); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return resp.Activities, nil
}

// ImportActivities submits one batch. With dryRun Ghostfolio validates the
// batch without storing it. The call is made once and never retried.
func (c *Client) ImportActivities(ctx context.Context, batch []model.ImportActivity, dryRun bool) (ImportResult, error) {
	var q url.Values
	if dryRun {
		q = url.Values{"dryRun": []string{"true"}}
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/v1/import", q, importRequest{Activities: batch}, true)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import activities: %w", err)
	}

	res := ImportResult{Raw: body}

	var v any
	if json.Unmarshal(body, &v) == nil {
		if acts, err := jsonpath.Get("$.activities", v); err == nil {
			if list, ok := acts.([]any); ok {
				res.Accepted = len(list)
			}
		}
	}

	c.logger.Debug("import response",
		"dry_run", dryRun,
		"body", string(pretty.Pretty(body)),
	)
	return res, nil
}

// DeleteActivities deletes every activity of an account.
func (c *Client) DeleteActivities(ctx context.Context, accountID string) error {
	if _, err := c.doWithRetry(ctx, http.MethodDelete, "/api/v1/order", accountsQuery([]string{accountID}), nil); err != nil {
		return fmt.Errorf("delete activities of %s: %w", accountID, err)
	}
	return nil
}

// DeleteActivity deletes one activity.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	if _, err := c.doWithRetry(ctx, http.MethodDelete, "/api/v1/order/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete activity %s: %w", id, err)
	}
	return nil
}

// Info fetches the public instance info. It needs no authentication.
func (c *Client) Info(ctx context.Context) (Info, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/v1/info", nil, nil, false)
	if err != nil {
		return Info{}, fmt.Errorf("get info: %w", err)
	}
	var info Info
	if err := unmarshal(body, &info); err != nil {
		return Info{}, fmt.Errorf("get info: %w", err)
	}
	return info, nil
}
