package zabbix

import (
	"context"
	"errors"
	"fmt"

	"problem-analytics-service/internal/model"
)

type userRecord struct {
	UserID string `json:"userid"`
	// Username replaced Alias in Zabbix 5.4.
	Username string `json:"username"`
	Alias    string `json:"alias"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// userOutputs are tried in order: Zabbix 5.4 renamed the login field from alias to
// username and rejects unknown output fields with invalid params.
var userOutputs = [][]string{
	{"userid", "username", "name", "surname"},
	{"userid", "alias", "name", "surname"},
}

// FetchUsers resolves every id with one user.get call, retried once with the pre-5.4
// output on older servers. Unknown ids are absent from the result.
func (c *Client) FetchUsers(ctx context.Context, userIDs []string) (map[string]model.User, error) {
	users := make(map[string]model.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	var records []userRecord
	for i, output := range userOutputs {
		params := map[string]any{
			"output":  output,
			"userids": userIDs,
		}
		err := c.Call(ctx, "user.get", params, &records)
		if err == nil {
			break
		}
		var apiErr *APIError
		if i == len(userOutputs)-1 || !errors.As(err, &apiErr) || apiErr.Code != codeInvalidParams {
			return nil, err
		}
	}

	for _, r := range records {
		alias := r.Username
		if alias == "" {
			alias = r.Alias
		}
		users[r.UserID] = model.User{
			UserID:  r.UserID,
			Alias:   alias,
			Name:    r.Name,
			Surname: r.Surname,
		}
	}
	return users, nil
}

type callerRecord struct {
	UserID   string  `json:"userid"`
	Username string  `json:"username"`
	Alias    string  `json:"alias"`
	Type     flexInt `json:"type"`
}

// CheckAuthentication validates a frontend session id and returns its owner.
func (c *Client) CheckAuthentication(ctx context.Context, sessionID string) (model.Caller, error) {
	params := map[string]any{
		"sessionid": sessionID,
	}

	var record callerRecord
	if err := c.call(ctx, "user.checkAuthentication", params, &record, false); err != nil {
		return model.Caller{}, err
	}
	if record.UserID == "" {
		return model.Caller{}, fmt.Errorf("user.checkAuthentication: %w", ErrNotFound)
	}

	username := record.Username
	if username == "" {
		username = record.Alias
	}
	return model.Caller{
		UserID:   record.UserID,
		Username: username,
		Type:     int(record.Type),
	}, nil
}
