package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"problem-analytics-service/internal/model"
)

// codeInvalidParams is the JSON-RPC error code Zabbix uses for rejected parameters.
const codeInvalidParams = -32602

// ErrNotFound is returned when a requested host, trigger or session does not exist.
var ErrNotFound = errors.New("zabbix: object not found")

// APIError is the error object of a JSON-RPC response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *APIError) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("zabbix api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("zabbix api error %d: %s %s", e.Code, e.Message, e.Data)
}

// API is the subset of the Zabbix frontend API the analytics depend on.
type API interface {
	Authenticator
	FetchEvents(ctx context.Context, hostID, triggerID int64, from, till time.Time) ([]model.RawEvent, error)
	FetchUsers(ctx context.Context, userIDs []string) (map[string]model.User, error)
	FetchHostName(ctx context.Context, hostID int64) (string, error)
	FetchTrigger(ctx context.Context, triggerID int64) (model.Trigger, error)
	FetchRelatedEvents(ctx context.Context, triggerID int64, limit int) ([]model.RelatedEvent, error)
	FetchEventSeverity(ctx context.Context, eventID int64) (int, error)
}

// Authenticator validates frontend sessions.
type Authenticator interface {
	CheckAuthentication(ctx context.Context, sessionID string) (model.Caller, error)
}

var _ API = (*Client)(nil)

// Client talks JSON-RPC 2.0 to api_jsonrpc.php.
type Client struct {
	url        string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	requestID  atomic.Int64
}

// NewClient builds a Client. timeout bounds every call, including the ones whose
// context carries no deadline.
func NewClient(url, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:     endpoint(url),
		token:   token,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func endpoint(url string) string {
	url = strings.TrimRight(url, "/")
	if strings.HasSuffix(url, "api_jsonrpc.php") {
		return url
	}
	return url + "/api_jsonrpc.php"
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *APIError       `json:"error"`
}

// Call invokes method and decodes the result into out.
func (c *Client) Call(ctx context.Context, method string, params any, out any) error {
	return c.call(ctx, method, params, out, true)
}

func (c *Client) call(ctx context.Context, method string, params any, out any, withToken bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.requestID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json-rpc")
	if withToken && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: zabbix returned status %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("parse %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// flexInt accepts both JSON numbers and the quoted integers most API versions emit.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", string(data), err)
	}
	*f = flexInt(v)
	return nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
