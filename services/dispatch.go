// services/dispatch.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Dispatch actions understood by the remote backend.
const (
	ActionGet        = "get"
	ActionInsert     = "insert"
	ActionUpdate     = "update"
	ActionSoftDelete = "soft_delete"
)

// Remote logical tables.
const (
	TableCategories = "categories"
	TableStyles     = "style_options"
	TableMetals     = "metal_options"
	TableEnquiries  = "enquiries"
	TableFeatures   = "feature_sections"
	TableAudiences  = "target_audiences"
	TableUsers      = "users"
)

// ErrUnauthorized is returned when the remote backend rejects the stored
// credential. The credential has already been cleared by the time callers
// see this.
var ErrUnauthorized = errors.New("remote backend rejected credential")

// DispatchRequest is the wire shape of the remote action endpoint.
type DispatchRequest struct {
	Action string                 `json:"action"`
	Table  string                 `json:"table"`
	Where  map[string]interface{} `json:"where,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// DispatchResponse is the remote endpoint's envelope.
type DispatchResponse struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Count    int64           `json:"count,omitempty"`
	InsertID int64           `json:"insertId,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// RemoteSession is what the remote login operation hands back.
type RemoteSession struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"user,omitempty"`
}

// DispatchClient wraps every call to the remote action endpoint. The bearer
// credential comes from the injected store; a 401-class response clears it
// and runs the auth-failure hook before the error propagates. One attempt
// per call, no retry.
type DispatchClient struct {
	baseURL       string
	dispatchPath  string
	loginPath     string
	httpClient    *http.Client
	creds         *CredentialStore
	onAuthFailure func()
	observe       func(action, table string, err error)
}

// SetObserver installs a per-call hook used for dispatch metrics.
func (c *DispatchClient) SetObserver(observe func(action, table string, err error)) {
	c.observe = observe
}

// NewDispatchClient creates a client for the remote action endpoint.
// onAuthFailure may be nil; when set it runs at most once per stored
// credential.
func NewDispatchClient(baseURL, dispatchPath, loginPath string, creds *CredentialStore, onAuthFailure func()) *DispatchClient {
	return &DispatchClient{
		baseURL:       baseURL,
		dispatchPath:  dispatchPath,
		loginPath:     loginPath,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		creds:         creds,
		onAuthFailure: onAuthFailure,
	}
}

// Do sends one dispatch request. Application-level failures (success: false)
// come back as errors carrying the server message.
func (c *DispatchClient) Do(ctx context.Context, req DispatchRequest) (resp *DispatchResponse, err error) {
	if c.observe != nil {
		defer func() { c.observe(req.Action, req.Table, err) }()
	}
	return c.do(ctx, req)
}

func (c *DispatchClient) do(ctx context.Context, req DispatchRequest) (*DispatchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode dispatch request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.dispatchPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token := c.creds.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s %s: %w", req.Action, req.Table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.authFailed()
		return nil, fmt.Errorf("dispatch %s %s: %w", req.Action, req.Table, ErrUnauthorized)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s %s: read response: %w", req.Action, req.Table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dispatch %s %s: status %d: %s", req.Action, req.Table, resp.StatusCode, string(raw))
	}

	var out DispatchResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("dispatch %s %s: decode response: %w", req.Action, req.Table, err)
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "remote backend reported failure"
		}
		return &out, fmt.Errorf("dispatch %s %s: %s", req.Action, req.Table, msg)
	}
	return &out, nil
}

// Get fetches rows from a table into dest.
func (c *DispatchClient) Get(ctx context.Context, table string, where map[string]interface{}, dest interface{}) error {
	resp, err := c.Do(ctx, DispatchRequest{Action: ActionGet, Table: table, Where: where})
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, dest); err != nil {
		return fmt.Errorf("get %s: decode rows: %w", table, err)
	}
	return nil
}

// Insert creates a row and returns the remotely assigned id.
func (c *DispatchClient) Insert(ctx context.Context, table string, data map[string]interface{}) (int64, error) {
	resp, err := c.Do(ctx, DispatchRequest{Action: ActionInsert, Table: table, Data: data})
	if err != nil {
		return 0, err
	}
	return resp.InsertID, nil
}

// Update modifies rows matched by where.
func (c *DispatchClient) Update(ctx context.Context, table string, where, data map[string]interface{}) error {
	_, err := c.Do(ctx, DispatchRequest{Action: ActionUpdate, Table: table, Where: where, Data: data})
	return err
}

// SoftDelete archives rows matched by where. There is no hard delete.
func (c *DispatchClient) SoftDelete(ctx context.Context, table string, where map[string]interface{}) error {
	_, err := c.Do(ctx, DispatchRequest{Action: ActionSoftDelete, Table: table, Where: where})
	return err
}

// Login forwards staff credentials to the remote login operation.
func (c *DispatchClient) Login(ctx context.Context, email, password string) (*RemoteSession, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("remote login: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote login: read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("remote login: %w", ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote login: status %d: %s", resp.StatusCode, string(raw))
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("remote login: decode response: %w", err)
	}
	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "login rejected"
		}
		return nil, fmt.Errorf("remote login: %s", msg)
	}

	var session RemoteSession
	if err := json.Unmarshal(envelope.Data, &session); err != nil {
		return nil, fmt.Errorf("remote login: decode session: %w", err)
	}
	if session.Token == "" {
		return nil, errors.New("remote login: response carried no token")
	}
	return &session, nil
}

func (c *DispatchClient) authFailed() {
	if c.creds.Clear() {
		zap.L().Warn("remote credential rejected, cleared stored session")
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
	}
}

// Alive builds a predicate that excludes archived rows; every list and
// mutation against a soft-deletable table carries it.
func Alive(kv ...interface{}) map[string]interface{} {
	where := map[string]interface{}{"is_deleted": 0}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		where[key] = kv[i+1]
	}
	return where
}
