package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/postbox/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// healthServiceName matches the service name registered by the server's
// health endpoint.
const healthServiceName = "postbox"

type HTTPClient struct {
	baseURL string
	http    *http.Client
	conn    *grpc.ClientConn
	health  healthpb.HealthClient

	mu       sync.RWMutex
	username string
	token    string
}

func NewPostboxClient(baseURL, healthAddr string, timeout time.Duration) (*HTTPClient, error) {
	conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		conn:    conn,
		health:  healthpb.NewHealthClient(conn),
	}, nil
}

func (c *HTTPClient) Close() error {
	return c.conn.Close()
}

// Ping reports nil when the health endpoint answers SERVING.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: healthServiceName})
	if err != nil {
		switch status.Code(err) {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
			return ErrUnavailable
		default:
			return fmt.Errorf("rpc error: %w", err)
		}
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password, privateKey, publicKey string) (*User, error) {
	body := map[string]string{
		"username":    username,
		"password":    password,
		"private_key": privateKey,
		"public_key":  publicKey,
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/users", nil, body, false, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login stores the credentials and checks them with a call to /users/me.
// On failure no credentials are kept.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*User, error) {
	c.setCredentials(username, password)

	u, err := c.Me(ctx)
	if err != nil {
		c.Logout()
		return nil, err
	}
	return u, nil
}

func (c *HTTPClient) Logout() {
	c.setCredentials("", "")
}

func (c *HTTPClient) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateInfo(ctx context.Context, info string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/users/info", nil, map[string]string{"info": info}, true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Friend(ctx context.Context, username string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/friends", url.Values{"username": {username}}, nil, true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Send(ctx context.Context, recipient, contents string) (*Message, error) {
	var m Message
	body := map[string]string{"recipient": recipient, "contents": contents}
	if err := c.do(ctx, http.MethodPost, "/messages", nil, body, true, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) Inbox(ctx context.Context) (*Inbox, error) {
	var in Inbox
	if err := c.do(ctx, http.MethodGet, "/messages", nil, nil, true, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// DeleteUpTo removes inbox messages sent strictly before until.
func (c *HTTPClient) DeleteUpTo(ctx context.Context, until int64) (int64, error) {
	var out struct {
		Result  string `json:"result"`
		Deleted int64  `json:"deleted"`
	}
	q := url.Values{"until": {strconv.FormatInt(until, 10)}}
	if err := c.do(ctx, http.MethodDelete, "/messages", q, nil, true, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func (c *HTTPClient) setCredentials(username, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username, c.token = username, token
}

func (c *HTTPClient) credentials() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username, c.token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		username, token := c.credentials()
		if username == "" {
			return ErrNoCredential
		}
		req.Header.Set(common.UserNameHeaderName, username)
		req.Header.Set(common.UserTokenHeaderName, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return mapError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func mapError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	apiErr.Status = resp.StatusCode

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return apiErr
	}
}
