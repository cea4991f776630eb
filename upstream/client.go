package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// envelope is the upstream API response wrapper
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is the shared marketplace API client. It attaches the base URL and
// bearer token to every request and unwraps the JSON envelope.
type Client struct {
	http *resty.Client
}

// New creates a Client for the given base URL
func New(baseURL, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

// SetToken replaces the bearer token used for subsequent requests
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// Get issues a GET and decodes the envelope data into out (if non-nil)
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return c.unwrap(path, resp, err, out)
}

// Post issues a POST with a JSON body and decodes the envelope data into out
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(path)
	return c.unwrap(path, resp, err, out)
}

// Put issues a PUT with a JSON body and decodes the envelope data into out
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Put(path)
	return c.unwrap(path, resp, err, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string, query map[string]string) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Delete(path)
	return c.unwrap(path, resp, err, nil)
}

func (c *Client) unwrap(path string, resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("request %s failed: status %d: %s", path, resp.StatusCode(), resp.String())
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil
	}

	var env envelope
	if uerr := json.Unmarshal(body, &env); uerr != nil {
		if out == nil {
			return nil
		}
		return fmt.Errorf("request %s: invalid response body: %w", path, uerr)
	}
	if !env.Status {
		return fmt.Errorf("request %s: upstream error: %s", path, env.Message)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if uerr := json.Unmarshal(env.Data, out); uerr != nil {
		return fmt.Errorf("request %s: cannot decode data: %w", path, uerr)
	}
	return nil
}
