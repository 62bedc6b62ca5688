// Package retail is a typed client for the RetailGenie backend REST API.
package retail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	DefaultAPIURL  = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	APIURL  string
	Token   string
	Timeout time.Duration
}

// Client is safe for concurrent use. It keeps no state between calls.
type Client struct {
	client *http.Client
	config Config
}

func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Transport: &HeaderTransport{
				Token: cfg.Token,
				Base:  http.DefaultTransport,
			},
			Timeout: cfg.Timeout,
		},
		config: cfg,
	}
}

// BaseURL returns the origin every path is resolved against.
func (c *Client) BaseURL() string {
	return c.config.APIURL
}

// HeaderTransport sets the headers shared by every backend call.
type HeaderTransport struct {
	Token string
	Base  http.RoundTripper
}

func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.Token)
	}

	requestID := middleware.GetReqID(req.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

// do performs one round trip and returns the raw body of a 2xx response.
// Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, newError(nil, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIURL+path, body)
	if err != nil {
		return nil, newError(nil, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newError(nil, err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "br" {
		reader = brotli.NewReader(resp.Body)
	}

	data, readErr := io.ReadAll(reader)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newError(data, fmt.Errorf("Request failed with status code %d", resp.StatusCode))
	}
	if readErr != nil {
		return nil, newError(nil, readErr)
	}

	return data, nil
}

// call decodes an object response. An empty body yields the zero value.
func call[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	var out T
	data, err := c.do(ctx, method, path, in)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, newError(nil, err)
	}
	return out, nil
}

func list[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](data, key), nil
}

// decodeList accepts {"<key>": [...]} or a bare array, in that order.
// Anything else decodes to an empty slice. An empty key accepts only a
// bare array.
func decodeList[T any](data []byte, key string) []T {
	if key != "" {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err == nil {
			if raw, ok := wrapped[key]; ok && isArray(raw) {
				return unmarshalSlice[T](raw)
			}
		}
	}
	if isArray(data) {
		return unmarshalSlice[T](data)
	}
	return []T{}
}

// unmarshalSlice keeps every element that decodes into T and skips the rest.
func unmarshalSlice[T any](raw []byte) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []T{}
	}
	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

func isArray(raw []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}
