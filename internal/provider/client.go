package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// Client talks to the provider's control-plane REST API. Every method is one
// outbound call bound to exactly one tenant's token, passed explicitly per
// call. No retries, no ambient credential state, nothing cached.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{httpClient: &http.Client{}, baseURL: baseURL}
}

// do executes one authenticated request and decodes the JSON response into
// out (when non-nil). Failures come back as *CallError values.
func (c *Client) do(ctx context.Context, op, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return classifyStatus(op, resp.StatusCode,
			fmt.Errorf("provider responded: %s", string(respBody)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newCallError(op, KindMalformedResponse, resp.StatusCode, err)
		}
	}
	return nil
}

// GetAccount returns the provider account behind a token. Used to verify
// that a stored credential still works.
func (c *Client) GetAccount(ctx context.Context, token string) (*model.Account, error) {
	var wire accountWire
	if err := c.do(ctx, "get account", http.MethodGet, "/v2/account", token, nil, &wire); err != nil {
		return nil, err
	}
	return &model.Account{
		Email:  wire.Account.Email,
		UUID:   wire.Account.UUID,
		Status: wire.Account.Status,
	}, nil
}

// ListSpaces lists the object-storage spaces on one tenant's account.
func (c *Client) ListSpaces(ctx context.Context, token string) ([]model.Space, error) {
	var wire spacesWire
	if err := c.do(ctx, "list spaces", http.MethodGet, "/v2/spaces", token, nil, &wire); err != nil {
		return nil, err
	}
	spaces := make([]model.Space, len(wire.Spaces))
	for i, w := range wire.Spaces {
		spaces[i] = w.toModel()
	}
	return spaces, nil
}

// ListBuckets lists the buckets on one tenant's account.
func (c *Client) ListBuckets(ctx context.Context, token string) ([]model.Bucket, error) {
	var wire bucketsWire
	if err := c.do(ctx, "list buckets", http.MethodGet, "/v2/buckets", token, nil, &wire); err != nil {
		return nil, err
	}
	buckets := make([]model.Bucket, len(wire.Buckets))
	for i, w := range wire.Buckets {
		buckets[i] = w.toModel()
	}
	return buckets, nil
}

// CreateBucket creates a bucket on one tenant's account.
func (c *Client) CreateBucket(ctx context.Context, token string, spec model.BucketSpec) (*model.Bucket, error) {
	var wire bucketEnvelopeWire
	payload := createBucketWire{Name: spec.Name, Region: spec.Region}
	if err := c.do(ctx, "create bucket", http.MethodPost, "/v2/buckets", token, payload, &wire); err != nil {
		return nil, err
	}
	bucket := wire.Bucket.toModel()
	return &bucket, nil
}

// DeleteBucket deletes a bucket from one tenant's account.
func (c *Client) DeleteBucket(ctx context.Context, token, name string) error {
	return c.do(ctx, "delete bucket", http.MethodDelete, "/v2/buckets/"+name, token, nil, nil)
}
