package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// ---------- ListSpaces ----------

func TestClient_ListSpaces_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/spaces", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spaces":[
			{"name":"media","region":"nyc3","endpoint":"media.nyc3.example.com","created_at":"2024-01-02T03:04:05Z"},
			{"name":"backups","region":"ams3","endpoint":"backups.ams3.example.com","created_at":"2024-02-03T04:05:06Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	spaces, err := client.ListSpaces(context.Background(), "test-token")
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, "media", spaces[0].Name)
	assert.Equal(t, "nyc3", spaces[0].Region)
	assert.Equal(t, "backups", spaces[1].Name)
	assert.Empty(t, spaces[0].OwnerID, "enrichment happens outside the client")
}

func TestClient_ListSpaces_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"id":"unauthorized"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListSpaces(context.Background(), "revoked-token")
	require.Error(t, err)

	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindUnauthorized, ce.Kind)
	assert.Equal(t, http.StatusUnauthorized, ce.StatusCode)
}

func TestClient_ListSpaces_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"spaces": not-json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListSpaces(context.Background(), "test-token")
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestClient_ListSpaces_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL)
	_, err := client.ListSpaces(ctx, "test-token")
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestClient_ListSpaces_ConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.ListSpaces(context.Background(), "test-token")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

// ---------- ListBuckets ----------

func TestClient_ListBuckets_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/buckets", r.URL.Path)
		w.Write([]byte(`{"buckets":[
			{"name":"site-assets","region":"nyc3","size_bytes":1048576,"object_count":42,"created_at":"2024-01-02T03:04:05Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	buckets, err := client.ListBuckets(context.Background(), "test-token")
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "site-assets", buckets[0].Name)
	assert.Equal(t, int64(1048576), buckets[0].SizeBytes)
	assert.Equal(t, int64(42), buckets[0].ObjectCount)
}

// ---------- CreateBucket ----------

func TestClient_CreateBucket_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/buckets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		err := json.NewDecoder(r.Body).Decode(&payload)
		require.NoError(t, err)
		assert.Equal(t, "new-bucket", payload["name"])
		assert.Equal(t, "fra1", payload["region"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"bucket":{"name":"new-bucket","region":"fra1","created_at":"2024-05-06T07:08:09Z"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	bucket, err := client.CreateBucket(context.Background(), "test-token",
		model.BucketSpec{Name: "new-bucket", Region: "fra1"})
	require.NoError(t, err)
	assert.Equal(t, "new-bucket", bucket.Name)
	assert.Equal(t, "fra1", bucket.Region)
}

// ---------- DeleteBucket ----------

func TestClient_DeleteBucket_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v2/buckets/old-bucket", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.DeleteBucket(context.Background(), "test-token", "old-bucket")
	require.NoError(t, err)
}

// ---------- GetAccount ----------

func TestClient_GetAccount_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/account", r.URL.Path)
		w.Write([]byte(`{"account":{"email":"alice@example.com","uuid":"abc-123","status":"active"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	account, err := client.GetAccount(context.Background(), "test-token")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, "active", account.Status)
}

// ---------- KindOf ----------

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindNetwork, KindOf(errors.New("boom")))
}

func TestKindOf_DeadlineExceeded(t *testing.T) {
	assert.Equal(t, KindTimeout, KindOf(context.DeadlineExceeded))
}
