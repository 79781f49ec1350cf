package fluidtopics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/docsflow/docsflow/internal/archive"
	"github.com/docsflow/docsflow/internal/config"
)

// newTestClient builds a client pointed at the given portal URL.
func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()

	cfg := &config.Config{
		BaseURL:  baseURL,
		Username: "publisher",
		Password: "secret",
	}

	client, err := NewClient(cfg, opts...)
	require.NoError(t, err)

	return client
}

// newTestArtifact writes a small package file and wraps it in an artifact.
func newTestArtifact(t *testing.T) *archive.Artifact {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docs_package.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip bytes"), 0o644))

	digest, err := archive.FileChecksum(path)
	require.NoError(t, err)

	return &archive.Artifact{Path: path, FileCount: 1, Digest: digest}
}

// TestNewClient_RequiresCredentials fails fast before any network activity.
func TestNewClient_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewClient(&config.Config{BaseURL: "https://docs.example.com"})
	require.ErrorIs(t, err, config.ErrConfiguration)
}

// TestUpload_Success checks the 200 mapping, multipart fields and Basic auth.
func TestUpload_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/documents/upload", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "publisher", user)
		require.Equal(t, "secret", pass)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, config.DefaultCollection, r.FormValue("collection"))
		require.Equal(t, "git-abc1234-1700000000", r.FormValue("version"))
		require.Equal(t, "true", r.FormValue("auto_publish"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		require.Equal(t, "docs_package.zip", header.Filename)

		_ = file.Close()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"upload_id":"u-42","status":"queued"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	outcome, err := client.Upload(context.Background(), newTestArtifact(t), "git-abc1234-1700000000")
	require.NoError(t, err)
	require.True(t, outcome.Succeeded())
	require.Equal(t, OutcomeSuccess, outcome.Kind)
	require.Equal(t, "u-42", outcome.UploadID)
	require.Equal(t, "queued", outcome.Status)
}

// TestUpload_StatusCodeMapping covers 401, 413 and the ServerError catch-all.
func TestUpload_StatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code int
		body string
		kind OutcomeKind
	}{
		{name: "auth failure", code: http.StatusUnauthorized, kind: OutcomeAuthFailure},
		{name: "payload too large", code: http.StatusRequestEntityTooLarge, kind: OutcomePayloadTooLarge},
		{name: "server error", code: http.StatusBadGateway, body: "upstream down", kind: OutcomeServerError},
		{name: "client error", code: http.StatusUnprocessableEntity, body: "bad metadata", kind: OutcomeServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			outcome, err := client.Upload(context.Background(), newTestArtifact(t), "build-1")
			require.NoError(t, err)
			require.False(t, outcome.Succeeded())
			require.Equal(t, tc.kind, outcome.Kind)

			if tc.kind == OutcomeServerError {
				require.Equal(t, tc.code, outcome.Code)
				require.Equal(t, tc.body, outcome.Body)
			}
		})
	}
}

// TestUpload_Timeout maps a deadline overrun onto NetworkTimeout.
func TestUpload_Timeout(t *testing.T) {
	t.Parallel()

	// The handler blocks until the client's deadline cancels the request,
	// so server.Close never waits on a stuck handler.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		BaseURL:       server.URL,
		Username:      "publisher",
		Password:      "secret",
		UploadTimeout: 50 * time.Millisecond,
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)

	outcome, err := client.Upload(context.Background(), newTestArtifact(t), "build-1")
	require.NoError(t, err)
	require.Equal(t, OutcomeNetworkTimeout, outcome.Kind)
	require.Error(t, outcome.Err)
}

// TestUpload_ConnectionFailure maps an unreachable portal onto ConnectionFailure.
func TestUpload_ConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL)

	outcome, err := client.Upload(context.Background(), newTestArtifact(t), "build-1")
	require.NoError(t, err)
	require.Equal(t, OutcomeConnectionFailure, outcome.Kind)
	require.Error(t, outcome.Err)
}

// TestUpload_MissingPackage fails locally before touching the network.
func TestUpload_MissingPackage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://docs.example.com")

	_, err := client.Upload(context.Background(), &archive.Artifact{Path: "absent.zip"}, "build-1")
	require.Error(t, err)
}
