package fluidtopics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseState covers terminal and non-terminal labels.
func TestParseState(t *testing.T) {
	t.Parallel()

	require.Equal(t, StateCompleted, ParseState("completed"))
	require.Equal(t, StateFailed, ParseState("failed"))
	require.Equal(t, StateQueued, ParseState("queued"))
	require.Equal(t, StateUploading, ParseState("uploading"))
	require.Equal(t, StateProcessing, ParseState("processing"))

	// Matching is on the exact literal; anything else is unknown.
	require.Equal(t, StateUnknown, ParseState("COMPLETED"))
	require.Equal(t, StateUnknown, ParseState("archived"))

	require.True(t, StateCompleted.Terminal())
	require.True(t, StateFailed.Terminal())
	require.False(t, StateProcessing.Terminal())
	require.False(t, StateUnknown.Terminal())
}

// TestPollUntilTerminal_CompletedAfterProcessing reproduces five "processing"
// observations followed by a completed status with a publication URL, and
// asserts the poller queried exactly six times.
func TestPollUntilTerminal_CompletedAfterProcessing(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents/upload/u-42/status", r.URL.Path)

		_, _, ok := r.BasicAuth()
		require.True(t, ok)

		w.Header().Set("Content-Type", "application/json")

		if queries.Add(1) <= 5 {
			_, _ = w.Write([]byte(`{"status":"processing"}`))
			return
		}

		_, _ = w.Write([]byte(`{"status":"completed","publication_url":"https://docs.example.com/handbook"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithPollInterval(time.Millisecond))

	status, err := client.PollUntilTerminal(context.Background(), "u-42")
	require.NoError(t, err)
	require.Equal(t, StateCompleted, status.State)
	require.Equal(t, "https://docs.example.com/handbook", status.PublicationURL)
	require.EqualValues(t, 6, queries.Load())
}

// TestPollUntilTerminal_Failed returns the failed status with its reason.
func TestPollUntilTerminal_Failed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failed","error":"broken cross-references"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithPollInterval(time.Millisecond))

	status, err := client.PollUntilTerminal(context.Background(), "u-42")
	require.NoError(t, err)
	require.Equal(t, StateFailed, status.State)
	require.Equal(t, "broken cross-references", status.Error)
}

// TestPollUntilTerminal_BudgetExhausted returns ErrPollTimeout, never a
// silent success, when only unknown labels are observed.
func TestPollUntilTerminal_BudgetExhausted(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		queries.Add(1)
		_, _ = w.Write([]byte(`{"status":"migrating"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL,
		WithPollInterval(time.Millisecond), WithPollBudget(4))

	status, err := client.PollUntilTerminal(context.Background(), "u-42")
	require.Nil(t, status)
	require.ErrorIs(t, err, ErrPollTimeout)
	require.EqualValues(t, 4, queries.Load())
}

// TestPollUntilTerminal_TransientFailuresContinue keeps polling through
// non-200 responses up to the attempt budget.
func TestPollUntilTerminal_TransientFailuresContinue(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if queries.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		_, _ = w.Write([]byte(`{"status":"completed"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithPollInterval(time.Millisecond))

	status, err := client.PollUntilTerminal(context.Background(), "u-42")
	require.NoError(t, err)
	require.Equal(t, StateCompleted, status.State)
	require.EqualValues(t, 3, queries.Load())
}

// TestPollUntilTerminal_ContextCanceled aborts the wait immediately.
func TestPollUntilTerminal_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"processing"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.PollUntilTerminal(ctx, "u-42")
	require.ErrorIs(t, err, context.Canceled)
}

// TestPollUntilTerminal_RequiresUploadID rejects empty ids up front.
func TestPollUntilTerminal_RequiresUploadID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://docs.example.com")

	_, err := client.PollUntilTerminal(context.Background(), "")
	require.Error(t, err)
}
