package fluidtopics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/docsflow/docsflow/internal/logger"
)

var (
	// ErrPollTimeout is returned when the attempt budget is exhausted without
	// observing a terminal state. Callers treat it as a failed run.
	ErrPollTimeout = errors.New("status polling attempts exhausted")

	// errUploadIDRequired is returned when polling is requested without an id.
	errUploadIDRequired = errors.New("upload id must be provided")

	// errBadStatusCode marks a non-200 response to a status query.
	errBadStatusCode = errors.New("unexpected status code")
)

// statusResponse is the JSON body returned by the status endpoint.
type statusResponse struct {
	Status         string `json:"status"`
	PublicationURL string `json:"publication_url"`
	Error          string `json:"error"`
}

// PollUntilTerminal queries the processing status at a fixed interval until a
// terminal state is observed or the attempt budget runs out. A failed query
// (non-200 or transport error) consumes an attempt and the loop continues
// after the same fixed wait; this deliberately differs from the upload's
// single-attempt policy.
func (c *Client) PollUntilTerminal(ctx context.Context, uploadID string) (*ProcessingStatus, error) {
	if uploadID == "" {
		return nil, errUploadIDRequired
	}

	logger.InfoKV(ctx, "Monitoring processing status",
		"upload_id", uploadID, "interval", c.pollInterval.String(), "budget", c.pollBudget)

	for attempt := 1; attempt <= c.pollBudget; attempt++ {
		status, err := c.fetchStatus(ctx, uploadID)

		switch {
		case err != nil:
			logger.WarnKV(ctx, "Status check failed", "attempt", attempt, "error", err)
		case status.State.Terminal():
			return status, nil
		default:
			logger.InfoKV(ctx, "Processing status", "status", status.RawLabel, "attempt", attempt)
		}

		if attempt == c.pollBudget {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return nil, fmt.Errorf("upload %s after %d attempts: %w", uploadID, c.pollBudget, ErrPollTimeout)
}

// fetchStatus performs one status query.
func (c *Client) fetchStatus(ctx context.Context, uploadID string) (*ProcessingStatus, error) {
	statusURL := fmt.Sprintf("%s/api/documents/upload/%s/status", c.baseURL, uploadID)

	callCtx, cancel := callContext(ctx, c.statusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, statusURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query status: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w %d", statusURL, errBadStatusCode, response.StatusCode)
	}

	var parsed statusResponse
	if err = json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}

	return &ProcessingStatus{
		State:          ParseState(parsed.Status),
		RawLabel:       parsed.Status,
		PublicationURL: parsed.PublicationURL,
		Error:          parsed.Error,
	}, nil
}
