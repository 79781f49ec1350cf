package fluidtopics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/docsflow/docsflow/internal/archive"
	"github.com/docsflow/docsflow/internal/logger"
)

// uploadResponse is the JSON body returned by the portal on HTTP 200.
type uploadResponse struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"`
}

// Upload submits the archive with its metadata in a single multipart request
// and maps the result into a typed outcome. The returned error covers only
// local failures (unreadable artifact, malformed request) that happen before
// any network activity; once a request is sent, exactly one outcome is
// produced and no retry is attempted at this layer.
func (c *Client) Upload(ctx context.Context, artifact *archive.Artifact, versionLabel string) (*UploadOutcome, error) {
	if artifact == nil {
		return nil, errArtifactRequired
	}

	body, contentType, err := buildUploadBody(artifact.Path, c.collection, versionLabel)
	if err != nil {
		return nil, err
	}

	uploadURL := c.baseURL + "/api/documents/upload"
	logger.InfoKV(ctx, "Uploading documentation package",
		"url", uploadURL, "version", versionLabel, "sha256", artifact.Digest)

	callCtx, cancel := callContext(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(c.username, c.password)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err), nil
	}

	defer func() {
		_ = response.Body.Close()
	}()

	return c.classifyResponse(ctx, response), nil
}

// buildUploadBody assembles the multipart payload: the zip file part plus the
// collection, version and auto_publish form fields.
func buildUploadBody(path, collection, versionLabel string) (*bytes.Buffer, string, error) {
	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("open package: %w", err)
	}

	defer func() {
		_ = in.Close()
	}()

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(path)))
	header.Set("Content-Type", "application/zip")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}

	if _, err = io.Copy(part, in); err != nil {
		return nil, "", fmt.Errorf("read package: %w", err)
	}

	fields := map[string]string{
		"collection":   collection,
		"version":      versionLabel,
		"auto_publish": "true",
	}
	for name, value := range fields {
		if err = writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err = writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}

// classifyResponse maps the HTTP status code and body into an outcome.
// The mapping is a pure function of code and body for the defined codes.
func (c *Client) classifyResponse(ctx context.Context, response *http.Response) *UploadOutcome {
	switch response.StatusCode {
	case http.StatusOK:
		var parsed uploadResponse
		if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
			// The portal accepted the package; id and status are extracted
			// only when present.
			logger.Warnf(ctx, "Upload accepted but response body was not parseable: %v", err)
		}

		return &UploadOutcome{
			Kind:     OutcomeSuccess,
			UploadID: parsed.UploadID,
			Status:   parsed.Status,
		}
	case http.StatusUnauthorized:
		return &UploadOutcome{Kind: OutcomeAuthFailure, Code: response.StatusCode}
	case http.StatusRequestEntityTooLarge:
		return &UploadOutcome{Kind: OutcomePayloadTooLarge, Code: response.StatusCode}
	default:
		body, _ := io.ReadAll(io.LimitReader(response.Body, 4096)) //nolint:errcheck // Body is diagnostic only.

		return &UploadOutcome{
			Kind: OutcomeServerError,
			Code: response.StatusCode,
			Body: string(body),
		}
	}
}

// classifyTransportError distinguishes timeouts from other transport failures.
func classifyTransportError(err error) *UploadOutcome {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &UploadOutcome{Kind: OutcomeNetworkTimeout, Err: err}
	}

	return &UploadOutcome{Kind: OutcomeConnectionFailure, Err: err}
}
