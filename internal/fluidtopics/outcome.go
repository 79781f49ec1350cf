package fluidtopics

import "fmt"

// OutcomeKind classifies the terminal result of a single upload attempt.
type OutcomeKind string

const (
	// OutcomeSuccess means the portal accepted the package (HTTP 200).
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeAuthFailure means the portal rejected the credentials (HTTP 401).
	OutcomeAuthFailure OutcomeKind = "auth_failure"
	// OutcomePayloadTooLarge means the package exceeded the portal limit (HTTP 413).
	OutcomePayloadTooLarge OutcomeKind = "payload_too_large"
	// OutcomeServerError covers every other HTTP status code.
	OutcomeServerError OutcomeKind = "server_error"
	// OutcomeNetworkTimeout means the request ran out of time.
	OutcomeNetworkTimeout OutcomeKind = "network_timeout"
	// OutcomeConnectionFailure means the request never completed for another reason.
	OutcomeConnectionFailure OutcomeKind = "connection_failure"
)

// UploadOutcome is the typed result of exactly one upload attempt.
// None of the non-success kinds are retried by the uploader.
type UploadOutcome struct {
	// Kind classifies the attempt.
	Kind OutcomeKind
	// UploadID identifies the accepted package for status polling (success only).
	UploadID string
	// Status is the initial processing status reported by the portal (success only).
	Status string
	// Code is the HTTP status code for server errors.
	Code int
	// Body is the raw response body for server errors.
	Body string
	// Err is the underlying transport error for timeouts and connection failures.
	Err error
}

// Succeeded reports whether the portal accepted the package.
func (o *UploadOutcome) Succeeded() bool {
	return o != nil && o.Kind == OutcomeSuccess
}

// String renders the outcome for logs and failure messages.
func (o *UploadOutcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("accepted (upload_id=%s, status=%s)", o.UploadID, o.Status)
	case OutcomeAuthFailure:
		return "authentication failed, check credentials"
	case OutcomePayloadTooLarge:
		return "package too large for the portal"
	case OutcomeServerError:
		return fmt.Sprintf("portal returned status %d: %s", o.Code, o.Body)
	case OutcomeNetworkTimeout:
		return fmt.Sprintf("upload timed out: %v", o.Err)
	case OutcomeConnectionFailure:
		return fmt.Sprintf("connection failed: %v", o.Err)
	default:
		return string(o.Kind)
	}
}
