package fluidtopics

// State is the server-side processing state of a submitted package.
type State string

const (
	// StateQueued means the package is waiting to be processed.
	StateQueued State = "queued"
	// StateUploading means the portal is still ingesting the package.
	StateUploading State = "uploading"
	// StateProcessing means the portal is processing the package.
	StateProcessing State = "processing"
	// StateCompleted means processing finished successfully. Terminal.
	StateCompleted State = "completed"
	// StateFailed means processing failed. Terminal.
	StateFailed State = "failed"
	// StateUnknown covers any label the portal may add in the future.
	StateUnknown State = "unknown"
)

// Terminal reports whether polling past this state is meaningful.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// ParseState maps a raw portal label onto a State. Matching is exact: only
// the literal "completed" and "failed" labels are terminal.
func ParseState(label string) State {
	switch label {
	case "queued":
		return StateQueued
	case "uploading":
		return StateUploading
	case "processing":
		return StateProcessing
	case "completed":
		return StateCompleted
	case "failed":
		return StateFailed
	default:
		return StateUnknown
	}
}

// ProcessingStatus is one observation of the asynchronous processing state.
type ProcessingStatus struct {
	// State is the parsed state.
	State State
	// RawLabel is the label exactly as the portal reported it.
	RawLabel string
	// PublicationURL is where the published documentation lives, when the
	// portal reports it alongside a completed state.
	PublicationURL string
	// Error is the portal-reported failure reason, when present.
	Error string
}
