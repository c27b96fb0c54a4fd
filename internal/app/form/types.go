package form

import (
	"io"

	apperrors "scribe/internal/app/errors"
)

// Messages shown when a submission is rejected before any network activity
const (
	MsgSelectFile = "Please select a file."
	MsgEnterToken = "Please enter your API token."
)

var (
	ErrInputMissing         = apperrors.New(MsgSelectFile)
	ErrTokenMissing         = apperrors.New(MsgEnterToken)
	ErrSubmissionInProgress = apperrors.New("a submission is already in progress")
)

// File is the media selected for upload
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// SubmissionInput is the raw form state; token and context are trimmed by the handler
type SubmissionInput struct {
	File          *File
	APIToken      string
	PromptContext string
}

// View is the UI surface a Handler reads from and renders into.
// Implementations are called from the goroutine running Submit.
type View interface {
	Input() SubmissionInput

	// SetLoading shows or hides the loading indicator
	SetLoading(visible bool)

	// SetSubmitBusy disables the submit control and marks it busy, or the reverse
	SetSubmitBusy(busy bool)

	HideResult()

	// ShowResult replaces the result text, applies or clears the error style and makes it visible
	ShowResult(text string, isError bool)
}

// State of the handler's submission lifecycle
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
