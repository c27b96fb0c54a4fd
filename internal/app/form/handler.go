package form

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"scribe/internal/app/api/transcribe"
)

// Submission outcomes reported to a Recorder
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeBusy      = "busy"
)

// Transcriber sends one transcription request
type Transcriber interface {
	Transcribe(ctx context.Context, request *transcribe.Request) (*transcribe.Response, error)
}

// Recorder receives one outcome per Submit call
type Recorder interface {
	RecordSubmission(outcome string)
}

// Handler turns a submission from a View into one transcription request and renders the outcome.
// At most one submission is in flight; overlapping calls are rejected with ErrSubmissionInProgress.
type Handler struct {
	client   Transcriber
	logger   *zap.Logger
	recorder Recorder
	observer func(State)
	state    atomic.Int32
}

// Option configures a Handler
type Option func(*Handler)

// WithRecorder reports submission outcomes. Use it when the handler lives in a long-running
// process that exposes the recorder, e.g. a Prometheus counter behind /metrics.
func WithRecorder(recorder Recorder) Option {
	return func(h *Handler) {
		h.recorder = recorder
	}
}

// WithStateObserver is called on every state transition
func WithStateObserver(observer func(State)) Option {
	return func(h *Handler) {
		h.observer = observer
	}
}

// NewHandler creates a Handler posting through client
func NewHandler(client Transcriber, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		client: client,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the current lifecycle state
func (h *Handler) State() State {
	return State(h.state.Load())
}

// Busy reports whether a submission is being validated or is in flight
func (h *Handler) Busy() bool {
	return h.State() != StateIdle
}

// Submit handles one user-initiated submission. Validation failures and request failures are
// rendered into view and also returned; ErrSubmissionInProgress leaves view untouched.
func (h *Handler) Submit(ctx context.Context, view View) error {
	if !h.state.CompareAndSwap(int32(StateIdle), int32(StateValidating)) {
		h.record(OutcomeBusy)
		return ErrSubmissionInProgress
	}
	h.notify(StateValidating)
	defer h.transition(StateIdle)

	input := view.Input()
	token := strings.TrimSpace(input.APIToken)
	promptContext := strings.TrimSpace(input.PromptContext)

	if input.File == nil {
		return h.reject(view, ErrInputMissing)
	}
	if token == "" {
		return h.reject(view, ErrTokenMissing)
	}

	h.transition(StateSubmitting)
	view.SetLoading(true)
	view.HideResult()
	view.SetSubmitBusy(true)

	defer func() {
		view.SetLoading(false)
		view.SetSubmitBusy(false)
	}()

	resp, err := h.client.Transcribe(ctx, &transcribe.Request{
		Token:         token,
		FileName:      input.File.Name,
		ContentType:   input.File.ContentType,
		Content:       input.File.Content,
		PromptContext: promptContext,
	})
	if err != nil {
		h.logger.Error("Transcription error",
			zap.String("file", input.File.Name),
			zap.Error(err),
		)
		h.transition(StateFailed)
		h.record(OutcomeFailed)
		view.ShowResult("Error: "+err.Error(), true)
		return err
	}

	h.transition(StateSucceeded)
	h.record(OutcomeSucceeded)
	view.ShowResult(resp.Transcript, false)
	return nil
}

func (h *Handler) reject(view View, err error) error {
	h.transition(StateRejected)
	h.record(OutcomeRejected)
	view.ShowResult(err.Error(), true)
	return err
}

func (h *Handler) transition(state State) {
	h.state.Store(int32(state))
	h.notify(state)
}

func (h *Handler) notify(state State) {
	if h.observer != nil {
		h.observer(state)
	}
}

func (h *Handler) record(outcome string) {
	if h.recorder != nil {
		h.recorder.RecordSubmission(outcome)
	}
}
