package form

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/app/api/transcribe"
)

// recordingView is an in-memory View that keeps the rendered state and the call order
type recordingView struct {
	mu sync.Mutex

	input SubmissionInput

	loadingVisible bool
	submitBusy     bool
	resultVisible  bool
	resultText     string
	resultIsError  bool

	calls []string
}

func (v *recordingView) Input() SubmissionInput {
	return v.input
}

func (v *recordingView) SetLoading(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingVisible = visible
	v.calls = append(v.calls, map[bool]string{true: "loading:on", false: "loading:off"}[visible])
}

func (v *recordingView) SetSubmitBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitBusy = busy
	v.calls = append(v.calls, map[bool]string{true: "submit:busy", false: "submit:ready"}[busy])
}

func (v *recordingView) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultVisible = false
	v.calls = append(v.calls, "result:hide")
}

func (v *recordingView) ShowResult(text string, isError bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resultVisible = true
	v.resultText = text
	v.resultIsError = isError
	v.calls = append(v.calls, "result:show")
}

// seenRequest is what the mock service received
type seenRequest struct {
	authorization    string
	hasFile          bool
	hasPromptContext bool
	promptContext    string
}

type mockService struct {
	server   *httptest.Server
	requests atomic.Int32

	mu   sync.Mutex
	last seenRequest
}

func newMockService(t *testing.T, status int, body string) *mockService {
	t.Helper()
	svc := &mockService{}
	svc.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svc.requests.Add(1)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		seen := seenRequest{authorization: r.Header.Get("Authorization")}
		if f, _, err := r.FormFile(transcribe.FileField); err == nil {
			seen.hasFile = true
			f.Close()
		}
		if values, ok := r.MultipartForm.Value[transcribe.PromptContextField]; ok {
			seen.hasPromptContext = true
			seen.promptContext = values[0]
		}
		svc.mu.Lock()
		svc.last = seen
		svc.mu.Unlock()

		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(svc.server.Close)
	return svc
}

func (s *mockService) lastRequest() seenRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func newFile() *File {
	return &File{Name: "meeting.mp3", ContentType: "audio/mpeg", Content: strings.NewReader("ID3 audio")}
}

func newHandler(url string, opts ...Option) *Handler {
	return NewHandler(transcribe.NewClient(url), nil, opts...)
}

func TestHandler_Submit_NoFile(t *testing.T) {
	svc := newMockService(t, http.StatusOK, `{"transcript": "unused"}`)
	view := &recordingView{input: SubmissionInput{APIToken: "token"}}

	err := newHandler(svc.server.URL).Submit(context.Background(), view)

	assert.True(t, stderrors.Is(err, ErrInputMissing))
	assert.Equal(t, "Please select a file.", view.resultText)
	assert.True(t, view.resultIsError)
	assert.True(t, view.resultVisible)
	assert.Equal(t, []string{"result:show"}, view.calls)
	assert.Equal(t, int32(0), svc.requests.Load())
}

func TestHandler_Submit_NoToken(t *testing.T) {
	for _, token := range []string{"", "   ", "\t\n"} {
		t.Run("token "+strings.ReplaceAll(token, "\n", `\n`), func(t *testing.T) {
			svc := newMockService(t, http.StatusOK, `{"transcript": "unused"}`)
			view := &recordingView{input: SubmissionInput{File: newFile(), APIToken: token}}

			err := newHandler(svc.server.URL).Submit(context.Background(), view)

			assert.True(t, stderrors.Is(err, ErrTokenMissing))
			assert.Equal(t, "Please enter your API token.", view.resultText)
			assert.True(t, view.resultIsError)
			assert.Equal(t, int32(0), svc.requests.Load())
		})
	}
}

func TestHandler_Submit_FileCheckedBeforeToken(t *testing.T) {
	svc := newMockService(t, http.StatusOK, `{"transcript": "unused"}`)
	view := &recordingView{}

	err := newHandler(svc.server.URL).Submit(context.Background(), view)

	assert.True(t, stderrors.Is(err, ErrInputMissing))
	assert.Equal(t, MsgSelectFile, view.resultText)
}

func TestHandler_Submit_RequestShape(t *testing.T) {
	tests := []struct {
		name            string
		promptContext   string
		expectContext   bool
		expectedContext string
	}{
		{name: "with context", promptContext: "  quarterly planning  ", expectContext: true, expectedContext: "quarterly planning"},
		{name: "empty context", promptContext: "", expectContext: false},
		{name: "whitespace context", promptContext: "   ", expectContext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockService(t, http.StatusOK, `{"transcript": "ok"}`)
			view := &recordingView{input: SubmissionInput{
				File:          newFile(),
				APIToken:      "  abc123 ",
				PromptContext: tt.promptContext,
			}}

			require.NoError(t, newHandler(svc.server.URL).Submit(context.Background(), view))

			seen := svc.lastRequest()
			assert.Equal(t, int32(1), svc.requests.Load())
			assert.Equal(t, "Bearer abc123", seen.authorization)
			assert.True(t, seen.hasFile)
			assert.Equal(t, tt.expectContext, seen.hasPromptContext)
			assert.Equal(t, tt.expectedContext, seen.promptContext)
		})
	}
}

func TestHandler_Submit_Success(t *testing.T) {
	svc := newMockService(t, http.StatusOK, `{"transcript": "hello world"}`)
	view := &recordingView{
		input:         SubmissionInput{File: newFile(), APIToken: "token"},
		resultIsError: true, // left over from an earlier failure
	}

	err := newHandler(svc.server.URL).Submit(context.Background(), view)

	require.NoError(t, err)
	assert.Equal(t, "hello world", view.resultText)
	assert.False(t, view.resultIsError)
	assert.True(t, view.resultVisible)
	assert.False(t, view.loadingVisible)
	assert.False(t, view.submitBusy)
	assert.Equal(t, []string{
		"loading:on", "result:hide", "submit:busy",
		"result:show",
		"loading:off", "submit:ready",
	}, view.calls)
}

func TestHandler_Submit_Failures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedText string
	}{
		{
			name:         "unauthorized with detail",
			status:       http.StatusUnauthorized,
			body:         `{"detail": "invalid token"}`,
			expectedText: "Error: HTTP error! status: 401, Message: invalid token",
		},
		{
			name:         "server error without json",
			status:       http.StatusInternalServerError,
			body:         "Internal Server Error",
			expectedText: "Error: HTTP error! status: 500, Message: Unknown error occurred. Check server logs.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockService(t, tt.status, tt.body)
			view := &recordingView{input: SubmissionInput{File: newFile(), APIToken: "token"}}

			err := newHandler(svc.server.URL).Submit(context.Background(), view)

			var httpErr *transcribe.HTTPError
			require.True(t, stderrors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.expectedText, view.resultText)
			assert.True(t, view.resultIsError)
			assert.True(t, view.resultVisible)
			assert.False(t, view.loadingVisible)
			assert.False(t, view.submitBusy)
		})
	}
}

func TestHandler_Submit_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	view := &recordingView{input: SubmissionInput{File: newFile(), APIToken: "token"}}
	err := newHandler(url).Submit(context.Background(), view)

	var netErr *transcribe.NetworkError
	require.True(t, stderrors.As(err, &netErr))
	assert.Equal(t, "Error: "+netErr.Error(), view.resultText)
	assert.True(t, view.resultIsError)
	assert.False(t, view.loadingVisible)
	assert.False(t, view.submitBusy)
}

func TestHandler_Submit_StateTransitions(t *testing.T) {
	svc := newMockService(t, http.StatusOK, `{"transcript": "hi"}`)

	var states []State
	handler := newHandler(svc.server.URL, WithStateObserver(func(s State) {
		states = append(states, s)
	}))

	require.NoError(t, handler.Submit(context.Background(), &recordingView{
		input: SubmissionInput{File: newFile(), APIToken: "token"},
	}))
	assert.Equal(t, []State{StateValidating, StateSubmitting, StateSucceeded, StateIdle}, states)

	states = nil
	_ = handler.Submit(context.Background(), &recordingView{})
	assert.Equal(t, []State{StateValidating, StateRejected, StateIdle}, states)
	assert.Equal(t, StateIdle, handler.State())
	assert.False(t, handler.Busy())
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *countingRecorder) RecordSubmission(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func TestHandler_Submit_RejectsOverlappingSubmission(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		close(started)
		<-release
		io.WriteString(w, `{"transcript": "first"}`)
	}))
	defer server.Close()

	recorder := &countingRecorder{}
	handler := newHandler(server.URL, WithRecorder(recorder))
	first := &recordingView{input: SubmissionInput{File: newFile(), APIToken: "token"}}

	done := make(chan error, 1)
	go func() {
		done <- handler.Submit(context.Background(), first)
	}()

	<-started
	assert.True(t, handler.Busy())
	assert.Equal(t, StateSubmitting, handler.State())

	second := &recordingView{input: SubmissionInput{File: newFile(), APIToken: "token"}}
	err := handler.Submit(context.Background(), second)
	assert.True(t, stderrors.Is(err, ErrSubmissionInProgress))
	assert.Empty(t, second.calls)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, "first", first.resultText)
	assert.Equal(t, []string{OutcomeBusy, OutcomeSucceeded}, recorder.outcomes)
	assert.False(t, handler.Busy())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
}
