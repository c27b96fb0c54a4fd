package submit

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"scribe/internal/app/form"
)

// terminalView renders a submission to a terminal: a spinner while loading,
// the transcript on out and errors on errOut.
type terminalView struct {
	input    form.SubmissionInput
	out      io.Writer
	errOut   io.Writer
	progress bool

	mu        sync.Mutex
	container *mpb.Progress
	spinner   *mpb.Bar
	busy      bool
	result    string
	isError   bool
	visible   bool
}

func newTerminalView(input form.SubmissionInput, out, errOut io.Writer, progress bool) *terminalView {
	return &terminalView{
		input:    input,
		out:      out,
		errOut:   errOut,
		progress: progress,
	}
}

func (v *terminalView) Input() form.SubmissionInput {
	return v.input
}

func (v *terminalView) SetLoading(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.progress {
		return
	}
	if visible && v.container == nil {
		v.container = mpb.New(
			mpb.WithOutput(v.errOut),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		v.spinner = v.container.New(0,
			mpb.SpinnerStyle(),
			mpb.PrependDecorators(decor.Name("Processing... this may take a few minutes ")),
			mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
		)
		return
	}
	if !visible && v.container != nil {
		v.spinner.Abort(true)
		v.container.Wait()
		v.container = nil
		v.spinner = nil
	}
}

func (v *terminalView) SetSubmitBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = busy
}

func (v *terminalView) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = false
}

func (v *terminalView) ShowResult(text string, isError bool) {
	v.mu.Lock()
	v.result = text
	v.isError = isError
	v.visible = true
	v.mu.Unlock()

	if isError {
		fmt.Fprintln(v.errOut, text)
		return
	}
	fmt.Fprintln(v.out, text)
}

// isTTY reports whether w is a character device
func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
