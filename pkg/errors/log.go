package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs to a writer (stderr by default).
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a CarouselError.
func (h *LogHandler) HandleError(err *CarouselError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[carousel error] %s [%s]", err.Op, err.Kind)
		if err.Index >= 0 {
			fmt.Fprintf(w, " index=%d count=%d", err.Index, err.Count)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
	} else {
		fmt.Fprintf(w, "[carousel error] %s: %v\n", err.Op, err.Err)
	}
}

// HandleWarning logs a soft failure.
func (h *LogHandler) HandleWarning(warning *Warning) {
	if warning == nil {
		return
	}
	fmt.Fprintf(h.out(), "[carousel warning] %s\n", warning)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[carousel panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[carousel panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// Recorder is an ErrorHandler that keeps everything it receives.
// It is intended for tests and for hosts that surface diagnostics in their own UI.
type Recorder struct {
	Errors   []*CarouselError
	Warnings []*Warning
	Panics   []*PanicError
}

// HandleError records err.
func (r *Recorder) HandleError(err *CarouselError) { r.Errors = append(r.Errors, err) }

// HandleWarning records w.
func (r *Recorder) HandleWarning(w *Warning) { r.Warnings = append(r.Warnings, w) }

// HandlePanic records err.
func (r *Recorder) HandlePanic(err *PanicError) { r.Panics = append(r.Panics, err) }

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.Errors = nil
	r.Warnings = nil
	r.Panics = nil
}
