package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

// Handler returns the current global error handler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Or returns h, or the global handler when h is nil.
func Or(h ErrorHandler) ErrorHandler {
	if h != nil {
		return h
	}
	return Handler()
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *CarouselError) {
	ReportTo(nil, err)
}

// ReportTo sends an error to h, falling back to the global handler.
func ReportTo(h ErrorHandler, err *CarouselError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h = Or(h); h != nil {
		h.HandleError(err)
	}
}

// Warn sends a soft failure for op to the global handler.
func Warn(op string, err error) {
	WarnTo(nil, op, err)
}

// WarnTo sends a soft failure for op to h, falling back to the global handler.
func WarnTo(h ErrorHandler, op string, err error) {
	if h = Or(h); h != nil {
		h.HandleWarning(&Warning{Op: op, Err: err, Timestamp: time.Now()})
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	ReportPanicTo(nil, err)
}

// ReportPanicTo sends a panic error to h, falling back to the global handler.
func ReportPanicTo(h ErrorHandler, err *PanicError) {
	if err == nil {
		return
	}
	if h = Or(h); h != nil {
		h.HandlePanic(err)
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanic(op, r))
	}
}

// RecoverTo is like Recover but reports to h.
// Usage: defer errors.RecoverTo(handler, "operation.name")
func RecoverTo(h ErrorHandler, op string) {
	if r := recover(); r != nil {
		ReportPanicTo(h, newPanic(op, r))
	}
}

func newPanic(op string, value any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
