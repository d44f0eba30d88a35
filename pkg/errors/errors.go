// Package errors provides the typed errors and reporting hooks of the
// carousel core.
//
// Validated entry points return a [*CarouselError] whose Err is one of the
// sentinel values below, so callers can match with the standard library:
//
//	if errors.Is(err, carouselerrors.ErrPositionOutOfBounds) { ... }
//
// Soft failures (structural notifications that do not match the data
// source) are not returned; they are reported as a [Warning] through the
// active [ErrorHandler].
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPositionOutOfBounds indicates a requested position outside [0, count).
	KindPositionOutOfBounds
	// KindDataSourceNotSet indicates an operation attempted before a data provider was attached.
	KindDataSourceNotSet
	// KindIndexOutOfRange indicates a registry-level structural violation.
	KindIndexOutOfRange
	// KindInsufficientItems indicates layout stepping with fewer than two items.
	KindInsufficientItems
	// KindCountMismatch indicates a structural notification whose item count
	// delta does not match the data provider.
	KindCountMismatch
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPositionOutOfBounds:
		return "position_out_of_bounds"
	case KindDataSourceNotSet:
		return "data_source_not_set"
	case KindIndexOutOfRange:
		return "index_out_of_range"
	case KindInsufficientItems:
		return "insufficient_items"
	case KindCountMismatch:
		return "count_mismatch"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by CarouselError.
var (
	ErrPositionOutOfBounds = stderrors.New("position out of bounds")
	ErrDataSourceNotSet    = stderrors.New("data source not set")
	ErrIndexOutOfRange     = stderrors.New("index out of range")
	ErrInsufficientItems   = stderrors.New("insufficient items")
	ErrCountMismatch       = stderrors.New("item count mismatch")
)

// CarouselError represents a structured error raised by the carousel core.
type CarouselError struct {
	// Op is the operation that failed (e.g., "carousel.SetPosition").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error, usually one of the sentinels.
	Err error
	// Index is the offending position or index, -1 when not applicable.
	Index int
	// Count is the item count at the time of the failure.
	Count int
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CarouselError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s [%s] index=%d count=%d: %v", e.Op, e.Kind, e.Index, e.Count, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CarouselError) Unwrap() error {
	return e.Err
}

func newError(op string, kind ErrorKind, sentinel error, index, count int) *CarouselError {
	return &CarouselError{
		Op:        op,
		Kind:      kind,
		Err:       sentinel,
		Index:     index,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// PositionOutOfBounds reports a position outside [0, count).
func PositionOutOfBounds(op string, position, count int) *CarouselError {
	return newError(op, KindPositionOutOfBounds, ErrPositionOutOfBounds, position, count)
}

// DataSourceNotSet reports an operation attempted without a data provider.
func DataSourceNotSet(op string) *CarouselError {
	return newError(op, KindDataSourceNotSet, ErrDataSourceNotSet, -1, 0)
}

// IndexOutOfRange reports a structural index violation.
func IndexOutOfRange(op string, index, count int) *CarouselError {
	return newError(op, KindIndexOutOfRange, ErrIndexOutOfRange, index, count)
}

// InsufficientItems reports layout stepping attempted with fewer than two items.
func InsufficientItems(op string, count int) *CarouselError {
	return newError(op, KindInsufficientItems, ErrInsufficientItems, -1, count)
}

// CountMismatch reports a data provider count that does not match the
// expected delta. want is the count the notification implies.
func CountMismatch(op string, index, want, got int) *CarouselError {
	err := newError(op, KindCountMismatch, ErrCountMismatch, index, got)
	err.Err = fmt.Errorf("%w: data provider reports %d items, expected %d", ErrCountMismatch, got, want)
	return err
}

// KindOf returns the kind of err if it is (or wraps) a CarouselError.
func KindOf(err error) ErrorKind {
	var ce *CarouselError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// Warning is a soft failure that was handled by turning the operation into
// a no-op.
type Warning struct {
	// Op is the operation that was skipped.
	Op string
	// Err describes why.
	Err error
	// Timestamp is when the warning was raised.
	Timestamp time.Time
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "carousel.EventSink.OnSelect").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the carousel core.
type ErrorHandler interface {
	// HandleError is called when an operation fails with a typed error.
	HandleError(err *CarouselError)
	// HandleWarning is called when a soft failure turned an operation into a no-op.
	HandleWarning(w *Warning)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
