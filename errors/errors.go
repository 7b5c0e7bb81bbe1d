package errors

import (
	"fmt"
	"strings"
)

// Op indicates which operation the error occurred in
type Op string

const (
	OpBuilder   Op = "builder"   // scoped construction protocol
	OpMakeDict  Op = "makedict"  // mapping from pairs
	OpFactorize Op = "factorize" // trial division
	OpParse     Op = "parse"     // input conversion
)

// Kind categorizes the error
type Kind string

const (
	KindShape          Kind = "shape"           // wrong arity/type of structural input
	KindForbiddenValue Kind = "forbidden_value" // domain sentinel encountered
	KindRange          Kind = "range"           // input outside valid domain
	KindInjected       Kind = "injected"        // unlucky test hook tripped
	KindConversion     Kind = "conversion"      // input not representable
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Op     Op
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Op == t.Op && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Shape creates a structural-input error
func Shape(op Op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindShape,
		Detail: detail,
	}
}

// ForbiddenValue creates an error for the designated sentinel
func ForbiddenValue(op Op) *Error {
	return &Error{
		Op:     op,
		Kind:   KindForbiddenValue,
		Detail: "forbidden value found",
	}
}

// OutOfRange creates a domain-range error
func OutOfRange(op Op, detail string, value any) *Error {
	return &Error{
		Op:     op,
		Kind:   KindRange,
		Detail: detail,
		Value:  value,
	}
}

// Injected creates an error for a tripped unlucky hook
func Injected(op Op, what string, value uint64) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInjected,
		Detail: fmt.Sprintf("unlucky %s %d", what, value),
		Value:  value,
	}
}

// Conversion creates an input-conversion error
func Conversion(op Op, input string, cause error) *Error {
	return &Error{
		Op:     op,
		Kind:   KindConversion,
		Detail: fmt.Sprintf("cannot convert %q", input),
		Value:  input,
		Cause:  cause,
	}
}
