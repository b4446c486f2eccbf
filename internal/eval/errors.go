package eval

import (
	"fmt"
	"strings"

	"github.com/nsass/sass/internal/logger"
)

// Kind tags which branch of the spec §7 error taxonomy an Error belongs to.
// Parse-time errors (ParseError) are raised by internal/parser itself and
// never constructed here; this evaluator only ever raises the branches that
// can occur after parsing succeeds.
type Kind uint8

const (
	KindSassScript Kind = iota // a Value operation failed (undefined op, bad argument, ...)
	KindImport                 // @use/@forward/@import couldn't resolve or formed a cycle
	KindUser                    // an explicit @error directive
	KindInternal                // an invariant this evaluator relies on was violated
)

// StackFrame is one entry of a user-visible backtrace (spec §7 "the
// user-visible failure format... includes a stack of call sites").
type StackFrame struct {
	Description string // e.g. "mixin `button`", "function `mix`", "@include button"
	Source      *logger.Source
	Loc         logger.Range
}

// Error is the evaluator's single error type; Kind selects which of the
// spec's taxonomy branches produced it, and Trace carries the call stack
// active when it was raised, innermost frame first.
type Error struct {
	Kind    Kind
	Message string
	Source  *logger.Source
	Loc     logger.Range
	Trace   []StackFrame
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, f := range e.Trace {
		b.WriteString("\n  from ")
		b.WriteString(f.Description)
	}
	return b.String()
}

func newError(kind Kind, source *logger.Source, loc logger.Range, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Source: source, Loc: loc}
}

func (ev *Evaluator) errorf(loc logger.Range, format string, args ...interface{}) *Error {
	e := newError(KindSassScript, ev.currentSource(), loc, format, args...)
	e.Trace = ev.snapshotTrace()
	return e
}

func (ev *Evaluator) importErrorf(loc logger.Range, format string, args ...interface{}) *Error {
	e := newError(KindImport, ev.currentSource(), loc, format, args...)
	e.Trace = ev.snapshotTrace()
	return e
}

func (ev *Evaluator) userErrorf(loc logger.Range, format string, args ...interface{}) *Error {
	e := newError(KindUser, ev.currentSource(), loc, format, args...)
	e.Trace = ev.snapshotTrace()
	return e
}

func (ev *Evaluator) internalErrorf(format string, args ...interface{}) *Error {
	e := newError(KindInternal, ev.currentSource(), logger.Range{}, format, args...)
	e.Trace = ev.snapshotTrace()
	return e
}
