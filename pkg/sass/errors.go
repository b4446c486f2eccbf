package sass

import (
	"github.com/nsass/sass/internal/eval"
	"github.com/nsass/sass/internal/extend"
	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/internal/parser"
)

// ErrorKind is spec §7's error taxonomy.
type ErrorKind uint8

const (
	KindParse ErrorKind = iota
	KindSassScript
	KindExtend
	KindImport
	KindUser
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindSassScript:
		return "SassScriptError"
	case KindExtend:
		return "ExtendError"
	case KindImport:
		return "ImportError"
	case KindUser:
		return "UserError"
	default:
		return "InternalError"
	}
}

// StackFrame is one entry of a user-visible backtrace.
type StackFrame struct {
	Description string
	Source      *logger.Source
	Loc         logger.Range
}

// CompileError is the single error type every Compiler method can return
// (spec §7: "all carry a span and a stack trace"). Its Error() string is
// the user-visible failure block -- error kind, message, source excerpt
// with a caret, and a backtrace -- reusing internal/logger's own
// diagnostic formatter (the same one backing @warn/@debug output) so the
// library and CLI never drift onto two different renderings of the same
// failure.
type CompileError struct {
	Kind    ErrorKind
	Message string
	Source  *logger.Source
	Loc     logger.Range
	Trace   []StackFrame
}

func (e *CompileError) Error() string {
	notes := make([]logger.MsgData, len(e.Trace))
	for i, f := range e.Trace {
		notes[i] = logger.RangeData(f.Source, f.Loc, "from "+f.Description)
	}
	msg := logger.Msg{
		Kind:  logger.Error,
		Data:  logger.RangeData(e.Source, e.Loc, e.Kind.String()+": "+e.Message),
		Notes: notes,
	}
	return msg.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{})
}

// wrapError translates whatever the parse/eval/extend pipeline returned
// into a CompileError, preserving the taxonomy branch the spec names.
func wrapError(err error) *CompileError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CompileError); ok {
		return ce
	}
	switch e := err.(type) {
	case *parser.ParseError:
		return &CompileError{Kind: KindParse, Message: e.Message, Loc: e.Span}
	case *extend.Error:
		return &CompileError{Kind: KindExtend, Message: e.Error()}
	case *eval.Error:
		trace := make([]StackFrame, len(e.Trace))
		for i, f := range e.Trace {
			trace[i] = StackFrame{Description: f.Description, Source: f.Source, Loc: f.Loc}
		}
		kind := KindSassScript
		switch e.Kind {
		case eval.KindImport:
			kind = KindImport
		case eval.KindUser:
			kind = KindUser
		case eval.KindInternal:
			kind = KindInternal
		}
		return &CompileError{Kind: kind, Message: e.Message, Source: e.Source, Loc: e.Loc, Trace: trace}
	default:
		return &CompileError{Kind: KindInternal, Message: err.Error()}
	}
}
