package eval

import (
	"fmt"
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/internal/value"
)

// evalCall implements spec §4.5 function dispatch: namespaced calls resolve
// against the named module's exports, unqualified calls check the lexical
// frame chain (user `@function`s) then the global builtin/host table, and a
// name matching none of those falls back to a plain CSS function -- its
// arguments are rendered as literal CSS text rather than raising an error,
// matching how real Sass tolerates unknown CSS functions like `calc()` or
// vendor functions it doesn't define.
func (ev *Evaluator) evalCall(e *ast.ECall, frame *env.Frame) (value.Value, error) {
	if e.Namespace != "" {
		exports, err := ev.resolveNamespace(e.Namespace, e.Range())
		if err != nil {
			return nil, err
		}
		fn, ok := exports.Funcs[e.Name]
		if !ok {
			return nil, ev.errorf(e.Range(), "Undefined function %s.%s().", e.Namespace, e.Name)
		}
		return ev.invokeCallable(fn, e.Args, frame, e.Range())
	}

	if fn, ok := frame.GetFunc(e.Name); ok {
		return ev.invokeCallable(fn, e.Args, frame, e.Range())
	}
	if fn, ok := ev.globalFuncs[e.Name]; ok {
		return ev.invokeCallable(fn, e.Args, frame, e.Range())
	}
	return ev.cssFunctionFallback(e, frame)
}

func (ev *Evaluator) invokeCallable(callable value.Callable, invocation *ast.ArgInvocation, frame *env.Frame, loc logger.Range) (value.Value, error) {
	switch fn := callable.(type) {
	case *UserFunction:
		return ev.callUserFunction(fn, invocation, frame, loc)
	case *Builtin:
		positional, keywords, err := ev.evalArgInvocation(invocation, frame)
		if err != nil {
			return nil, err
		}
		args, err := ev.bindBuiltinArgs(fn, positional, keywords, loc)
		if err != nil {
			return nil, err
		}
		return fn.Fn(ev, args)
	default:
		return nil, ev.internalErrorf("unknown callable kind %T for function call", callable)
	}
}

// callUserFunction runs fn's body against a fresh argument-bound frame.
// Function bodies may only contain declarations/control-flow/@return (spec
// §4.5), so the CSS sink passed to execStmts is a throwaway: nothing should
// ever be appended to it, but execStmts's signature needs one regardless.
func (ev *Evaluator) callUserFunction(fn *UserFunction, invocation *ast.ArgInvocation, frame *env.Frame, loc logger.Range) (value.Value, error) {
	callFrame, err := ev.bindArguments(fn.Params, invocation, frame, fn.Closure, "function `"+fn.Name+"`", loc)
	if err != nil {
		return nil, err
	}
	ev.callStack = append(ev.callStack, StackFrame{Description: "function `" + fn.Name + "`", Source: ev.currentSource(), Loc: loc})
	defer func() { ev.callStack = ev.callStack[:len(ev.callStack)-1] }()

	var discard []cssast.Node
	v, returned, err := ev.execStmts(fn.Body, callFrame, &discard, &discard, nil, cssast.MediaQueryList{})
	if err != nil {
		return nil, err
	}
	if !returned {
		return nil, ev.errorf(loc, "Function %s finished without @return.", fn.Name)
	}
	return v, nil
}

func (ev *Evaluator) cssFunctionFallback(e *ast.ECall, frame *env.Frame) (value.Value, error) {
	var parts []string
	if e.Args != nil {
		for _, a := range e.Args.Positional {
			v, err := ev.evalExpr(a, frame)
			if err != nil {
				return nil, err
			}
			text, err := value.ToCSS(v, ev.Precision)
			if err != nil {
				return nil, err
			}
			parts = append(parts, text)
		}
		for i, name := range e.Args.Names {
			v, err := ev.evalExpr(e.Args.Values[i], frame)
			if err != nil {
				return nil, err
			}
			text, err := value.ToCSS(v, ev.Precision)
			if err != nil {
				return nil, err
			}
			parts = append(parts, fmt.Sprintf("$%s: %s", name, text))
		}
	}
	name := e.Name
	if e.Namespace != "" {
		name = e.Namespace + "." + e.Name
	}
	return value.UnquotedString(name + "(" + strings.Join(parts, ", ") + ")"), nil
}
