// Package eval implements C7 (spec §4.5): the statement executor and
// expression evaluator that turns a parsed internal/ast.Stylesheet into a
// cssast.Root plus the list of @extend rules C8 needs, driving module
// loading (C6), argument binding, control flow, and the built-in function
// library along the way.
package eval

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/extend"
	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/internal/value"
)

// contentFrame is the `@content` binding active while executing a mixin
// body that accepted one (spec §4.5 "@include-with-content"). Frame is the
// *calling* site's lexical frame, not the mixin's: `@content` runs with the
// variables visible where `@include` was written, the defining feature that
// distinguishes it from an ordinary mixin body.
type contentFrame struct {
	stmts  []ast.Stmt
	frame  *env.Frame
	params []ast.Param
}

// Evaluator holds everything threaded through one compilation run.
type Evaluator struct {
	Graph     *env.Graph
	Importer  Importer
	LoadPaths []string
	Log       logger.Log
	Precision int

	Root    *cssast.Root
	Extends []extend.Rule

	parseCache map[string]*ast.Stylesheet

	globalFuncs  map[string]value.Callable
	globalMixins map[string]value.Callable

	callStack    []StackFrame
	moduleStack  []*env.Module
	contentStack []contentFrame
}

// New creates an Evaluator ready to run one compilation (spec §5: one
// Evaluator per `execute()` call, never reused across compilations).
func New(importer Importer, loadPaths []string, log logger.Log, precision int) *Evaluator {
	ev := &Evaluator{
		Graph:        env.NewGraph(),
		Importer:     importer,
		LoadPaths:    loadPaths,
		Log:          log,
		Precision:    precision,
		Root:         &cssast.Root{},
		parseCache:   make(map[string]*ast.Stylesheet),
		globalFuncs:  make(map[string]value.Callable),
		globalMixins: make(map[string]value.Callable),
	}
	registerBuiltins(ev)
	return ev
}

// RegisterFunction implements spec §6's register_function host callback: it
// installs a Go-backed Callable into global scope under name, usable from
// any stylesheet in this compilation.
func (ev *Evaluator) RegisterFunction(name string, fn BuiltinFn) {
	ev.globalFuncs[name] = &Builtin{Name: name, Fn: fn}
}

// Evaluate runs path/stylesheet as the compilation's entry point (spec §4.5:
// "the entry stylesheet's statements execute against a synthetic root").
func (ev *Evaluator) Evaluate(path string, stylesheet *ast.Stylesheet) (*cssast.Root, []extend.Rule, error) {
	mod := env.NewModule(path, stylesheet)
	ev.Graph.Put(path, mod)
	mod.Executing = true
	ev.moduleStack = append(ev.moduleStack, mod)
	defer func() {
		ev.moduleStack = ev.moduleStack[:len(ev.moduleStack)-1]
	}()

	body := stylesheet.Body
	if len(body) > 0 {
		if at, ok := body[0].(*ast.SAtRule); ok && strings.EqualFold(at.Name, "@charset") {
			ev.Root.HasCharset = true
			body = body[1:]
		}
	}

	sink := &ev.Root.Children
	_, _, err := ev.execStmts(body, mod.Root, sink, sink, nil, cssast.MediaQueryList{})
	if err != nil {
		return nil, nil, err
	}
	mod.Executing = false
	mod.Executed = true
	mod.Exports.CollectFromRoot(mod.Root)
	return ev.Root, ev.Extends, nil
}

func (ev *Evaluator) currentSource() *logger.Source {
	if len(ev.moduleStack) == 0 {
		return nil
	}
	mod := ev.moduleStack[len(ev.moduleStack)-1]
	if mod.Stylesheet == nil {
		return nil
	}
	return mod.Stylesheet.Source
}

func (ev *Evaluator) snapshotTrace() []StackFrame {
	out := make([]StackFrame, len(ev.callStack))
	for i := range ev.callStack {
		out[i] = ev.callStack[len(ev.callStack)-1-i]
	}
	return out
}

func (ev *Evaluator) currentModule() *env.Module {
	if len(ev.moduleStack) == 0 {
		return nil
	}
	return ev.moduleStack[len(ev.moduleStack)-1]
}

func (ev *Evaluator) resolveNamespace(ns string, loc logger.Range) (*env.Exports, error) {
	mod := ev.currentModule()
	if mod == nil {
		return nil, ev.internalErrorf("namespace reference %q outside any module", ns)
	}
	if exports, ok := mod.Uses[ns]; ok {
		return exports, nil
	}
	return nil, ev.errorf(loc, "There is no module with namespace %q.", ns)
}

// execStmts executes stmts in order against frame, appending produced CSS
// nodes to *sink. selector is the enclosing style rule's already-resolved
// selector (nil at the stylesheet's top level, used to expand `&`).
// mediaCtx is the chain of ancestor @media queries currently in effect
// (spec §4.6 point 5, threaded through so @extend directives can record it).
//
// The (value.Value, bool, error) return communicates an in-flight `@return`:
// bool is true once a return has been hit, at which point every caller up
// the recursive chain must stop executing sibling statements and propagate
// immediately, mirroring a Go function's early return rather than using a
// panic/recover unwind (spec §9's "errors as control flow" note explicitly
// steers away from using panics for anything but the parser's grammar
// unwind).
func (ev *Evaluator) execStmts(stmts []ast.Stmt, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) (value.Value, bool, error) {
	for _, stmt := range stmts {
		v, returned, err := ev.execStmt(stmt, frame, sink, hoist, selector, mediaCtx)
		if err != nil {
			return nil, false, err
		}
		if returned {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func (ev *Evaluator) execStmt(stmt ast.Stmt, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) (value.Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.SStyleRule:
		return nil, false, ev.execStyleRule(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SDeclaration:
		return nil, false, ev.execDeclaration(s, frame, sink, "")
	case *ast.SVariableDecl:
		return nil, false, ev.execVariableDecl(s, frame)
	case *ast.SIf:
		return ev.execIf(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SEach:
		return ev.execEach(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SFor:
		return ev.execFor(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SWhile:
		return ev.execWhile(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SAtRoot:
		return nil, false, ev.execAtRoot(s, frame, selector, mediaCtx)
	case *ast.SMedia:
		return nil, false, ev.execMedia(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SSupports:
		return nil, false, ev.execSupports(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SMixinDecl:
		frame.DeclareMixin(s.Name, &UserMixin{Name: s.Name, Params: s.Params, Body: s.Body, Closure: frame, AcceptsContent: s.AcceptsContent})
		return nil, false, nil
	case *ast.SInclude:
		return nil, false, ev.execInclude(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SContent:
		return nil, false, ev.execContent(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SFunctionDecl:
		frame.DeclareFunc(s.Name, &UserFunction{Name: s.Name, Params: s.Params, Body: s.Body, Closure: frame})
		return nil, false, nil
	case *ast.SReturn:
		v, err := ev.evalExpr(s.Value, frame)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	case *ast.SUse:
		return nil, false, ev.execUse(s, frame)
	case *ast.SForward:
		return nil, false, ev.execForward(s, frame)
	case *ast.SImport:
		return nil, false, ev.execImport(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SExtend:
		return nil, false, ev.execExtend(s, frame, selector, mediaCtx)
	case *ast.SError:
		v, err := ev.evalExpr(s.Value, frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, ev.userErrorf(s.Range(), "Error: %s", value.Inspect(v))
	case *ast.SWarn:
		v, err := ev.evalExpr(s.Value, frame)
		if err != nil {
			return nil, false, err
		}
		if ev.Log.AddMsg != nil {
			ev.Log.AddWarning(ev.currentSource(), s.Range().Loc, "Warning: "+value.Inspect(v))
		}
		return nil, false, nil
	case *ast.SDebug:
		v, err := ev.evalExpr(s.Value, frame)
		if err != nil {
			return nil, false, err
		}
		if ev.Log.AddMsg != nil {
			ev.Log.AddWarning(ev.currentSource(), s.Range().Loc, "DEBUG: "+value.Inspect(v))
		}
		return nil, false, nil
	case *ast.SLoudComment:
		text, err := ev.evalStringParts(s.Parts, frame)
		if err != nil {
			return nil, false, err
		}
		comment := &cssast.Comment{Text: text}
		comment.Loc = s.Range()
		comment.Src = ev.currentSource()
		*sink = append(*sink, comment)
		return nil, false, nil
	case *ast.SSilentComment:
		return nil, false, nil
	case *ast.SAtRule:
		return nil, false, ev.execAtRule(s, frame, sink, hoist, selector, mediaCtx)
	case *ast.SKeyframesRule:
		return nil, false, ev.execKeyframes(s, frame, sink, hoist, selector, mediaCtx)
	default:
		return nil, false, ev.internalErrorf("unhandled statement node %T", stmt)
	}
}
