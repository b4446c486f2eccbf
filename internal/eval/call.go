package eval

import (
	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/internal/value"
)

// UserFunction is a `@function` declaration's runtime representation (spec
// §4.5 "@function"). Closure is the lexical frame the function was declared
// in, so it can see outer variables the way a Go closure would, independent
// of where it is called from.
type UserFunction struct {
	Name    string
	Params  []ast.Param
	Body    []ast.Stmt
	Closure *env.Frame
}

func (f *UserFunction) CallableName() string { return f.Name }

// UserMixin is an `@mixin` declaration's runtime representation.
type UserMixin struct {
	Name           string
	Params         []ast.Param
	Body           []ast.Stmt
	Closure        *env.Frame
	AcceptsContent bool
}

func (m *UserMixin) CallableName() string { return m.Name }

// Builtin wraps a native Go function registered into the global scope
// (spec §4.5's built-in function library, §6 register_function).
type BuiltinFn func(ev *Evaluator, args []value.Value) (value.Value, error)

type Builtin struct {
	Name string
	Fn   BuiltinFn
	// Params/Defaults give a builtin named-argument positions so callers may
	// invoke it with keyword arguments (`rgba($alpha: .5, $color: red)`) the
	// same way a `@function` can be; Defaults[i] == nil means the parameter
	// is required. Builtins taking a single `args...` (e.g. min/max/zip)
	// leave both nil and read straight off the positional slice Fn receives.
	Params   []string
	Defaults []value.Value
}

func (b *Builtin) CallableName() string { return b.Name }

func newBuiltin(name string, fn BuiltinFn, params ...string) *Builtin {
	return &Builtin{Name: name, Fn: fn, Params: params, Defaults: make([]value.Value, len(params))}
}

func newBuiltinWithDefaults(name string, fn BuiltinFn, params []string, defaults []value.Value) *Builtin {
	return &Builtin{Name: name, Fn: fn, Params: params, Defaults: defaults}
}

// bindBuiltinArgs merges positional and keyword arguments into a single
// ordered slice following b's declared parameter names, the same
// positional/keyword/default resolution spec §4.5 describes for user
// functions, minus variadic support (no built-in registered here needs it;
// builtins wanting arbitrary trailing args just take positional directly).
func (ev *Evaluator) bindBuiltinArgs(b *Builtin, positional []value.Value, keywords map[string]value.Value, loc logger.Range) ([]value.Value, error) {
	if len(b.Params) == 0 {
		if len(keywords) > 0 {
			return nil, ev.errorf(loc, "Function %s() doesn't accept keyword arguments.", b.Name)
		}
		return positional, nil
	}
	out := make([]value.Value, len(b.Params))
	used := map[string]bool{}
	for i := range b.Params {
		if i < len(positional) {
			out[i] = positional[i]
			continue
		}
		if v, ok := keywords[b.Params[i]]; ok {
			out[i] = v
			used[b.Params[i]] = true
			continue
		}
		if b.Defaults[i] != nil {
			out[i] = b.Defaults[i]
			continue
		}
		return nil, ev.errorf(loc, "Missing argument $%s for %s().", b.Params[i], b.Name)
	}
	for name := range keywords {
		if !used[name] && !paramNameIn(b.Params, name) {
			return nil, ev.errorf(loc, "No parameter named $%s for %s().", name, b.Name)
		}
	}
	return out, nil
}

func paramNameIn(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// bindArguments evaluates invocation's argument expressions in callerFrame
// and binds them against params into a freshly created frame (spec §4.5
// "Argument binding": positional, then keyword, then defaulted, then
// variadic/spread).
func (ev *Evaluator) bindArguments(params []ast.Param, invocation *ast.ArgInvocation, callerFrame *env.Frame, parent *env.Frame, calleeDesc string, loc logger.Range) (*env.Frame, error) {
	positional, keywords, err := ev.evalArgInvocation(invocation, callerFrame)
	if err != nil {
		return nil, err
	}
	return ev.bindEvaluated(params, positional, keywords, parent, calleeDesc, loc)
}

// evalArgInvocation evaluates every argument expression in callerFrame,
// flattening a `...` spread into extra positional/keyword arguments.
func (ev *Evaluator) evalArgInvocation(invocation *ast.ArgInvocation, frame *env.Frame) ([]value.Value, map[string]value.Value, error) {
	if invocation == nil {
		return nil, nil, nil
	}
	var positional []value.Value
	keywords := map[string]value.Value{}
	for _, e := range invocation.Positional {
		v, err := ev.evalExpr(e, frame)
		if err != nil {
			return nil, nil, err
		}
		positional = append(positional, v)
	}
	for i, name := range invocation.Names {
		v, err := ev.evalExpr(invocation.Values[i], frame)
		if err != nil {
			return nil, nil, err
		}
		keywords[name] = v
	}
	if invocation.Spread != nil {
		v, err := ev.evalExpr(invocation.Spread, frame)
		if err != nil {
			return nil, nil, err
		}
		switch t := v.(type) {
		case *value.ArgList:
			positional = append(positional, t.List.Items...)
			for _, e := range t.Keywords.Entries {
				if s, ok := e.Key.(*value.Str); ok {
					keywords[s.Text] = e.Value
				}
			}
		case *value.List:
			positional = append(positional, t.Items...)
		case *value.Map:
			for _, e := range t.Entries {
				if s, ok := e.Key.(*value.Str); ok {
					keywords[s.Text] = e.Value
				}
			}
		default:
			positional = append(positional, v)
		}
	}
	if invocation.KeywordSpread != nil {
		v, err := ev.evalExpr(invocation.KeywordSpread, frame)
		if err != nil {
			return nil, nil, err
		}
		if m, ok := v.(*value.Map); ok {
			for _, e := range m.Entries {
				if s, ok := e.Key.(*value.Str); ok {
					keywords[s.Text] = e.Value
				}
			}
		}
	}
	return positional, keywords, nil
}

// bindEvaluated binds already-evaluated positional/keyword arguments against
// params into a child of parent.
func (ev *Evaluator) bindEvaluated(params []ast.Param, positional []value.Value, keywords map[string]value.Value, parent *env.Frame, calleeDesc string, loc logger.Range) (*env.Frame, error) {
	frame := env.NewFrame(parent)
	used := map[string]bool{}
	pi := 0
	for _, p := range params {
		if p.Variadic {
			rest := append([]value.Value{}, positional[pi:]...)
			kwMap := value.NewMap()
			for name, v := range keywords {
				if !used[name] {
					kwMap.Set(value.QuotedString(name), v)
				}
			}
			frame.DeclareLocal(p.Name, value.NewArgList(rest, value.SepComma, kwMap))
			pi = len(positional)
			continue
		}
		if pi < len(positional) {
			frame.DeclareLocal(p.Name, positional[pi])
			pi++
			continue
		}
		if v, ok := keywords[p.Name]; ok {
			frame.DeclareLocal(p.Name, v)
			used[p.Name] = true
			continue
		}
		if p.Default != nil {
			v, err := ev.evalExpr(p.Default, frame)
			if err != nil {
				return nil, err
			}
			frame.DeclareLocal(p.Name, v)
			continue
		}
		return nil, ev.errorf(loc, "Missing argument $%s for %s.", p.Name, calleeDesc)
	}
	if pi < len(positional) && !hasVariadic(params) {
		return nil, ev.errorf(loc, "Only %d positional %s allowed for %s, but %d were passed.", len(params), pluralArg(len(params)), calleeDesc, len(positional))
	}
	for name := range keywords {
		if used[name] {
			continue
		}
		if !paramNamed(params, name) {
			return nil, ev.errorf(loc, "No parameter named $%s for %s.", name, calleeDesc)
		}
	}
	return frame, nil
}

func hasVariadic(params []ast.Param) bool {
	for _, p := range params {
		if p.Variadic {
			return true
		}
	}
	return false
}

func paramNamed(params []ast.Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func pluralArg(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}
