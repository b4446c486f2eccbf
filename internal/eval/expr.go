package eval

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/value"
)

// evalExpr evaluates a SassScript expression tree against frame (spec §4.5
// "Expression evaluation"). and/or implement true short-circuit evaluation
// here: the right operand is never evaluated once the left operand already
// determines the result, unlike internal/value.And/Or, which are mere
// truthiness combinators over two already-evaluated operands. See
// internal/env's package doc for why frame.GetVar/GetFunc resolve by name
// rather than by the parser's FrameDepth/SlotIndex hint.
func (ev *Evaluator) evalExpr(e ast.Expr, frame *env.Frame) (value.Value, error) {
	switch t := e.(type) {
	case *ast.ENull:
		return value.Null, nil
	case *ast.EBool:
		return value.Boolean(t.Value), nil
	case *ast.ENumber:
		return value.NumUnits(t.Value, t.Numerators, t.Denominators), nil
	case *ast.EColor:
		c, err := value.ResolveColorLiteral(t.Text)
		if err != nil {
			return nil, ev.errorf(t.Range(), "%s", err.Error())
		}
		return c, nil
	case *ast.EString:
		return ev.evalString(t, frame)
	case *ast.EVariable:
		return ev.evalVariable(t, frame)
	case *ast.EListLiteral:
		return ev.evalListLiteral(t, frame)
	case *ast.EMapLiteral:
		return ev.evalMapLiteral(t, frame)
	case *ast.EUnary:
		return ev.evalUnary(t, frame)
	case *ast.EBinary:
		return ev.evalBinary(t, frame)
	case *ast.ETernarySlash:
		return ev.evalTernarySlash(t, frame)
	case *ast.EParen:
		return ev.evalExpr(t.Inner, frame)
	case *ast.ECall:
		return ev.evalCall(t, frame)
	case *ast.ESupportsCondition:
		return value.UnquotedString(t.Text), nil
	default:
		return nil, ev.internalErrorf("unhandled expression node %T", e)
	}
}

func (ev *Evaluator) evalStringParts(parts []ast.StringPart, frame *env.Frame) (string, error) {
	var b strings.Builder
	for _, p := range parts {
		if p.Expr == nil {
			b.WriteString(p.Text)
			continue
		}
		v, err := ev.evalExpr(p.Expr, frame)
		if err != nil {
			return "", err
		}
		b.WriteString(value.Inspect(unwrapUnquoted(v)))
	}
	return b.String(), nil
}

// unwrapUnquoted renders an already-unquoted string's raw text instead of
// inspection form, matching Sass's "interpolation never re-quotes a string
// that was already unquoted" rule; other values still use Inspect.
func unwrapUnquoted(v value.Value) value.Value {
	if s, ok := v.(*value.Str); ok && !s.Quoted {
		return value.UnquotedString(s.Text)
	}
	return v
}

func (ev *Evaluator) evalString(e *ast.EString, frame *env.Frame) (value.Value, error) {
	text, err := ev.evalStringParts(e.Parts, frame)
	if err != nil {
		return nil, err
	}
	return &value.Str{Text: text, Quoted: e.Quoted}, nil
}

func (ev *Evaluator) evalVariable(e *ast.EVariable, frame *env.Frame) (value.Value, error) {
	if e.Namespace != "" {
		exports, err := ev.resolveNamespace(e.Namespace, e.Range())
		if err != nil {
			return nil, err
		}
		if v, ok := exports.Vars[e.Name]; ok {
			return v, nil
		}
		return nil, ev.errorf(e.Range(), "Undefined variable %s.$%s.", e.Namespace, e.Name)
	}
	if v, ok := frame.GetVar(e.Name); ok {
		return v, nil
	}
	return nil, ev.errorf(e.Range(), "Undefined variable $%s.", e.Name)
}

func (ev *Evaluator) evalListLiteral(e *ast.EListLiteral, frame *env.Frame) (value.Value, error) {
	items := make([]value.Value, len(e.Items))
	for i, item := range e.Items {
		v, err := ev.evalExpr(item, frame)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	sep := e.Separator
	if sep == ast.SepUndecided {
		sep = ast.SepSpace
	}
	return &value.List{Items: items, Separator: value.Separator(sep), HasBrackets: e.HasBrackets}, nil
}

func (ev *Evaluator) evalMapLiteral(e *ast.EMapLiteral, frame *env.Frame) (value.Value, error) {
	m := value.NewMap()
	for i, k := range e.Keys {
		kv, err := ev.evalExpr(k, frame)
		if err != nil {
			return nil, err
		}
		vv, err := ev.evalExpr(e.Values[i], frame)
		if err != nil {
			return nil, err
		}
		m.Set(kv, vv)
	}
	return m, nil
}

func (ev *Evaluator) evalUnary(e *ast.EUnary, frame *env.Frame) (value.Value, error) {
	v, err := ev.evalExpr(e.Operand, frame)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		r, err := value.Neg(v)
		if err != nil {
			return nil, ev.errorf(e.Range(), "%s", err.Error())
		}
		return r, nil
	case "+":
		if _, ok := v.(*value.Number); ok {
			return v, nil
		}
		return nil, ev.errorf(e.Range(), "Undefined operation %q for %s.", "+", value.TypeName(v))
	case "not":
		return value.Not(v), nil
	default:
		return nil, ev.internalErrorf("unknown unary operator %q", e.Op)
	}
}

func (ev *Evaluator) evalBinary(e *ast.EBinary, frame *env.Frame) (value.Value, error) {
	if e.Op == "and" || e.Op == "or" {
		left, err := ev.evalExpr(e.Left, frame)
		if err != nil {
			return nil, err
		}
		// True short circuit: "and" skips the right operand once left is
		// already falsey, "or" skips it once left is already truthy.
		if e.Op == "and" && !left.Truthy() {
			return left, nil
		}
		if e.Op == "or" && left.Truthy() {
			return left, nil
		}
		return ev.evalExpr(e.Right, frame)
	}

	left, err := ev.evalExpr(e.Left, frame)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(e.Right, frame)
	if err != nil {
		return nil, err
	}

	var result value.Value
	var opErr error
	switch e.Op {
	case "+":
		result, opErr = value.Add(left, right)
	case "-":
		result, opErr = value.Sub(left, right)
	case "*":
		result, opErr = value.Mul(left, right)
	case "/":
		result, opErr = value.Div(left, right)
	case "%":
		result, opErr = value.Mod(left, right)
	case "==":
		result, opErr = value.Boolean(value.Equals(left, right)), nil
	case "!=":
		result, opErr = value.Boolean(!value.Equals(left, right)), nil
	case "<", "<=", ">", ">=":
		result, opErr = value.Compare(e.Op, left, right)
	default:
		return nil, ev.internalErrorf("unknown binary operator %q", e.Op)
	}
	if opErr != nil {
		return nil, ev.errorf(e.Range(), "%s", opErr.Error())
	}
	return result, nil
}

func (ev *Evaluator) evalTernarySlash(e *ast.ETernarySlash, frame *env.Frame) (value.Value, error) {
	left, err := ev.evalExpr(e.Left, frame)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(e.Right, frame)
	if err != nil {
		return nil, err
	}
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, ev.errorf(e.Range(), "Undefined operation %q for %s / %s.", "/", value.TypeName(left), value.TypeName(right))
	}
	divided, err := value.Div(ln, rn)
	if err != nil {
		return nil, ev.errorf(e.Range(), "%s", err.Error())
	}
	result := divided.(*value.Number)
	result.AsSlash = &value.SlashPair{Left: ln, Right: rn}
	return result, nil
}
