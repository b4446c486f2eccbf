package eval

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/extend"
	"github.com/nsass/sass/internal/value"
)

func (ev *Evaluator) execStyleRule(s *ast.SStyleRule, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	text, err := ev.evalStringParts(s.Selector, frame)
	if err != nil {
		return err
	}
	resolved, err := ParseSelectorList(text, selector)
	if err != nil {
		return ev.errorf(s.Range(), "%s", err.Error())
	}
	node := &cssast.StyleRule{Selector: resolved, MediaContext: mediaCtx}
	node.Loc = s.Range()
	node.Src = ev.currentSource()
	*hoist = append(*hoist, node)

	child := env.NewFrame(frame)
	_, _, err = ev.execStmts(s.Body, child, &node.Children, hoist, &resolved, mediaCtx)
	return err
}

// execDeclaration builds a cssast.Declaration for s, joining prefix onto its
// (possibly interpolated) property name for nested-property shorthand
// (`font: { size: 1em; }` -> `font-size: 1em;`, spec §3 "nested
// declarations").
func (ev *Evaluator) execDeclaration(s *ast.SDeclaration, frame *env.Frame, sink *[]cssast.Node, prefix string) error {
	propText, err := ev.evalStringParts(s.Property, frame)
	if err != nil {
		return err
	}
	fullProp := propText
	if prefix != "" {
		if propText != "" {
			fullProp = prefix + "-" + propText
		} else {
			fullProp = prefix
		}
	}

	if s.Value != nil {
		v, err := ev.evalExpr(s.Value, frame)
		if err != nil {
			return err
		}
		// A null value (or an empty, unbracketed list) drops the declaration
		// entirely rather than erroring -- the common idiom for conditionally
		// omitting a property (`prop: if($cond, value, null)`).
		if v == value.Null || isEmptyCollectionValue(v) {
			return nil
		}
		text, err := value.ToCSS(v, ev.Precision)
		if err != nil {
			return ev.errorf(s.Range(), "%s", err.Error())
		}
		decl := &cssast.Declaration{Property: fullProp, Value: text, Important: s.Important}
		decl.Loc = s.Range()
		decl.Src = ev.currentSource()
		*sink = append(*sink, decl)
	}

	for _, child := range s.Body {
		decl, ok := child.(*ast.SDeclaration)
		if !ok {
			continue
		}
		if err := ev.execDeclaration(decl, frame, sink, fullProp); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyCollectionValue(v value.Value) bool {
	switch t := v.(type) {
	case *value.List:
		return len(t.Items) == 0 && !t.HasBrackets
	case *value.Map:
		return len(t.Entries) == 0
	default:
		return false
	}
}

func (ev *Evaluator) execVariableDecl(s *ast.SVariableDecl, frame *env.Frame) error {
	if s.Namespace != "" {
		// Sass forbids assigning into another module's namespace directly;
		// treated as a no-op target lookup error for clarity.
		return ev.errorf(s.Range(), "Cannot modify variable %s.$%s from outside its module.", s.Namespace, s.Name)
	}
	if s.Default {
		if existing, ok := frame.GetVar(s.Name); ok && existing != value.Null {
			return nil
		}
	}
	v, err := ev.evalExpr(s.Value, frame)
	if err != nil {
		return err
	}
	if s.Global {
		frame.SetGlobal(s.Name, v)
		return nil
	}
	frame.SetVar(s.Name, v)
	return nil
}

func (ev *Evaluator) execIf(s *ast.SIf, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) (value.Value, bool, error) {
	for _, clause := range s.Clauses {
		if clause.Cond == nil {
			child := env.NewFrame(frame)
			return ev.execStmts(clause.Body, child, sink, hoist, selector, mediaCtx)
		}
		cond, err := ev.evalExpr(clause.Cond, frame)
		if err != nil {
			return nil, false, err
		}
		if cond.Truthy() {
			child := env.NewFrame(frame)
			return ev.execStmts(clause.Body, child, sink, hoist, selector, mediaCtx)
		}
	}
	return nil, false, nil
}

func (ev *Evaluator) execEach(s *ast.SEach, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) (value.Value, bool, error) {
	list, err := ev.evalExpr(s.List, frame)
	if err != nil {
		return nil, false, err
	}
	items := eachItems(list)
	for _, item := range items {
		child := env.NewFrame(frame)
		bindEachVars(child, s.Vars, item)
		v, returned, err := ev.execStmts(s.Body, child, sink, hoist, selector, mediaCtx)
		if err != nil {
			return nil, false, err
		}
		if returned {
			return v, true, nil
		}
	}
	return nil, false, nil
}

// eachItems normalizes @each's iterable into a slice of values, each either
// a plain Value (single-variable form) or a *value.List (multi-variable
// destructuring form), matching a map's natural [key, value] iteration.
func eachItems(v value.Value) []value.Value {
	switch t := v.(type) {
	case *value.List:
		return t.Items
	case *value.ArgList:
		return t.List.Items
	case *value.Map:
		out := make([]value.Value, len(t.Entries))
		for i, e := range t.Entries {
			out[i] = value.NewList(value.SepSpace, false, e.Key, e.Value)
		}
		return out
	default:
		return []value.Value{v}
	}
}

func bindEachVars(frame *env.Frame, vars []string, item value.Value) {
	if len(vars) == 1 {
		frame.DeclareLocal(vars[0], item)
		return
	}
	var parts []value.Value
	if l, ok := item.(*value.List); ok {
		parts = l.Items
	} else {
		parts = []value.Value{item}
	}
	for i, name := range vars {
		if i < len(parts) {
			frame.DeclareLocal(name, parts[i])
		} else {
			frame.DeclareLocal(name, value.Null)
		}
	}
}

func (ev *Evaluator) execFor(s *ast.SFor, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) (value.Value, bool, error) {
	fromV, err := ev.evalExpr(s.From, frame)
	if err != nil {
		return nil, false, err
	}
	toV, err := ev.evalExpr(s.To, frame)
	if err != nil {
		return nil, false, err
	}
	fromN, ok1 := fromV.(*value.Number)
	toN, ok2 := toV.(*value.Number)
	if !ok1 || !ok2 {
		return nil, false, ev.errorf(s.Range(), "@for bounds must be numbers.")
	}
	from, to := int(fromN.Val), int(toN.Val)
	step := 1
	if from > to {
		step = -1
	}
	end := to
	if !s.Inclusive {
		end = to - step
	}
	for i := from; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		child := env.NewFrame(frame)
		child.DeclareLocal(s.Var, value.NumUnits(float64(i), fromN.Numerators, fromN.Denominators))
		v, returned, err := ev.execStmts(s.Body, child, sink, hoist, selector, mediaCtx)
		if err != nil {
			return nil, false, err
		}
		if returned {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func (ev *Evaluator) execWhile(s *ast.SWhile, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) (value.Value, bool, error) {
	for {
		cond, err := ev.evalExpr(s.Cond, frame)
		if err != nil {
			return nil, false, err
		}
		if !cond.Truthy() {
			return nil, false, nil
		}
		child := env.NewFrame(frame)
		v, returned, err := ev.execStmts(s.Body, child, sink, hoist, selector, mediaCtx)
		if err != nil {
			return nil, false, err
		}
		if returned {
			return v, true, nil
		}
	}
}

// execAtRoot implements `@at-root` by re-targeting the sink to the
// compilation's top-level root children: the body is always emitted at the
// root, outside every enclosing style rule and at-rule, with no parent
// selector. The only query with an effect is one that contains "with:" and
// "media" but not "without"; it keeps the enclosing media context for the
// body's @extend matching. Every other query, `(with: rule)` included, is
// treated the same as no query.
func (ev *Evaluator) execAtRoot(s *ast.SAtRoot, frame *env.Frame, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	keepMedia := strings.Contains(s.Query, "media") && strings.Contains(s.Query, "without") == false && strings.Contains(s.Query, "with:")
	sink := &ev.Root.Children
	ctx := cssast.MediaQueryList{}
	if keepMedia {
		ctx = mediaCtx
	}
	child := env.NewFrame(frame)
	_, _, err := ev.execStmts(s.Body, child, sink, sink, nil, ctx)
	return err
}

func (ev *Evaluator) execMedia(s *ast.SMedia, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	text, err := ev.evalStringParts(s.Query, frame)
	if err != nil {
		return err
	}
	queries, err := parseMediaQueryList(text)
	if err != nil {
		return ev.errorf(s.Range(), "%s", err.Error())
	}
	node := &cssast.MediaRule{Queries: queries}
	node.Loc = s.Range()
	node.Src = ev.currentSource()
	*hoist = append(*hoist, node)

	merged, ok := cssast.Merge(mediaCtx, queries)
	if !ok {
		merged = queries
	}
	child := env.NewFrame(frame)
	_, _, err = ev.execStmts(s.Body, child, &node.Children, &node.Children, selector, merged)
	return err
}

func (ev *Evaluator) execSupports(s *ast.SSupports, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	v, err := ev.evalExpr(s.Condition, frame)
	if err != nil {
		return err
	}
	cond := value.Inspect(v)
	if str, ok := v.(*value.Str); ok {
		cond = str.Text
	}
	node := &cssast.SupportsRule{Condition: cond}
	node.Loc = s.Range()
	node.Src = ev.currentSource()
	*hoist = append(*hoist, node)

	child := env.NewFrame(frame)
	_, _, err = ev.execStmts(s.Body, child, &node.Children, &node.Children, selector, mediaCtx)
	return err
}

func (ev *Evaluator) execInclude(s *ast.SInclude, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	var callable value.Callable
	var ok bool
	if s.Namespace != "" {
		exports, err := ev.resolveNamespace(s.Namespace, s.Range())
		if err != nil {
			return err
		}
		callable, ok = exports.Mixins[s.Name]
	} else {
		callable, ok = frame.GetMixin(s.Name)
	}
	if !ok {
		return ev.errorf(s.Range(), "Undefined mixin %s.", s.Name)
	}
	mixin, ok := callable.(*UserMixin)
	if !ok {
		return ev.errorf(s.Range(), "%s is not a mixin.", s.Name)
	}

	callFrame, err := ev.bindArguments(mixin.Params, s.Args, frame, mixin.Closure, "mixin `"+mixin.Name+"`", s.Range())
	if err != nil {
		return err
	}

	if s.Content != nil {
		ev.contentStack = append(ev.contentStack, contentFrame{stmts: s.Content, frame: frame, params: s.ContentParams})
		defer func() { ev.contentStack = ev.contentStack[:len(ev.contentStack)-1] }()
	}

	ev.callStack = append(ev.callStack, StackFrame{Description: "mixin `" + mixin.Name + "`", Source: ev.currentSource(), Loc: s.Range()})
	defer func() { ev.callStack = ev.callStack[:len(ev.callStack)-1] }()

	_, _, err = ev.execStmts(mixin.Body, callFrame, sink, hoist, selector, mediaCtx)
	return err
}

func (ev *Evaluator) execContent(s *ast.SContent, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	if len(ev.contentStack) == 0 {
		return nil
	}
	top := ev.contentStack[len(ev.contentStack)-1]
	callFrame, err := ev.bindArguments(top.params, s.Args, frame, top.frame, "@content", s.Range())
	if err != nil {
		return err
	}
	ev.contentStack = ev.contentStack[:len(ev.contentStack)-1]
	defer func() { ev.contentStack = append(ev.contentStack, top) }()
	_, _, err = ev.execStmts(top.stmts, callFrame, sink, hoist, selector, mediaCtx)
	return err
}

func (ev *Evaluator) execExtend(s *ast.SExtend, frame *env.Frame, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	if selector == nil {
		return ev.errorf(s.Range(), "@extend may only be used within style rules.")
	}
	text, err := ev.evalStringParts(s.Selector, frame)
	if err != nil {
		return err
	}
	target, err := ParseSelectorList(text, nil)
	if err != nil {
		return ev.errorf(s.Range(), "%s", err.Error())
	}
	ev.Extends = append(ev.Extends, extend.Rule{
		Extender:     *selector,
		Target:       target,
		Optional:     s.Optional,
		MediaContext: mediaCtx,
	})
	return nil
}

func (ev *Evaluator) execAtRule(s *ast.SAtRule, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	prelude, err := ev.evalStringParts(s.Prelude, frame)
	if err != nil {
		return err
	}
	node := &cssast.AtRule{Name: s.Name, Prelude: prelude, HasBlock: s.HasBlock}
	node.Loc = s.Range()
	node.Src = ev.currentSource()
	*hoist = append(*hoist, node)
	if s.HasBlock {
		child := env.NewFrame(frame)
		_, _, err = ev.execStmts(s.Body, child, &node.Children, &node.Children, selector, mediaCtx)
		return err
	}
	return nil
}

func (ev *Evaluator) execKeyframes(s *ast.SKeyframesRule, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	name, err := ev.evalStringParts(s.Name, frame)
	if err != nil {
		return err
	}
	node := &cssast.KeyframesRule{AtKeyword: s.AtKeyword, Name: name}
	node.Loc = s.Range()
	node.Src = ev.currentSource()
	for _, blk := range s.Blocks {
		outBlk := cssast.KeyframeBlock{Selectors: blk.Selectors}
		child := env.NewFrame(frame)
		_, _, err := ev.execStmts(blk.Body, child, &outBlk.Children, &outBlk.Children, nil, mediaCtx)
		if err != nil {
			return err
		}
		node.Blocks = append(node.Blocks, outBlk)
	}
	*hoist = append(*hoist, node)
	return nil
}
