// Package env implements C6 (spec §4.4): the lexically-scoped runtime
// environment and the module graph that `@use`/`@forward`/`@import` build up.
//
// The parser assigns each EVariable reference a (FrameDepth, SlotIndex) pair
// when the binding is statically visible, falling back to (-1, -1) when it
// is not (internal/ast/expr.go). This package deliberately does not exploit
// those indices: Frame resolves every lookup by name through the dynamic
// parent chain instead. That is always correct per spec §4.4's fallback-path
// semantics (name lookup is the ground truth; the slot indices are only an
// optimization the evaluator is free to skip), and it keeps Frame usable for
// both statically-resolvable and dynamically-resolvable references without
// two code paths. A future optimization pass could thread the static indices
// through as a fast path; this implementation favors the single simple path.
package env

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/value"
)

// Frame is one lexical scope: a stylesheet's global scope, a rule body, a
// control-flow body, or a function/mixin call frame. Frames chain to their
// lexically enclosing parent, never to a dynamic call site, matching Sass's
// lexical (not dynamic) scoping rule (spec §4.4).
type Frame struct {
	parent *Frame
	vars   map[string]value.Value
	funcs  map[string]value.Callable
	mixins map[string]value.Callable
}

// NewFrame creates a scope nested inside parent. parent is nil only for a
// module's root frame.
func NewFrame(parent *Frame) *Frame {
	return &Frame{parent: parent}
}

// Parent returns the lexically enclosing frame, or nil for a root frame.
func (f *Frame) Parent() *Frame { return f.parent }

// Root walks to the outermost frame in f's chain (a module's global scope).
func (f *Frame) Root() *Frame {
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// GetVar resolves name by walking the parent chain outward.
func (f *Frame) GetVar(name string) (value.Value, bool) {
	for frame := f; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetVar implements Sass assignment semantics: `$x: v` reassigns the
// nearest enclosing frame that already declares $x, or declares it locally
// in f if no enclosing frame does (spec §4.4). This is why plain assignment
// inside an `@if`/`@each` body can mutate an outer variable without
// `!global`.
func (f *Frame) SetVar(name string, v value.Value) {
	for frame := f; frame != nil; frame = frame.parent {
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = v
			return
		}
	}
	f.DeclareLocal(name, v)
}

// DeclareLocal binds name in f itself, shadowing any outer binding,
// regardless of whether an outer frame already declares it. Used for `@each`
// loop variables, function/mixin parameters, and the first `$x: v` seen at a
// given scope depth.
func (f *Frame) DeclareLocal(name string, v value.Value) {
	if f.vars == nil {
		f.vars = make(map[string]value.Value)
	}
	f.vars[name] = v
}

// SetGlobal implements `$x: v !global`: it always binds in the root frame,
// regardless of where f sits in the chain.
func (f *Frame) SetGlobal(name string, v value.Value) {
	f.Root().DeclareLocal(name, v)
}

// HasLocalVar reports whether name is declared directly in f, without
// walking to parents. Used by the evaluator to detect redeclaration of a
// `@for`/`@each` loop variable versus a reference to an outer one.
func (f *Frame) HasLocalVar(name string) bool {
	_, ok := f.vars[name]
	return ok
}

func (f *Frame) GetFunc(name string) (value.Callable, bool) {
	for frame := f; frame != nil; frame = frame.parent {
		if c, ok := frame.funcs[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func (f *Frame) DeclareFunc(name string, c value.Callable) {
	if f.funcs == nil {
		f.funcs = make(map[string]value.Callable)
	}
	f.funcs[name] = c
}

func (f *Frame) GetMixin(name string) (value.Callable, bool) {
	for frame := f; frame != nil; frame = frame.parent {
		if c, ok := frame.mixins[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func (f *Frame) DeclareMixin(name string, c value.Callable) {
	if f.mixins == nil {
		f.mixins = make(map[string]value.Callable)
	}
	f.mixins[name] = c
}

// IsPublic reports whether name is a public (non-private) member name per
// spec §4.4: names beginning with `_` or `-` are module-private and never
// forwarded or exported across a `@use`/`@forward` boundary. Sass treats `_`
// and `-` as interchangeable in this position (GLOSSARY "private member").
func IsPublic(name string) bool {
	return !strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "-")
}

// Exports is the public surface a Module exposes to whatever `@use`s or
// `@forward`s it: every top-level binding it declared itself, plus whatever
// it has forwarded in from modules it loaded.
type Exports struct {
	Vars   map[string]value.Value
	Funcs  map[string]value.Callable
	Mixins map[string]value.Callable
}

func NewExports() *Exports {
	return &Exports{
		Vars:   make(map[string]value.Value),
		Funcs:  make(map[string]value.Callable),
		Mixins: make(map[string]value.Callable),
	}
}

// CollectFromRoot copies every public binding declared directly in root
// (a module's own top-level scope, not an inherited one) into e. Called once
// a module stylesheet finishes executing.
func (e *Exports) CollectFromRoot(root *Frame) {
	for name, v := range root.vars {
		if IsPublic(name) {
			e.Vars[name] = v
		}
	}
	for name, c := range root.funcs {
		if IsPublic(name) {
			e.Funcs[name] = c
		}
	}
	for name, c := range root.mixins {
		if IsPublic(name) {
			e.Mixins[name] = c
		}
	}
}

// ForwardFilter is the `@forward "..." as prefix-* show a, b hide c, d`
// filter chain (spec §3 "@forward"/SPEC_FULL supplemented features). Show
// and Hide are mutually exclusive per the Sass grammar; at most one is ever
// populated. A nil/empty Show and Hide forwards everything.
type ForwardFilter struct {
	Prefix string
	Show   map[string]bool
	Hide   map[string]bool
}

func (filt ForwardFilter) passes(name string) bool {
	if filt.Show != nil {
		return filt.Show[name]
	}
	if filt.Hide != nil {
		return !filt.Hide[name]
	}
	return true
}

func (filt ForwardFilter) rename(name string) string {
	if filt.Prefix == "" {
		return name
	}
	return filt.Prefix + name
}

// MergeForwarded folds other's public surface into e, applying filt's
// show/hide/prefix rules. A name already present in e (declared directly by
// the forwarding module, or forwarded earlier from a different dependency)
// is never overwritten: the forwarding module's own bindings, and the
// earliest forward of a given name, win, matching libsass's forwarding
// precedence.
func (e *Exports) MergeForwarded(other *Exports, filt ForwardFilter) {
	for name, v := range other.Vars {
		if !filt.passes(name) {
			continue
		}
		out := filt.rename(name)
		if _, exists := e.Vars[out]; !exists {
			e.Vars[out] = v
		}
	}
	for name, c := range other.Funcs {
		if !filt.passes(name) {
			continue
		}
		out := filt.rename(name)
		if _, exists := e.Funcs[out]; !exists {
			e.Funcs[out] = c
		}
	}
	for name, c := range other.Mixins {
		if !filt.passes(name) {
			continue
		}
		out := filt.rename(name)
		if _, exists := e.Mixins[out]; !exists {
			e.Mixins[out] = c
		}
	}
}

// Module is one stylesheet loaded by `@use`/`@forward`/`@import`, keyed by
// its canonical absolute path. Per spec §4.4 a module is parsed and executed
// exactly once no matter how many times it is loaded; Executing guards
// against load cycles (`@use` of a module that is still in the middle of
// loading itself, directly or transitively).
type Module struct {
	Path       string
	Stylesheet *ast.Stylesheet
	Root       *Frame
	Exports    *Exports

	Executing bool
	Executed  bool

	// Uses maps a `@use ... as <ns>` namespace visible in this module to the
	// exports of the module it was loaded from, so `ns.$var`/`ns.func()`
	// references resolve without re-walking the module graph each time.
	Uses map[string]*Exports
}

// NewModule creates the (not-yet-executed) module record for path/stylesheet.
// Root starts as a fresh global frame; the evaluator populates it (and
// Exports) by running stylesheet's top-level statements against it.
func NewModule(path string, stylesheet *ast.Stylesheet) *Module {
	return &Module{
		Path:       path,
		Stylesheet: stylesheet,
		Root:       NewFrame(nil),
		Exports:    NewExports(),
		Uses:       make(map[string]*Exports),
	}
}

// Graph is the set of modules loaded so far in one compilation, keyed by
// canonical absolute path so that `@use`ing the same file twice (even via
// different relative paths) resolves to the same Module (spec §4.4).
type Graph struct {
	byPath map[string]*Module
}

func NewGraph() *Graph {
	return &Graph{byPath: make(map[string]*Module)}
}

func (g *Graph) Get(path string) (*Module, bool) {
	m, ok := g.byPath[path]
	return m, ok
}

func (g *Graph) Put(path string, m *Module) {
	g.byPath[path] = m
}
