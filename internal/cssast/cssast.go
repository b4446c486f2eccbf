// Package cssast is the post-evaluation CSS tree (spec §3 "CSS tree"): the
// output of C7, rewritten in place by C8 (extension engine) and C9
// (placeholder pruner), then visited by C10 (printer). Unlike internal/ast's
// statement tree, every node here is fully resolved — no expressions, no
// interpolation, no control flow.
package cssast

import (
	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/logger"
)

// Node is never called; it encodes the CSS-tree's closed variant type,
// mirroring the teacher's css_ast.R pattern.
type Node interface {
	isNode()
	Range() logger.Range
	SourceFile() *logger.Source
}

// nodeBase carries both a node's span and the source file it came from.
// A single CSS tree can interleave nodes emitted while executing several
// different modules (spec §4.4 "@use"/"@import" splice another module's
// statements into the current tree), so Range alone -- a bare byte offset
// -- is not enough to recover a source-map entry; the printer (C10/C11)
// needs to know which file that offset is relative to.
type nodeBase struct {
	Loc logger.Range
	Src *logger.Source
}

func (n nodeBase) Range() logger.Range       { return n.Loc }
func (n nodeBase) SourceFile() *logger.Source { return n.Src }

// Root is the synthetic top-level parent every compilation evaluates into
// (spec §4.5 "initially a synthetic root").
type Root struct {
	Children []Node
	// HasCharset records whether the entry module's source began with
	// `@charset` (spec §4.8's charset-reemission rule).
	HasCharset bool
}

// StyleRule holds a selector list and its declarations/nested rules. The
// selector list is mutated in place by the extension engine (C8) and by the
// placeholder pruner (C9).
type StyleRule struct {
	nodeBase
	Selector ast.SelectorList
	Children []Node

	// MediaContext is the (possibly empty) chain of ancestor @media query
	// lists this rule was emitted under, used by C8 to decide whether an
	// extend declared under one @media applies here (spec §4.6 point 5).
	MediaContext MediaQueryList
}

// AtRule is a generic at-rule the printer doesn't need to specially
// understand (e.g. `@font-face`, `@page`), carried through as prelude text
// plus children exactly as the teacher's RKnownAt/RUnknownAt do.
type AtRule struct {
	nodeBase
	Name    string
	Prelude string
	Children []Node
	HasBlock bool
}

// MediaRule is `@media <queries> { ... }`.
type MediaRule struct {
	nodeBase
	Queries  MediaQueryList
	Children []Node
}

// SupportsRule is `@supports <condition> { ... }`.
type SupportsRule struct {
	nodeBase
	Condition string
	Children  []Node
}

// KeyframesRule is `@keyframes name { ... }`.
type KeyframesRule struct {
	nodeBase
	AtKeyword string
	Name      string
	Blocks    []KeyframeBlock
}

type KeyframeBlock struct {
	Selectors []string
	Children  []Node
}

// Declaration is a resolved `property: value;` pair. Value is the printed
// CSS text form of the evaluated Sass value (spec §4.8's number/color/
// string emission rules are applied when this is constructed, not deferred
// to the printer, so that e.g. @debug output and printed CSS cannot drift).
type Declaration struct {
	nodeBase
	Property  string
	Value     string
	Important bool
}

// Import is a static `@import url;` that survived evaluation unresolved as
// a Sass module (spec §4.8 "import hoisting"): either a plain-CSS `@import`
// target or a legacy `@import` of a URL the host's importer didn't resolve
// to a stylesheet.
type Import struct {
	nodeBase
	Target string
}

// Comment is a preserved loud `/* ... */` comment.
type Comment struct {
	nodeBase
	Text string
}

func (*Root) isNode()          {}
func (*StyleRule) isNode()     {}
func (*AtRule) isNode()        {}
func (*MediaRule) isNode()     {}
func (*SupportsRule) isNode()  {}
func (*KeyframesRule) isNode() {}
func (*Declaration) isNode()   {}
func (*Import) isNode()        {}
func (*Comment) isNode()       {}

func (r *Root) Range() logger.Range        { return logger.Range{} }
func (r *Root) SourceFile() *logger.Source { return nil }
