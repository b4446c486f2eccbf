package ast

import "github.com/nsass/sass/internal/logger"

// Stmt is never called; it encodes the closed statement-node variant type
// (spec §3 "Statement AST nodes"), one arm per node kind named in the spec.
type Stmt interface {
	isStmt()
	Range() logger.Range
}

type StmtBase struct {
	Loc logger.Range
}

func (s StmtBase) Range() logger.Range { return s.Loc }

// Stylesheet is the root of one parsed source file.
type Stylesheet struct {
	Source *logger.Source
	Body   []Stmt
}

// SStyleRule is a CSS/Sass style rule: a selector list (unparsed into
// interpolation-bearing segments here; the parser's selector sub-grammar
// runs over this during evaluation since `&` and `#{}` may depend on
// runtime context) followed by nested statements.
type SStyleRule struct {
	StmtBase
	Selector []StringPart // raw selector text with interpolation segments
	Body     []Stmt
}

// SDeclaration is a `property: value` pair. Property may itself contain
// interpolation (`#{$prop}-color: red`). Nested declarations
// (`font: { size: 1em; }`) reuse Body.
type SDeclaration struct {
	StmtBase
	Property  []StringPart
	Value     Expr // nil if this is a nested-declaration header with no own value
	Body      []Stmt
	Important bool
}

// SVariableDecl is `$name: expr [!default] [!global];`.
type SVariableDecl struct {
	StmtBase
	Namespace string
	Name      string
	Value     Expr
	Default   bool
	Global    bool
}

// SIf is an `@if`/`@else if`/`@else` chain; Clauses[i] with a nil Cond is
// the trailing bare `@else`.
type SIf struct {
	StmtBase
	Clauses []IfClause
}

type IfClause struct {
	Cond Expr // nil for the final unconditional @else
	Body []Stmt
}

// SEach is `@each $a [, $b] in <expr> { ... }`.
type SEach struct {
	StmtBase
	Vars []string
	List Expr
	Body []Stmt
}

// SFor is `@for $i from <expr> [through|to] <expr> { ... }`.
type SFor struct {
	StmtBase
	Var       string
	From, To  Expr
	Inclusive bool // true for "through", false for "to"
	Body      []Stmt
}

// SWhile is `@while <expr> { ... }`.
type SWhile struct {
	StmtBase
	Cond Expr
	Body []Stmt
}

// SAtRoot is `@at-root [(query)] { ... }`.
type SAtRoot struct {
	StmtBase
	Query string // raw query text as written, parentheses included (e.g. "(without: media)"); empty when none is given
	Body  []Stmt
}

// SMedia is `@media <query-list> { ... }`.
type SMedia struct {
	StmtBase
	Query []StringPart
	Body  []Stmt
}

// SSupports is `@supports <condition> { ... }`.
type SSupports struct {
	StmtBase
	Condition Expr
	Body      []Stmt
}

// SMixinDecl is `@mixin name(params) { ... }`.
type SMixinDecl struct {
	StmtBase
	Name       string
	Params     []Param
	Body       []Stmt
	AcceptsContent bool
}

type Param struct {
	Name     string
	Default  Expr // nil if required
	Variadic bool
}

// SInclude is `@include name(args) [using (params)] [{ body }]`.
type SInclude struct {
	StmtBase
	Namespace  string
	Name       string
	Args       *ArgInvocation
	ContentParams []Param
	Content    []Stmt // nil if no content block was given
}

// SContent is `@content(args)` inside a mixin body.
type SContent struct {
	StmtBase
	Args *ArgInvocation
}

// SFunctionDecl is `@function name(params) { ... @return ...; }`.
type SFunctionDecl struct {
	StmtBase
	Name   string
	Params []Param
	Body   []Stmt
}

// SReturn is `@return <expr>;`, legal only inside a function body.
type SReturn struct {
	StmtBase
	Value Expr
}

// SUse is `@use <url> [as <ns>|as *] [with (...)]`.
type SUse struct {
	StmtBase
	URL       string
	Namespace string // "" means derive from basename; "*" means no prefix
	NoAlias   bool   // `as *`
	Config    []ConfigVar
}

type ConfigVar struct {
	Name  string
	Value Expr
}

// SForward is `@forward <url> [as prefix-*] [show ...] [hide ...] [with (...)]`.
type SForward struct {
	StmtBase
	URL    string
	Prefix string
	Show   []string
	Hide   []string
	Config []ConfigVar
}

// SImport is a legacy `@import`; each entry may be a stylesheet import or
// (in plain-CSS contexts) a static passthrough import left untouched by the
// evaluator (spec §4.4 legacy import semantics; spec §4.2 dialect rules for
// CSS's URL-only form).
type SImport struct {
	StmtBase
	Targets []ImportTarget
}

type ImportTarget struct {
	URL    string
	Static bool // true: plain CSS/url()-form passthrough, not a Sass module import
}

// SExtend is `@extend <selector> [!optional];`.
type SExtend struct {
	StmtBase
	Selector []StringPart
	Optional bool
}

// SError / SWarn / SDebug are the three diagnostic directives.
type SError struct {
	StmtBase
	Value Expr
}

type SWarn struct {
	StmtBase
	Value Expr
}

type SDebug struct {
	StmtBase
	Value Expr
}

// SLoudComment is a preserved `/* ... */` comment, possibly containing
// interpolation.
type SLoudComment struct {
	StmtBase
	Parts []StringPart
}

// SSilentComment is a parse-time-only `// ...` comment, kept in the
// statement tree only so `@debug`-style tooling and round-trip tests that
// care about source fidelity can see it; the evaluator skips it outright.
type SSilentComment struct {
	StmtBase
	Text string
}

// SAtRule is a catch-all for unknown/unrecognized at-rules that the grammar
// accepts per the "minimal syntax" principle (spec §3, mirroring the
// teacher's RUnknownAt/RKnownAt split) and passes through to the CSS tree
// verbatim.
type SAtRule struct {
	StmtBase
	Name    string
	Prelude []StringPart
	Body    []Stmt // nil if the at-rule has no block (ends at `;`)
	HasBlock bool
}

// SKeyframesRule is `@keyframes name { 0% { ... } to { ... } }`; kept
// distinct from SAtRule because each keyframe selector is a percentage or
// `from`/`to` keyword, not a full selector list.
type SKeyframesRule struct {
	StmtBase
	AtKeyword string // "@keyframes" or vendor-prefixed variant
	Name      []StringPart
	Blocks    []KeyframeBlock
}

type KeyframeBlock struct {
	Selectors []string // each "37%", "from", or "to"
	Body      []Stmt
}

func (*SStyleRule) isStmt()      {}
func (*SDeclaration) isStmt()    {}
func (*SVariableDecl) isStmt()   {}
func (*SIf) isStmt()             {}
func (*SEach) isStmt()           {}
func (*SFor) isStmt()            {}
func (*SWhile) isStmt()          {}
func (*SAtRoot) isStmt()         {}
func (*SMedia) isStmt()          {}
func (*SSupports) isStmt()       {}
func (*SMixinDecl) isStmt()      {}
func (*SInclude) isStmt()        {}
func (*SContent) isStmt()        {}
func (*SFunctionDecl) isStmt()   {}
func (*SReturn) isStmt()         {}
func (*SUse) isStmt()            {}
func (*SForward) isStmt()        {}
func (*SImport) isStmt()         {}
func (*SExtend) isStmt()         {}
func (*SError) isStmt()          {}
func (*SWarn) isStmt()           {}
func (*SDebug) isStmt()          {}
func (*SLoudComment) isStmt()    {}
func (*SSilentComment) isStmt()  {}
func (*SAtRule) isStmt()         {}
func (*SKeyframesRule) isStmt()  {}
