// Package printer implements C10 (spec §4.8): a post-order visitor over
// the post-extension/post-pruning CSS tree that serializes it into an
// output buffer under one of four output styles, optionally driving
// internal/sourcemap's Builder to produce a C11 source map alongside it
// (spec §4.9).
//
// Structurally this plays the role the teacher's internal/css_printer
// plays for its CSS AST: a printer struct holding an output byte buffer
// plus a cursor into the current line, walking rule nodes and appending
// text. Declaration values, numbers, colors, and strings are never
// reformatted here -- internal/value.ToCSS already rendered them to final
// CSS text when the cssast.Declaration was built, so unlike the teacher's
// printer (which formats JS-bundler-specific token streams) this one only
// lays out already-stringified pieces: indentation, braces, selector
// lists, and separators.
package printer

import (
	"bytes"
	"strings"

	"github.com/nsass/sass/internal/cssast"
	"github.com/nsass/sass/internal/helpers"
	"github.com/nsass/sass/internal/sourcemap"
)

// OutputStyle selects one of the four styles spec §4.8 names.
type OutputStyle uint8

const (
	Nested OutputStyle = iota
	Expanded
	Compact
	Compressed
)

// SourceMapMode names the "source-map-mode" values (spec §4.9/§6). Print
// builds the map JSON (Result.SourceMap) for every mode but SourceMapNone
// and treats Create, Link and Embed alike: it writes no `sourceMappingURL=`
// comment and no data-URI footer into the CSS in any mode.
type SourceMapMode uint8

const (
	SourceMapNone SourceMapMode = iota
	SourceMapCreate
	SourceMapLink
	SourceMapEmbed
)

// Options configures one Print call.
type Options struct {
	Style OutputStyle

	// ASCIIOnly forces non-ASCII bytes already present in rendered text
	// (selector/declaration text) to be treated as needing escape when
	// this printer generates new escapable text (currently only affects
	// nothing since declaration/selector text already carries its final
	// bytes, but kept for parity with the teacher's Options.ASCIIOnly and
	// for any future identifier-escaping path).
	ASCIIOnly bool

	SourceMapMode SourceMapMode
	// OutputPath is the generated CSS file's name, used as the source
	// map envelope's "file" field.
	OutputPath string
	// SourceMapURL is not read by Print; no footer URL is written.
	SourceMapURL string
	// SourceMapFileURLs is not read by Print: "sources" entries are always
	// each source's PrettyPath, never file:// URLs.
	SourceMapFileURLs bool
	// IncludeSourcesContent embeds each source file's full text under
	// "sourcesContent" (spec §6 "source-map-embed-contents").
	IncludeSourcesContent bool
}

// Result is everything one Print call produces.
type Result struct {
	CSS       []byte
	SourceMap []byte // the JSON envelope; nil unless SourceMapMode != SourceMapNone
}

type printer struct {
	options Options
	css     bytes.Buffer
	builder *sourcemap.Builder

	line int32 // current 0-based generated line
	col  int32 // current 0-based generated column, in UTF-16 code units
}

// Print serializes root according to options (spec §4.8), hoisting
// top-level imports and their leading comments to the front of the output
// (spec §4.8 "import hoisting") and re-emitting `@charset "UTF-8";` first
// when the input had one and the output is not pure ASCII.
func Print(root *cssast.Root, options Options) Result {
	p := &printer{options: options}
	if options.SourceMapMode != SourceMapNone {
		p.builder = sourcemap.NewBuilder(options.OutputPath)
	}

	imports, rest := hoistImports(root.Children)
	for _, n := range imports {
		p.printNode(n, 0)
	}
	for _, n := range rest {
		p.printNode(n, 0)
	}

	css := p.css.Bytes()
	if root.HasCharset && !isASCII(css) {
		prefix := []byte(`@charset "UTF-8";`)
		if p.options.Style != Compressed {
			prefix = append(prefix, '\n')
		}
		css = append(prefix, css...)
	}

	result := Result{CSS: css}
	if p.builder != nil {
		content := options.IncludeSourcesContent
		data, err := p.builder.GenerateJSON(content)
		if err == nil {
			result.SourceMap = data
		}
	}
	return result
}

// hoistImports moves every top-level `@import`, together with any run of
// comments immediately preceding it, to the front of the output, in their
// original relative order (spec §4.8 "any top-level @import and any
// comment immediately preceding it are collected and emitted at the top
// of the output"). This applies wherever in the stylesheet the import
// appears, not just a leading run: a comment run is only hoisted when an
// `@import` directly follows it, otherwise it stays with the other node
// it actually precedes.
func hoistImports(nodes []cssast.Node) (imports, rest []cssast.Node) {
	var pendingComments []cssast.Node
	for _, n := range nodes {
		switch n.(type) {
		case *cssast.Import:
			imports = append(imports, pendingComments...)
			pendingComments = nil
			imports = append(imports, n)
		case *cssast.Comment:
			pendingComments = append(pendingComments, n)
		default:
			rest = append(rest, pendingComments...)
			pendingComments = nil
			rest = append(rest, n)
		}
	}
	rest = append(rest, pendingComments...)
	return imports, rest
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

func (p *printer) minifyWhitespace() bool {
	return p.options.Style == Compressed
}

// oneLine reports whether a rule's body goes on one line (spec §4.8
// "'compact' puts each rule on one line").
func (p *printer) oneLine() bool {
	return p.options.Style == Compact || p.options.Style == Compressed
}

func (p *printer) print(text string) {
	p.css.WriteString(text)
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		p.line += int32(strings.Count(text, "\n"))
		p.col = int32(len(helpers.StringToUTF16(text[idx+1:])))
		if p.builder != nil {
			p.builder.AdvanceLine(p.line)
		}
	} else {
		p.col += int32(len(helpers.StringToUTF16(text)))
	}
}

func (p *printer) newline() {
	if p.minifyWhitespace() {
		return
	}
	p.print("\n")
}

func (p *printer) indent(depth int32) {
	if p.minifyWhitespace() || p.oneLine() {
		return
	}
	p.print(strings.Repeat("  ", int(depth)))
}

// mark records a source-map mapping anchored at n's starting location, to
// be resolved the next time generated output for it is appended (spec
// §4.9: "emits a mapping entry for every token boundary that crosses a
// source span").
func (p *printer) mark(n cssast.Node) {
	if p.builder == nil {
		return
	}
	src := n.SourceFile()
	if src == nil {
		return
	}
	line, col := src.LineAndUTF16Column(n.Range().Loc)
	p.builder.AddMapping(p.col, src.PrettyPath, src.Contents, line, col)
}
