package printer

import (
	"strings"

	"github.com/nsass/sass/internal/cssast"
)

// printNode appends one CSS tree node at depth (spec §4.8: "a post-order
// visitor over the CSS tree that appends to a byte buffer").
func (p *printer) printNode(n cssast.Node, depth int32) {
	switch t := n.(type) {
	case *cssast.StyleRule:
		p.printStyleRule(t, depth)
	case *cssast.Declaration:
		p.printDeclaration(t, depth)
	case *cssast.MediaRule:
		p.printMediaRule(t, depth)
	case *cssast.SupportsRule:
		p.printSupportsRule(t, depth)
	case *cssast.AtRule:
		p.printAtRule(t, depth)
	case *cssast.KeyframesRule:
		p.printKeyframesRule(t, depth)
	case *cssast.Import:
		p.printImport(t, depth)
	case *cssast.Comment:
		p.printComment(t, depth)
	}
}

func (p *printer) printChildren(children []cssast.Node, depth int32) {
	for i, c := range children {
		last := i == len(children)-1
		if d, ok := c.(*cssast.Declaration); ok && last && p.minifyWhitespace() {
			p.printDeclarationNoTrailingSemicolon(d, depth)
			continue
		}
		p.printNode(c, depth)
		// Compact separates same-line siblings with a space; compressed
		// never needs one since each child already ends in its own
		// significant delimiter (";" or "}").
		if p.oneLine() && !p.minifyWhitespace() && !last {
			p.print(" ")
		}
	}
}

// openBlock/closeBlock print the "{"/"}" pair and manage the newline
// policy each style needs: "nested"/"expanded" put each declaration on its
// own indented line, "compact" keeps a rule's whole body on one line, and
// "compressed" drops all insignificant whitespace (spec §4.8 "output
// styles").
func (p *printer) openBlock() {
	if p.minifyWhitespace() {
		p.print("{")
		return
	}
	p.print(" {")
	if !p.oneLine() {
		p.newline()
	} else {
		p.print(" ")
	}
}

func (p *printer) closeBlock(depth int32) {
	if p.minifyWhitespace() {
		p.print("}")
		return
	}
	if !p.oneLine() {
		p.indent(depth)
	} else {
		p.print(" ")
	}
	p.print("}")
	p.newline()
}

func (p *printer) printStyleRule(r *cssast.StyleRule, depth int32) {
	if len(r.Selector.Complex) == 0 {
		return
	}
	p.indent(depth)
	p.mark(r)
	p.writeSelectorList(r.Selector, depth)
	p.openBlock()
	p.printChildren(r.Children, depth+1)
	p.closeBlock(depth)
}

func (p *printer) printDeclaration(d *cssast.Declaration, depth int32) {
	p.printDeclarationPrefix(d, depth)
	p.print(";")
	if !p.oneLine() {
		p.newline()
	}
}

// printDeclarationNoTrailingSemicolon drops the semicolon a block's last
// declaration doesn't need under the compressed style, the one place real
// minifiers save a byte that this printer otherwise leaves alone.
func (p *printer) printDeclarationNoTrailingSemicolon(d *cssast.Declaration, depth int32) {
	p.printDeclarationPrefix(d, depth)
}

func (p *printer) printDeclarationPrefix(d *cssast.Declaration, depth int32) {
	p.indent(depth)
	p.mark(d)
	p.print(d.Property)
	if p.minifyWhitespace() {
		p.print(":")
	} else {
		p.print(": ")
	}
	p.print(d.Value)
	if d.Important {
		p.print(" !important")
	}
}

func (p *printer) printMediaRule(r *cssast.MediaRule, depth int32) {
	p.indent(depth)
	p.mark(r)
	p.print("@media")
	if !p.minifyWhitespace() {
		p.print(" ")
	}
	p.writeMediaQueryList(r.Queries)
	p.openBlock()
	p.printChildren(r.Children, depth+1)
	p.closeBlock(depth)
}

func (p *printer) printSupportsRule(r *cssast.SupportsRule, depth int32) {
	p.indent(depth)
	p.mark(r)
	p.print("@supports")
	if !p.minifyWhitespace() {
		p.print(" ")
	}
	p.print(r.Condition)
	p.openBlock()
	p.printChildren(r.Children, depth+1)
	p.closeBlock(depth)
}

func (p *printer) printAtRule(r *cssast.AtRule, depth int32) {
	p.indent(depth)
	p.mark(r)
	p.print(r.Name)
	if r.Prelude != "" {
		p.print(" ")
		p.print(r.Prelude)
	}
	if !r.HasBlock {
		p.print(";")
		if !p.oneLine() {
			p.newline()
		}
		return
	}
	p.openBlock()
	p.printChildren(r.Children, depth+1)
	p.closeBlock(depth)
}

func (p *printer) printKeyframesRule(r *cssast.KeyframesRule, depth int32) {
	p.indent(depth)
	p.mark(r)
	p.print(r.AtKeyword + " ")
	p.print(r.Name)
	p.openBlock()
	for i, blk := range r.Blocks {
		last := i == len(r.Blocks)-1
		p.indent(depth + 1)
		sep := ", "
		if p.minifyWhitespace() {
			sep = ","
		}
		p.print(strings.Join(blk.Selectors, sep))
		p.openBlock()
		p.printChildren(blk.Children, depth+2)
		p.closeBlock(depth + 1)
		if p.oneLine() && !p.minifyWhitespace() && !last {
			p.print(" ")
		}
	}
	p.closeBlock(depth)
}

func (p *printer) printImport(imp *cssast.Import, depth int32) {
	p.indent(depth)
	p.mark(imp)
	p.print("@import")
	if !p.minifyWhitespace() {
		p.print(" ")
	}
	p.writeQuotedOrURL(imp.Target)
	p.print(";")
	if !p.oneLine() {
		p.newline()
	}
}

func (p *printer) printComment(c *cssast.Comment, depth int32) {
	if p.options.Style == Compressed {
		return
	}
	p.indent(depth)
	p.mark(c)
	p.print(c.Text)
	p.newline()
}

// writeQuotedOrURL prints an @import target: bare url(...) passes through
// untouched, everything else is quoted (spec §4.8 "strings").
func (p *printer) writeQuotedOrURL(target string) {
	if strings.HasPrefix(strings.TrimSpace(target), "url(") {
		p.print(target)
		return
	}
	p.print(quoteCSSString(target))
}
