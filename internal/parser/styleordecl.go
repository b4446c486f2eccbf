package parser

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/logger"
)

// parseStyleRuleOrDeclaration resolves the one real grammar ambiguity in
// CSS/Sass (spec §4.2): a statement that begins with plain text can be
// either a style rule (`a:hover { ... }`) or a property declaration
// (`color: red;`). Both share the same lead-in — an identifier, possibly
// interpolated — so the decision is made by scanning that lead-in once and
// inspecting what immediately follows it, the same ambiguity Sass's own
// documentation tells authors to avoid by adding a space after the colon
// in a declaration.
func (p *Parser) parseStyleRuleOrDeclaration(start logger.Loc) ast.Stmt {
	declStart := p.scan.State()
	lead := p.scanDeclarationLead()

	if len(lead) > 0 && p.scan.CodePoint() == ':' && p.scan.Peek(1) != ':' {
		afterColon := p.scan.State()
		p.scan.Read() // ':'
		next := p.scan.CodePoint()
		if isDeclarationValueStart(next) {
			p.scan.Backtrack(declStart)
			return p.finishDeclaration(start)
		}
		p.scan.Backtrack(afterColon)
	}

	p.scan.Backtrack(declStart)
	return p.finishStyleRule(start)
}

func isDeclarationValueStart(next rune) bool {
	switch next {
	case eofRune, ' ', '\t', '\n', '\r', '\f', '{', ';', '}', '$', '#', '(', '"', '\'', '-', '+':
		return true
	}
	return isDigit(next)
}

func isDigit(cp rune) bool { return cp >= '0' && cp <= '9' }

// scanDeclarationLead scans a candidate property-name lead: identifier
// characters and interpolation, stopping at the first character that
// cannot appear in a bare property name (selector punctuation, ':', '{',
// ';', or whitespace). It only needs to report whether the lead is
// non-empty; scanPropertyNameParts redoes the real scan once the
// statement is confirmed to be a declaration. The scanner position it
// leaves behind is never relied on: the caller always backtracks to the
// statement start before proceeding either way.
func (p *Parser) scanDeclarationLead() string {
	var b strings.Builder
	for {
		cp := p.scan.CodePoint()
		if cp == '#' && p.scan.Peek(1) == '{' {
			p.parseInterpolationBody() // discarded; only used to look past it
			b.WriteByte('#')
			continue
		}
		if isDeclIdentChar(cp) {
			b.WriteRune(p.scan.Read())
			continue
		}
		break
	}
	return b.String()
}

func isDeclIdentChar(cp rune) bool {
	return cp == '_' || cp == '-' || (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z') || (cp >= '0' && cp <= '9') || cp >= 0x80
}

// finishDeclaration parses a `property: value [!important] [{ nested }]`
// statement. Called with the scanner positioned at the statement's first
// character (the caller backtracks before calling).
func (p *Parser) finishDeclaration(start logger.Loc) ast.Stmt {
	propParts := p.scanPropertyNameParts()
	p.skipInlineSpace()
	if p.scan.CodePoint() != ':' {
		p.fail(p.scan.Loc(), "expected ':'")
	}
	p.scan.Read()
	p.skipInlineSpace()

	decl := &ast.SDeclaration{Property: propParts}

	if p.scan.CodePoint() == '{' {
		indent := p.scan.Column()
		decl.Body = p.parseChildBlock(indent)
		decl.StmtBase = sb(p, start)
		return decl
	}

	decl.Value = p.ParseExpr()
	p.skipInlineSpace()
	if p.scan.CodePoint() == '!' {
		save := p.scan.State()
		p.scan.Read()
		word := p.scan.ScanIdent()
		if strings.EqualFold(word, "important") {
			decl.Important = true
		} else {
			p.scan.Backtrack(save)
		}
	}
	p.skipInlineSpace()
	if p.requiresBraces() && p.scan.CodePoint() == '{' {
		indent := p.scan.Column()
		decl.Body = p.parseChildBlock(indent)
	}
	decl.StmtBase = sb(p, start)
	return decl
}

// scanPropertyNameParts consumes a declaration's property name, which may
// be interpolated (`#{$prop}-color`), up to (not including) the colon.
func (p *Parser) scanPropertyNameParts() []ast.StringPart {
	var parts []ast.StringPart
	var text strings.Builder
	for {
		cp := p.scan.CodePoint()
		if cp == '#' && p.scan.Peek(1) == '{' {
			if text.Len() > 0 {
				parts = append(parts, ast.StringPart{Text: text.String()})
				text.Reset()
			}
			parts = append(parts, ast.StringPart{Expr: p.parseInterpolationBody()})
			continue
		}
		if cp == ':' || cp == eofRune {
			break
		}
		if cp == ' ' || cp == '\t' || cp == '\n' || cp == '\r' || cp == '\f' {
			break
		}
		text.WriteRune(p.scan.Read())
	}
	if text.Len() > 0 {
		parts = append(parts, ast.StringPart{Text: text.String()})
	}
	return parts
}

// finishStyleRule parses a selector header (raw interpolation-aware text,
// resolved into an ast.SelectorList during evaluation, since `&` expansion
// depends on the enclosing runtime selector) and its child block.
func (p *Parser) finishStyleRule(start logger.Loc) ast.Stmt {
	selector := p.parseInterpolatedTextUntil("{;}")
	indent := p.scan.Column()
	body := p.parseChildBlock(indent)
	return &ast.SStyleRule{StmtBase: sb(p, start), Selector: selector, Body: body}
}
