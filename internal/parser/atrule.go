package parser

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/logger"
)

func (p *Parser) parseAtRule(start logger.Loc) ast.Stmt {
	p.scan.Read() // '@'
	name := "@" + p.scan.ScanIdent()
	p.checkPlainCSSRestriction(start, name)

	switch name {
	case "@if":
		return p.parseIf(start)
	case "@each":
		return p.parseEach(start)
	case "@for":
		return p.parseFor(start)
	case "@while":
		return p.parseWhile(start)
	case "@at-root":
		return p.parseAtRoot(start)
	case "@media":
		return p.parseMedia(start)
	case "@supports":
		return p.parseSupports(start)
	case "@mixin":
		return p.parseMixinDecl(start)
	case "@include":
		return p.parseInclude(start)
	case "@content":
		return p.parseContent(start)
	case "@function":
		return p.parseFunctionDecl(start)
	case "@return":
		return p.parseReturn(start)
	case "@use":
		return p.parseUse(start)
	case "@forward":
		return p.parseForward(start)
	case "@import":
		return p.parseImport(start)
	case "@extend":
		return p.parseExtend(start)
	case "@error":
		return p.parseDiagnostic(start, func(v ast.Expr, sb ast.StmtBase) ast.Stmt { return &ast.SError{StmtBase: sb, Value: v} })
	case "@warn":
		return p.parseDiagnostic(start, func(v ast.Expr, sb ast.StmtBase) ast.Stmt { return &ast.SWarn{StmtBase: sb, Value: v} })
	case "@debug":
		return p.parseDiagnostic(start, func(v ast.Expr, sb ast.StmtBase) ast.Stmt { return &ast.SDebug{StmtBase: sb, Value: v} })
	case "@keyframes", "@-webkit-keyframes", "@-moz-keyframes", "@-o-keyframes":
		return p.parseKeyframes(start, name)
	case "@charset":
		return p.parseGenericAtRule(start, name, false)
	default:
		return p.parseGenericAtRule(start, name, true)
	}
}

func (p *Parser) parseIf(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	cond := p.ParseExpr()
	indent := p.scan.Column()
	p.pushFrame()
	body := p.parseChildBlock(indent)
	p.popFrame()
	clauses := []ast.IfClause{{Cond: cond, Body: body}}

	for {
		save := p.scan.State()
		p.skipInlineSpaceAcrossBraceOrLine()
		if !p.scan.PeekString("@else") {
			p.scan.Backtrack(save)
			break
		}
		p.scan.Scan("@else")
		p.skipInlineSpace()
		var elseCond ast.Expr
		if p.scan.PeekString("if") {
			p.scan.Scan("if")
			p.skipInlineSpace()
			elseCond = p.ParseExpr()
		}
		eIndent := p.scan.Column()
		p.pushFrame()
		eBody := p.parseChildBlock(eIndent)
		p.popFrame()
		clauses = append(clauses, ast.IfClause{Cond: elseCond, Body: eBody})
		if elseCond == nil {
			break
		}
	}
	return &ast.SIf{StmtBase: sb(p, start), Clauses: clauses}
}

// skipInlineSpaceAcrossBraceOrLine implements the "@else continuation"
// dialect hook (spec §4.2): in every dialect it skips all whitespace, any
// number of newlines included, before the caller looks for @else. In the
// Sass dialect it does not compare the @else line's indentation with the
// @if header's.
func (p *Parser) skipInlineSpaceAcrossBraceOrLine() {
	p.scan.SkipWhitespace()
}

func (p *Parser) parseEach(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	var vars []string
	for {
		if p.scan.CodePoint() != '$' {
			p.fail(p.scan.Loc(), "expected variable in @each")
		}
		p.scan.Read()
		vars = append(vars, p.scan.ScanIdent())
		p.skipInlineSpace()
		if p.scan.CodePoint() == ',' {
			p.scan.Read()
			p.skipInlineSpace()
			continue
		}
		break
	}
	if !p.scan.Scan("in") {
		p.fail(p.scan.Loc(), "expected 'in' in @each")
	}
	p.skipInlineSpace()
	list := p.ParseExpr()
	indent := p.scan.Column()
	p.pushFrame()
	for _, v := range vars {
		p.declareVar(v)
	}
	body := p.parseChildBlock(indent)
	p.popFrame()
	return &ast.SEach{StmtBase: sb(p, start), Vars: vars, List: list, Body: body}
}

func (p *Parser) parseFor(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	if p.scan.CodePoint() != '$' {
		p.fail(p.scan.Loc(), "expected variable in @for")
	}
	p.scan.Read()
	name := p.scan.ScanIdent()
	p.skipInlineSpace()
	if !p.scan.Scan("from") {
		p.fail(p.scan.Loc(), "expected 'from' in @for")
	}
	p.skipInlineSpace()
	from := p.parseAdditive()
	p.skipInlineSpace()
	inclusive := true
	if p.scan.Scan("through") {
		inclusive = true
	} else if p.scan.Scan("to") {
		inclusive = false
	} else {
		p.fail(p.scan.Loc(), "expected 'to' or 'through' in @for")
	}
	p.skipInlineSpace()
	to := p.parseAdditive()
	indent := p.scan.Column()
	p.pushFrame()
	p.declareVar(name)
	body := p.parseChildBlock(indent)
	p.popFrame()
	return &ast.SFor{StmtBase: sb(p, start), Var: name, From: from, To: to, Inclusive: inclusive, Body: body}
}

func (p *Parser) parseWhile(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	cond := p.ParseExpr()
	indent := p.scan.Column()
	p.pushFrame()
	body := p.parseChildBlock(indent)
	p.popFrame()
	return &ast.SWhile{StmtBase: sb(p, start), Cond: cond, Body: body}
}

func (p *Parser) parseAtRoot(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	query := ""
	if p.scan.CodePoint() == '(' {
		s := p.scan.Loc()
		depth := 0
		for {
			cp := p.scan.CodePoint()
			if cp == eofRune {
				break
			}
			if cp == '(' {
				depth++
			}
			if cp == ')' {
				depth--
				if depth == 0 {
					p.scan.Read()
					break
				}
			}
			p.scan.Read()
		}
		query = p.scan.Source.Contents[s.Start:p.scan.Pos()]
		p.skipInlineSpace()
	}
	indent := p.scan.Column()
	body := p.parseChildBlock(indent)
	return &ast.SAtRoot{StmtBase: sb(p, start), Query: query, Body: body}
}

func (p *Parser) parseMedia(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	query := p.parseInterpolatedTextUntil("{")
	indent := p.scan.Column()
	body := p.parseChildBlock(indent)
	return &ast.SMedia{StmtBase: sb(p, start), Query: query, Body: body}
}

func (p *Parser) parseSupports(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	condStart := p.scan.Loc()
	text := p.parseInterpolatedTextUntil("{")
	cond := &ast.ESupportsCondition{ExprBase: ast.ExprBase{Loc: p.scan.RangeFrom(condStart)}, Text: joinStringParts(text)}
	indent := p.scan.Column()
	body := p.parseChildBlock(indent)
	return &ast.SSupports{StmtBase: sb(p, start), Condition: cond, Body: body}
}

func joinStringParts(parts []ast.StringPart) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// parseInterpolatedTextUntil reads raw text (tracking interpolation) up to
// (not including) any byte in stopAt, trimming trailing whitespace.
func (p *Parser) parseInterpolatedTextUntil(stopAt string) []ast.StringPart {
	var parts []ast.StringPart
	for {
		text, hit := p.scan.ReadUnquotedInterpolatedChunk(stopAt)
		if text != "" {
			parts = append(parts, ast.StringPart{Text: strings.TrimRight(text, " \t")})
		}
		if hit {
			parts = append(parts, ast.StringPart{Expr: p.parseInterpolationBody()})
			continue
		}
		// A brace/paren-delimited dialect treats a bare newline as
		// insignificant whitespace, so a prelude (e.g. a multi-line @media
		// query) may continue onto the next line; only stop for real when the
		// stop set or EOF was actually hit.
		if p.requiresBraces() && !p.scan.AtEOF() && !strings.ContainsRune(stopAt, p.scan.CodePoint()) {
			p.scan.SkipWhitespace()
			continue
		}
		return parts
	}
}

func (p *Parser) parseMixinDecl(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	name := p.scan.ScanIdent()
	p.pushFrame()
	var params []ast.Param
	if p.scan.CodePoint() == '(' {
		params = p.parseParamList()
	}
	for _, pa := range params {
		p.declareVar(pa.Name)
	}
	indent := p.scan.Column()
	body := p.parseChildBlock(indent)
	p.popFrame()
	p.declareMixin(name)
	return &ast.SMixinDecl{StmtBase: sb(p, start), Name: name, Params: params, Body: body, AcceptsContent: true}
}

func (p *Parser) parseParamList() []ast.Param {
	p.scan.Read() // '('
	p.skipInlineSpace()
	var params []ast.Param
	for p.scan.CodePoint() != ')' {
		if p.scan.CodePoint() != '$' {
			p.fail(p.scan.Loc(), "expected parameter")
		}
		p.scan.Read()
		name := p.scan.ScanIdent()
		p.skipInlineSpace()
		param := ast.Param{Name: name}
		if p.scan.PeekString("...") {
			p.scan.Scan("...")
			param.Variadic = true
		} else if p.scan.CodePoint() == ':' {
			p.scan.Read()
			p.skipInlineSpace()
			param.Default = p.parseSpaceList()
		}
		params = append(params, param)
		p.skipInlineSpace()
		if p.scan.CodePoint() == ',' {
			p.scan.Read()
			p.skipInlineSpace()
			continue
		}
		break
	}
	p.skipInlineSpace()
	if p.scan.CodePoint() != ')' {
		p.fail(p.scan.Loc(), "expected ')'")
	}
	p.scan.Read()
	return params
}

func (p *Parser) parseInclude(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	namespace, name := p.parsePossiblyNamespacedName()
	var args *ast.ArgInvocation
	if p.scan.CodePoint() == '(' {
		args = p.parseArgInvocation()
	}
	p.skipInlineSpace()
	var contentParams []ast.Param
	if p.scan.Scan("using") {
		p.skipInlineSpace()
		contentParams = p.parseParamList()
		p.skipInlineSpace()
	}
	var content []ast.Stmt
	// Brace dialects only attach a content block when '{' is actually there
	// (a bare `@include foo;` is common). The Sass dialect has no such
	// marker, so — as with parseIf's child block — we always attempt one and
	// let parseChildBlock come back empty when nothing more-indented follows.
	hasBlock := !p.requiresBraces() || p.scan.CodePoint() == '{'
	if hasBlock {
		p.pushFrame()
		for _, cp := range contentParams {
			p.declareVar(cp.Name)
		}
		indent := p.scan.Column()
		content = p.parseChildBlock(indent)
		p.popFrame()
	}
	return &ast.SInclude{StmtBase: sb(p, start), Namespace: namespace, Name: name, Args: args, ContentParams: contentParams, Content: content}
}

func (p *Parser) parsePossiblyNamespacedName() (namespace, name string) {
	first := p.scan.ScanIdent()
	if p.scan.CodePoint() == '.' {
		p.scan.Read()
		return first, p.scan.ScanIdent()
	}
	return "", first
}

func (p *Parser) parseContent(start logger.Loc) ast.Stmt {
	var args *ast.ArgInvocation
	if p.scan.CodePoint() == '(' {
		args = p.parseArgInvocation()
	}
	return &ast.SContent{StmtBase: sb(p, start), Args: args}
}

func (p *Parser) parseFunctionDecl(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	name := p.scan.ScanIdent()
	p.pushFrame()
	var params []ast.Param
	if p.scan.CodePoint() == '(' {
		params = p.parseParamList()
	}
	for _, pa := range params {
		p.declareVar(pa.Name)
	}
	indent := p.scan.Column()
	body := p.parseChildBlock(indent)
	p.popFrame()
	p.declareFunc(name)
	return &ast.SFunctionDecl{StmtBase: sb(p, start), Name: name, Params: params, Body: body}
}

func (p *Parser) parseReturn(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	value := p.ParseExpr()
	return &ast.SReturn{StmtBase: sb(p, start), Value: value}
}

func (p *Parser) parseUse(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	url := p.parseQuotedURL()
	p.skipInlineSpace()
	ns := ""
	noAlias := false
	if p.scan.Scan("as") {
		p.skipInlineSpace()
		if p.scan.CodePoint() == '*' {
			p.scan.Read()
			noAlias = true
		} else {
			ns = p.scan.ScanIdent()
		}
		p.skipInlineSpace()
	}
	var cfg []ast.ConfigVar
	if p.scan.Scan("with") {
		p.skipInlineSpace()
		cfg = p.parseConfigList()
	}
	return &ast.SUse{StmtBase: sb(p, start), URL: url, Namespace: ns, NoAlias: noAlias, Config: cfg}
}

func (p *Parser) parseConfigList() []ast.ConfigVar {
	p.scan.Read() // '('
	p.skipInlineSpace()
	var cfg []ast.ConfigVar
	for p.scan.CodePoint() != ')' {
		if p.scan.CodePoint() != '$' {
			p.fail(p.scan.Loc(), "expected $variable in with-configuration")
		}
		p.scan.Read()
		name := p.scan.ScanIdent()
		p.skipInlineSpace()
		if p.scan.CodePoint() != ':' {
			p.fail(p.scan.Loc(), "expected ':' in with-configuration")
		}
		p.scan.Read()
		p.skipInlineSpace()
		val := p.parseSpaceList()
		cfg = append(cfg, ast.ConfigVar{Name: name, Value: val})
		p.skipInlineSpace()
		if p.scan.CodePoint() == ',' {
			p.scan.Read()
			p.skipInlineSpace()
			continue
		}
		break
	}
	p.skipInlineSpace()
	if p.scan.CodePoint() != ')' {
		p.fail(p.scan.Loc(), "expected ')'")
	}
	p.scan.Read()
	return cfg
}

func (p *Parser) parseForward(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	url := p.parseQuotedURL()
	p.skipInlineSpace()
	prefix := ""
	if p.scan.Scan("as") {
		p.skipInlineSpace()
		prefix = p.scan.ScanIdent()
		p.skipInlineSpace()
		p.scan.Scan("*")
		p.skipInlineSpace()
	}
	var show, hide []string
	if p.scan.Scan("show") {
		p.skipInlineSpace()
		show = p.parseNameList()
	} else if p.scan.Scan("hide") {
		p.skipInlineSpace()
		hide = p.parseNameList()
	}
	p.skipInlineSpace()
	var cfg []ast.ConfigVar
	if p.scan.Scan("with") {
		p.skipInlineSpace()
		cfg = p.parseConfigList()
	}
	return &ast.SForward{StmtBase: sb(p, start), URL: url, Prefix: prefix, Show: show, Hide: hide, Config: cfg}
}

func (p *Parser) parseNameList() []string {
	var names []string
	for {
		if p.scan.CodePoint() == '$' {
			p.scan.Read()
		}
		names = append(names, p.scan.ScanIdent())
		p.skipInlineSpace()
		if p.scan.CodePoint() == ',' {
			p.scan.Read()
			p.skipInlineSpace()
			continue
		}
		break
	}
	return names
}

func (p *Parser) parseImport(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	var targets []ast.ImportTarget
	for {
		url := p.parseImportURL()
		targets = append(targets, url)
		p.skipInlineSpace()
		if p.scan.CodePoint() == ',' {
			p.scan.Read()
			p.skipInlineSpace()
			continue
		}
		break
	}
	return &ast.SImport{StmtBase: sb(p, start), Targets: targets}
}

func (p *Parser) parseImportURL() ast.ImportTarget {
	if p.scan.CodePoint() == '"' || p.scan.CodePoint() == '\'' {
		return ast.ImportTarget{URL: p.parseQuotedURL()}
	}
	if p.scan.PeekString("url(") {
		start := p.scan.Pos()
		p.scan.Scan("url(")
		for p.scan.CodePoint() != ')' && p.scan.CodePoint() != eofRune {
			p.scan.Read()
		}
		p.scan.Read()
		return ast.ImportTarget{URL: p.scan.Source.Contents[start:p.scan.Pos()], Static: true}
	}
	if p.requiresQuotedImportURL() {
		p.fail(p.scan.Loc(), "expected quoted URL in @import")
	}
	// Sass dialect: a bare URL is legal.
	start := p.scan.Pos()
	for p.scan.CodePoint() != ',' && p.scan.CodePoint() != ';' && p.scan.CodePoint() != eofRune && !isNewlineRune(p.scan.CodePoint()) {
		p.scan.Read()
	}
	return ast.ImportTarget{URL: strings.TrimSpace(p.scan.Source.Contents[start:p.scan.Pos()])}
}

func isNewlineRune(cp rune) bool { return cp == '\n' || cp == '\r' }

func (p *Parser) parseQuotedURL() string {
	quote := p.scan.CodePoint()
	if quote != '"' && quote != '\'' {
		p.fail(p.scan.Loc(), "expected quoted string")
	}
	p.scan.Read()
	start := p.scan.Pos()
	for p.scan.CodePoint() != quote && p.scan.CodePoint() != eofRune {
		p.scan.Read()
	}
	text := p.scan.Source.Contents[start:p.scan.Pos()]
	p.scan.Read()
	return text
}

func (p *Parser) parseExtend(start logger.Loc) ast.Stmt {
	p.skipInlineSpace()
	sel := p.parseInterpolatedTextUntil(";\n")
	optional := false
	text := joinStringParts(sel)
	if strings.HasSuffix(strings.TrimSpace(text), "!optional") {
		optional = true
		trimmed := strings.TrimSuffix(strings.TrimSpace(text), "!optional")
		sel = []ast.StringPart{{Text: strings.TrimSpace(trimmed)}}
	}
	return &ast.SExtend{StmtBase: sb(p, start), Selector: sel, Optional: optional}
}

func (p *Parser) parseDiagnostic(start logger.Loc, build func(ast.Expr, ast.StmtBase) ast.Stmt) ast.Stmt {
	p.skipInlineSpace()
	value := p.ParseExpr()
	return build(value, sb(p, start))
}

func (p *Parser) parseKeyframes(start logger.Loc, atKeyword string) ast.Stmt {
	p.skipInlineSpace()
	name := p.parseInterpolatedTextUntil("{")
	indent := p.scan.Column()
	_ = indent
	p.skipInlineSpace()
	if err := p.scan.Expect("{"); err != nil {
		p.fail(p.scan.Loc(), "expected '{' after @keyframes name")
	}
	var blocks []ast.KeyframeBlock
	for {
		p.skipStatementSeparators()
		if p.scan.CodePoint() == '}' {
			break
		}
		selectors := p.parseKeyframeSelectorList()
		bIndent := p.scan.Column()
		body := p.parseChildBlock(bIndent)
		blocks = append(blocks, ast.KeyframeBlock{Selectors: selectors, Body: body})
	}
	p.scan.Read() // '}'
	return &ast.SKeyframesRule{StmtBase: sb(p, start), AtKeyword: atKeyword, Name: name, Blocks: blocks}
}

func (p *Parser) parseKeyframeSelectorList() []string {
	var sels []string
	for {
		p.skipInlineSpace()
		start := p.scan.Pos()
		for p.scan.CodePoint() != ',' && p.scan.CodePoint() != '{' && p.scan.CodePoint() != eofRune {
			p.scan.Read()
		}
		sels = append(sels, strings.TrimSpace(p.scan.Source.Contents[start:p.scan.Pos()]))
		if p.scan.CodePoint() == ',' {
			p.scan.Read()
			continue
		}
		break
	}
	return sels
}

// parseGenericAtRule handles any at-rule the grammar doesn't specially
// recognize (spec §3's "minimal syntax" catch-all, mirroring the teacher's
// RUnknownAt). hasBlockIfBrace controls whether a following "{" starts a
// child block or a bare ";" ends the rule (for rules like @charset that
// never take a block).
func (p *Parser) parseGenericAtRule(start logger.Loc, name string, hasBlockIfBrace bool) ast.Stmt {
	p.skipInlineSpace()
	prelude := p.parseInterpolatedTextUntil("{;")
	if hasBlockIfBrace && p.scan.CodePoint() == '{' {
		indent := p.scan.Column()
		body := p.parseChildBlock(indent)
		return &ast.SAtRule{StmtBase: sb(p, start), Name: name, Prelude: prelude, Body: body, HasBlock: true}
	}
	return &ast.SAtRule{StmtBase: sb(p, start), Name: name, Prelude: prelude, HasBlock: false}
}
