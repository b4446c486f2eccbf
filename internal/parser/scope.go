package parser

// parseFrame is the parser's static mirror of an internal/env.Frame (spec
// §4.4): a name-to-slot table built as declarations are parsed, so that
// variable/function/mixin references can be resolved to a (frame-depth,
// slot-index) pair wherever the binding is statically visible. These pairs
// are recorded on the AST only: the evaluator (internal/env) resolves every
// name by lookup and does not read them.
type parseFrame struct {
	vars  map[string]int
	funcs map[string]int
	mixins map[string]int
}

func newParseFrame() *parseFrame {
	return &parseFrame{vars: map[string]int{}, funcs: map[string]int{}, mixins: map[string]int{}}
}

func (p *Parser) pushFrame() {
	p.frames = append(p.frames, newParseFrame())
}

func (p *Parser) popFrame() {
	p.frames = p.frames[:len(p.frames)-1]
}

func (p *Parser) current() *parseFrame {
	return p.frames[len(p.frames)-1]
}

// declareVar registers $name in the current frame and returns its slot
// index; redeclaring the same name in the same frame reuses its slot
// (Sass allows reassigning a variable in the same scope).
func (p *Parser) declareVar(name string) int {
	f := p.current()
	if idx, ok := f.vars[name]; ok {
		return idx
	}
	idx := len(f.vars)
	f.vars[name] = idx
	return idx
}

func (p *Parser) declareFunc(name string) int {
	f := p.current()
	if idx, ok := f.funcs[name]; ok {
		return idx
	}
	idx := len(f.funcs)
	f.funcs[name] = idx
	return idx
}

func (p *Parser) declareMixin(name string) int {
	f := p.current()
	if idx, ok := f.mixins[name]; ok {
		return idx
	}
	idx := len(f.mixins)
	f.mixins[name] = idx
	return idx
}

// resolveVar walks the frame stack from innermost outward, returning
// (frameDepth, slotIndex) counted from the current frame, or (-1, -1) if no
// enclosing frame has declared the name — meaning the reference must fall
// back to dynamic (name-keyed) lookup at runtime (spec §4.4), which is
// always correct for module-namespaced references (`ns.$foo`) since those
// cross a module boundary the static frame stack doesn't model.
func (p *Parser) resolveVar(name string) (depth, slot int) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if idx, ok := p.frames[i].vars[name]; ok {
			return len(p.frames) - 1 - i, idx
		}
	}
	return -1, -1
}
