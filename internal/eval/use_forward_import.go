package eval

import (
	gopath "path"
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/logger"
)

// loadModuleConfigured is loadModule plus `@use`/`@forward ... with (...)`
// config injection: config is evaluated in configFrame (the using file's own
// frame, per spec §4.4) and bound into the target module's fresh root frame
// with DeclareLocal *before* its top-level statements run, so a `!default`
// assignment inside the target sees the override already in place. Config
// is only honored the first time a module loads; a second `@use ... with`
// of an already-loaded module is accepted but its config is silently
// ignored, a documented simplification (real Sass instead rejects it as a
// compile error).
func (ev *Evaluator) loadModuleConfigured(url, fromDir string, loc logger.Range, config []ast.ConfigVar, configFrame *env.Frame) (*env.Module, error) {
	path, contents, err := ev.loadFile(url, fromDir, loc)
	if err != nil {
		return nil, err
	}
	if mod, ok := ev.Graph.Get(path); ok {
		if mod.Executing {
			return nil, ev.importErrorf(loc, "Module loop: %q is already being loaded.", url)
		}
		return mod, nil
	}

	sheet, err := ev.parseFile(path, contents)
	if err != nil {
		return nil, err
	}
	mod := env.NewModule(path, sheet)
	ev.Graph.Put(path, mod)

	for _, cv := range config {
		v, err := ev.evalExpr(cv.Value, configFrame)
		if err != nil {
			return nil, err
		}
		mod.Root.DeclareLocal(cv.Name, v)
	}

	return mod, ev.executeModule(mod)
}

func moduleNamespace(url string) string {
	base := gopath.Base(url)
	if ext := gopath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.TrimPrefix(base, "_")
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// execUse implements `@use` (spec §4.4): loads the target module at most
// once, then either namespaces its exports under Module.Uses (the common
// case) or, for `@use ... as *`, flattens them directly into the current
// module's root frame -- a pragmatic simplification of Sass's anonymous
// "global" namespace rather than tracking a separate unprefixed-export set.
func (ev *Evaluator) execUse(s *ast.SUse, frame *env.Frame) error {
	cur := ev.currentModule()
	fromDir := currentDir(cur.Path)
	mod, err := ev.loadModuleConfigured(s.URL, fromDir, s.Range(), s.Config, frame)
	if err != nil {
		return err
	}

	if s.NoAlias || s.Namespace == "*" {
		for name, v := range mod.Exports.Vars {
			cur.Root.DeclareLocal(name, v)
		}
		for name, fn := range mod.Exports.Funcs {
			cur.Root.DeclareFunc(name, fn)
		}
		for name, mx := range mod.Exports.Mixins {
			cur.Root.DeclareMixin(name, mx)
		}
		return nil
	}

	ns := s.Namespace
	if ns == "" {
		ns = moduleNamespace(s.URL)
	}
	cur.Uses[ns] = mod.Exports
	return nil
}

// execForward implements `@forward` (spec §4.4): loads the target module,
// then re-exports its members through the current module's own Exports
// (not its Root frame -- forwarded names are visible to whoever @uses this
// module, not to this module's own unqualified code), filtered/renamed per
// the prefix/show/hide clause.
func (ev *Evaluator) execForward(s *ast.SForward, frame *env.Frame) error {
	cur := ev.currentModule()
	fromDir := currentDir(cur.Path)
	mod, err := ev.loadModuleConfigured(s.URL, fromDir, s.Range(), s.Config, frame)
	if err != nil {
		return err
	}
	filt := env.ForwardFilter{Prefix: s.Prefix}
	if len(s.Show) > 0 {
		filt.Show = toSet(s.Show)
	}
	if len(s.Hide) > 0 {
		filt.Hide = toSet(s.Hide)
	}
	cur.Exports.MergeForwarded(mod.Exports, filt)
	return nil
}

// execImport implements legacy `@import` (spec §4.4): static/URL-form
// targets pass through untouched; stylesheet targets are resolved with the
// same file-finding rules as `@use` but, unlike `@use`, are re-parsed-once/
// re-executed-every-time against the *current* frame rather than a fresh
// module frame, so declarations they make land directly in the importing
// file's scope -- matching real Sass's legacy textual-inclusion semantics.
func (ev *Evaluator) execImport(s *ast.SImport, frame *env.Frame, sink *[]cssast.Node, hoist *[]cssast.Node, selector *ast.SelectorList, mediaCtx cssast.MediaQueryList) error {
	for _, t := range s.Targets {
		if t.Static {
			imp := &cssast.Import{Target: t.URL}
			imp.Loc = s.Range()
			imp.Src = ev.currentSource()
			*sink = append(*sink, imp)
			continue
		}
		fromDir := currentDir(ev.currentModule().Path)
		path, contents, err := ev.loadFile(t.URL, fromDir, s.Range())
		if err != nil {
			return err
		}
		sheet, err := ev.parseFile(path, contents)
		if err != nil {
			return err
		}
		if _, _, err := ev.execStmts(sheet.Body, frame, sink, hoist, selector, mediaCtx); err != nil {
			return err
		}
	}
	return nil
}
