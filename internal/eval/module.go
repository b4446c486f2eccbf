package eval

import (
	gopath "path"
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
	"github.com/nsass/sass/internal/env"
	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/internal/parser"
)

// Importer resolves a Sass module URL to file contents (spec §4.4, and the
// host-pluggable half of spec §6's register_importer). The evaluator owns
// Sass's partial/extension/index resolution rules (resolveCandidates);
// Importer only needs to say whether a literal, fully-qualified path
// exists and hand back its text when it does.
type Importer interface {
	Load(path string) (contents string, ok bool, err error)
}

// resolveCandidates expands one `@use`/`@forward`/`@import` url, relative to
// fromDir, into the ordered list of literal file paths Sass would try: the
// plain name, then its partial form (leading underscore), crossed with the
// `.scss`/`.sass`/`.css` extensions, then the same crossed product inside a
// same-named directory's `index`/`_index` (spec §4.4 "partials and index
// files"). Relative URLs (`./x`, `../x`) only ever resolve against fromDir;
// bare URLs (`x`, `pkg/x`) additionally try every configured load path, in
// order, after fromDir.
func (ev *Evaluator) resolveCandidates(url string, fromDir string) []string {
	bases := []string{fromDir}
	if !strings.HasPrefix(url, "./") && !strings.HasPrefix(url, "../") {
		bases = append(bases, ev.LoadPaths...)
	}

	exts := []string{".scss", ".sass", ".css"}
	var out []string
	for _, base := range bases {
		joined := gopath.Join(base, url)
		dir, name := gopath.Split(joined)
		if name == "" {
			continue
		}
		if gopath.Ext(name) != "" {
			out = append(out, joined)
			continue
		}
		for _, ext := range exts {
			out = append(out, gopath.Join(dir, name+ext))
			out = append(out, gopath.Join(dir, "_"+name+ext))
		}
		for _, ext := range exts {
			out = append(out, gopath.Join(joined, "index"+ext))
			out = append(out, gopath.Join(joined, "_index"+ext))
		}
	}
	return out
}

func (ev *Evaluator) loadFile(url string, fromDir string, loc logger.Range) (path string, contents string, err error) {
	if ev.Importer == nil {
		return "", "", ev.importErrorf(loc, "Can't find stylesheet to import: %q (no importer configured).", url)
	}
	for _, candidate := range ev.resolveCandidates(url, fromDir) {
		text, ok, loadErr := ev.Importer.Load(candidate)
		if loadErr != nil {
			return "", "", ev.importErrorf(loc, "%s", loadErr.Error())
		}
		if ok {
			return candidate, text, nil
		}
	}
	return "", "", ev.importErrorf(loc, "Can't find stylesheet to import: %q", url)
}

func (ev *Evaluator) parseFile(path, contents string) (*ast.Stylesheet, error) {
	if cached, ok := ev.parseCache[path]; ok {
		return cached, nil
	}
	source := &logger.Source{KeyPath: logger.Path{Text: path}, PrettyPath: path, Contents: contents}
	dialect := parser.DialectSCSS
	if strings.HasSuffix(path, ".sass") {
		dialect = parser.DialectSass
	} else if strings.HasSuffix(path, ".css") {
		dialect = parser.DialectCSS
	}
	sheet, err := parser.Parse(source, dialect)
	if err != nil {
		return nil, ev.importErrorf(logger.Range{}, "%s", err.Error())
	}
	ev.parseCache[path] = sheet
	return sheet, nil
}

func currentDir(path string) string {
	if path == "" {
		return "."
	}
	return gopath.Dir(path)
}

// loadModule resolves url to a *env.Module, executing it exactly once
// (spec §4.4: "a module executes at most once per compilation, the first
// time it's @use'd, @forward'ed, or statically @import'ed"). Re-entering a
// module that is still mid-execution reports a cycle.
func (ev *Evaluator) loadModule(url string, fromDir string, loc logger.Range) (*env.Module, error) {
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
	return mod, ev.executeModule(mod)
}

// executeModule runs mod's top-level statements once. Simplification: any
// CSS a `@use`d/`@forward`ed module produces at its own top level (style
// rules not nested inside a mixin/function) is appended directly to the
// compilation's root, in load order -- real Sass instead threads it through
// the importing chain's position, which this module graph doesn't track
// precisely enough to reproduce.
func (ev *Evaluator) executeModule(mod *env.Module) error {
	mod.Executing = true
	ev.moduleStack = append(ev.moduleStack, mod)
	defer func() {
		ev.moduleStack = ev.moduleStack[:len(ev.moduleStack)-1]
	}()

	_, _, err := ev.execStmts(mod.Stylesheet.Body, mod.Root, &ev.Root.Children, &ev.Root.Children, nil, cssast.MediaQueryList{})
	if err != nil {
		return err
	}
	mod.Executing = false
	mod.Executed = true
	mod.Exports.CollectFromRoot(mod.Root)
	return nil
}
