// Package sass is the library API spec §6 describes, abstracted from any
// one host language down to a handle-style Go type: NewCompiler returns a
// *Compiler, and SetEntryPoint/AddIncludePath/SetOption/RegisterImporter/
// RegisterHeader/RegisterFunction configure it before a single Execute
// call drives the parse -> evaluate -> extend -> prune -> print pipeline
// (internal/parser, internal/eval, internal/extend, internal/prune,
// internal/printer) and leaves CSS/SourceMap/Err to read the result back
// out, mirroring the teacher's pkg/api wrapping its own internal bundler.
package sass

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/nsass/sass/internal/eval"
	"github.com/nsass/sass/internal/extend"
	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/internal/parser"
	"github.com/nsass/sass/internal/printer"
	"github.com/nsass/sass/internal/prune"
	"github.com/nsass/sass/internal/value"
)

// entryKind selects which of spec §6's three `source_spec` shapes
// SetEntryPoint was given.
type entryKind uint8

const (
	entryFile entryKind = iota
	entryStdinLiteral
	entryContent
)

type entryPoint struct {
	kind    entryKind
	path    string
	content string
}

// FunctionCallback is a host-registered Sass function (spec §6
// register_function). Scope decision: the callback only ever receives the
// resolved positional argument values; the signature string's parameter
// names and default-value expressions are accepted for documentation and
// arity only (Compiler.RegisterFunction extracts the function's bare name
// from it) -- named-argument binding for host-registered functions is not
// implemented, unlike `@function`-declared Sass functions which do support
// it via internal/eval's own parameter binder.
type FunctionCallback func(args []value.Value) (value.Value, error)

// Compiler is one compilation (spec §5: "one Evaluator per execute() call,
// never reused"). The zero value is not usable; use NewCompiler.
type Compiler struct {
	entry        entryPoint
	includePaths []string
	options      Options

	importers *multiImporter
	headers   *multiImporter
	functions map[string]eval.BuiltinFn

	css       []byte
	sourceMap []byte
	err       *CompileError
	warnings  []logger.Msg
}

// NewCompiler makes a compiler handle (spec §6 make_compiler).
func NewCompiler() *Compiler {
	return &Compiler{
		options:      DefaultOptions(),
		importers:    &multiImporter{},
		headers:      &multiImporter{},
		functions:    make(map[string]eval.BuiltinFn),
		includePaths: loadSassPathEnv(),
	}
}

// loadSassPathEnv seeds the default include-path list from SASS_PATH
// (spec §6 "Environment variables").
func loadSassPathEnv() []string {
	raw := os.Getenv("SASS_PATH")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, string(os.PathListSeparator))
}

// SetEntryPointFile configures a `(file path)` entry point.
func (c *Compiler) SetEntryPointFile(path string) {
	c.entry = entryPoint{kind: entryFile, path: path}
}

// SetEntryPointStdin configures a `(stdin-literal path content)` entry
// point: content is already in hand, but path still supplies the dialect
// (by extension) and the pretty path used in diagnostics/source maps.
func (c *Compiler) SetEntryPointStdin(path, content string) {
	c.entry = entryPoint{kind: entryStdinLiteral, path: path, content: content}
}

// SetEntryPointContent configures a `(content blob imp-path)` entry point:
// raw content with no real path at all. impPath may be empty, in which
// case Execute synthesizes one with google/uuid so two such compilations
// in the same process never collide in a source map's "sources" array.
func (c *Compiler) SetEntryPointContent(content, impPath string) {
	c.entry = entryPoint{kind: entryContent, path: impPath, content: content}
}

// AddIncludePath adds dir to the list of directories bare `@use`/`@forward`/
// `@import` URLs are resolved against, after the importing file's own
// directory (spec §4.4).
func (c *Compiler) AddIncludePath(dir string) {
	c.includePaths = append(c.includePaths, dir)
}

// SetOption implements spec §6's key/value option setter over the typed
// Options struct, for hosts that want the string-keyed shape literally.
// Go callers may instead set Options fields directly via Compiler.Options.
func (c *Compiler) SetOption(key string, val interface{}) error {
	switch key {
	case "output-style":
		c.options.OutputStyle, _ = val.(string)
	case "precision":
		switch v := val.(type) {
		case int:
			c.options.Precision = v
		case int32:
			c.options.Precision = int(v)
		case int64:
			c.options.Precision = int(v)
		}
	case "source-map-mode":
		c.options.SourceMapMode, _ = val.(string)
	case "source-map-path":
		c.options.SourceMapPath, _ = val.(string)
	case "source-map-root":
		c.options.SourceMapRoot, _ = val.(string)
	case "source-map-origin":
		c.options.SourceMapOrigin, _ = val.(string)
	case "source-map-file-urls":
		c.options.SourceMapFileURLs, _ = val.(bool)
	case "source-map-embed-contents":
		c.options.SourceMapEmbedContents, _ = val.(bool)
	case "logger-columns":
		switch v := val.(type) {
		case int:
			c.options.LoggerColumns = v
		case int32:
			c.options.LoggerColumns = int(v)
		case int64:
			c.options.LoggerColumns = int(v)
		}
	default:
		return &CompileError{Kind: KindInternal, Message: "unrecognized option key: " + key}
	}
	return nil
}

// Options exposes the typed options struct directly for Go callers who
// would rather set fields than call SetOption string-by-string.
func (c *Compiler) Options() *Options { return &c.options }

// RegisterImporter installs a custom module resolver (spec §6
// register_importer); higher priority runs first.
func (c *Compiler) RegisterImporter(priority int, imp Importer) {
	c.importers.add(priority, imp)
}

// RegisterHeader installs a stylesheet fragment injected at the top of the
// entry stylesheet (spec §6 register_header); higher priority ends up
// earlier in the concatenated preamble.
func (c *Compiler) RegisterHeader(priority int, imp Importer) {
	c.headers.add(priority, imp)
}

// RegisterFunction installs a Go-backed Sass function (spec §6
// register_function). signature is `name(...)`; only the name before the
// first `(` is used (see FunctionCallback's scope decision).
func (c *Compiler) RegisterFunction(signature string, cb FunctionCallback) {
	name := signature
	if idx := strings.IndexByte(signature, '('); idx >= 0 {
		name = signature[:idx]
	}
	name = strings.TrimSpace(name)
	c.functions[name] = func(_ *eval.Evaluator, args []value.Value) (value.Value, error) {
		return cb(args)
	}
}

// CSS returns the generated stylesheet; valid only after a successful
// Execute.
func (c *Compiler) CSS() []byte { return c.css }

// SourceMap returns the JSON source-map envelope, or nil if
// source-map-mode was "none".
func (c *Compiler) SourceMap() []byte { return c.sourceMap }

// Err returns the diagnostic from a failed Execute, or nil after success.
func (c *Compiler) Err() *CompileError { return c.err }

// Warnings returns every @warn/@debug message and deprecation notice raised
// during the last Execute, in source order, regardless of whether it
// succeeded.
func (c *Compiler) Warnings() []logger.Msg { return c.warnings }

// Execute runs the full pipeline once (spec §6 execute): resolve the entry
// point, parse it, evaluate it against the module graph, apply @extend,
// prune placeholders, and serialize. On success CSS/SourceMap are
// populated and Execute returns nil; on failure Execute returns the same
// *CompileError Err() would return.
func (c *Compiler) Execute() error {
	if err := c.options.Validate(); err != nil {
		c.err = &CompileError{Kind: KindInternal, Message: err.Error()}
		return c.err
	}

	prettyPath, content, err := c.resolveEntry()
	if err != nil {
		c.err = wrapError(err)
		return c.err
	}

	content, err = c.prependHeaders(prettyPath, content)
	if err != nil {
		c.err = wrapError(err)
		return c.err
	}

	dialect := dialectForPath(prettyPath)
	source := &logger.Source{KeyPath: logger.Path{Text: prettyPath}, PrettyPath: prettyPath, Contents: content}
	sheet, err := parser.Parse(source, dialect)
	if err != nil {
		c.err = wrapError(err)
		return c.err
	}

	log := logger.NewDeferLog()
	importer := &hostImporter{multi: c.importers}
	ev := eval.New(importer, c.includePaths, log, c.options.Precision)
	for name, fn := range c.functions {
		ev.RegisterFunction(name, fn)
	}

	root, rules, err := ev.Evaluate(prettyPath, sheet)
	log.AlmostDone()
	c.warnings = log.Done()
	if err != nil {
		c.err = wrapError(err)
		return c.err
	}

	if err := extend.Apply(root, rules); err != nil {
		c.err = wrapError(err)
		return c.err
	}

	prune.Root(root)

	result := printer.Print(root, c.printerOptions(prettyPath))
	c.css = result.CSS
	c.sourceMap = result.SourceMap
	c.err = nil
	return nil
}

// hostImporter adapts the priority-ordered custom importers plus the
// filesystem fallback to internal/eval.Importer (env.Graph's module loader
// only ever needs Load-by-literal-path).
type hostImporter struct {
	multi *multiImporter
}

func (h *hostImporter) Load(path string) (string, bool, error) { return h.multi.Load(path) }

func (c *Compiler) resolveEntry() (prettyPath string, content string, err error) {
	switch c.entry.kind {
	case entryFile:
		data, readErr := os.ReadFile(c.entry.path)
		if readErr != nil {
			return "", "", &CompileError{Kind: KindImport, Message: readErr.Error()}
		}
		return c.entry.path, stripBOM(string(data)), nil
	case entryStdinLiteral:
		return c.entry.path, c.entry.content, nil
	case entryContent:
		path := c.entry.path
		if path == "" {
			path = "stdin-" + uuid.New().String() + ".scss"
		}
		return path, c.entry.content, nil
	default:
		return "", "", &CompileError{Kind: KindInternal, Message: "no entry point configured"}
	}
}

// prependHeaders concatenates every registered header's content (highest
// priority first) before the entry stylesheet's own text.
func (c *Compiler) prependHeaders(prettyPath, content string) (string, error) {
	if len(c.headers.importers) == 0 {
		return content, nil
	}
	var b strings.Builder
	for _, pi := range c.headers.importers {
		text, ok, err := pi.importer.Load(prettyPath)
		if err != nil {
			return "", err
		}
		if ok {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	b.WriteString(content)
	return b.String(), nil
}

func dialectForPath(path string) parser.Dialect {
	switch {
	case strings.HasSuffix(path, ".sass"):
		return parser.DialectSass
	case strings.HasSuffix(path, ".css"):
		return parser.DialectCSS
	default:
		return parser.DialectSCSS
	}
}

func (c *Compiler) printerOptions(prettyPath string) printer.Options {
	style := printer.Expanded
	switch c.options.OutputStyle {
	case "nested":
		style = printer.Nested
	case "compact":
		style = printer.Compact
	case "compressed":
		style = printer.Compressed
	}

	mode := printer.SourceMapNone
	switch c.options.SourceMapMode {
	case "create":
		mode = printer.SourceMapCreate
	case "embed":
		mode = printer.SourceMapEmbed
	case "link":
		mode = printer.SourceMapLink
	}

	outputPath := c.options.SourceMapPath
	if outputPath == "" {
		outputPath = strings.TrimSuffix(prettyPath, ".scss") + ".css"
	}

	return printer.Options{
		Style:                 style,
		SourceMapMode:         mode,
		OutputPath:            outputPath,
		SourceMapFileURLs:     c.options.SourceMapFileURLs,
		IncludeSourcesContent: c.options.SourceMapEmbedContents,
	}
}
