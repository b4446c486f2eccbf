package sass

import "github.com/go-playground/validator/v10"

// validate is a single shared validator instance, following the pack's
// convention of one package-level *validator.Validate rather than one per
// call (validator.New() builds and caches struct-tag reflection metadata,
// so constructing it per-call is wasted work).
var validate = validator.New()

// Options configures one compilation (spec §6's `set_option` keys,
// collapsed into a single struct validated all at once rather than one
// key/value pair at a time -- `Compiler.SetOption` still exposes the
// spec's key-string shape for hosts that want it, but dispatches into
// these typed fields underneath).
type Options struct {
	// OutputStyle is one of "nested", "expanded", "compact", "compressed".
	OutputStyle string `validate:"omitempty,oneof=nested expanded compact compressed"`
	// Precision is the decimal precision used when emitting numbers.
	Precision int `validate:"gte=0,lte=20"`
	// SourceMapMode is one of "none", "create", "embed", "link".
	SourceMapMode string `validate:"omitempty,oneof=none create embed link"`

	SourceMapPath   string
	SourceMapRoot   string
	SourceMapOrigin string

	SourceMapFileURLs      bool
	SourceMapEmbedContents bool

	// LoggerColumns is the wrap width used when formatting warnings/errors.
	LoggerColumns int `validate:"gte=0"`
}

// DefaultOptions returns the options a freshly made compiler starts with.
func DefaultOptions() Options {
	return Options{
		OutputStyle:   "expanded",
		Precision:     10,
		SourceMapMode: "none",
		LoggerColumns: 80,
	}
}

// Validate rejects an out-of-range precision or an unrecognized enum value
// before compilation starts (spec §6: `set_option` "recognized keys").
func (o *Options) Validate() error {
	return validate.Struct(o)
}
