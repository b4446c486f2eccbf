package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsass/sass/internal/logger"
	"github.com/nsass/sass/pkg/sass"
)

const version = "1.0.0"

var (
	flagStyle          string
	flagPrecision      int
	flagLoadPaths      []string
	flagSourceMap      bool
	flagEmbedSourceMap bool
	flagSourceMapURLs  string
	flagQuiet          bool
	flagWatch          bool
)

var rootCmd = &cobra.Command{
	Use:     "sass [flags] input [output]",
	Short:   "Compile a Sass/SCSS stylesheet to CSS",
	Version: version,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runCompile,
}

func init() {
	rootCmd.Flags().StringVarP(&flagStyle, "style", "t", "expanded", "output style: nested, expanded, compact, or compressed")
	rootCmd.Flags().IntVarP(&flagPrecision, "precision", "p", 10, "decimal precision for emitted numbers")
	rootCmd.Flags().StringArrayVarP(&flagLoadPaths, "load-path", "I", nil, "directory to search for imports (repeatable)")
	rootCmd.Flags().BoolVarP(&flagSourceMap, "sourcemap", "m", false, "emit a source map alongside the output")
	rootCmd.Flags().BoolVar(&flagEmbedSourceMap, "embed-source-map", false, "embed the source map as a data: URL in the output")
	rootCmd.Flags().StringVar(&flagSourceMapURLs, "source-map-urls", "relative", "how source URLs are written in the map: file or relative")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress warnings")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "recompile whenever the entry point or one of its dependencies changes")
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// runCompile is the cobra handler for a single `sass input [output]`
// invocation (spec §6). It also backs --watch's repeated recompiles.
func runCompile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath := ""
	if len(args) > 1 {
		outputPath = args[1]
	}

	if flagWatch {
		return watchAndCompile(inputPath, outputPath)
	}

	return compileOnce(inputPath, outputPath)
}

// compileOnce runs one compilation and writes its output, returning a
// non-nil error on any failure so main() can map it to a nonzero exit code
// (spec §6: "Exit codes: 0 success; nonzero on any error").
func compileOnce(inputPath, outputPath string) error {
	c := sass.NewCompiler()
	c.SetEntryPointFile(inputPath)
	for _, dir := range flagLoadPaths {
		c.AddIncludePath(dir)
	}

	opts := c.Options()
	opts.OutputStyle = flagStyle
	opts.Precision = flagPrecision
	opts.SourceMapFileURLs = flagSourceMapURLs == "file"
	switch {
	case flagEmbedSourceMap:
		opts.SourceMapMode = "embed"
	case flagSourceMap:
		opts.SourceMapMode = "create"
	default:
		opts.SourceMapMode = "none"
	}
	if outputPath != "" {
		opts.SourceMapPath = outputPath + ".map"
	}

	if err := c.Execute(); err != nil {
		return err
	}

	if !flagQuiet {
		printWarnings(c.Warnings())
	}

	if err := writeOutput(outputPath, c.CSS()); err != nil {
		return err
	}
	if opts.SourceMapMode != "none" && opts.SourceMapMode != "embed" && outputPath != "" {
		if err := os.WriteFile(opts.SourceMapPath, c.SourceMap(), 0o644); err != nil {
			return fmt.Errorf("writing source map: %w", err)
		}
	}
	return nil
}

func writeOutput(outputPath string, css []byte) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(css)
		return err
	}
	return os.WriteFile(outputPath, css, 0o644)
}

func printWarnings(msgs []logger.Msg) {
	for _, msg := range msgs {
		if msg.Kind == logger.Error {
			continue
		}
		fmt.Fprint(os.Stderr, msg.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{}))
	}
}
