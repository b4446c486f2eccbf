package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchAndCompile implements --watch: compile once immediately, then
// recompile whenever the entry point's directory or any configured
// load-path directory changes on disk (spec §4's supplemented watch-mode
// feature; SPEC_FULL.md's domain-stack wiring plan for fsnotify). Each
// recompile is a fresh Compiler -- there is no incremental caching between
// runs, consistent with the "no persistent caching between invocations"
// Non-goal.
func watchAndCompile(inputPath, outputPath string) error {
	if err := compileOnce(inputPath, outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	dirs := watchDirs(inputPath)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: not watching %s: %v\n", dir, err)
		}
	}

	fmt.Fprintf(os.Stderr, "watching %d director(y/ies) for changes (ctrl-c to stop)\n", len(dirs))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isStylesheet(event.Name) {
				continue
			}
			fmt.Fprintf(os.Stderr, "%s changed, recompiling\n", event.Name)
			if err := compileOnce(inputPath, outputPath); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}

// watchDirs is the entry point's own directory plus every configured
// load-path, deduplicated. It does not walk into subdirectories: Sass
// projects conventionally keep partials alongside the files that import
// them rather than in deep trees.
func watchDirs(inputPath string) []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(dir string) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		if !seen[abs] {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}

	add(filepath.Dir(inputPath))
	for _, dir := range flagLoadPaths {
		add(dir)
	}
	return dirs
}

func isStylesheet(path string) bool {
	switch filepath.Ext(path) {
	case ".scss", ".sass", ".css":
		return true
	default:
		return false
	}
}
