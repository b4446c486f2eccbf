package sass

import (
	"os"
	"sort"
)

// Importer resolves a literal stylesheet path to its contents (spec §6
// register_importer/register_header). Scope decision: the spec describes a
// richer callback that receives the raw import URL and the importing
// file's path and returns an ordered list of `(imp-path, abs-path,
// content?, syntax?, error?)` candidates; this implementation instead lets
// a host compose several of these simpler Load-by-literal-path resolvers
// by priority, which covers the common cases (an in-memory map of virtual
// stylesheets, a second on-disk root, a network fetcher) without carrying
// the extra imp-path/abs-path/syntax tuple the internal module loader
// (internal/eval's own candidate-path expansion) has no use for today.
type Importer interface {
	Load(path string) (contents string, ok bool, err error)
}

// ImporterFunc adapts a plain function to Importer.
type ImporterFunc func(path string) (string, bool, error)

func (f ImporterFunc) Load(path string) (string, bool, error) { return f(path) }

type prioritizedImporter struct {
	priority int
	importer Importer
}

// multiImporter tries registered importers in descending priority order,
// falling back to the filesystem last (spec §6: "an ordered list ...
// first non-error one wins").
type multiImporter struct {
	importers []prioritizedImporter
}

func (m *multiImporter) add(priority int, imp Importer) {
	m.importers = append(m.importers, prioritizedImporter{priority, imp})
	sort.SliceStable(m.importers, func(i, j int) bool {
		return m.importers[i].priority > m.importers[j].priority
	})
}

func (m *multiImporter) Load(path string) (string, bool, error) {
	for _, pi := range m.importers {
		contents, ok, err := pi.importer.Load(path)
		if err != nil {
			return "", false, err
		}
		if ok {
			return contents, true, nil
		}
	}
	return fsImporter{}.Load(path)
}

// fsImporter is the built-in fallback: plain files on disk.
type fsImporter struct{}

func (fsImporter) Load(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return stripBOM(string(data)), true, nil
}

// stripBOM tolerates a leading UTF-8 byte-order mark (spec §6 "Input:
// valid SCSS, Sass (indented), or CSS text in UTF-8 (BOM tolerated)").
func stripBOM(s string) string {
	const bom = "\xef\xbb\xbf"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
