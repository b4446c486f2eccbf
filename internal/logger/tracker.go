package logger

import "github.com/nsass/sass/internal/helpers"

// A LineColumnTracker answers "what line/column is this byte offset" queries
// against one source file. Constructing one is cheap: it holds only the
// source, builds no line-offset table, and each lookup scans the source text.
type LineColumnTracker struct {
	source *Source
}

// LineAndUTF16Column returns the 0-based line and 0-based UTF-16-code-unit
// column of loc within the source, the granularity source maps use (spec
// §4.9's mapping table entries). Unlike computeLineAndColumn (used for
// diagnostic formatting, where column is in bytes for caret placement), this
// counts UTF-16 code units since that is what consumers of the "mappings"
// field expect.
func (s *Source) LineAndUTF16Column(loc Loc) (line int32, column int32) {
	offset := int(loc.Start)
	if offset > len(s.Contents) {
		offset = len(s.Contents)
	}
	contents := s.Contents
	lineStart := 0
	var prevCodePoint rune
	for i, c := range contents[:offset] {
		switch c {
		case '\n':
			if prevCodePoint != '\r' {
				line++
			}
			lineStart = i + 1
		case '\r':
			line++
			lineStart = i + 1
		case '\u2028', '\u2029':
			line++
			lineStart = i + 3
		}
		prevCodePoint = c
	}
	column = int32(len(helpers.StringToUTF16(contents[lineStart:offset])))
	return
}

func MakeLineColumnTracker(source *Source) LineColumnTracker {
	return LineColumnTracker{source: source}
}

func (t *LineColumnTracker) MsgData(r Range, text string) MsgData {
	if t == nil || t.source == nil {
		return MsgData{Text: text}
	}
	return RangeData(t.source, r, text)
}

// Add appends a message anchored to a span of source text.
func (log Log) Add(kind MsgKind, tracker *LineColumnTracker, r Range, text string) {
	log.AddMsg(Msg{Kind: kind, Data: tracker.MsgData(r, text)})
}

func (log Log) AddWithNotes(kind MsgKind, tracker *LineColumnTracker, r Range, text string, notes []MsgData) {
	log.AddMsg(Msg{Kind: kind, Data: tracker.MsgData(r, text), Notes: notes})
}
