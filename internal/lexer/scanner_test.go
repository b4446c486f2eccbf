package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/logger"
)

func scan(contents string) *Scanner {
	return New(&logger.Source{Contents: contents})
}

func TestReadAdvancesCodePointAndColumn(t *testing.T) {
	s := scan("ab")
	require.Equal(t, 'a', s.CodePoint())
	require.Equal(t, 'a', s.Read())
	require.Equal(t, 'b', s.CodePoint())
	require.Equal(t, 'b', s.Read())
	require.Equal(t, rune(eof), s.CodePoint())
	require.True(t, s.AtEOF())
}

func TestReadTreatsCRLFAsSingleNewline(t *testing.T) {
	s := scan("a\r\nb")
	s.Read() // 'a'; stepping onto the CRLF pair counts it as one newline
	require.Equal(t, 1, s.Line())
	s.Read() // consumes the CRLF pair as a single two-byte-wide unit
	require.Equal(t, 1, s.Line())
	require.Equal(t, 'b', s.CodePoint())
}

func TestColumnCountsScalarsNotBytes(t *testing.T) {
	// "é" is two UTF-8 bytes but one scalar; reading it must advance the
	// column by one step, the same as reading a single-byte rune (spec
	// §4.1: "column is counted in Unicode scalar units, not bytes").
	multiByte := scan("é")
	before := multiByte.Column()
	multiByte.Read()
	afterMultiByte := multiByte.Column()

	singleByte := scan("x")
	beforeSingle := singleByte.Column()
	singleByte.Read()
	afterSingleByte := singleByte.Column()

	require.Equal(t, afterSingleByte-beforeSingle, afterMultiByte-before)
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := scan("abc")
	require.Equal(t, 'a', s.Peek(0))
	require.Equal(t, 'b', s.Peek(1))
	require.Equal(t, 'c', s.Peek(2))
	require.Equal(t, rune(eof), s.Peek(10))
	// cursor untouched by Peek
	require.Equal(t, 'a', s.CodePoint())
}

// Regression test: Peek(1) must see the character immediately after the
// current one, since the parser and lexer both rely on `cp == '#' &&
// s.Peek(1) == '{'` to detect the start of an interpolation (spec §4.2,
// "#{expr}").
func TestPeekOneSeesInterpolationStart(t *testing.T) {
	s := scan("#{foo}")
	require.Equal(t, '#', s.CodePoint())
	require.Equal(t, '{', s.Peek(1))
}

func TestStateBacktrackRestoresCursor(t *testing.T) {
	s := scan("abcd")
	st := s.State()
	s.Read()
	s.Read()
	require.Equal(t, 'c', s.CodePoint())
	s.Backtrack(st)
	require.Equal(t, 'a', s.CodePoint())
}

func TestScanConsumesOnMatchOnly(t *testing.T) {
	s := scan("foobar")
	require.False(t, s.Scan("bar"))
	require.Equal(t, 'f', s.CodePoint())
	require.True(t, s.Scan("foo"))
	require.Equal(t, 'b', s.CodePoint())
}

func TestExpectReturnsScanErrorOnMismatch(t *testing.T) {
	s := scan("abc")
	require.NoError(t, s.Expect("ab"))
	err := s.Expect("z")
	require.Error(t, err)
	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
}

func TestSkipWhitespaceConsumesAllWhitespaceVariants(t *testing.T) {
	s := scan(" \t\n\r\f x")
	any := s.SkipWhitespace()
	require.True(t, any)
	require.Equal(t, 'x', s.CodePoint())
}

func TestSkipWhitespaceReportsFalseWhenNoneConsumed(t *testing.T) {
	s := scan("x")
	require.False(t, s.SkipWhitespace())
}
