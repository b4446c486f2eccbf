package eval

import (
	"fmt"
	"strings"

	"github.com/nsass/sass/internal/cssast"
)

// parseMediaQueryList parses the already-interpolated text of an `@media`
// prelude into a cssast.MediaQueryList, splitting on top-level commas and
// pulling a leading not/only modifier, an optional media type, and any
// `and (feature: value)` clauses out of each comma-separated query. This is
// a deliberately small grammar: it does not validate feature syntax or
// support the full range-syntax media feature forms, since C8's extend
// engine only needs queries well-formed enough to compare and merge.
func parseMediaQueryList(text string) (cssast.MediaQueryList, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return cssast.MediaQueryList{}, nil
	}
	var out cssast.MediaQueryList
	for _, part := range splitTopLevel(text, ',') {
		q, err := parseMediaQuery(strings.TrimSpace(part))
		if err != nil {
			return cssast.MediaQueryList{}, err
		}
		out.Queries = append(out.Queries, q)
	}
	return out, nil
}

func parseMediaQuery(text string) (cssast.MediaQuery, error) {
	var q cssast.MediaQuery
	tokens := splitMediaTokens(text)
	i := 0

	if i < len(tokens) && strings.EqualFold(tokens[i], "not") {
		q.Not = true
		i++
	} else if i < len(tokens) && strings.EqualFold(tokens[i], "only") {
		q.Only = true
		i++
	}

	if i < len(tokens) && !strings.HasPrefix(tokens[i], "(") {
		q.Type = tokens[i]
		i++
	}

	for i < len(tokens) {
		tok := tokens[i]
		if strings.EqualFold(tok, "and") {
			i++
			continue
		}
		if strings.HasPrefix(tok, "(") {
			q.Features = append(q.Features, tok)
			i++
			continue
		}
		return q, fmt.Errorf("unexpected token %q in media query", tok)
	}
	return q, nil
}

// splitMediaTokens splits a media query into words and parenthesized
// feature groups, e.g. "screen and (min-width: 10px)" -> ["screen", "and",
// "(min-width: 10px)"].
func splitMediaTokens(s string) []string {
	var tokens []string
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] == '(' {
			depth := 0
			start := i
			for i < len(s) {
				if s[i] == '(' {
					depth++
				} else if s[i] == ')' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				i++
			}
			tokens = append(tokens, s[start:i])
			continue
		}
		start := i
		for i < len(s) && s[i] != ' ' {
			i++
		}
		tokens = append(tokens, s[start:i])
	}
	return tokens
}
