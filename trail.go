// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

// Package trail compiles path pattern templates such as /orders/{id}/items/{*rest}
// into immutable, reusable matchers. A compiled [Pattern] matches parsed request
// paths, extracts named variables along with their matrix parameters and ranks
// competing patterns by specificity. All syntax errors surface at compile time,
// matching itself never fails.
package trail

const defaultSeparator byte = '/'

// Parser compiles pattern templates into [Pattern] values. A Parser is immutable
// once created and safe for concurrent use by multiple goroutines without
// additional synchronization. Patterns compiled by the same Parser share its
// separator, case-sensitivity and trailing-separator configuration.
type Parser struct {
	separator              byte
	caseSensitive          bool
	matchTrailingSeparator bool
}

// New returns a ready to use [Parser] configured with the provided options.
// Without options, the parser uses the '/' separator, matches case-sensitively
// and does not tolerate extra trailing separators.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		separator:     defaultSeparator,
		caseSensitive: true,
	}
	for _, opt := range opts {
		if err := opt.apply(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Separator returns the configured segment separator.
func (p *Parser) Separator() byte {
	return p.separator
}

// CaseSensitive reports whether compiled patterns match case-sensitively.
func (p *Parser) CaseSensitive() bool {
	return p.caseSensitive
}

// MatchTrailingSeparator reports whether compiled patterns tolerate one extra
// trailing separator.
func (p *Parser) MatchTrailingSeparator() bool {
	return p.matchTrailingSeparator
}

var defaultParser = &Parser{
	separator:     defaultSeparator,
	caseSensitive: true,
}

// Parse compiles pattern using the default parser configuration: '/' separator,
// case-sensitive matching and strict trailing separator handling.
func Parse(pattern string) (*Pattern, error) {
	return defaultParser.Parse(pattern)
}

// MustParse compiles pattern using the default parser configuration. This
// function is a convenience wrapper for [Parse] and panics on error.
func MustParse(pattern string) *Pattern {
	patt, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return patt
}

// ParsePath parses path using the default parser configuration. This function
// is a convenience wrapper for [Parser.ParsePath].
func ParsePath(path string) (Path, error) {
	return defaultParser.ParsePath(path)
}
