// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"cmp"
	"fmt"
	"strings"
)

// Pattern is the compiled form of a path pattern. It holds the element chain
// produced by [Parser.Parse] along with precomputed specificity metrics and is
// never mutated after compilation. A Pattern is safe for concurrent use by
// multiple goroutines.
type Pattern struct {
	parser  *Parser
	head    *element
	pattern string

	captureCount        int
	wildcardCount       int
	normalizedLength    int
	catchAll            bool
	endsWithSepWildcard bool
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.pattern
}

// CaptureCount returns the number of variables the pattern binds, counting
// {name}, {name:constraint} and {*name} captures, including those embedded in
// mixed segments.
func (p *Pattern) CaptureCount() int {
	return p.captureCount
}

// WildcardCount returns the number of '*' wildcards in the pattern, '**' and
// {*name} counting as one.
func (p *Pattern) WildcardCount() int {
	return p.wildcardCount
}

// NormalizedLength returns the pattern length where each capture counts as a
// single character. It is one of the inputs of [Pattern.Compare].
func (p *Pattern) NormalizedLength() int {
	return p.normalizedLength
}

// score ranks the pattern by the amount of dynamic matching it performs,
// lower meaning more specific.
func (p *Pattern) score() int {
	return p.captureCount + p.wildcardCount*100
}

// Match reports whether the pattern matches the whole of path. No variable is
// bound, making it the cheapest way to test a path, see [Pattern.Extract] when
// the bindings are needed.
func (p *Pattern) Match(path Path) bool {
	if p.head == nil {
		return path.Empty() || (p.parser.matchTrailingSeparator && path.justSeparator())
	}
	if path.Empty() {
		switch p.head.kind {
		case kindCaptureTheRest, kindWildcardTheRest:
		default:
			return false
		}
	}
	mc := p.newMatchingContext(path, false)
	return p.head.matches(0, &mc)
}

// MatchString parses path with the pattern's parser and matches it. An
// unparsable path never matches.
func (p *Pattern) MatchString(path string) bool {
	pp, err := p.parser.ParsePath(path)
	if err != nil {
		return false
	}
	return p.Match(pp)
}

// Extract matches path and binds the pattern's captures. It returns the
// bindings in pattern order and true on a match, or nil and false when the
// path does not match. A match may carry no binding at all when the pattern
// declares no capture.
func (p *Pattern) Extract(path Path) (Variables, bool) {
	if p.head == nil {
		if path.Empty() || (p.parser.matchTrailingSeparator && path.justSeparator()) {
			return nil, true
		}
		return nil, false
	}
	if path.Empty() {
		switch p.head.kind {
		case kindCaptureTheRest, kindWildcardTheRest:
		default:
			return nil, false
		}
	}
	mc := p.newMatchingContext(path, true)
	if !p.head.matches(0, &mc) {
		return nil, false
	}
	return mc.vars, true
}

// PrefixMatch is the result of [Pattern.MatchPrefix], splitting a path into
// the prefix consumed by the pattern and the remaining tail.
type PrefixMatch struct {
	// Matched is the part of the path the pattern consumed.
	Matched Path
	// Remaining is the untouched tail, suitable for matching against the
	// patterns of a nested router.
	Remaining Path
	// Variables holds the captures bound while matching the prefix.
	Variables Variables
}

// MatchPrefix matches the pattern against the start of path and returns the
// consumed prefix, the remaining tail and the variables bound along the way.
// It returns nil when not even the start of path matches. Capturing elements
// still require a non empty value, so an empty path only matches an empty
// pattern.
func (p *Pattern) MatchPrefix(path Path) *PrefixMatch {
	if p.head == nil {
		return &PrefixMatch{Remaining: path}
	}
	if path.Empty() {
		return nil
	}
	mc := p.newMatchingContext(path, true)
	mc.determineRemaining = true
	if !p.head.matches(0, &mc) {
		return nil
	}
	if mc.remainingIdx >= path.size() {
		return &PrefixMatch{Matched: path, Variables: mc.vars}
	}
	return &PrefixMatch{
		Matched:   path.prefix(mc.remainingIdx),
		Remaining: path.slice(mc.remainingIdx),
		Variables: mc.vars,
	}
}

// Compare orders patterns by specificity, the most specific first. Catch-all
// patterns always rank after everything else, longest first among themselves.
// The remaining patterns are ordered by score, a capture weighing 1 and a
// wildcard 100, then by greater normalized length and finally by greater raw
// pattern length. The ordering is deterministic for any two distinct patterns
// of different shape, making it suitable for [slices.SortFunc].
func (p *Pattern) Compare(other *Pattern) int {
	if p.catchAll != other.catchAll {
		if p.catchAll {
			return 1
		}
		return -1
	}
	if p.catchAll {
		if c := cmp.Compare(other.normalizedLength, p.normalizedLength); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(p.score(), other.score()); c != 0 {
		return c
	}
	if c := cmp.Compare(other.normalizedLength, p.normalizedLength); c != 0 {
		return c
	}
	return cmp.Compare(len(other.pattern), len(p.pattern))
}

// Combine concatenates the pattern with other, producing the pattern a router
// would use when other is registered under p. Both operands are unchanged and
// the result is compiled by the parser of p. The main rules, with '/' as
// separator:
//
//	""        + "/hotel"         => "/hotel"
//	"/hotels" + ""               => "/hotels"
//	"/hotels" + "/bookings"      => "/hotels/bookings"
//	"/hotels" + "bookings"       => "/hotels/bookings"
//	"/*"      + "/hotel"         => "/hotel"
//	"/hotels/*" + "/bookings"    => "/hotels/bookings"
//	"/*.html" + "/hotel"         => "/hotel.html"
//	"/*.html" + "/hotel.*"       => "/hotel.html"
//	"/*.html" + "/hotel.then"    => error, both extensions are fixed
func (p *Pattern) Combine(other *Pattern) (*Pattern, error) {
	if p.pattern == "" {
		if other.pattern == "" {
			return p.parser.Parse("")
		}
		return other, nil
	}
	if other.pattern == "" {
		return p, nil
	}

	// A capture free prefix swallowing the suffix outright, /* + /hotel is
	// just /hotel. Equal texts still concatenate, /usr + /usr is /usr/usr.
	if p.pattern != other.pattern && p.captureCount == 0 {
		if p2, err := p.parser.ParsePath(other.pattern); err == nil && p.Match(p2) {
			return other, nil
		}
	}

	// /hotels/* + /bookings or /hotels/* + bookings give /hotels/bookings.
	if p.endsWithSepWildcard {
		return p.parser.Parse(p.concat(p.pattern[:len(p.pattern)-2], other.pattern))
	}

	starDot := strings.Index(p.pattern, "*.")
	if p.captureCount != 0 || starDot == -1 || p.parser.separator == '.' {
		return p.parser.Parse(p.concat(p.pattern, other.pattern))
	}

	// An extension pattern like /*.html transfers its extension onto the
	// suffix, unless the suffix carries a fixed one of its own.
	ext1 := p.pattern[starDot+1:]
	ext1Wild := ext1 == ".*" || ext1 == ""
	file2, ext2 := other.pattern, ""
	if dot := strings.IndexByte(other.pattern, '.'); dot != -1 {
		file2, ext2 = other.pattern[:dot], other.pattern[dot:]
	}
	ext2Wild := ext2 == ".*" || ext2 == ""
	if !ext1Wild && !ext2Wild {
		return nil, fmt.Errorf("%w: %s and %s", ErrCombine, p.pattern, other.pattern)
	}
	if ext1Wild {
		return p.parser.Parse(file2 + ext2)
	}
	return p.parser.Parse(file2 + ext1)
}

// concat joins two pattern texts with exactly one separator between them.
func (p *Pattern) concat(p1, p2 string) string {
	sepEnd := p1 != "" && p1[len(p1)-1] == p.parser.separator
	sepStart := p2 != "" && p2[0] == p.parser.separator
	switch {
	case sepEnd && sepStart:
		return p1 + p2[1:]
	case sepEnd || sepStart:
		return p1 + p2
	default:
		return p1 + string(p.parser.separator) + p2
	}
}

// chainString renders the compiled element chain, for tests and debugging.
func (p *Pattern) chainString() string {
	var sb strings.Builder
	for el := p.head; el != nil; el = el.next {
		sb.WriteString(el.String())
		if el.next != nil {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
