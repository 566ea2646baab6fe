// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tigerwill90/trail/internal/stringutil"
)

// matches reports whether the chain starting at e matches the path from
// element index idx onward. Consumption is deterministic, each kind claims a
// fixed portion of the path and hands the rest to the next element, so there
// is no backtracking across elements.
func (e *element) matches(idx int, mc *matchingContext) bool {
	switch e.kind {
	case kindSeparator:
		if idx < mc.path.size() && mc.path.isSeparator(idx) {
			if e.next == nil {
				if mc.determineRemaining {
					mc.remainingIdx = idx + 1
					return true
				}
				return idx+1 == mc.path.size()
			}
			return e.next.matches(idx+1, mc)
		}
		return false

	case kindLiteral:
		if idx >= mc.path.size() || mc.path.isSeparator(idx) {
			return false
		}
		value := mc.path.segmentValue(idx)
		if e.caseSensitive {
			if value != e.text {
				return false
			}
		} else if !strings.EqualFold(value, e.text) {
			return false
		}
		return e.matchNext(idx+1, mc)

	case kindSingleCharWildcard:
		if idx >= mc.path.size() || mc.path.isSeparator(idx) {
			return false
		}
		if !matchSingleCharWildcard(e.text, mc.path.segmentValue(idx), e.caseSensitive) {
			return false
		}
		return e.matchNext(idx+1, mc)

	case kindWildcard:
		var segment string
		consumed := false
		next := idx
		if idx < mc.path.size() {
			if mc.path.isSeparator(idx) {
				return false
			}
			segment = mc.path.segmentValue(idx)
			consumed = true
			next = idx + 1
		}
		if e.next == nil {
			if mc.determineRemaining {
				mc.remainingIdx = next
				return true
			}
			if next == mc.path.size() {
				return true
			}
			// A trailing wildcard may have consumed nothing, the leniency only
			// applies once it matched at least one character.
			return mc.matchTrailingSeparator && consumed && segment != "" &&
				next+1 == mc.path.size() && mc.path.isSeparator(next)
		}
		// Mid-chain, a wildcard requires at least one character.
		if !consumed || segment == "" {
			return false
		}
		return e.next.matches(next, mc)

	case kindRegex:
		if idx >= mc.path.size() || mc.path.isSeparator(idx) {
			return false
		}
		value := mc.path.segmentValue(idx)
		if mc.extracting {
			m := e.re.FindStringSubmatch(value)
			if m == nil {
				return false
			}
			for i, name := range e.names {
				// Matrix parameters ride on the last variable of the segment.
				var params url.Values
				if i == len(e.names)-1 {
					params = mc.path.params(idx)
				}
				mc.vars.set(name, m[i+1], params)
			}
		} else if !e.re.MatchString(value) {
			return false
		}
		next := idx + 1
		if e.next == nil {
			// A capturing segment must bind at least one character.
			bindable := len(e.names) == 0 || value != ""
			if mc.determineRemaining && bindable {
				mc.remainingIdx = next
				return true
			}
			if next == mc.path.size() && bindable {
				return true
			}
			return mc.matchTrailingSeparator && bindable &&
				next+1 == mc.path.size() && mc.path.isSeparator(next)
		}
		return e.next.matches(next, mc)

	case kindCaptureVariable:
		if idx >= mc.path.size() {
			return false
		}
		value := mc.path.segmentValue(idx)
		if value == "" {
			return false
		}
		if e.re != nil && !e.re.MatchString(value) {
			return false
		}
		if mc.extracting {
			mc.vars.set(e.name, value, mc.path.params(idx))
		}
		return e.matchNext(idx+1, mc)

	case kindCaptureTheRest:
		// Anything left must start at a separator, the element consumes it
		// along with the rest of the path.
		if idx < mc.path.size() && !mc.path.isSeparator(idx) {
			return false
		}
		if mc.determineRemaining {
			mc.remainingIdx = mc.path.size()
		}
		if mc.extracting {
			mc.vars.set(e.name, mc.path.restString(idx), mergeMatrixParams(mc.path, idx))
		}
		return true

	default: // kindWildcardTheRest
		if idx < mc.path.size() && !mc.path.isSeparator(idx) {
			return false
		}
		if mc.determineRemaining {
			mc.remainingIdx = mc.path.size()
		}
		return true
	}
}

// matchNext continues the chain once this element consumed the segment before
// idx, or settles the match when the chain ends here: the path must be
// consumed too, modulo one tolerated trailing separator, unless prefix mode
// just records the cursor.
func (e *element) matchNext(idx int, mc *matchingContext) bool {
	if e.next != nil {
		return e.next.matches(idx, mc)
	}
	if mc.determineRemaining {
		mc.remainingIdx = idx
		return true
	}
	if idx == mc.path.size() {
		return true
	}
	return mc.matchTrailingSeparator && idx+1 == mc.path.size() && mc.path.isSeparator(idx)
}

// matchSingleCharWildcard walks pattern and value in lockstep, '?' consuming
// exactly one value rune.
func matchSingleCharWildcard(pattern, value string, caseSensitive bool) bool {
	for len(pattern) > 0 {
		pr, psize := utf8.DecodeRuneInString(pattern)
		pattern = pattern[psize:]
		if len(value) == 0 {
			return false
		}
		vr, vsize := utf8.DecodeRuneInString(value)
		value = value[vsize:]
		if pr == '?' || pr == vr {
			continue
		}
		if caseSensitive || !stringutil.EqualRuneFold(pr, vr) {
			return false
		}
	}
	return len(value) == 0
}

// mergeMatrixParams folds the matrix parameters of every remaining segment
// into a single table, for the rest-captured variable.
func mergeMatrixParams(p Path, from int) url.Values {
	var merged url.Values
	for i := from; i < p.size(); i++ {
		params := p.params(i)
		if len(params) == 0 {
			continue
		}
		if merged == nil {
			merged = make(url.Values, len(params))
		}
		for k, vs := range params {
			merged[k] = append(merged[k], vs...)
		}
	}
	return merged
}
