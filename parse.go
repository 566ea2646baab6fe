// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse compiles pattern into an immutable [Pattern]. The returned Pattern is
// never mutated afterwards and can be cached and matched from any number of
// goroutines. Compilation failures are reported as a [*ParseError] carrying
// the byte offset of the offending character, and unwrap to [ErrInvalidPattern]
// plus the sentinel naming the failure kind. This function is safe for
// concurrent use by multiple goroutines.
func (p *Parser) Parse(pattern string) (*Pattern, error) {
	s := scanner{
		pattern:       pattern,
		sep:           p.separator,
		caseSensitive: p.caseSensitive,
		runStart:      -1,
		captureStart:  -1,
	}
	if err := s.scan(); err != nil {
		return nil, err
	}

	patt := &Pattern{
		pattern: pattern,
		parser:  p,
		head:    s.head,
	}
	for el := s.head; el != nil; el = el.next {
		patt.captureCount += el.captures
		patt.wildcardCount += el.wildcards
		patt.normalizedLength += el.nlen
		switch el.kind {
		case kindCaptureTheRest, kindWildcardTheRest:
			patt.catchAll = true
		case kindSeparator:
			if el.next != nil && el.next.kind == kindWildcard && el.next.next == nil {
				patt.endsWithSepWildcard = true
			}
		}
	}
	return patt, nil
}

// scanner holds the state of one compilation. A fresh scanner is allocated per
// Parse call, nothing is reused across calls or goroutines.
type scanner struct {
	head *element
	tail *element
	// names collects capture names over the whole pattern for duplicate
	// detection.
	names []string

	pattern       string
	pos           int
	sep           byte
	caseSensitive bool

	// per run state, reset at every separator
	runStart       int
	captureStart   int
	questions      int
	captures       int
	insideCapture  bool
	captureTheRest bool
	wildcard       bool
}

// scan walks the pattern byte-wise, accumulating segment runs and finalizing
// one element per run at each separator. Capture names are validated in place
// so errors point at the offending character.
func (s *scanner) scan() error {
	for s.pos < len(s.pattern) {
		c := s.pattern[s.pos]
		if c == s.sep {
			if s.runStart >= 0 {
				if err := s.finalizeRun(); err != nil {
					return err
				}
			}
			restAhead, err := s.peekWildcardTheRest()
			if err != nil {
				return err
			}
			if restAhead {
				if err := s.push(newWildcardTheRestElement(s.sep)); err != nil {
					return err
				}
				s.pos += 3
				continue
			}
			if err := s.push(newSeparatorElement(s.sep)); err != nil {
				return err
			}
			s.pos++
			continue
		}

		if s.runStart < 0 {
			s.runStart = s.pos
		}
		switch c {
		case '{':
			if s.insideCapture {
				return newParseErr(s.pattern, s.pos, ErrNestedCapture)
			}
			s.insideCapture = true
			s.captureStart = s.pos
		case '}':
			if !s.insideCapture {
				return newParseErr(s.pattern, s.pos, ErrMissingOpenCapture)
			}
			if s.pos == s.nameStart() {
				return newParseErr(s.pattern, s.pos, ErrIllegalCaptureNameStart)
			}
			s.insideCapture = false
			if s.captureTheRest && s.pos+1 < len(s.pattern) {
				return newParseErr(s.pattern, s.pos+1, ErrDataAfterCatchAll)
			}
			s.captures++
		case ':':
			if s.insideCapture && !s.captureTheRest {
				if s.pos == s.nameStart() {
					return newParseErr(s.pattern, s.pos, ErrIllegalCaptureNameStart)
				}
				if err := s.skipConstraint(); err != nil {
					return err
				}
				s.insideCapture = false
				s.captures++
			}
		case '?':
			s.questions++
		case '*':
			if s.insideCapture && s.captureStart == s.pos-1 {
				s.captureTheRest = true
			}
			s.wildcard = true
		}

		if s.insideCapture {
			size, err := s.checkNameChar()
			if err != nil {
				return err
			}
			s.pos += size
			continue
		}
		s.pos++
	}

	if s.runStart >= 0 {
		return s.finalizeRun()
	}
	return nil
}

// nameStart returns the position where the capture name begins, right after
// '{' or '{*'.
func (s *scanner) nameStart() int {
	if s.captureTheRest {
		return s.captureStart + 2
	}
	return s.captureStart + 1
}

// checkNameChar validates the capture name character at the current position
// and returns its byte size, so multi byte runes advance the scan in one step.
// The braces themselves and the '*' of a '{*' prefix are structural and skip
// validation.
func (s *scanner) checkNameChar() (int, error) {
	if s.pos < s.nameStart() {
		return 1, nil
	}
	r, size := rune(s.pattern[s.pos]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRuneInString(s.pattern[s.pos:])
	}
	if s.pos == s.nameStart() {
		if !isNameStart(r) {
			return 0, newParseErr(s.pattern, s.pos, fmt.Errorf("%w: %q", ErrIllegalCaptureNameStart, r))
		}
	} else if !isNamePart(r) {
		return 0, newParseErr(s.pattern, s.pos, fmt.Errorf("%w: %q", ErrIllegalCaptureNameChar, r))
	}
	return size, nil
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isNamePart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// skipConstraint is entered on the ':' of a {name:constraint} capture and
// leaves the position on the closing '}'. Backslash escapes the next character
// and unescaped brace pairs may nest, so a regex like \d{1,4} or a literal \}
// does not terminate the capture early. An unescaped separator cannot occur
// inside a constraint.
func (s *scanner) skipConstraint() error {
	s.pos++
	start := s.pos
	depth := 0
	escaped := false
	for s.pos < len(s.pattern) {
		c := s.pattern[s.pos]
		if escaped {
			escaped = false
			s.pos++
			continue
		}
		if c == '\\' {
			escaped = true
			s.pos++
			continue
		}
		if c == '{' {
			depth++
		} else if c == '}' {
			if depth == 0 {
				if start == s.pos {
					return newParseErr(s.pattern, start, ErrMissingRegexConstraint)
				}
				return nil
			}
			depth--
		}
		if c == s.sep {
			return newParseErr(s.pattern, s.pos, ErrMissingCloseCapture)
		}
		s.pos++
	}
	return newParseErr(s.pattern, s.pos-1, ErrMissingCloseCapture)
}

// peekWildcardTheRest reports whether the separator at the current position
// starts a trailing '/**'. A '**' that is not the end of the pattern is folded
// into a regular segment run, except when followed by another separator, which
// is always an error.
func (s *scanner) peekWildcardTheRest() (bool, error) {
	if s.pos+2 >= len(s.pattern) {
		return false, nil
	}
	if s.pattern[s.pos+1] != '*' || s.pattern[s.pos+2] != '*' {
		return false, nil
	}
	if s.pos+3 < len(s.pattern) && s.pattern[s.pos+3] == s.sep {
		return false, newParseErr(s.pattern, s.pos+3, ErrDataAfterCatchAll)
	}
	return s.pos+3 == len(s.pattern), nil
}

// finalizeRun turns the accumulated run into one element, picked by priority:
// a single full capture (rest or variable), a mixed segment with captures or
// wildcards compiled to a regex, a lone '*' wildcard, '?' placeholders, and
// finally literal text.
func (s *scanner) finalizeRun() error {
	if s.insideCapture {
		return newParseErr(s.pattern, s.pos, ErrMissingCloseCapture)
	}
	run := s.pattern[s.runStart:s.pos]

	var el *element
	switch {
	case s.captures > 0:
		full := s.captures == 1 && s.runStart == s.captureStart &&
			run[0] == '{' && run[len(run)-1] == '}'
		switch {
		case full && s.captureTheRest:
			el = newCaptureTheRestElement(run, s.sep)
			if err := s.record(el.name); err != nil {
				return err
			}
		case full:
			var err error
			el, err = newCaptureVariableElement(run, s.caseSensitive)
			if err != nil {
				return s.wrapElementErr(run, err)
			}
			if err := s.record(el.name); err != nil {
				return err
			}
		case s.captureTheRest:
			return newParseErr(s.pattern, s.runStart, ErrMalformedCatchAll)
		default:
			var err error
			el, err = newRegexElement(run, s.caseSensitive)
			if err != nil {
				return s.wrapElementErr(run, err)
			}
			for _, name := range el.names {
				if err := s.record(name); err != nil {
					return err
				}
			}
		}
	case s.wildcard:
		if len(run) == 1 {
			el = newWildcardElement()
		} else {
			var err error
			el, err = newRegexElement(run, s.caseSensitive)
			if err != nil {
				return s.wrapElementErr(run, err)
			}
		}
	case s.questions > 0:
		el = newSingleCharWildcardElement(run, s.questions, s.caseSensitive)
	default:
		el = newLiteralElement(run, s.caseSensitive)
	}

	s.resetRun()
	return s.push(el)
}

// push appends el to the chain. A capture-the-rest element consumes its
// leading separator itself, so it splices in place of the separator that
// precedes it, which is the only place the prev link is ever needed.
func (s *scanner) push(el *element) error {
	if el.kind == kindCaptureTheRest {
		switch {
		case s.tail == nil:
			s.head = el
			s.tail = el
		case s.tail.kind == kindSeparator:
			before := s.tail.prev
			if before == nil {
				s.head = el
			} else {
				before.next = el
				el.prev = before
			}
			s.tail = el
		default:
			return newParseErr(s.pattern, s.pos, ErrMalformedCatchAll)
		}
		return nil
	}

	if s.head == nil {
		s.head = el
		s.tail = el
		return nil
	}
	s.tail.next = el
	el.prev = s.tail
	s.tail = el
	return nil
}

func (s *scanner) record(name string) error {
	if slices.Contains(s.names, name) {
		return newParseErr(s.pattern, s.runStart, fmt.Errorf("%w: %q", ErrDuplicateCaptureName, name))
	}
	s.names = append(s.names, name)
	return nil
}

// wrapElementErr positions a regex compilation failure on the constraint text
// when the run carries one, else on the run itself.
func (s *scanner) wrapElementErr(run string, err error) error {
	pos := s.runStart
	if colon := strings.IndexByte(run, ':'); colon >= 0 {
		pos += colon + 1
	}
	return newParseErr(s.pattern, pos, err)
}

func (s *scanner) resetRun() {
	s.runStart = -1
	s.captureStart = -1
	s.questions = 0
	s.captures = 0
	s.insideCapture = false
	s.captureTheRest = false
	s.wildcard = false
}
