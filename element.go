// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"fmt"
	"regexp"
	"strings"
)

type elementKind uint8

const (
	kindSeparator elementKind = iota
	kindLiteral
	kindSingleCharWildcard
	kindWildcard
	kindRegex
	kindCaptureVariable
	kindCaptureTheRest
	kindWildcardTheRest
)

// element is one link of a compiled pattern chain. A single struct backs all
// eight kinds, matching dispatches on kind with an exhaustive switch. The
// chain is walked forward only, prev exists solely for the compiler to splice
// a capture-the-rest element in place of its preceding separator.
type element struct {
	re   *regexp.Regexp
	next *element
	prev *element
	// text is the raw pattern text backing this element, separator included
	// for the rest-consuming kinds.
	text string
	// name is the captured variable name for capture kinds, names lists the
	// variables of a mixed regex segment in capture group order.
	name  string
	names []string

	kind          elementKind
	caseSensitive bool
	// questions counts the '?' placeholders of a single char wildcard element.
	questions int

	// comparator inputs, accumulated over the chain at compile time.
	captures  int
	wildcards int
	nlen      int
}

func newSeparatorElement(sep byte) *element {
	return &element{kind: kindSeparator, text: string(sep), nlen: 1}
}

func newLiteralElement(text string, caseSensitive bool) *element {
	return &element{kind: kindLiteral, text: text, caseSensitive: caseSensitive, nlen: len(text)}
}

func newSingleCharWildcardElement(text string, questions int, caseSensitive bool) *element {
	return &element{
		kind:          kindSingleCharWildcard,
		text:          text,
		caseSensitive: caseSensitive,
		questions:     questions,
		nlen:          len(text),
	}
}

func newWildcardElement() *element {
	return &element{kind: kindWildcard, text: "*", wildcards: 1, nlen: 1}
}

// newCaptureVariableElement compiles a {name} or {name:constraint} descriptor,
// braces included. The scanner has already validated the name and balanced the
// braces, only the constraint regex remains to be compiled here.
func newCaptureVariableElement(descriptor string, caseSensitive bool) (*element, error) {
	name, constraint, constrained := strings.Cut(descriptor[1:len(descriptor)-1], ":")
	el := &element{
		kind:     kindCaptureVariable,
		text:     descriptor,
		name:     name,
		captures: 1,
		nlen:     1,
	}
	if !constrained {
		return el, nil
	}

	re, err := compileConstraint(constraint, caseSensitive)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() > 0 {
		return nil, fmt.Errorf("%w: %q, use (?:...) instead", ErrCaptureGroup, constraint)
	}
	el.re = re
	return el, nil
}

// newRegexElement compiles a mixed segment such as img_{name}.{ext} or *.html
// into a single anchored regex, each capture descriptor becoming one capture
// group and each glob becoming its regex equivalent.
func newRegexElement(text string, caseSensitive bool) (*element, error) {
	var sb strings.Builder
	sb.Grow(len(text) + 8)
	if !caseSensitive {
		sb.WriteString("(?i)")
	}
	sb.WriteByte('^')

	el := &element{kind: kindRegex, text: text, nlen: len(text)}
	lit := 0
	flush := func(end int) {
		if lit < end {
			sb.WriteString(regexp.QuoteMeta(text[lit:end]))
		}
	}
	for i := 0; i < len(text); {
		switch text[i] {
		case '?':
			flush(i)
			sb.WriteByte('.')
			i++
		case '*':
			flush(i)
			sb.WriteString(".*")
			// '.*' in the source text is an explicit regex, not a glob, and
			// does not weigh as a wildcard.
			if i == 0 || text[i-1] != '.' {
				el.wildcards++
			}
			i++
		case '{':
			flush(i)
			end := closingBrace(text, i)
			if end < 0 {
				return nil, ErrMissingCloseCapture
			}
			name, constraint, constrained := strings.Cut(text[i+1:end], ":")
			if constrained {
				sb.WriteByte('(')
				sb.WriteString(constraint)
				sb.WriteByte(')')
			} else {
				sb.WriteString("(.*)")
			}
			el.names = append(el.names, name)
			el.nlen -= len(name) + 1
			i = end + 1
		default:
			i++
			continue
		}
		lit = i
	}
	flush(len(text))
	sb.WriteByte('$')

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() != len(el.names) {
		return nil, fmt.Errorf("%w: %q, use (?:...) instead", ErrCaptureGroup, text)
	}
	el.re = re
	el.captures = len(el.names)
	return el, nil
}

func newCaptureTheRestElement(descriptor string, sep byte) *element {
	return &element{
		kind:     kindCaptureTheRest,
		text:     string(sep) + descriptor,
		name:     descriptor[2 : len(descriptor)-1],
		captures: 1,
		nlen:     1,
	}
}

func newWildcardTheRestElement(sep byte) *element {
	return &element{kind: kindWildcardTheRest, text: string(sep) + "**", wildcards: 1, nlen: 1}
}

func compileConstraint(constraint string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := "^(?:" + constraint + ")$"
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

// closingBrace returns the index of the '}' closing the '{' at open, honoring
// backslash escapes and nested braces, or -1 when the brace never closes.
func closingBrace(text string, open int) int {
	depth := 0
	escaped := false
	for i := open + 1; i < len(text); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch text[i] {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// String renders the element kind and its raw text, for debugging and tests.
func (e *element) String() string {
	switch e.kind {
	case kindSeparator:
		return "Separator(" + e.text + ")"
	case kindLiteral:
		return "Literal(" + e.text + ")"
	case kindSingleCharWildcard:
		return "SingleCharWildcard(" + e.text + ")"
	case kindWildcard:
		return "Wildcard(*)"
	case kindRegex:
		return "Regex(" + e.text + ")"
	case kindCaptureVariable:
		return "CaptureVariable(" + e.text + ")"
	case kindCaptureTheRest:
		return "CaptureTheRest(" + e.text + ")"
	default:
		return "WildcardTheRest(" + e.text + ")"
	}
}
