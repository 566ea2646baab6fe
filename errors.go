// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPattern is returned when a pattern cannot be compiled. Every
	// *ParseError unwraps to it, alongside one of the specific sentinels below.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidConfig is returned when a parser option is misconfigured.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrCombine is returned when two patterns cannot be merged into one.
	ErrCombine = errors.New("cannot combine patterns")

	// ErrMissingCloseCapture is returned when a '{' capture is never closed,
	// including a separator showing up inside an unterminated constraint.
	ErrMissingCloseCapture = errors.New("missing close capture brace")
	// ErrMissingOpenCapture is returned when a '}' has no matching '{'.
	ErrMissingOpenCapture = errors.New("missing open capture brace")
	// ErrNestedCapture is returned when a '{' occurs inside a capture name.
	ErrNestedCapture = errors.New("illegal nested capture")
	// ErrIllegalCaptureNameStart is returned when a capture name starts with a
	// character that is not a letter or '_'.
	ErrIllegalCaptureNameStart = errors.New("illegal character at start of capture name")
	// ErrIllegalCaptureNameChar is returned when a capture name contains a
	// character that is not a letter, digit, '_' or '-'.
	ErrIllegalCaptureNameChar = errors.New("illegal character in capture name")
	// ErrDataAfterCatchAll is returned when pattern text follows a trailing
	// '{*name}' or '**'.
	ErrDataAfterCatchAll = errors.New("no pattern data allowed after catch-all")
	// ErrMalformedCatchAll is returned when '{*name}' is not a standalone
	// segment preceded by a separator.
	ErrMalformedCatchAll = errors.New("malformed catch-all")
	// ErrMissingRegexConstraint is returned on an empty '{name:}' constraint.
	ErrMissingRegexConstraint = errors.New("missing regex constraint")
	// ErrDuplicateCaptureName is returned when two captures share a name.
	ErrDuplicateCaptureName = errors.New("duplicate capture name")
	// ErrCaptureGroup is returned when a constraint regex declares its own
	// capture group. Use a non-capturing (?:...) group instead.
	ErrCaptureGroup = errors.New("capture group not allowed in regex constraint")
)

// ParseError reports a pattern compilation failure. It carries the full
// pattern text and the byte offset of the offending character so callers can
// render precise diagnostics. It unwraps to ErrInvalidPattern and to the
// sentinel describing the failure kind.
type ParseError struct {
	err error
	// Pattern is the pattern text that failed to compile.
	Pattern string
	// Pos is the byte offset of the offending character in Pattern.
	Pos int
}

func newParseErr(pattern string, pos int, kind error) *ParseError {
	return &ParseError{
		err:     fmt.Errorf("%w: %w", ErrInvalidPattern, kind),
		Pattern: pattern,
		Pos:     pos,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d in %q", e.err, e.Pos, e.Pattern)
}

// Detail returns a multi-line rendering of the failure with a caret pointing
// at the offending character.
//
//	/foo/{id
//	        ^
func (e *ParseError) Detail() string {
	pos := min(e.Pos, len(e.Pattern))
	var sb strings.Builder
	sb.Grow(2*len(e.Pattern) + len(e.err.Error()) + 4)
	sb.WriteString(e.Pattern)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", pos))
	sb.WriteString("^\n")
	sb.WriteString(e.err.Error())
	return sb.String()
}

// Unwrap returns the wrapped sentinel chain.
func (e *ParseError) Unwrap() error {
	return e.err
}
