// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"fmt"
	"strings"
)

// reserved characters that carry meaning in the pattern grammar and therefore
// cannot serve as segment separator.
const reservedChars = `{}*?:\`

type Option interface {
	apply(*Parser) error
}

type optionFunc func(*Parser) error

func (o optionFunc) apply(p *Parser) error {
	return o(p)
}

// WithSeparator sets the segment separator used for both pattern compilation
// and path parsing. The default separator is '/'. The separator must be a
// printable ASCII character outside the pattern grammar ('{', '}', '*', '?',
// ':' and '\' are reserved). Parsers configured with a separator other than
// '/' do not extract matrix parameters.
func WithSeparator(sep byte) Option {
	return optionFunc(func(p *Parser) error {
		if sep <= 0x20 || sep >= 0x7f {
			return fmt.Errorf("%w: separator %q is not a printable ascii character", ErrInvalidConfig, sep)
		}
		if strings.IndexByte(reservedChars, sep) >= 0 {
			return fmt.Errorf("%w: separator %q collides with the pattern grammar", ErrInvalidConfig, sep)
		}
		p.separator = sep
		return nil
	})
}

// IgnoreCase enables case-insensitive matching for literal text, single
// character wildcards and regex constraints. Matching is case-sensitive
// by default.
func IgnoreCase(enable bool) Option {
	return optionFunc(func(p *Parser) error {
		p.caseSensitive = !enable
		return nil
	})
}

// MatchTrailingSeparator allows compiled patterns to also match paths carrying
// exactly one extra trailing separator, so that /foo/bar matches both /foo/bar
// and /foo/bar/. Disabled by default, paths are then matched as registered.
func MatchTrailingSeparator(enable bool) Option {
	return optionFunc(func(p *Parser) error {
		p.matchTrailingSeparator = enable
		return nil
	})
}
