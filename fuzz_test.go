// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"fmt"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzParseNoPanic(t *testing.T) {
	// Printable ASCII and a slice of the BMP, reserved characters included so
	// the scanner sees hostile inputs.
	unicodeRanges := fuzz.UnicodeRanges{
		{First: 0x20, Last: 0x7E},
		{First: 0xA0, Last: 0x04FF},
	}

	f := fuzz.New().NilChance(0).NumElements(1000, 2000).Funcs(unicodeRanges.CustomStringFuzzFunc())

	patterns := make(map[string]struct{})
	f.Fuzz(&patterns)

	for pattern := range patterns {
		require.NotPanicsf(t, func() {
			patt, err := Parse(pattern)
			if err == nil {
				_ = patt.MatchString(pattern)
			}
		}, "pattern: %q", pattern)
	}
}

func TestFuzzParseExtract(t *testing.T) {
	// Letters only, valid in literals and capture names alike.
	unicodeRanges := fuzz.UnicodeRanges{
		{First: 0x41, Last: 0x5A},
		{First: 0x61, Last: 0x7A},
		{First: 0x0100, Last: 0x017F},
		{First: 0x0400, Last: 0x044F},
	}

	f := fuzz.New().NilChance(0).Funcs(unicodeRanges.CustomStringFuzzFunc())
	routeFormat := "/%s/{%s}/%s/{%s}/{%s}"
	reqFormat := "/%s/%s/%s/%s/%s"
	for i := 0; i < 2000; i++ {
		var s1, e1, s2, e2, e3 string
		f.Fuzz(&s1)
		f.Fuzz(&e1)
		f.Fuzz(&s2)
		f.Fuzz(&e2)
		f.Fuzz(&e3)
		if s1 == "" || s2 == "" || e1 == "" || e2 == "" || e3 == "" {
			continue
		}

		patt, err := Parse(fmt.Sprintf(routeFormat, s1, e1, s2, e2, e3))
		if err != nil {
			// Colliding capture names, nothing else can fail here.
			require.ErrorIs(t, err, ErrDuplicateCaptureName)
			continue
		}

		path, err := ParsePath(fmt.Sprintf(reqFormat, s1, "xxxx", s2, "xxxx", "xxxx"))
		require.NoError(t, err)

		vars, ok := patt.Extract(path)
		require.Truef(t, ok, "pattern: %s, path: %s", patt, path)
		assert.Equal(t, "xxxx", vars.Get(e1))
		assert.Equal(t, "xxxx", vars.Get(e2))
		assert.Equal(t, "xxxx", vars.Get(e3))
	}
}

func TestFuzzMatchNoPanic(t *testing.T) {
	patterns := []*Pattern{
		MustParse(""),
		MustParse("/"),
		MustParse("/foo/bar"),
		MustParse("/foo/{id}"),
		MustParse(`/{id:\d+}/end`),
		MustParse("/f?o/*"),
		MustParse("/img_{name}.{ext}"),
		MustParse("/a*b/{x}"),
		MustParse("/foo/**"),
		MustParse("/{*rest}"),
	}

	// Separators, percent signs and semicolons included, decoding must fail
	// cleanly rather than blow up.
	unicodeRanges := fuzz.UnicodeRanges{
		{First: 0x20, Last: 0x7E},
		{First: 0xA0, Last: 0x04FF},
	}

	f := fuzz.New().NilChance(0).NumElements(1000, 2000).Funcs(unicodeRanges.CustomStringFuzzFunc())

	paths := make(map[string]struct{})
	f.Fuzz(&paths)

	for raw := range paths {
		require.NotPanicsf(t, func() {
			path, err := ParsePath("/" + raw)
			if err != nil {
				return
			}
			for _, patt := range patterns {
				_ = patt.Match(path)
				_, _ = patt.Extract(path)
				_ = patt.MatchPrefix(path)
			}
		}, "path: /%s", raw)
	}
}
