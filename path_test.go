// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"errors"
	"net/url"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	cases := []struct {
		name         string
		path         string
		wantSegments []string
		wantEmpty    bool
	}{
		{name: "empty", path: "", wantEmpty: true},
		{name: "root", path: "/"},
		{name: "two segments", path: "/a/b", wantSegments: []string{"a", "b"}},
		{name: "relative", path: "a/b", wantSegments: []string{"a", "b"}},
		{name: "trailing separator", path: "/a/", wantSegments: []string{"a"}},
		{name: "empty segments are skipped", path: "//a///b", wantSegments: []string{"a", "b"}},
		{name: "percent decoding", path: "/a%20b/c", wantSegments: []string{"a b", "c"}},
		{name: "encoded separator stays in segment", path: "/a%2Fb", wantSegments: []string{"a/b"}},
		{name: "matrix parameters are split off", path: "/cars;color=red/42;x=1", wantSegments: []string{"cars", "42"}},
		{name: "matrix only segment has empty value", path: "/;x=1", wantSegments: []string{""}},
		{name: "encoded semicolon stays in value", path: "/a%3Bb", wantSegments: []string{"a;b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := ParsePath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.path, path.String())
			assert.Equal(t, tc.wantEmpty, path.Empty())
			assert.Equal(t, tc.wantSegments, slices.Collect(path.Segments()))
		})
	}
}

func TestParsePathError(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{name: "bad escape in segment", path: "/a%zz"},
		{name: "truncated escape", path: "/a%2"},
		{name: "bad escape in matrix name", path: "/a;x%zz=1"},
		{name: "bad escape in matrix value", path: "/a;x=%zz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := ParsePath(tc.path)
			require.Error(t, err)
			var escErr url.EscapeError
			assert.True(t, errors.As(err, &escErr))
			assert.True(t, path.Empty())
		})
	}
}

func TestParseMatrixParams(t *testing.T) {
	cases := []struct {
		want url.Values
		name string
		in   string
	}{
		{name: "single", in: "x=1", want: url.Values{"x": {"1"}}},
		{name: "multiple", in: "x=1;y=2", want: url.Values{"x": {"1"}, "y": {"2"}}},
		{name: "value list", in: "x=a,b", want: url.Values{"x": {"a", "b"}}},
		{name: "flag", in: "sorted", want: url.Values{"sorted": {""}}},
		{name: "repeated name accumulates", in: "x=1;x=2", want: url.Values{"x": {"1", "2"}}},
		{name: "empty chunks are skipped", in: ";x=1;;", want: url.Values{"x": {"1"}}},
		{name: "empty name is skipped", in: "=v;x=1", want: url.Values{"x": {"1"}}},
		{name: "decoded name", in: "a%3Db=1", want: url.Values{"a=b": {"1"}}},
		{name: "encoded comma is not a list", in: "x=a%2Cb", want: url.Values{"x": {"a,b"}}},
		{name: "empty", in: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := parseMatrixParams(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, params); diff != "" {
				t.Errorf("unexpected parameters (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathSlicing(t *testing.T) {
	path, err := ParsePath("/a/b%20c/d")
	require.NoError(t, err)
	require.Equal(t, 6, path.size())

	// The raw text of a sub path is sliced verbatim while restString renders
	// decoded values.
	sub := path.slice(2)
	assert.Equal(t, "/b%20c/d", sub.String())
	assert.Equal(t, []string{"b c", "d"}, slices.Collect(sub.Segments()))
	assert.Equal(t, "/b c/d", path.restString(2))

	assert.Equal(t, "/a", path.prefix(2).String())
	assert.Equal(t, "", path.prefix(0).String())
	assert.Equal(t, path.String(), path.prefix(42).String())
	assert.True(t, path.slice(42).Empty())
	assert.Equal(t, path.String(), path.slice(0).String())

	// Slicing a slice keeps offsets straight.
	subsub := sub.slice(2)
	assert.Equal(t, "/d", subsub.String())
	assert.Equal(t, "/d", sub.restString(2))
}

func TestParsePathVerbatimSeparator(t *testing.T) {
	parser, err := New(WithSeparator('.'))
	require.NoError(t, err)

	path, err := parser.ParsePath("a.b%20.c;x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b%20", "c;x"}, slices.Collect(path.Segments()))
}
