// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func benchMatch(b *testing.B, pattern, path string) {
	patt := MustParse(pattern)
	pp, err := ParsePath(path)
	require.NoError(b, err)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		patt.Match(pp)
	}
}

func benchExtract(b *testing.B, pattern, path string) {
	patt := MustParse(pattern)
	pp, err := ParsePath(path)
	require.NoError(b, err)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		patt.Extract(pp)
	}
}

func BenchmarkParseStatic(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Parse("/api/v1/users")
	}
}

func BenchmarkParseCapture(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Parse("/users/{id}/posts/{post}")
	}
}

func BenchmarkParseComplex(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Parse(`/v{major:\d+}.{minor}/files/{*path}`)
	}
}

func BenchmarkParsePath(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = ParsePath("/users/42/posts/7")
	}
}

func BenchmarkParsePathMatrix(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = ParsePath("/cars;color=red,blue/42;sorted")
	}
}

func BenchmarkMatchStatic(b *testing.B) {
	benchMatch(b, "/api/v1/users", "/api/v1/users")
}

func BenchmarkMatchCapture(b *testing.B) {
	benchMatch(b, "/users/{id}/posts/{post}", "/users/42/posts/7")
}

func BenchmarkMatchConstraint(b *testing.B) {
	benchMatch(b, `/users/{id:\d+}/posts/{post:\d+}`, "/users/42/posts/7")
}

func BenchmarkMatchMixedSegment(b *testing.B) {
	benchMatch(b, "/files/img_{name}.{ext}", "/files/img_glacier.jpg")
}

func BenchmarkMatchCatchAll(b *testing.B) {
	benchMatch(b, "/static/{*filepath}", "/static/css/site.css")
}

func BenchmarkExtractCapture(b *testing.B) {
	benchExtract(b, "/users/{id}/posts/{post}", "/users/42/posts/7")
}

func BenchmarkExtractCatchAll(b *testing.B) {
	benchExtract(b, "/static/{*filepath}", "/static/css/site.css")
}

func BenchmarkMatchParallel(b *testing.B) {
	patt := MustParse("/users/{id}/posts/{post}")
	path, err := ParsePath("/users/42/posts/7")
	require.NoError(b, err)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			patt.Match(path)
		}
	})
}

func BenchmarkCombine(b *testing.B) {
	base := MustParse("/api/*")
	sub := MustParse("/users/{id}")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = base.Combine(sub)
	}
}

func BenchmarkCompareSort(b *testing.B) {
	patterns := []*Pattern{
		MustParse("/{*rest}"),
		MustParse("/users/*"),
		MustParse("/users/{id}"),
		MustParse(`/users/{id:\d+}`),
		MustParse("/users/admin"),
		MustParse("/**"),
		MustParse("/users/{id}/posts"),
		MustParse("/users/*/posts"),
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		shuffled := slices.Clone(patterns)
		slices.SortFunc(shuffled, (*Pattern).Compare)
	}
}
