// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"iter"
	"net/url"
	"strings"
)

// Path is an immutable, pre-parsed request path, structured as an alternation
// of separators and segments. Segment values are percent-decoded and their
// matrix parameters (;k=v;flag) are split off, so an encoded separator (%2F)
// inside a segment can never be confused with a structural one. A Path is
// parsed once and may be matched against any number of patterns concurrently.
type Path struct {
	raw   string
	elems []pathElem
}

// pathElem is either a separator or a path segment.
type pathElem struct {
	// value is the decoded text to match against, or the separator itself for
	// separator elements.
	value string
	// params holds the decoded matrix parameters of a segment, nil when none.
	params url.Values
	// offset is the byte position of this element in the raw path.
	offset int
	sep    bool
}

// ParsePath parses path into its separator and segment elements using the
// parser's separator. With the default '/' separator, segment values are
// percent-decoded and matrix parameters are extracted; any other separator
// leaves segments verbatim. Malformed percent-encoding yields a
// [url.EscapeError].
func (p *Parser) ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, nil
	}

	sep := p.separator
	sepStr := string(sep)
	decode := sep == defaultSeparator
	elems := make([]pathElem, 0, strings.Count(path, sepStr)+2)

	begin := 0
	if path[0] == sep {
		elems = append(elems, pathElem{value: sepStr, sep: true})
		begin = 1
	}
	for begin < len(path) {
		end := strings.IndexByte(path[begin:], sep)
		var segment string
		if end >= 0 {
			end += begin
			segment = path[begin:end]
		} else {
			segment = path[begin:]
		}
		if segment != "" {
			el, err := parseSegment(segment, begin, decode)
			if err != nil {
				return Path{}, err
			}
			elems = append(elems, el)
		}
		if end < 0 {
			break
		}
		elems = append(elems, pathElem{value: sepStr, offset: end, sep: true})
		begin = end + 1
	}

	return Path{raw: path, elems: elems}, nil
}

// parseSegment splits off matrix parameters before decoding, so an encoded
// semicolon (%3B) in the segment value does not start a parameter list.
func parseSegment(segment string, offset int, decode bool) (pathElem, error) {
	if !decode {
		return pathElem{value: segment, offset: offset}, nil
	}

	semi := strings.IndexByte(segment, ';')
	if semi < 0 {
		value, err := url.PathUnescape(segment)
		if err != nil {
			return pathElem{}, err
		}
		return pathElem{value: value, offset: offset}, nil
	}

	value, err := url.PathUnescape(segment[:semi])
	if err != nil {
		return pathElem{}, err
	}
	params, err := parseMatrixParams(segment[semi+1:])
	if err != nil {
		return pathElem{}, err
	}
	return pathElem{value: value, params: params, offset: offset}, nil
}

// parseMatrixParams parses the ;name=value,value;flag parameter list trailing
// a segment value. Names and values are percent-decoded, flags map to a single
// empty value and empty chunks are skipped.
func parseMatrixParams(s string) (url.Values, error) {
	var params url.Values
	for begin := 0; begin <= len(s); {
		end := strings.IndexByte(s[begin:], ';')
		var chunk string
		if end >= 0 {
			end += begin
			chunk = s[begin:end]
			begin = end + 1
		} else {
			chunk = s[begin:]
			begin = len(s) + 1
		}
		if chunk == "" {
			continue
		}

		name, rawValues, found := strings.Cut(chunk, "=")
		name, err := url.PathUnescape(name)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		if params == nil {
			params = make(url.Values)
		}
		if !found {
			params.Add(name, "")
			continue
		}
		for value := range strings.SplitSeq(rawValues, ",") {
			value, err = url.PathUnescape(value)
			if err != nil {
				return nil, err
			}
			params.Add(name, value)
		}
	}
	return params, nil
}

// String returns the raw path text this Path was parsed from.
func (p Path) String() string {
	return p.raw
}

// Empty reports whether the path holds no element at all.
func (p Path) Empty() bool {
	return len(p.elems) == 0
}

// Segments returns an iterator over the decoded segment values of the path,
// separators excluded.
func (p Path) Segments() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range p.elems {
			if p.elems[i].sep {
				continue
			}
			if !yield(p.elems[i].value) {
				return
			}
		}
	}
}

func (p Path) size() int {
	return len(p.elems)
}

func (p Path) isSeparator(i int) bool {
	return p.elems[i].sep
}

// segmentValue returns the decoded value of the segment at index i, or an
// empty string when i is out of range or addresses a separator.
func (p Path) segmentValue(i int) string {
	if i < 0 || i >= len(p.elems) || p.elems[i].sep {
		return ""
	}
	return p.elems[i].value
}

func (p Path) params(i int) url.Values {
	return p.elems[i].params
}

// restString renders every element from index i to the end as a single
// decoded string, matrix parameters excluded.
func (p Path) restString(i int) string {
	if i >= len(p.elems) {
		return ""
	}
	var sb strings.Builder
	for ; i < len(p.elems); i++ {
		sb.WriteString(p.elems[i].value)
	}
	return sb.String()
}

// slice returns the sub path starting at element index i. Element offsets are
// relative to the originally parsed path, hence the base adjustment.
func (p Path) slice(i int) Path {
	if i <= 0 {
		return p
	}
	if i >= len(p.elems) {
		return Path{}
	}
	base := p.elems[0].offset
	return Path{raw: p.raw[p.elems[i].offset-base:], elems: p.elems[i:]}
}

// prefix returns the sub path covering elements [0, i).
func (p Path) prefix(i int) Path {
	if i <= 0 {
		return Path{}
	}
	if i >= len(p.elems) {
		return p
	}
	base := p.elems[0].offset
	return Path{raw: p.raw[:p.elems[i].offset-base], elems: p.elems[:i]}
}

// justSeparator reports whether the path consists of a single separator.
func (p Path) justSeparator() bool {
	return len(p.elems) == 1 && p.elems[0].sep
}
