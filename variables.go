// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import (
	"net/url"
	"slices"
)

// Variable is a single name/value binding captured while matching a path.
// Params holds the matrix parameters of the segment the value was captured
// from, or the merged parameters of all remaining segments for a {*name}
// capture. Params is nil when the segment carried none.
type Variable struct {
	Params url.Values
	Name   string
	Value  string
}

// Variables is the ordered list of bindings extracted by a successful match.
// Names are unique, captures appear in pattern order.
type Variables []Variable

// Get the captured value by name.
func (v Variables) Get(name string) string {
	for i := range v {
		if v[i].Name == name {
			return v[i].Value
		}
	}
	return ""
}

// Has checks whether a capture exists by name.
func (v Variables) Has(name string) bool {
	for i := range v {
		if v[i].Name == name {
			return true
		}
	}

	return false
}

// Params returns the matrix parameters recorded for the named capture,
// or nil when there are none.
func (v Variables) Params(name string) url.Values {
	for i := range v {
		if v[i].Name == name {
			return v[i].Params
		}
	}
	return nil
}

// Clone make a copy of Variables.
func (v Variables) Clone() Variables {
	return slices.Clone(v)
}

// set records a binding. Capture names are unique by compilation invariant,
// so a plain append keeps the list consistent.
func (v *Variables) set(name, value string, params url.Values) {
	*v = append(*v, Variable{Name: name, Value: value, Params: params})
}
