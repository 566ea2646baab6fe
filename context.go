// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

// matchingContext carries the mutable state of a single match attempt. One is
// created per call and never shared, so matching stays lock-free no matter how
// many goroutines evaluate the same pattern.
type matchingContext struct {
	path Path
	// vars collects bindings in pattern order when extracting is set. A pure
	// boolean match leaves it untouched.
	vars       Variables
	extracting bool
	// determineRemaining switches matching to prefix mode: instead of
	// requiring the path to be consumed, the cursor position after the last
	// pattern element is recorded in remainingIdx.
	determineRemaining     bool
	remainingIdx           int
	matchTrailingSeparator bool
}

func (p *Pattern) newMatchingContext(path Path, extracting bool) matchingContext {
	return matchingContext{
		path:                   path,
		extracting:             extracting,
		matchTrailingSeparator: p.parser.matchTrailingSeparator,
	}
}
