// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// RejectAll is a CapabilityHandler that rejects every operation. It is
// the identity element for [Compose] with zero handlers and a convenient
// base case for tests that only care about a handful of capabilities and
// want everything else to fail loudly with [ErrCapabilityRejected].
var RejectAll CapabilityHandler = HandlerFunc(func(op any) (any, error) {
	return nil, ErrCapabilityRejected
})
