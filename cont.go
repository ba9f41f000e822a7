// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Pure is an alias for [Succeed] kept for readers coming from spec.md's
// Pure constructor naming.
func Pure[A any](a A) Effect[A] { return Succeed(a) }

// unit is the canonical empty result, used where an Effect only matters for
// its side effect (Suspend thunks, capability performs with no payload).
type unit struct{}

// Unit is the single value of type unit.
var Unit = unit{}
