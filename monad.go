// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Then sequences m before n, discarding m's result. Equivalent to
// FlatMap(m, func(A) Effect[B] { return n }) but named for readability at
// call sites that don't care about m's value.
func Then[A, B any](m Effect[A], n Effect[B]) Effect[B] {
	return FlatMap(m, func(A) Effect[B] { return n })
}

// Ignore discards e's success value, keeping only its failure/cancellation
// behavior. Useful for capability performs whose result is uninteresting.
func Ignore[A any](e Effect[A]) Effect[unit] {
	return Map(e, func(A) unit { return Unit })
}
