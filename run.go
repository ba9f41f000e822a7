// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

var (
	defaultRuntimeOnce sync.Once
	defaultRuntimeInst *Runtime
)

func defaultRuntime() *Runtime {
	defaultRuntimeOnce.Do(func() { defaultRuntimeInst = New() })
	return defaultRuntimeInst
}

// RunDefault is sugar for Run against a shared, lazily-constructed default
// Runtime, for callers who don't need to configure their own executor or
// logger.
func RunDefault[A any](e Effect[A]) (A, error) {
	return Run(defaultRuntime(), e)
}

// RunDefaultWithHandler is sugar for RunWithHandler against the shared
// default Runtime.
func RunDefaultWithHandler[A any](e Effect[A], h CapabilityHandler) (A, error) {
	return RunWithHandler(defaultRuntime(), e, h)
}
