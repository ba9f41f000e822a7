// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// Frame pools keep the trampoline's hot path allocation-light. Frames
// popped off the stack after being consumed are zeroed and returned to
// their pool; the trampoline never reuses a frame it has already popped,
// so this is safe under the single-goroutine-per-trampoline discipline
// evalEffect relies on.

var seqContPool = sync.Pool{New: func() any { return new(seqCont) }}
var foldContPool = sync.Pool{New: func() any { return new(foldCont) }}
var mapErrorContPool = sync.Pool{New: func() any { return new(mapErrorCont) }}

func acquireSeqCont(k func(Erased) effectNode) *seqCont {
	f := seqContPool.Get().(*seqCont)
	f.k = k
	return f
}

func releaseSeqCont(f *seqCont) {
	f.k = nil
	seqContPool.Put(f)
}

func acquireFoldCont(onSuccess func(Erased) effectNode, onFailure func(error) effectNode) *foldCont {
	f := foldContPool.Get().(*foldCont)
	f.onSuccess = onSuccess
	f.onFailure = onFailure
	return f
}

func releaseFoldCont(f *foldCont) {
	f.onSuccess = nil
	f.onFailure = nil
	foldContPool.Put(f)
}

func acquireMapErrorCont(fn func(error) error) *mapErrorCont {
	f := mapErrorContPool.Get().(*mapErrorCont)
	f.f = fn
	return f
}

func releaseMapErrorCont(f *mapErrorCont) {
	f.f = nil
	mapErrorContPool.Put(f)
}
