// Copyright the effect authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// resumptionMarker carries the state needed to resume a stepped
// computation at exactly the point it suspended on a capability perform,
// pooled the same way seqCont/foldCont/mapErrorCont are. Step and
// Suspension keep this same state on Suspension itself and do not draw
// from this pool.
type resumptionMarker struct {
	op    any
	stack []contFrame
}

var resumptionMarkerPool = sync.Pool{New: func() any { return new(resumptionMarker) }}

func acquireResumptionMarker() *resumptionMarker {
	return resumptionMarkerPool.Get().(*resumptionMarker)
}

func releaseResumptionMarker(m *resumptionMarker) {
	m.op = nil
	m.stack = nil
	resumptionMarkerPool.Put(m)
}
