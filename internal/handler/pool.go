package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize covers the common payloads here — a SpinResult or a
// top-5 leaderboard — without growing the buffer.
const responseBufferSize = 512

// responsePool recycles encode buffers across requests; the overlay polls
// /spin/current every animation frame, so these responses are hot.
var responsePool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func acquireBuffer() *bytes.Buffer {
	return responsePool.Get().(*bytes.Buffer)
}

func releaseBuffer(buf *bytes.Buffer) {
	buf.Reset()
	responsePool.Put(buf)
}
