package sms

import (
	"log/slog"
	"sync"
)

const (
	// MaxSegmentLen is the transport's maximum body length.
	MaxSegmentLen = 1500
	// maxCombinedMsgs limits how many segments may be sent for one
	// response. The cap is checked after a segment is queued, so up to
	// maxCombinedMsgs+1 segments are attempted.
	maxCombinedMsgs = 4
)

// Deliver sends text to the destination, splitting anything over the
// transport limit into consecutive full-length segments. The segment count
// is floor(len/limit): a trailing partial segment past the last full
// boundary is dropped. That truncation matches the observed behavior of the
// service this replaces and is pinned by test rather than fixed.
//
// Segments go out concurrently and Deliver waits until every attempt has
// settled. A failed segment does not cancel or fail its siblings; failures
// are logged and never reach the caller.
func Deliver(text string, sender Sender, to string) {
	if len(text) <= MaxSegmentLen {
		if err := sender.Send(to, text); err != nil {
			slog.Warn("message send failed", "to", to, "err", err)
		}
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < len(text)/MaxSegmentLen; i++ {
		// Boundaries are byte offsets, so a multi-byte rune straddling
		// one is split across two segments. Backend output is
		// code-page-converted ASCII, where bytes and characters agree.
		chunk := text[i*MaxSegmentLen : (i+1)*MaxSegmentLen]
		wg.Add(1)
		go func(n int, chunk string) {
			defer wg.Done()
			if err := sender.Send(to, chunk); err != nil {
				slog.Warn("segment send failed", "to", to, "segment", n, "err", err)
			}
		}(i, chunk)
		if i >= maxCombinedMsgs {
			break
		}
	}
	wg.Wait()
}
