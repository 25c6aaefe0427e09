package source

import "sync"

// LineIndices is a sorted table of line-start byte offsets for a Source's
// Body: offset 0, then the offset immediately after every '\n' (a "\r\n"
// pair counts as a single break, so exactly one entry follows it).
//
// Construction is O(n) in the body length; lookups are O(log n) via
// binary search. Results are cached per Source so repeated diagnostics
// against the same file don't re-scan it.
type LineIndices struct {
	starts []uint32
}

var lineIndexCache sync.Map // *Source -> *LineIndices

// For returns the (possibly cached) LineIndices for src. The cache is
// keyed by the *Source pointer's identity, not its body content, per the
// front end's concurrency model: distinct Source values never collide,
// and a sync.Map makes concurrent callers safe even when they share one
// Source.
func For(src *Source) *LineIndices {
	if cached, ok := lineIndexCache.Load(src); ok {
		return cached.(*LineIndices)
	}
	li := compute(src.Body)
	actual, _ := lineIndexCache.LoadOrStore(src, li)
	return actual.(*LineIndices)
}

func compute(body string) *LineIndices {
	starts := make([]uint32, 1, 16)
	starts[0] = 0
	for i := 0; i < len(body); i++ {
		if body[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &LineIndices{starts: starts}
}

// LineOf returns the 1-based line number containing byte offset i, and
// the byte offset at which that line starts.
func (li *LineIndices) LineOf(i uint32) (line int, lineStart uint32) {
	// Binary search for the last line-start <= i.
	lo, hi := 0, len(li.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.starts[mid] <= i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, li.starts[lo]
}

// Count returns the number of lines the body was split into.
func (li *LineIndices) Count() int {
	return len(li.starts)
}
