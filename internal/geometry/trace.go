package geometry

import "github.com/floorcast/floorcast/backend-go/internal/document"

// TraceLoop reconstructs the traversal order of a path from its unordered
// segment list. It seeds the order with an arbitrary starting segment and
// repeatedly extends the tail with any remaining segment incident to it; the
// first incident segment in input order wins, so graphs that are not a single
// simple cycle (or open chain) give an input-order-dependent result.
//
// The returned indices omit the closing duplicate; callers re-close rings
// explicitly. Fewer than 3 indices means the path is not a usable polygon.
// The caller's segment slice is never modified.
func TraceLoop(segments []document.Segment) []int {
	if len(segments) == 0 {
		return nil
	}

	remaining := make([]document.Segment, len(segments))
	copy(remaining, segments)

	order := []int{remaining[0].Start, remaining[0].End}
	remaining = remaining[1:]

	for len(remaining) > 0 {
		tail := order[len(order)-1]
		consumed := -1

		for i, seg := range remaining {
			if seg.Start == tail {
				order = append(order, seg.End)
				consumed = i
				break
			}
			if seg.End == tail {
				order = append(order, seg.Start)
				consumed = i
				break
			}
		}

		if consumed < 0 {
			// Open chain or disconnected input; stop with what we have.
			break
		}
		remaining = append(remaining[:consumed], remaining[consumed+1:]...)
	}

	if len(order) > 1 && order[0] == order[len(order)-1] {
		order = order[:len(order)-1]
	}
	return order
}
