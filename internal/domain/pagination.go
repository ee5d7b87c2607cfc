package domain

// Page selects a window of a roster or invitation list by 1-based page number.
type Page struct {
	Number int
	Size   int
}

// Bounds returns the half-open window [start, end) of a list of n items.
// Pages past the end yield an empty window. A non-positive Size selects
// everything from the page offset on.
func (p Page) Bounds(n int) (start, end int) {
	if p.Number > 1 && p.Size > 0 {
		// Compare before multiplying so huge page numbers cannot overflow.
		if p.Number-1 > n/p.Size {
			start = n
		} else {
			start = min((p.Number-1)*p.Size, n)
		}
	}
	end = n
	if p.Size > 0 && start+p.Size < n {
		end = start + p.Size
	}
	return start, end
}
