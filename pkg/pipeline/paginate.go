package pipeline

// PageSize is the number of hooks shown per page.
const PageSize = 20

// TotalPages returns ceil(n/size), never negative.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the page-th slice (1-based) of records. Out of range pages
// yield an empty slice.
func Paginate[T any](records []T, size, page int) []T {
	if size <= 0 || page < 1 {
		return records[:0:0]
	}
	start := (page - 1) * size
	if start >= len(records) {
		return records[:0:0]
	}
	end := min(start+size, len(records))
	return records[start:end:end]
}

// PageLink is one entry of the page-number control.
type PageLink struct {
	Number int
	Active bool
	// Gap is true when pages were collapsed between this link and the
	// previous one.
	Gap bool
}

// PageNumbers returns the page links to display: the first and last pages
// plus every page within distance 1 of current.
func PageNumbers(current, total int) []PageLink {
	links := []PageLink{}
	prev := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && abs(current-p) > 1 {
			continue
		}
		links = append(links, PageLink{
			Number: p,
			Active: p == current,
			Gap:    prev != 0 && p-prev > 1,
		})
		prev = p
	}
	return links
}

// Prev moves one page back. It is inert on the first page.
func (s State) Prev() State {
	if s.CurrentPage() <= 1 {
		s.Page = 1
		return s
	}
	s.Page = s.CurrentPage() - 1
	return s
}

// Next moves one page forward. It is inert on the final page.
func (s State) Next(total int) State {
	if s.CurrentPage() >= total {
		s.Page = s.CurrentPage()
		return s
	}
	s.Page = s.CurrentPage() + 1
	return s
}

// GoTo jumps to page, clamped to [1, total].
func (s State) GoTo(page, total int) State {
	switch {
	case page < 1 || total < 1:
		page = 1
	case page > total:
		page = total
	}
	s.Page = page
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
