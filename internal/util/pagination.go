package util

const DefaultPageSize = 10

// LimitOffset resolves optional limit/offset query values. Limit defaults to
// DefaultPageSize and is capped at 100; offset defaults to 0.
func LimitOffset(limit, offset *int) (int, int) {
	l := DefaultPageSize
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if l > 100 {
		l = 100
	}
	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}
