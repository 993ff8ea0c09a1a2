package media

import "path/filepath"

// SamePath reports whether a and b name the same file, comparing cleaned and
// absolute forms. It does not resolve symlinks.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
