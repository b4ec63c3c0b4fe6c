// Package util provides some basic utility functions.
package util

import (
	"path/filepath"
	"strings"
)

// MakeRange returns a new array of length max, with contents (0, ..., max - 1)
func MakeRange(max int64) []int64 {
	r := make([]int64, max)
	for i := range r {
		r[i] = int64(i)
	}
	return r
}

// Max returns the largest of a and b.
func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// SplitExt splits a path into everything before the extension and the lower-cased extension (with its dot).
func SplitExt(path string) (stem, ext string) {
	ext = filepath.Ext(path)
	return strings.TrimSuffix(path, ext), strings.ToLower(ext)
}
