//go:build !unix && !windows

package mmap

import "fmt"

// MapAnon allocates a Go slice when no OS mapping primitive is available.
func MapAnon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmap: invalid size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
