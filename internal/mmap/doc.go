// Package mmap acquires the backing memory of an arena from the operating
// system.
//
// MapAnon returns a private, anonymous, read/write region of the requested
// size together with a release function. On unix it is an mmap(2) mapping,
// on Windows a VirtualAlloc reservation, and elsewhere an ordinary Go slice.
// The region is zero-filled.
package mmap
